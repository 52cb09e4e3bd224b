package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPolicyNotFound     = errors.New("policy not found")
	ErrPolicyNumberExists = errors.New("policy with this number already exists")
)

// DefaultExpiringWithinDays is the look-ahead of the expiring policies list
const DefaultExpiringWithinDays int32 = ExpiringSoonDays

// VehicleInfo identifies the insured vehicle
type VehicleInfo struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=50"`
	Make               string `json:"make,omitempty" validate:"max=100"`
	Model              string `json:"model,omitempty" validate:"max=100"`
}

// Policy is an insurance policy held by a customer and sourced through an agent.
// Rates are snapshotted at creation; derived fields are always recomputed from
// PremiumAmount and the rates, never accepted from a client.
type Policy struct {
	ID            int32           `json:"id"`
	WorkspaceID   int32           `json:"workspaceId"`
	Name          string          `json:"name" validate:"required,max=255"`
	PhoneNumber   string          `json:"phoneNumber,omitempty" validate:"omitempty,phone10"`
	Email         string          `json:"email,omitempty" validate:"omitempty,max=255,emailaddr"`
	Address       string          `json:"address" validate:"required,max=500"`
	PolicyNumber  string          `json:"policyNumber" validate:"required,max=100"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	PremiumAmount decimal.Decimal `json:"premiumAmount"`
	RateSet
	VehicleInfo       *VehicleInfo            `json:"vehicleInfo,omitempty"`
	Agent             Reference[Agent]        `json:"agent"`
	InsuranceProvider Reference[Provider]     `json:"insuranceProvider"`
	VehicleType       Reference[VehicleClass] `json:"vehicleType"`
	DerivedFields
	Status    PolicyStatus `json:"status"`
	CreatedBy *uuid.UUID   `json:"createdBy,omitempty"`
	UpdatedBy *uuid.UUID   `json:"updatedBy,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	DeletedAt *time.Time   `json:"deletedAt,omitempty"`
}

// Premium implements Summable
func (p Policy) Premium() decimal.Decimal { return p.PremiumAmount }

// Derived implements Summable
func (p Policy) Derived() DerivedFields { return p.DerivedFields }

// Recalculate rewrites all derived fields and the status from the policy's own inputs
func (p *Policy) Recalculate(now time.Time) {
	p.DerivedFields = p.RateSet.Compute(p.PremiumAmount)
	p.Status = ClassifyStatus(p.StartDate, p.EndDate, now)
}

// RefreshStatus re-derives the status and reports whether it changed
func (p *Policy) RefreshStatus(now time.Time) bool {
	status := ClassifyStatus(p.StartDate, p.EndDate, now)
	changed := status != p.Status
	p.Status = status
	return changed
}

func (p *Policy) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.Email = strings.TrimSpace(p.Email)
	p.Address = strings.TrimSpace(p.Address)
	p.PolicyNumber = strings.TrimSpace(p.PolicyNumber)
	if p.VehicleInfo != nil {
		p.VehicleInfo.RegistrationNumber = strings.TrimSpace(p.VehicleInfo.RegistrationNumber)
		p.VehicleInfo.Make = strings.TrimSpace(p.VehicleInfo.Make)
		p.VehicleInfo.Model = strings.TrimSpace(p.VehicleInfo.Model)
	}
}

// Validate checks holder fields, premium, dates, rates and that every reference is set
func (p *Policy) Validate() error {
	errs := ValidateStruct(p)
	if !p.PremiumAmount.IsPositive() {
		errs.Add("premiumAmount", "must be greater than zero")
	}
	if p.StartDate.IsZero() {
		errs.Add("startDate", "is required")
	}
	if p.EndDate.IsZero() {
		errs.Add("endDate", "is required")
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.StartDate.Before(p.EndDate) {
		errs.Add("endDate", "must be after start date")
	}
	errs.Merge(p.RateSet.Validate())
	if p.Agent.ID() <= 0 {
		errs.Add("agent", "is required")
	}
	if p.InsuranceProvider.ID() <= 0 {
		errs.Add("insuranceProvider", "is required")
	}
	if p.VehicleType.ID() <= 0 {
		errs.Add("vehicleType", "is required")
	}
	return errs.OrNil()
}

// PolicySortFields are the sort keys accepted by policy lists
var PolicySortFields = []string{"createdAt", "startDate", "endDate", "premiumAmount", "policyNumber", "name"}

// PolicyFilter narrows a policy list
type PolicyFilter struct {
	ListParams
	Status         PolicyStatus
	AgentID        *int32
	ProviderID     *int32
	VehicleClassID *int32
	StartDateFrom  *time.Time
	StartDateTo    *time.Time
}

// PolicyStatistics counts policies by derived status
type PolicyStatistics struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	ExpiringSoon int64 `json:"expiringSoon"`
	Expired      int64 `json:"expired"`
}

// Count tallies one status
func (s *PolicyStatistics) Count(status PolicyStatus) {
	s.Total++
	switch status {
	case PolicyStatusActive:
		s.Active++
	case PolicyStatusExpiringSoon:
		s.ExpiringSoon++
	case PolicyStatusExpired:
		s.Expired++
	}
}

// PolicyStatusUpdate is a single cached-status correction written by the refresh worker
type PolicyStatusUpdate struct {
	ID          int32
	WorkspaceID int32
	Status      PolicyStatus
}

type PolicyRepository interface {
	Create(policy *Policy) (*Policy, error)
	GetByID(workspaceID int32, id int32) (*Policy, error)
	List(workspaceID int32, filter PolicyFilter) ([]*Policy, int64, error)
	ListAll(workspaceID int32, filter PolicyFilter) ([]*Policy, error)
	ListEndingBetween(workspaceID int32, from, to time.Time) ([]*Policy, error)
	ExistsByPolicyNumber(workspaceID int32, policyNumber string, excludeID int32) (bool, error)
	Update(policy *Policy) (*Policy, error)
	SoftDelete(workspaceID int32, id int32) error
	// ListForStatusRefresh pages through non-deleted policies of every workspace by id
	ListForStatusRefresh(afterID int32, limit int32) ([]*Policy, error)
	UpdateStatuses(updates []PolicyStatusUpdate) error
}
