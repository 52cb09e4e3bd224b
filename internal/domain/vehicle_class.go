package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrVehicleClassNotFound   = errors.New("vehicle class not found")
	ErrVehicleClassNameExists = errors.New("vehicle class with this name already exists")
)

// VehicleClass is a category of insured vehicle carrying the default agent and brokerage rates.
// CommissionRate is informational and never enters a calculation.
type VehicleClass struct {
	ID             int32           `json:"id"`
	WorkspaceID    int32           `json:"workspaceId"`
	Name           string          `json:"name" validate:"required,max=255"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	AgentRate      decimal.Decimal `json:"agentRate"`
	OurRate        decimal.Decimal `json:"ourRate"`
	IsActive       bool            `json:"isActive"`
	CreatedBy      *uuid.UUID      `json:"createdBy,omitempty"`
	UpdatedBy      *uuid.UUID      `json:"updatedBy,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      *time.Time      `json:"deletedAt,omitempty"`
}

func (v *VehicleClass) Normalize() {
	v.Name = strings.TrimSpace(v.Name)
}

func (v *VehicleClass) Validate() error {
	errs := ValidateStruct(v)
	if !IsValidRate(v.CommissionRate) {
		errs.Add("commissionRate", "must be between 0 and 100")
	}
	if !IsValidRate(v.AgentRate) {
		errs.Add("agentRate", "must be between 0 and 100")
	}
	if !IsValidRate(v.OurRate) {
		errs.Add("ourRate", "must be between 0 and 100")
	}
	return errs.OrNil()
}

var VehicleClassSortFields = []string{"name", "createdAt", "updatedAt"}

type VehicleClassRepository interface {
	Create(vehicleClass *VehicleClass) (*VehicleClass, error)
	GetByID(workspaceID int32, id int32) (*VehicleClass, error)
	GetByIDs(workspaceID int32, ids []int32) (map[int32]*VehicleClass, error)
	List(workspaceID int32, params ListParams) ([]*VehicleClass, int64, error)
	ExistsByName(workspaceID int32, name string, excludeID int32) (bool, error)
	Update(vehicleClass *VehicleClass) (*VehicleClass, error)
	SoftDelete(workspaceID int32, id int32) error
}
