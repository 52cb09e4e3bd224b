package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProviderNotFound   = errors.New("insurance provider not found")
	ErrProviderNameExists = errors.New("insurance provider with this name already exists")
)

// Provider is an insurance company. Its TDS and GST rates seed new policies.
type Provider struct {
	ID          int32           `json:"id"`
	WorkspaceID int32           `json:"workspaceId"`
	Name        string          `json:"name" validate:"required,max=255"`
	AgentRate   decimal.Decimal `json:"agentRate"`
	OurRate     decimal.Decimal `json:"ourRate"`
	TDS         decimal.Decimal `json:"tds"`
	GST         decimal.Decimal `json:"gst"`
	IsActive    bool            `json:"isActive"`
	CreatedBy   *uuid.UUID      `json:"createdBy,omitempty"`
	UpdatedBy   *uuid.UUID      `json:"updatedBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

// Normalize trims user-entered text
func (p *Provider) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
}

func (p *Provider) Validate() error {
	errs := ValidateStruct(p)
	if !IsValidRate(p.AgentRate) {
		errs.Add("agentRate", "must be between 0 and 100")
	}
	if !IsValidRate(p.OurRate) {
		errs.Add("ourRate", "must be between 0 and 100")
	}
	if !IsValidRate(p.TDS) {
		errs.Add("tds", "must be between 0 and 100")
	}
	if !IsValidRate(p.GST) {
		errs.Add("gst", "must be between 0 and 100")
	}
	return errs.OrNil()
}

// ProviderSortFields are the columns a provider list may be sorted by
var ProviderSortFields = []string{"name", "createdAt", "updatedAt"}

type ProviderRepository interface {
	Create(provider *Provider) (*Provider, error)
	GetByID(workspaceID int32, id int32) (*Provider, error)
	GetByIDs(workspaceID int32, ids []int32) (map[int32]*Provider, error)
	List(workspaceID int32, params ListParams) ([]*Provider, int64, error)
	ExistsByName(workspaceID int32, name string, excludeID int32) (bool, error)
	Update(provider *Provider) (*Provider, error)
	SoftDelete(workspaceID int32, id int32) error
}
