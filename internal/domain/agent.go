package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAgentNotFound    = errors.New("agent not found")
	ErrAgentPhoneExists = errors.New("agent with this phone number already exists")
)

// Location is where an agent operates
type Location struct {
	Address string `json:"address" validate:"required,max=500,safetext"`
	City    string `json:"city" validate:"max=100,safetext"`
	State   string `json:"state" validate:"max=100,safetext"`
}

// Agent is an intermediary who sources policies and earns the agent commission
type Agent struct {
	ID          int32      `json:"id"`
	WorkspaceID int32      `json:"workspaceId"`
	Name        string     `json:"name" validate:"required,max=255"`
	PhoneNumber string     `json:"phoneNumber" validate:"required,phone10"`
	Email       string     `json:"email" validate:"omitempty,max=255,emailaddr"`
	Location    Location   `json:"location"`
	IsActive    bool       `json:"isActive"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
	UpdatedBy   *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func (a *Agent) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.PhoneNumber = strings.TrimSpace(a.PhoneNumber)
	a.Email = strings.TrimSpace(a.Email)
	a.Location.Address = strings.TrimSpace(a.Location.Address)
	a.Location.City = strings.TrimSpace(a.Location.City)
	a.Location.State = strings.TrimSpace(a.Location.State)
}

func (a *Agent) Validate() error {
	return ValidateStruct(a).OrNil()
}

var AgentSortFields = []string{"name", "createdAt", "updatedAt"}

type AgentRepository interface {
	Create(agent *Agent) (*Agent, error)
	GetByID(workspaceID int32, id int32) (*Agent, error)
	GetByIDs(workspaceID int32, ids []int32) (map[int32]*Agent, error)
	List(workspaceID int32, params ListParams) ([]*Agent, int64, error)
	ExistsByPhone(workspaceID int32, phone string, excludeID int32) (bool, error)
	CountActive(workspaceID int32) (int64, error)
	Update(agent *Agent) (*Agent, error)
	SoftDelete(workspaceID int32, id int32) error
}
