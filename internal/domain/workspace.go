package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrWorkspaceNotFound = errors.New("workspace not found")

// Workspace is one brokerage. Every record belongs to exactly one workspace.
type Workspace struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Rename trims and checks a new brokerage name before applying it
func (w *Workspace) Rename(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ValidationErrors{{Field: "name", Message: "is required"}}
	case len(name) > MaxNameLength:
		return ValidationErrors{{Field: "name", Message: "must be at most 255 characters"}}
	}
	w.Name = name
	return nil
}

// WorkspaceRepository persists brokerages
type WorkspaceRepository interface {
	GetByID(id int32) (*Workspace, error)
	Create(workspace *Workspace) (*Workspace, error)
	Update(workspace *Workspace) (*Workspace, error)
}
