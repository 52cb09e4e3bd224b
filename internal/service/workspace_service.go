package service

import (
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// WorkspaceService handles workspace-related business logic
type WorkspaceService struct {
	workspaceRepo domain.WorkspaceRepository
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(workspaceRepo domain.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaceRepo: workspaceRepo}
}

// GetWorkspace returns the caller's workspace
func (s *WorkspaceService) GetWorkspace(workspaceID int32) (*domain.Workspace, error) {
	return s.workspaceRepo.GetByID(workspaceID)
}

// RenameWorkspace changes the brokerage name shown to its members
func (s *WorkspaceService) RenameWorkspace(actor domain.Principal, name string) (*domain.Workspace, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminRoleRequired
	}

	workspace, err := s.workspaceRepo.GetByID(actor.WorkspaceID)
	if err != nil {
		return nil, err
	}
	previous := workspace.Name
	if err := workspace.Rename(name); err != nil {
		return nil, err
	}

	updated, err := s.workspaceRepo.Update(workspace)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", actor.WorkspaceID).Msg("Failed to rename workspace")
		return nil, err
	}

	log.Info().
		Int32("workspace_id", actor.WorkspaceID).
		Str("from", previous).
		Str("to", updated.Name).
		Msg("Workspace renamed")
	return updated, nil
}
