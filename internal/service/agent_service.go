package service

import (
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AgentService handles agent business logic
type AgentService struct {
	notifier
	agentRepo domain.AgentRepository
}

// NewAgentService creates a new AgentService
func NewAgentService(agentRepo domain.AgentRepository) *AgentService {
	return &AgentService{agentRepo: agentRepo}
}

// CreateAgentInput contains input for creating an agent
type CreateAgentInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Location    domain.Location
	IsActive    *bool
}

// UpdateAgentInput holds the fields to change; nil leaves a field untouched
type UpdateAgentInput struct {
	Name        *string
	PhoneNumber *string
	Email       *string
	Address     *string
	City        *string
	State       *string
	IsActive    *bool
}

// CreateAgent validates and stores a new agent. Phone numbers are unique per workspace.
func (s *AgentService) CreateAgent(workspaceID int32, userID uuid.UUID, input CreateAgentInput) (*domain.Agent, error) {
	agent := &domain.Agent{
		WorkspaceID: workspaceID,
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Location:    input.Location,
		IsActive:    input.IsActive == nil || *input.IsActive,
		CreatedBy:   &userID,
		UpdatedBy:   &userID,
	}
	agent.Normalize()
	if err := agent.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.agentRepo.ExistsByPhone(workspaceID, agent.PhoneNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAgentPhoneExists
	}

	created, err := s.agentRepo.Create(agent)
	if err != nil {
		return nil, err
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("agent_id", created.ID).Msg("Agent created")

	s.invalidateDashboard(workspaceID)
	s.publishEvent(workspaceID, websocket.AgentCreated(created))
	return created, nil
}

// GetAgents returns one page of agents; search matches name, phone, email, city and state
func (s *AgentService) GetAgents(workspaceID int32, params domain.ListParams) (domain.Page[*domain.Agent], error) {
	params = params.Normalize(domain.AgentSortFields, "createdAt")
	agents, total, err := s.agentRepo.List(workspaceID, params)
	if err != nil {
		return domain.Page[*domain.Agent]{}, err
	}
	return domain.NewPage(agents, total, params), nil
}

// GetAgentByID retrieves an agent by ID within a workspace
func (s *AgentService) GetAgentByID(workspaceID int32, id int32) (*domain.Agent, error) {
	return s.agentRepo.GetByID(workspaceID, id)
}

// UpdateAgent applies a partial update
func (s *AgentService) UpdateAgent(workspaceID int32, id int32, userID uuid.UUID, input UpdateAgentInput) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		agent.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		agent.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		agent.Email = *input.Email
	}
	if input.Address != nil {
		agent.Location.Address = *input.Address
	}
	if input.City != nil {
		agent.Location.City = *input.City
	}
	if input.State != nil {
		agent.Location.State = *input.State
	}
	if input.IsActive != nil {
		agent.IsActive = *input.IsActive
	}
	agent.UpdatedBy = &userID

	agent.Normalize()
	if err := agent.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.agentRepo.ExistsByPhone(workspaceID, agent.PhoneNumber, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAgentPhoneExists
	}

	updated, err := s.agentRepo.Update(agent)
	if err != nil {
		return nil, err
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("agent_id", id).Msg("Agent updated")

	s.invalidateDashboard(workspaceID)
	s.publishEvent(workspaceID, websocket.AgentUpdated(updated))
	return updated, nil
}

// DeleteAgent soft-deletes an agent
func (s *AgentService) DeleteAgent(workspaceID int32, id int32) error {
	if err := s.agentRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("agent_id", id).Msg("Agent deleted")

	s.invalidateDashboard(workspaceID)
	s.publishEvent(workspaceID, websocket.AgentDeleted(id))
	return nil
}
