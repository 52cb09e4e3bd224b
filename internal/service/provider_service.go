package service

import (
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProviderService handles insurance provider business logic
type ProviderService struct {
	notifier
	providerRepo domain.ProviderRepository
}

// NewProviderService creates a new ProviderService
func NewProviderService(providerRepo domain.ProviderRepository) *ProviderService {
	return &ProviderService{providerRepo: providerRepo}
}

// CreateProviderInput contains input for creating an insurance provider
type CreateProviderInput struct {
	Name      string
	AgentRate decimal.Decimal
	OurRate   decimal.Decimal
	TDS       decimal.Decimal
	GST       decimal.Decimal
	IsActive  *bool
}

// UpdateProviderInput holds the fields to change; nil leaves a field untouched
type UpdateProviderInput struct {
	Name      *string
	AgentRate *decimal.Decimal
	OurRate   *decimal.Decimal
	TDS       *decimal.Decimal
	GST       *decimal.Decimal
	IsActive  *bool
}

// CreateProvider validates and stores a new provider
func (s *ProviderService) CreateProvider(workspaceID int32, userID uuid.UUID, input CreateProviderInput) (*domain.Provider, error) {
	provider := &domain.Provider{
		WorkspaceID: workspaceID,
		Name:        input.Name,
		AgentRate:   input.AgentRate,
		OurRate:     input.OurRate,
		TDS:         input.TDS,
		GST:         input.GST,
		IsActive:    input.IsActive == nil || *input.IsActive,
		CreatedBy:   &userID,
		UpdatedBy:   &userID,
	}
	provider.Normalize()
	if err := provider.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.providerRepo.ExistsByName(workspaceID, provider.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrProviderNameExists
	}

	created, err := s.providerRepo.Create(provider)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("provider_id", created.ID).Str("name", created.Name).Msg("Insurance provider created")
	s.publishEvent(workspaceID, websocket.ProviderCreated(created))
	return created, nil
}

// GetProviders returns one page of providers
func (s *ProviderService) GetProviders(workspaceID int32, params domain.ListParams) (domain.Page[*domain.Provider], error) {
	params = params.Normalize(domain.ProviderSortFields, "name")
	providers, total, err := s.providerRepo.List(workspaceID, params)
	if err != nil {
		return domain.Page[*domain.Provider]{}, err
	}
	return domain.NewPage(providers, total, params), nil
}

// GetProviderByID retrieves a provider by ID within a workspace
func (s *ProviderService) GetProviderByID(workspaceID int32, id int32) (*domain.Provider, error) {
	return s.providerRepo.GetByID(workspaceID, id)
}

// UpdateProvider applies a partial update. Existing policies keep their snapshotted rates.
func (s *ProviderService) UpdateProvider(workspaceID int32, id int32, userID uuid.UUID, input UpdateProviderInput) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		provider.Name = *input.Name
	}
	if input.AgentRate != nil {
		provider.AgentRate = *input.AgentRate
	}
	if input.OurRate != nil {
		provider.OurRate = *input.OurRate
	}
	if input.TDS != nil {
		provider.TDS = *input.TDS
	}
	if input.GST != nil {
		provider.GST = *input.GST
	}
	if input.IsActive != nil {
		provider.IsActive = *input.IsActive
	}
	provider.UpdatedBy = &userID

	provider.Normalize()
	if err := provider.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.providerRepo.ExistsByName(workspaceID, provider.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrProviderNameExists
	}

	updated, err := s.providerRepo.Update(provider)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("provider_id", id).Msg("Insurance provider updated")
	s.publishEvent(workspaceID, websocket.ProviderUpdated(updated))
	return updated, nil
}

// DeleteProvider soft-deletes a provider. Policies referencing it still resolve it.
func (s *ProviderService) DeleteProvider(workspaceID int32, id int32) error {
	if err := s.providerRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("provider_id", id).Msg("Insurance provider deleted")
	s.publishEvent(workspaceID, websocket.ProviderDeleted(id))
	return nil
}
