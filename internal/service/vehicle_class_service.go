package service

import (
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// VehicleClassService handles vehicle class business logic
type VehicleClassService struct {
	notifier
	vehicleClassRepo domain.VehicleClassRepository
}

// NewVehicleClassService creates a new VehicleClassService
func NewVehicleClassService(vehicleClassRepo domain.VehicleClassRepository) *VehicleClassService {
	return &VehicleClassService{vehicleClassRepo: vehicleClassRepo}
}

type CreateVehicleClassInput struct {
	Name           string
	CommissionRate decimal.Decimal
	AgentRate      decimal.Decimal
	OurRate        decimal.Decimal
	IsActive       *bool
}

type UpdateVehicleClassInput struct {
	Name           *string
	CommissionRate *decimal.Decimal
	AgentRate      *decimal.Decimal
	OurRate        *decimal.Decimal
	IsActive       *bool
}

func (s *VehicleClassService) CreateVehicleClass(workspaceID int32, userID uuid.UUID, input CreateVehicleClassInput) (*domain.VehicleClass, error) {
	vc := &domain.VehicleClass{
		WorkspaceID:    workspaceID,
		Name:           input.Name,
		CommissionRate: input.CommissionRate,
		AgentRate:      input.AgentRate,
		OurRate:        input.OurRate,
		IsActive:       input.IsActive == nil || *input.IsActive,
		CreatedBy:      &userID,
		UpdatedBy:      &userID,
	}
	vc.Normalize()
	if err := vc.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.vehicleClassRepo.ExistsByName(workspaceID, vc.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrVehicleClassNameExists
	}

	created, err := s.vehicleClassRepo.Create(vc)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("vehicle_class_id", created.ID).Str("name", created.Name).Msg("Vehicle class created")
	s.publishEvent(workspaceID, websocket.VehicleClassCreated(created))
	return created, nil
}

func (s *VehicleClassService) GetVehicleClasses(workspaceID int32, params domain.ListParams) (domain.Page[*domain.VehicleClass], error) {
	params = params.Normalize(domain.VehicleClassSortFields, "name")
	classes, total, err := s.vehicleClassRepo.List(workspaceID, params)
	if err != nil {
		return domain.Page[*domain.VehicleClass]{}, err
	}
	return domain.NewPage(classes, total, params), nil
}

func (s *VehicleClassService) GetVehicleClassByID(workspaceID int32, id int32) (*domain.VehicleClass, error) {
	return s.vehicleClassRepo.GetByID(workspaceID, id)
}

func (s *VehicleClassService) UpdateVehicleClass(workspaceID int32, id int32, userID uuid.UUID, input UpdateVehicleClassInput) (*domain.VehicleClass, error) {
	vc, err := s.vehicleClassRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		vc.Name = *input.Name
	}
	if input.CommissionRate != nil {
		vc.CommissionRate = *input.CommissionRate
	}
	if input.AgentRate != nil {
		vc.AgentRate = *input.AgentRate
	}
	if input.OurRate != nil {
		vc.OurRate = *input.OurRate
	}
	if input.IsActive != nil {
		vc.IsActive = *input.IsActive
	}
	vc.UpdatedBy = &userID

	vc.Normalize()
	if err := vc.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.vehicleClassRepo.ExistsByName(workspaceID, vc.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrVehicleClassNameExists
	}

	updated, err := s.vehicleClassRepo.Update(vc)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("vehicle_class_id", id).Msg("Vehicle class updated")
	s.publishEvent(workspaceID, websocket.VehicleClassUpdated(updated))
	return updated, nil
}

func (s *VehicleClassService) DeleteVehicleClass(workspaceID int32, id int32) error {
	if err := s.vehicleClassRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("vehicle_class_id", id).Msg("Vehicle class deleted")
	s.publishEvent(workspaceID, websocket.VehicleClassDeleted(id))
	return nil
}
