package service

import (
	"errors"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxExpiringWithinDays bounds the look-ahead of the expiring list
const MaxExpiringWithinDays int32 = 365

// PolicyService handles policy business logic. It is the only writer of derived
// fields: every create and update recalculates them from the stored inputs.
type PolicyService struct {
	notifier
	policyRepo       domain.PolicyRepository
	agentRepo        domain.AgentRepository
	providerRepo     domain.ProviderRepository
	vehicleClassRepo domain.VehicleClassRepository
	now              func() time.Time
}

// NewPolicyService creates a new PolicyService
func NewPolicyService(
	policyRepo domain.PolicyRepository,
	agentRepo domain.AgentRepository,
	providerRepo domain.ProviderRepository,
	vehicleClassRepo domain.VehicleClassRepository,
) *PolicyService {
	return &PolicyService{
		policyRepo:       policyRepo,
		agentRepo:        agentRepo,
		providerRepo:     providerRepo,
		vehicleClassRepo: vehicleClassRepo,
		now:              time.Now,
	}
}

// CreatePolicyInput contains input for creating a policy. Rates left nil in
// Rates default from the provider and vehicle class.
type CreatePolicyInput struct {
	Name           string
	PhoneNumber    string
	Email          string
	Address        string
	PolicyNumber   string
	StartDate      time.Time
	EndDate        time.Time
	PremiumAmount  decimal.Decimal
	VehicleInfo    *domain.VehicleInfo
	AgentID        int32
	ProviderID     int32
	VehicleClassID int32
	Rates          domain.RateOverrides
}

// UpdatePolicyInput holds the fields to change; nil leaves a field untouched.
// Switching to another provider or vehicle class re-seeds the rates it supplies
// unless they are overridden in the same request.
type UpdatePolicyInput struct {
	Name             *string
	PhoneNumber      *string
	Email            *string
	Address          *string
	PolicyNumber     *string
	StartDate        *time.Time
	EndDate          *time.Time
	PremiumAmount    *decimal.Decimal
	VehicleInfo      *domain.VehicleInfo
	ClearVehicleInfo bool
	AgentID          *int32
	ProviderID       *int32
	VehicleClassID   *int32
	Rates            domain.RateOverrides
}

// PreviewInput is a quote request: nothing is persisted
type PreviewInput struct {
	PremiumAmount  decimal.Decimal
	ProviderID     *int32
	VehicleClassID *int32
	Rates          domain.RateOverrides
}

// PolicyQuote is the outcome of a preview calculation
type PolicyQuote struct {
	PremiumAmount decimal.Decimal
	Rates         domain.RateSet
	Fields        domain.DerivedFields
}

// policyRefs are the entities a policy points at, loaded for validation and rate defaults
type policyRefs struct {
	agent        *domain.Agent
	provider     *domain.Provider
	vehicleClass *domain.VehicleClass
}

// loadRefs fetches the referenced live entities. Missing ones become field errors.
func (s *PolicyService) loadRefs(workspaceID int32, agentID, providerID, vehicleClassID int32, errs *domain.ValidationErrors) (policyRefs, error) {
	var refs policyRefs
	var err error

	if agentID > 0 {
		if refs.agent, err = s.agentRepo.GetByID(workspaceID, agentID); err != nil {
			if !errors.Is(err, domain.ErrAgentNotFound) {
				return refs, err
			}
			errs.Add("agent", "does not exist")
		}
	}
	if providerID > 0 {
		if refs.provider, err = s.providerRepo.GetByID(workspaceID, providerID); err != nil {
			if !errors.Is(err, domain.ErrProviderNotFound) {
				return refs, err
			}
			errs.Add("insuranceProvider", "does not exist")
		}
	}
	if vehicleClassID > 0 {
		if refs.vehicleClass, err = s.vehicleClassRepo.GetByID(workspaceID, vehicleClassID); err != nil {
			if !errors.Is(err, domain.ErrVehicleClassNotFound) {
				return refs, err
			}
			errs.Add("vehicleType", "does not exist")
		}
	}
	return refs, nil
}

// CreatePolicy validates the holder, dates and references, snapshots the
// rates, computes the derived fields and stores the policy
func (s *PolicyService) CreatePolicy(workspaceID int32, userID uuid.UUID, input CreatePolicyInput) (*domain.Policy, error) {
	policy := &domain.Policy{
		WorkspaceID:       workspaceID,
		Name:              input.Name,
		PhoneNumber:       input.PhoneNumber,
		Email:             input.Email,
		Address:           input.Address,
		PolicyNumber:      input.PolicyNumber,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		PremiumAmount:     input.PremiumAmount,
		VehicleInfo:       input.VehicleInfo,
		Agent:             domain.Unresolved[domain.Agent](input.AgentID),
		InsuranceProvider: domain.Unresolved[domain.Provider](input.ProviderID),
		VehicleType:       domain.Unresolved[domain.VehicleClass](input.VehicleClassID),
		CreatedBy:         &userID,
		UpdatedBy:         &userID,
	}
	policy.Normalize()

	errs := domain.ValidationErrors{}
	refs, err := s.loadRefs(workspaceID, input.AgentID, input.ProviderID, input.VehicleClassID, &errs)
	if err != nil {
		return nil, err
	}
	policy.RateSet = input.Rates.Apply(domain.DefaultRates(refs.provider, refs.vehicleClass))
	errs.Merge(policy.Validate())
	if len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.policyRepo.ExistsByPolicyNumber(workspaceID, policy.PolicyNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrPolicyNumberExists
	}

	policy.Recalculate(s.now())
	created, err := s.policyRepo.Create(policy)
	if err != nil {
		return nil, err
	}
	refs.attach(created)

	log.Info().
		Int32("workspace_id", workspaceID).
		Int32("policy_id", created.ID).
		Str("policy_number", created.PolicyNumber).
		Msg("Policy created")

	s.invalidateDashboard(workspaceID)
	s.publishEvent(workspaceID, websocket.PolicyCreated(created))
	return created, nil
}

// attach resolves the policy's references with entities already in hand
func (r policyRefs) attach(policy *domain.Policy) {
	if r.agent != nil && r.agent.ID == policy.Agent.ID() {
		policy.Agent = domain.Resolved(r.agent.ID, r.agent)
	}
	if r.provider != nil && r.provider.ID == policy.InsuranceProvider.ID() {
		policy.InsuranceProvider = domain.Resolved(r.provider.ID, r.provider)
	}
	if r.vehicleClass != nil && r.vehicleClass.ID == policy.VehicleType.ID() {
		policy.VehicleType = domain.Resolved(r.vehicleClass.ID, r.vehicleClass)
	}
}

// UpdatePolicy merges a partial update into the stored policy and rewrites
// every derived field from the merged inputs
func (s *PolicyService) UpdatePolicy(workspaceID int32, id int32, userID uuid.UUID, input UpdatePolicyInput) (*domain.Policy, error) {
	policy, err := s.policyRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		policy.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		policy.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		policy.Email = *input.Email
	}
	if input.Address != nil {
		policy.Address = *input.Address
	}
	if input.PolicyNumber != nil {
		policy.PolicyNumber = *input.PolicyNumber
	}
	if input.StartDate != nil {
		policy.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		policy.EndDate = *input.EndDate
	}
	if input.PremiumAmount != nil {
		policy.PremiumAmount = *input.PremiumAmount
	}
	if input.ClearVehicleInfo {
		policy.VehicleInfo = nil
	} else if input.VehicleInfo != nil {
		policy.VehicleInfo = input.VehicleInfo
	}
	prevProviderID, prevVehicleClassID := policy.InsuranceProvider.ID(), policy.VehicleType.ID()
	if input.AgentID != nil {
		policy.Agent = domain.Unresolved[domain.Agent](*input.AgentID)
	}
	if input.ProviderID != nil {
		policy.InsuranceProvider = domain.Unresolved[domain.Provider](*input.ProviderID)
	}
	if input.VehicleClassID != nil {
		policy.VehicleType = domain.Unresolved[domain.VehicleClass](*input.VehicleClassID)
	}
	policy.UpdatedBy = &userID
	policy.Normalize()

	errs := domain.ValidationErrors{}
	// Only references being changed must point at live entities; a policy keeps
	// resolving an agent or provider that was deleted after it was written.
	refs, err := s.loadRefs(workspaceID, derefID(input.AgentID), derefID(input.ProviderID), derefID(input.VehicleClassID), &errs)
	if err != nil {
		return nil, err
	}

	rates := policy.RateSet
	defaults := domain.DefaultRates(refs.provider, refs.vehicleClass)
	if refs.provider != nil && refs.provider.ID != prevProviderID {
		rates.TDSRate = defaults.TDSRate
		rates.GSTRate = defaults.GSTRate
	}
	if refs.vehicleClass != nil && refs.vehicleClass.ID != prevVehicleClassID {
		rates.AgentRate = defaults.AgentRate
		rates.OurRate = defaults.OurRate
	}
	policy.RateSet = input.Rates.Apply(rates)

	errs.Merge(policy.Validate())
	if len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.policyRepo.ExistsByPolicyNumber(workspaceID, policy.PolicyNumber, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrPolicyNumberExists
	}

	policy.Recalculate(s.now())
	updated, err := s.policyRepo.Update(policy)
	if err != nil {
		return nil, err
	}
	if err := s.ResolveReferences(workspaceID, []*domain.Policy{updated}); err != nil {
		return nil, err
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("policy_id", id).Msg("Policy updated")

	s.invalidateDashboard(workspaceID)
	s.publishEvent(workspaceID, websocket.PolicyUpdated(updated))
	return updated, nil
}

// DeletePolicy soft-deletes a policy
func (s *PolicyService) DeletePolicy(workspaceID int32, id int32) error {
	if err := s.policyRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}
	log.Info().Int32("workspace_id", workspaceID).Int32("policy_id", id).Msg("Policy deleted")

	s.invalidateDashboard(workspaceID)
	s.publishEvent(workspaceID, websocket.PolicyDeleted(id))
	return nil
}

// GetPolicyByID returns a policy with its references resolved and status re-derived
func (s *PolicyService) GetPolicyByID(workspaceID int32, id int32) (*domain.Policy, error) {
	policy, err := s.policyRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	policy.RefreshStatus(s.now())
	if err := s.ResolveReferences(workspaceID, []*domain.Policy{policy}); err != nil {
		return nil, err
	}
	return policy, nil
}

// GetPolicies returns one filtered page of policies. The status filter runs
// on the stored status; returned items carry the status as of now.
func (s *PolicyService) GetPolicies(workspaceID int32, filter domain.PolicyFilter) (domain.Page[*domain.Policy], error) {
	if filter.Status != "" && !domain.IsValidPolicyStatus(string(filter.Status)) {
		return domain.Page[*domain.Policy]{}, domain.ValidationErrors{{Field: "status", Message: "must be one of: active, expiring-soon, expired"}}
	}
	filter.ListParams = filter.ListParams.Normalize(domain.PolicySortFields, "createdAt")

	policies, total, err := s.policyRepo.List(workspaceID, filter)
	if err != nil {
		return domain.Page[*domain.Policy]{}, err
	}

	now := s.now()
	for _, p := range policies {
		p.RefreshStatus(now)
	}
	if err := s.ResolveReferences(workspaceID, policies); err != nil {
		return domain.Page[*domain.Policy]{}, err
	}
	return domain.NewPage(policies, total, filter.ListParams), nil
}

// GetExpiringPolicies returns policies ending within the next days days that
// have not expired yet, soonest first
func (s *PolicyService) GetExpiringPolicies(workspaceID int32, days int32) ([]*domain.Policy, error) {
	if days == 0 {
		days = domain.DefaultExpiringWithinDays
	}
	if days < 0 || days > MaxExpiringWithinDays {
		return nil, domain.ValidationErrors{{Field: "days", Message: "must be between 1 and 365"}}
	}

	// Whole-day truncation lets an end date up to a day either side of the
	// window qualify, so widen the query and let the classifier decide.
	now := s.now()
	from := now.Add(-24 * time.Hour)
	to := now.Add(time.Duration(days+1) * 24 * time.Hour)

	candidates, err := s.policyRepo.ListEndingBetween(workspaceID, from, to)
	if err != nil {
		return nil, err
	}

	expiring := make([]*domain.Policy, 0, len(candidates))
	for _, p := range candidates {
		p.RefreshStatus(now)
		if p.Status == domain.PolicyStatusExpired {
			continue
		}
		if domain.WholeDaysBetween(now, p.EndDate) > int(days) {
			continue
		}
		expiring = append(expiring, p)
	}

	if err := s.ResolveReferences(workspaceID, expiring); err != nil {
		return nil, err
	}
	return expiring, nil
}

// GetStatistics counts the workspace's policies by status as of now
func (s *PolicyService) GetStatistics(workspaceID int32) (*domain.PolicyStatistics, error) {
	policies, err := s.policyRepo.ListAll(workspaceID, domain.PolicyFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &domain.PolicyStatistics{}
	for _, p := range policies {
		stats.Count(domain.ClassifyStatus(p.StartDate, p.EndDate, now))
	}
	return stats, nil
}

// Preview computes the derived fields of a prospective policy without storing anything
func (s *PolicyService) Preview(workspaceID int32, input PreviewInput) (*PolicyQuote, error) {
	errs := domain.ValidationErrors{}
	if input.PremiumAmount.IsNegative() {
		errs.Add("premiumAmount", "must not be negative")
	}

	refs, err := s.loadRefs(workspaceID, 0, derefID(input.ProviderID), derefID(input.VehicleClassID), &errs)
	if err != nil {
		return nil, err
	}

	rates := input.Rates.Apply(domain.DefaultRates(refs.provider, refs.vehicleClass))
	errs.Merge(rates.Validate())
	if len(errs) > 0 {
		return nil, errs
	}

	return &PolicyQuote{
		PremiumAmount: input.PremiumAmount,
		Rates:         rates,
		Fields:        rates.Compute(input.PremiumAmount),
	}, nil
}

// ResolveReferences replaces the id-only references of policies with their
// entities, deleted ones included. Unknown ids stay unresolved.
func (s *PolicyService) ResolveReferences(workspaceID int32, policies []*domain.Policy) error {
	if len(policies) == 0 {
		return nil
	}

	agentIDs := uniqueIDs(policies, func(p *domain.Policy) int32 { return p.Agent.ID() })
	providerIDs := uniqueIDs(policies, func(p *domain.Policy) int32 { return p.InsuranceProvider.ID() })
	vehicleClassIDs := uniqueIDs(policies, func(p *domain.Policy) int32 { return p.VehicleType.ID() })

	agents, err := s.agentRepo.GetByIDs(workspaceID, agentIDs)
	if err != nil {
		return err
	}
	providers, err := s.providerRepo.GetByIDs(workspaceID, providerIDs)
	if err != nil {
		return err
	}
	vehicleClasses, err := s.vehicleClassRepo.GetByIDs(workspaceID, vehicleClassIDs)
	if err != nil {
		return err
	}

	for _, p := range policies {
		if a, ok := agents[p.Agent.ID()]; ok {
			p.Agent = domain.Resolved(a.ID, a)
		}
		if pr, ok := providers[p.InsuranceProvider.ID()]; ok {
			p.InsuranceProvider = domain.Resolved(pr.ID, pr)
		}
		if vc, ok := vehicleClasses[p.VehicleType.ID()]; ok {
			p.VehicleType = domain.Resolved(vc.ID, vc)
		}
	}
	return nil
}

func uniqueIDs(policies []*domain.Policy, id func(*domain.Policy) int32) []int32 {
	seen := make(map[int32]bool, len(policies))
	ids := make([]int32, 0, len(policies))
	for _, p := range policies {
		if v := id(p); v > 0 && !seen[v] {
			seen[v] = true
			ids = append(ids, v)
		}
	}
	return ids
}

func derefID(id *int32) int32 {
	if id == nil {
		return 0
	}
	return *id
}
