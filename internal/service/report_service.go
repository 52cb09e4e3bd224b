package service

import (
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
)

// ReportService builds transaction reports: the policies of one agent,
// provider or vehicle class together with their summed commission fields
type ReportService struct {
	policyService    *PolicyService
	policyRepo       domain.PolicyRepository
	agentRepo        domain.AgentRepository
	providerRepo     domain.ProviderRepository
	vehicleClassRepo domain.VehicleClassRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	policyService *PolicyService,
	policyRepo domain.PolicyRepository,
	agentRepo domain.AgentRepository,
	providerRepo domain.ProviderRepository,
	vehicleClassRepo domain.VehicleClassRepository,
) *ReportService {
	return &ReportService{
		policyService:    policyService,
		policyRepo:       policyRepo,
		agentRepo:        agentRepo,
		providerRepo:     providerRepo,
		vehicleClassRepo: vehicleClassRepo,
	}
}

// AgentTransactions reports an agent's policies starting within the range.
// The start date is required and the end date defaults to now.
func (s *ReportService) AgentTransactions(workspaceID int32, agentID int32, r domain.ReportRange) (*domain.TransactionReport, error) {
	if r.StartDate == nil {
		return nil, domain.ErrReportStartRequired
	}
	if r.EndDate == nil {
		now := s.policyService.now()
		r.EndDate = &now
	}
	if err := checkRange(r); err != nil {
		return nil, err
	}

	agent, err := s.agentRepo.GetByID(workspaceID, agentID)
	if err != nil {
		return nil, err
	}

	report, err := s.build(workspaceID, domain.PolicyFilter{AgentID: &agentID}, r)
	if err != nil {
		return nil, err
	}
	report.Kind = domain.ReportByAgent
	report.SubjectID = agent.ID
	report.SubjectName = agent.Name
	report.Agent = agent
	return report, nil
}

// ProviderTransactions reports the policies written with a provider; the range is optional
func (s *ReportService) ProviderTransactions(workspaceID int32, providerID int32, r domain.ReportRange) (*domain.TransactionReport, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}

	provider, err := s.providerRepo.GetByID(workspaceID, providerID)
	if err != nil {
		return nil, err
	}

	report, err := s.build(workspaceID, domain.PolicyFilter{ProviderID: &providerID}, r)
	if err != nil {
		return nil, err
	}
	report.Kind = domain.ReportByProvider
	report.SubjectID = provider.ID
	report.SubjectName = provider.Name
	report.Provider = provider
	return report, nil
}

// VehicleClassTransactions reports the policies of a vehicle class; the range is optional
func (s *ReportService) VehicleClassTransactions(workspaceID int32, vehicleClassID int32, r domain.ReportRange) (*domain.TransactionReport, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}

	vc, err := s.vehicleClassRepo.GetByID(workspaceID, vehicleClassID)
	if err != nil {
		return nil, err
	}

	report, err := s.build(workspaceID, domain.PolicyFilter{VehicleClassID: &vehicleClassID}, r)
	if err != nil {
		return nil, err
	}
	report.Kind = domain.ReportByVehicleClass
	report.SubjectID = vc.ID
	report.SubjectName = vc.Name
	report.VehicleClass = vc
	return report, nil
}

// Transactions dispatches on the report kind
func (s *ReportService) Transactions(workspaceID int32, kind domain.ReportKind, subjectID int32, r domain.ReportRange) (*domain.TransactionReport, error) {
	switch kind {
	case domain.ReportByAgent:
		return s.AgentTransactions(workspaceID, subjectID, r)
	case domain.ReportByProvider:
		return s.ProviderTransactions(workspaceID, subjectID, r)
	case domain.ReportByVehicleClass:
		return s.VehicleClassTransactions(workspaceID, subjectID, r)
	default:
		return nil, domain.ErrInvalidInput
	}
}

func checkRange(r domain.ReportRange) error {
	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return domain.ErrReportRangeInvalid
	}
	return nil
}

func (s *ReportService) build(workspaceID int32, filter domain.PolicyFilter, r domain.ReportRange) (*domain.TransactionReport, error) {
	filter.StartDateFrom = r.StartDate
	filter.StartDateTo = r.EndDate

	policies, err := s.policyRepo.ListAll(workspaceID, filter)
	if err != nil {
		return nil, err
	}

	now := s.policyService.now()
	for _, p := range policies {
		p.RefreshStatus(now)
	}
	if err := s.policyService.ResolveReferences(workspaceID, policies); err != nil {
		return nil, err
	}

	return &domain.TransactionReport{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Policies:  policies,
		Totals:    domain.Summarize(policies),
	}, nil
}

// reportTimestamp formats report dates for file names
func reportTimestamp(t *time.Time) string {
	if t == nil {
		return "all"
	}
	return t.Format("2006-01-02")
}
