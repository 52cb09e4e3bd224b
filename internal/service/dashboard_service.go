package service

import (
	"context"
	"sort"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// DashboardService handles dashboard-related business logic
type DashboardService struct {
	policyService *PolicyService
	policyRepo    domain.PolicyRepository
	agentRepo     domain.AgentRepository
	cache         domain.DashboardCache
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(
	policyService *PolicyService,
	policyRepo domain.PolicyRepository,
	agentRepo domain.AgentRepository,
	cache domain.DashboardCache,
) *DashboardService {
	return &DashboardService{
		policyService: policyService,
		policyRepo:    policyRepo,
		agentRepo:     agentRepo,
		cache:         cache,
	}
}

// GetSummary returns the workspace dashboard, optionally restricted to policies
// starting within r. Cache failures fall back to computing the summary.
func (s *DashboardService) GetSummary(ctx context.Context, workspaceID int32, r domain.DateRange) (*domain.DashboardSummary, error) {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return nil, domain.ErrReportRangeInvalid
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, workspaceID, r)
		if err != nil {
			log.Warn().Err(err).Int32("workspace_id", workspaceID).Msg("Dashboard cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	summary, err := s.computeSummary(workspaceID, r)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, workspaceID, r, summary); err != nil {
			log.Warn().Err(err).Int32("workspace_id", workspaceID).Msg("Dashboard cache write failed")
		}
	}
	return summary, nil
}

func (s *DashboardService) computeSummary(workspaceID int32, r domain.DateRange) (*domain.DashboardSummary, error) {
	policies, err := s.policyRepo.ListAll(workspaceID, domain.PolicyFilter{
		StartDateFrom: r.From,
		StartDateTo:   r.To,
	})
	if err != nil {
		return nil, err
	}

	totalAgents, err := s.agentRepo.CountActive(workspaceID)
	if err != nil {
		return nil, err
	}

	now := s.policyService.now()
	stats := domain.PolicyStatistics{}
	for _, p := range policies {
		p.RefreshStatus(now)
		stats.Count(p.Status)
	}
	totals := domain.Summarize(policies)

	return &domain.DashboardSummary{
		TotalPolicies:    stats.Total,
		ActivePolicies:   stats.Active,
		ExpiringPolicies: stats.ExpiringSoon,
		ExpiredPolicies:  stats.Expired,
		TotalAgents:      totalAgents,
		TotalRevenue:     totals.OurProfit,
		TotalCommissions: totals.AgentCommission,
		Totals:           totals,
		RecentPolicies:   recentPolicies(policies, domain.RecentPoliciesLimit),
		GeneratedAt:      now.UTC(),
	}, nil
}

// recentPolicies picks the newest policies by creation time
func recentPolicies(policies []*domain.Policy, limit int) []domain.RecentPolicy {
	sorted := make([]*domain.Policy, len(policies))
	copy(sorted, policies)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	recent := make([]domain.RecentPolicy, 0, len(sorted))
	for _, p := range sorted {
		recent = append(recent, domain.RecentPolicy{
			ID:            p.ID,
			PolicyNumber:  p.PolicyNumber,
			Name:          p.Name,
			PremiumAmount: p.PremiumAmount,
			OurProfit:     p.OurProfit,
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			Status:        p.Status,
			CreatedAt:     p.CreatedAt,
		})
	}
	return recent
}
