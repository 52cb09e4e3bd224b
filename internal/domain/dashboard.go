package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RecentPoliciesLimit is how many of the newest policies the dashboard lists
const RecentPoliciesLimit = 5

// DateRange optionally bounds a query by policy start date
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// RecentPolicy is the dashboard's compact view of a policy
type RecentPolicy struct {
	ID            int32           `json:"id"`
	PolicyNumber  string          `json:"policyNumber"`
	Name          string          `json:"name"`
	PremiumAmount decimal.Decimal `json:"premiumAmount"`
	OurProfit     decimal.Decimal `json:"ourProfit"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Status        PolicyStatus    `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DashboardSummary contains the workspace-wide dashboard metrics
type DashboardSummary struct {
	TotalPolicies    int64           `json:"totalPolicies"`
	ActivePolicies   int64           `json:"activePolicies"`
	ExpiringPolicies int64           `json:"expiringPolicies"`
	ExpiredPolicies  int64           `json:"expiredPolicies"`
	TotalAgents      int64           `json:"totalAgents"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalCommissions decimal.Decimal `json:"totalCommissions"`
	Totals           SummaryTotals   `json:"totals"`
	RecentPolicies   []RecentPolicy  `json:"recentPolicies"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// DashboardCache stores computed summaries per workspace and range
type DashboardCache interface {
	Get(ctx context.Context, workspaceID int32, r DateRange) (*DashboardSummary, bool, error)
	Set(ctx context.Context, workspaceID int32, r DateRange, summary *DashboardSummary) error
	Invalidate(ctx context.Context, workspaceID int32) error
}
