package handler

import (
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// money rounds an amount to 2 places for presentation. Rates are percentages
// and are rendered exactly as stored.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// RatesResponse represents a policy's rate snapshot in API responses
type RatesResponse struct {
	AgentRate string `json:"agentRate"`
	OurRate   string `json:"ourRate"`
	TDSRate   string `json:"tdsRate"`
	GSTRate   string `json:"gstRate"`
}

func toRatesResponse(r domain.RateSet) RatesResponse {
	return RatesResponse{
		AgentRate: r.AgentRate.String(),
		OurRate:   r.OurRate.String(),
		TDSRate:   r.TDSRate.String(),
		GSTRate:   r.GSTRate.String(),
	}
}

// DerivedFieldsResponse represents the calculated commission figures
type DerivedFieldsResponse struct {
	TotalCommission string `json:"totalCommission"`
	Commission      string `json:"commission"`
	AgentCommission string `json:"agentCommission"`
	TDSAmount       string `json:"tdsAmount"`
	ProfitAfterTDS  string `json:"profitAfterTds"`
	OurProfit       string `json:"ourProfit"`
	GSTAmount       string `json:"gstAmount"`
	GrossAmount     string `json:"grossAmount"`
}

func toDerivedFieldsResponse(f domain.DerivedFields) DerivedFieldsResponse {
	return DerivedFieldsResponse{
		TotalCommission: f.TotalCommission.String(),
		Commission:      money(f.Commission),
		AgentCommission: money(f.AgentCommission),
		TDSAmount:       money(f.TDSAmount),
		ProfitAfterTDS:  money(f.ProfitAfterTDS),
		OurProfit:       money(f.OurProfit),
		GSTAmount:       money(f.GSTAmount),
		GrossAmount:     money(f.GrossAmount),
	}
}

// TotalsResponse represents summed policy figures
type TotalsResponse struct {
	PremiumAmount   string `json:"premiumAmount"`
	TotalCommission string `json:"totalCommission"`
	Commission      string `json:"commission"`
	AgentCommission string `json:"agentCommission"`
	TDSAmount       string `json:"tdsAmount"`
	ProfitAfterTDS  string `json:"profitAfterTds"`
	OurProfit       string `json:"ourProfit"`
	GSTAmount       string `json:"gstAmount"`
	GrossAmount     string `json:"grossAmount"`
}

func toTotalsResponse(t domain.SummaryTotals) TotalsResponse {
	return TotalsResponse{
		PremiumAmount:   money(t.PremiumAmount),
		TotalCommission: money(t.TotalCommission),
		Commission:      money(t.Commission),
		AgentCommission: money(t.AgentCommission),
		TDSAmount:       money(t.TDSAmount),
		ProfitAfterTDS:  money(t.ProfitAfterTDS),
		OurProfit:       money(t.OurProfit),
		GSTAmount:       money(t.GSTAmount),
		GrossAmount:     money(t.GrossAmount),
	}
}

// PolicyResponse represents a policy in API responses. References render as
// the full entity when resolved and as the bare id otherwise.
type PolicyResponse struct {
	ID                int32                                 `json:"id"`
	WorkspaceID       int32                                 `json:"workspaceId"`
	Name              string                                `json:"name"`
	PhoneNumber       string                                `json:"phoneNumber,omitempty"`
	Email             string                                `json:"email,omitempty"`
	Address           string                                `json:"address"`
	PolicyNumber      string                                `json:"policyNumber"`
	StartDate         time.Time                             `json:"startDate"`
	EndDate           time.Time                             `json:"endDate"`
	PremiumAmount     string                                `json:"premiumAmount"`
	VehicleInfo       *domain.VehicleInfo                   `json:"vehicleInfo,omitempty"`
	Agent             domain.Reference[domain.Agent]        `json:"agent" swaggertype:"object"`
	InsuranceProvider domain.Reference[domain.Provider]     `json:"insuranceProvider" swaggertype:"object"`
	VehicleType       domain.Reference[domain.VehicleClass] `json:"vehicleType" swaggertype:"object"`
	RatesResponse
	DerivedFieldsResponse
	Status    domain.PolicyStatus `json:"status"`
	CreatedBy *uuid.UUID          `json:"createdBy,omitempty"`
	UpdatedBy *uuid.UUID          `json:"updatedBy,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func toPolicyResponse(p *domain.Policy) PolicyResponse {
	return PolicyResponse{
		ID:                    p.ID,
		WorkspaceID:           p.WorkspaceID,
		Name:                  p.Name,
		PhoneNumber:           p.PhoneNumber,
		Email:                 p.Email,
		Address:               p.Address,
		PolicyNumber:          p.PolicyNumber,
		StartDate:             p.StartDate,
		EndDate:               p.EndDate,
		PremiumAmount:         money(p.PremiumAmount),
		VehicleInfo:           p.VehicleInfo,
		Agent:                 p.Agent,
		InsuranceProvider:     p.InsuranceProvider,
		VehicleType:           p.VehicleType,
		RatesResponse:         toRatesResponse(p.RateSet),
		DerivedFieldsResponse: toDerivedFieldsResponse(p.DerivedFields),
		Status:                p.Status,
		CreatedBy:             p.CreatedBy,
		UpdatedBy:             p.UpdatedBy,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toPolicyResponses(policies []*domain.Policy) []PolicyResponse {
	out := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, toPolicyResponse(p))
	}
	return out
}

func toPolicyPage(page domain.Page[*domain.Policy]) domain.Page[PolicyResponse] {
	return domain.Page[PolicyResponse]{
		Items:      toPolicyResponses(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// QuoteResponse represents a preview calculation
type QuoteResponse struct {
	PremiumAmount string                `json:"premiumAmount"`
	Rates         RatesResponse         `json:"rates"`
	Fields        DerivedFieldsResponse `json:"calculated"`
}

// ReportResponse represents a transaction report
type ReportResponse struct {
	Kind         domain.ReportKind    `json:"kind"`
	SubjectID    int32                `json:"subjectId"`
	SubjectName  string               `json:"subjectName"`
	StartDate    *time.Time           `json:"startDate,omitempty"`
	EndDate      *time.Time           `json:"endDate,omitempty"`
	Agent        *domain.Agent        `json:"agent,omitempty"`
	Provider     *domain.Provider     `json:"insuranceProvider,omitempty"`
	VehicleClass *domain.VehicleClass `json:"vehicleClass,omitempty"`
	Transactions []PolicyResponse     `json:"transactions"`
	TotalSum     TotalsResponse       `json:"totalSum"`
}

func toReportResponse(r *domain.TransactionReport) ReportResponse {
	return ReportResponse{
		Kind:         r.Kind,
		SubjectID:    r.SubjectID,
		SubjectName:  r.SubjectName,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Agent:        r.Agent,
		Provider:     r.Provider,
		VehicleClass: r.VehicleClass,
		Transactions: toPolicyResponses(r.Policies),
		TotalSum:     toTotalsResponse(r.Totals),
	}
}

// RecentPolicyResponse represents one of the newest policies on the dashboard
type RecentPolicyResponse struct {
	ID            int32               `json:"id"`
	PolicyNumber  string              `json:"policyNumber"`
	Name          string              `json:"name"`
	PremiumAmount string              `json:"premiumAmount"`
	OurProfit     string              `json:"ourProfit"`
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
	Status        domain.PolicyStatus `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// DashboardSummaryResponse represents the dashboard summary API response
type DashboardSummaryResponse struct {
	TotalPolicies    int64                  `json:"totalPolicies"`
	ActivePolicies   int64                  `json:"activePolicies"`
	ExpiringPolicies int64                  `json:"expiringPolicies"`
	ExpiredPolicies  int64                  `json:"expiredPolicies"`
	TotalAgents      int64                  `json:"totalAgents"`
	TotalRevenue     string                 `json:"totalRevenue"`
	TotalCommissions string                 `json:"totalCommissions"`
	Totals           TotalsResponse         `json:"totals"`
	RecentPolicies   []RecentPolicyResponse `json:"recentPolicies"`
	GeneratedAt      time.Time              `json:"generatedAt"`
}

func toDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	recent := make([]RecentPolicyResponse, 0, len(s.RecentPolicies))
	for _, p := range s.RecentPolicies {
		recent = append(recent, RecentPolicyResponse{
			ID:            p.ID,
			PolicyNumber:  p.PolicyNumber,
			Name:          p.Name,
			PremiumAmount: money(p.PremiumAmount),
			OurProfit:     money(p.OurProfit),
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			Status:        p.Status,
			CreatedAt:     p.CreatedAt,
		})
	}
	return DashboardSummaryResponse{
		TotalPolicies:    s.TotalPolicies,
		ActivePolicies:   s.ActivePolicies,
		ExpiringPolicies: s.ExpiringPolicies,
		ExpiredPolicies:  s.ExpiredPolicies,
		TotalAgents:      s.TotalAgents,
		TotalRevenue:     money(s.TotalRevenue),
		TotalCommissions: money(s.TotalCommissions),
		Totals:           toTotalsResponse(s.Totals),
		RecentPolicies:   recent,
		GeneratedAt:      s.GeneratedAt,
	}
}
