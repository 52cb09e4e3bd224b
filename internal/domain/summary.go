package domain

import "github.com/shopspring/decimal"

// SummaryTotals is the element-wise sum of premium and derived fields across policies
type SummaryTotals struct {
	PremiumAmount   decimal.Decimal `json:"premiumAmount"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	Commission      decimal.Decimal `json:"commission"`
	AgentCommission decimal.Decimal `json:"agentCommission"`
	TDSAmount       decimal.Decimal `json:"tdsAmount"`
	ProfitAfterTDS  decimal.Decimal `json:"profitAfterTds"`
	OurProfit       decimal.Decimal `json:"ourProfit"`
	GSTAmount       decimal.Decimal `json:"gstAmount"`
	GrossAmount     decimal.Decimal `json:"grossAmount"`
}

// Summable is anything that carries a premium and a set of derived fields
type Summable interface {
	Premium() decimal.Decimal
	Derived() DerivedFields
}

// Summarize folds the given items into totals starting from zero.
// A zero-value decimal counts as 0, so missing fields never break the sum.
func Summarize[T Summable](items []T) SummaryTotals {
	totals := SummaryTotals{}
	for _, item := range items {
		totals = totals.Add(item.Premium(), item.Derived())
	}
	return totals
}

// Add returns the totals with one more premium and derived field set added
func (t SummaryTotals) Add(premium decimal.Decimal, d DerivedFields) SummaryTotals {
	return SummaryTotals{
		PremiumAmount:   t.PremiumAmount.Add(premium),
		TotalCommission: t.TotalCommission.Add(d.TotalCommission),
		Commission:      t.Commission.Add(d.Commission),
		AgentCommission: t.AgentCommission.Add(d.AgentCommission),
		TDSAmount:       t.TDSAmount.Add(d.TDSAmount),
		ProfitAfterTDS:  t.ProfitAfterTDS.Add(d.ProfitAfterTDS),
		OurProfit:       t.OurProfit.Add(d.OurProfit),
		GSTAmount:       t.GSTAmount.Add(d.GSTAmount),
		GrossAmount:     t.GrossAmount.Add(d.GrossAmount),
	}
}

// CalculatedPolicy pairs a premium with its derived fields, e.g. a preview
// result that has not been persisted
type CalculatedPolicy struct {
	PremiumAmount decimal.Decimal
	Fields        DerivedFields
}

// Premium implements Summable
func (c CalculatedPolicy) Premium() decimal.Decimal { return c.PremiumAmount }

// Derived implements Summable
func (c CalculatedPolicy) Derived() DerivedFields { return c.Fields }
