package domain

import "github.com/shopspring/decimal"

// DerivedFields holds every monetary field computed from a policy's premium and rates.
// TotalCommission is a percentage (agentRate + ourRate), not an amount.
type DerivedFields struct {
	TotalCommission decimal.Decimal `json:"totalCommission"`
	Commission      decimal.Decimal `json:"commission"`
	AgentCommission decimal.Decimal `json:"agentCommission"`
	TDSAmount       decimal.Decimal `json:"tdsAmount"`
	ProfitAfterTDS  decimal.Decimal `json:"profitAfterTds"`
	OurProfit       decimal.Decimal `json:"ourProfit"`
	GSTAmount       decimal.Decimal `json:"gstAmount"`
	GrossAmount     decimal.Decimal `json:"grossAmount"`
}

// ComputeDerivedFields is the only place premium is multiplied by a rate.
//
// Rates are not range-checked here; out-of-range input yields arithmetically
// consistent output. No rounding is applied: x*r/100 is an exact decimal shift.
func ComputeDerivedFields(premiumAmount, agentRate, ourRate, tdsRate, gstRate decimal.Decimal) DerivedFields {
	totalCommission := agentRate.Add(ourRate)
	commission := percentOf(premiumAmount, totalCommission)
	agentCommission := percentOf(premiumAmount, agentRate)
	tdsAmount := percentOf(commission, tdsRate)
	profitAfterTDS := commission.Sub(tdsAmount)
	ourProfit := profitAfterTDS.Sub(agentCommission)
	gstAmount := percentOf(premiumAmount, gstRate)
	grossAmount := premiumAmount.Add(gstAmount)

	return DerivedFields{
		TotalCommission: totalCommission,
		Commission:      commission,
		AgentCommission: agentCommission,
		TDSAmount:       tdsAmount,
		ProfitAfterTDS:  profitAfterTDS,
		OurProfit:       ourProfit,
		GSTAmount:       gstAmount,
		GrossAmount:     grossAmount,
	}
}

// percentOf returns amount * rate / 100
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Shift(-2)
}
