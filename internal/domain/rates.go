package domain

import "github.com/shopspring/decimal"

// RateSet is the four percentages a policy is calculated from
type RateSet struct {
	AgentRate decimal.Decimal `json:"agentRate"`
	OurRate   decimal.Decimal `json:"ourRate"`
	TDSRate   decimal.Decimal `json:"tdsRate"`
	GSTRate   decimal.Decimal `json:"gstRate"`
}

// RateOverrides holds user-entered rates; nil means "keep the default"
type RateOverrides struct {
	AgentRate *decimal.Decimal
	OurRate   *decimal.Decimal
	TDSRate   *decimal.Decimal
	GSTRate   *decimal.Decimal
}

// DefaultRates looks up the default rates for a policy form.
// TDS and GST come from the provider, agent and our rate from the vehicle class.
// Either source may be nil, leaving its rates at zero.
func DefaultRates(provider *Provider, vehicleClass *VehicleClass) RateSet {
	rates := RateSet{
		AgentRate: decimal.Zero,
		OurRate:   decimal.Zero,
		TDSRate:   decimal.Zero,
		GSTRate:   decimal.Zero,
	}
	if provider != nil {
		rates.TDSRate = provider.TDS
		rates.GSTRate = provider.GST
	}
	if vehicleClass != nil {
		rates.AgentRate = vehicleClass.AgentRate
		rates.OurRate = vehicleClass.OurRate
	}
	return rates
}

// Apply replaces every default that has an override
func (o RateOverrides) Apply(defaults RateSet) RateSet {
	rates := defaults
	if o.AgentRate != nil {
		rates.AgentRate = *o.AgentRate
	}
	if o.OurRate != nil {
		rates.OurRate = *o.OurRate
	}
	if o.TDSRate != nil {
		rates.TDSRate = *o.TDSRate
	}
	if o.GSTRate != nil {
		rates.GSTRate = *o.GSTRate
	}
	return rates
}

// Compute runs the commission calculator for a premium with this rate set
func (r RateSet) Compute(premiumAmount decimal.Decimal) DerivedFields {
	return ComputeDerivedFields(premiumAmount, r.AgentRate, r.OurRate, r.TDSRate, r.GSTRate)
}

var hundred = decimal.NewFromInt(100)

// IsValidRate reports whether a percentage lies in [0, 100]
func IsValidRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && !rate.GreaterThan(hundred)
}

// Validate checks every rate lies within [0, 100]
func (r RateSet) Validate() error {
	errs := ValidationErrors{}
	if !IsValidRate(r.AgentRate) {
		errs.Add("agentRate", "must be between 0 and 100")
	}
	if !IsValidRate(r.OurRate) {
		errs.Add("ourRate", "must be between 0 and 100")
	}
	if !IsValidRate(r.TDSRate) {
		errs.Add("tdsRate", "must be between 0 and 100")
	}
	if !IsValidRate(r.GSTRate) {
		errs.Add("gstRate", "must be between 0 and 100")
	}
	return errs.OrNil()
}
