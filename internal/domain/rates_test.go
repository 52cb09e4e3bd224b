package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestDefaultRates(t *testing.T) {
	provider := &Provider{AgentRate: d("99"), OurRate: d("99"), TDS: d("10"), GST: d("18")}
	vehicleClass := &VehicleClass{CommissionRate: d("50"), AgentRate: d("5"), OurRate: d("3")}

	rates := DefaultRates(provider, vehicleClass)

	assertDecimal(t, "5", rates.AgentRate, "agentRate")
	assertDecimal(t, "3", rates.OurRate, "ourRate")
	assertDecimal(t, "10", rates.TDSRate, "tdsRate")
	assertDecimal(t, "18", rates.GSTRate, "gstRate")
}

func TestDefaultRates_MissingSources(t *testing.T) {
	onlyProvider := DefaultRates(&Provider{TDS: d("10"), GST: d("18")}, nil)
	assert.True(t, onlyProvider.AgentRate.IsZero())
	assert.True(t, onlyProvider.OurRate.IsZero())
	assertDecimal(t, "10", onlyProvider.TDSRate, "tdsRate")

	onlyClass := DefaultRates(nil, &VehicleClass{AgentRate: d("5"), OurRate: d("3")})
	assert.True(t, onlyClass.TDSRate.IsZero())
	assert.True(t, onlyClass.GSTRate.IsZero())
	assertDecimal(t, "5", onlyClass.AgentRate, "agentRate")

	none := DefaultRates(nil, nil)
	assert.True(t, none.AgentRate.IsZero())
	assert.True(t, none.GSTRate.IsZero())
}

func TestRateOverrides_Apply(t *testing.T) {
	defaults := RateSet{AgentRate: d("5"), OurRate: d("3"), TDSRate: d("10"), GSTRate: d("18")}

	t.Run("no overrides keeps defaults", func(t *testing.T) {
		assert.Equal(t, defaults, RateOverrides{}.Apply(defaults))
	})

	t.Run("overrides replace only the given rates", func(t *testing.T) {
		rates := RateOverrides{OurRate: ptr(d("4")), GSTRate: ptr(d("0"))}.Apply(defaults)

		assertDecimal(t, "5", rates.AgentRate, "agentRate")
		assertDecimal(t, "4", rates.OurRate, "ourRate")
		assertDecimal(t, "10", rates.TDSRate, "tdsRate")
		assertDecimal(t, "0", rates.GSTRate, "gstRate")
	})
}

func TestRateSet_ComputeMatchesCalculator(t *testing.T) {
	rates := RateSet{AgentRate: d("5"), OurRate: d("3"), TDSRate: d("10"), GSTRate: d("18")}
	got := rates.Compute(d("100000"))
	assertDecimal(t, "2200", got.OurProfit, "ourProfit")
	assertDecimal(t, "118000", got.GrossAmount, "grossAmount")
}

func TestRateSet_Validate(t *testing.T) {
	valid := RateSet{AgentRate: d("0"), OurRate: d("100"), TDSRate: d("10"), GSTRate: d("18")}
	assert.NoError(t, valid.Validate())

	invalid := RateSet{AgentRate: d("-1"), OurRate: d("100.01"), TDSRate: d("10"), GSTRate: d("18")}
	err := invalid.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "agentRate", verrs[0].Field)
	assert.Equal(t, "ourRate", verrs[1].Field)
}
