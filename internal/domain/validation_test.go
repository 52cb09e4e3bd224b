package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("9876543210"))
	assert.False(t, IsValidPhone("987654321"))
	assert.False(t, IsValidPhone("98765432101"))
	assert.False(t, IsValidPhone("98765-4321"))
	assert.False(t, IsValidPhone(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("agent@example.com"))
	assert.False(t, IsValidEmail("agent@example"))
	assert.False(t, IsValidEmail("agent example@x.com"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestAgentValidate(t *testing.T) {
	valid := Agent{
		Name:        "Ravi Kumar",
		PhoneNumber: "9876543210",
		Email:       "ravi@example.com",
		Location:    Location{Address: "12 MG Road", City: "Pune", State: "MH"},
	}
	assert.NoError(t, valid.Validate())

	t.Run("email is optional", func(t *testing.T) {
		a := valid
		a.Email = ""
		assert.NoError(t, a.Validate())
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		a := Agent{
			PhoneNumber: "12345",
			Email:       "not-an-email",
			Location:    Location{Address: "", City: "Pune<script>", State: "${x}"},
		}
		err := a.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))

		fields := fieldsOf(t, err)
		assert.Equal(t, "is required", fields["name"])
		assert.Equal(t, "must be exactly 10 digits", fields["phoneNumber"])
		assert.Equal(t, "must be a valid email address", fields["email"])
		assert.Equal(t, "is required", fields["location.address"])
		assert.Contains(t, fields, "location.city")
		assert.Contains(t, fields, "location.state")
	})
}

func TestProviderValidate(t *testing.T) {
	p := Provider{Name: "Acme General", AgentRate: d("5"), OurRate: d("3"), TDS: d("10"), GST: d("18")}
	assert.NoError(t, p.Validate())

	p.Name = ""
	p.GST = d("101")
	fields := fieldsOf(t, p.Validate())
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "gst")
}

func TestVehicleClassValidate(t *testing.T) {
	v := VehicleClass{Name: "Two Wheeler", CommissionRate: d("15"), AgentRate: d("10"), OurRate: d("5")}
	assert.NoError(t, v.Validate())

	v.CommissionRate = d("-0.5")
	fields := fieldsOf(t, v.Validate())
	assert.Contains(t, fields, "commissionRate")
}

func validPolicy() Policy {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return Policy{
		Name:              "Asha Patel",
		PhoneNumber:       "9123456780",
		Address:           "4 Lake View",
		PolicyNumber:      "POL-001",
		StartDate:         start,
		EndDate:           start.AddDate(1, 0, 0),
		PremiumAmount:     d("100000"),
		RateSet:           RateSet{AgentRate: d("5"), OurRate: d("3"), TDSRate: d("10"), GSTRate: d("18")},
		Agent:             Unresolved[Agent](1),
		InsuranceProvider: Unresolved[Provider](2),
		VehicleType:       Unresolved[VehicleClass](3),
	}
}

func TestPolicyValidate(t *testing.T) {
	p := validPolicy()
	assert.NoError(t, p.Validate())

	t.Run("premium must be positive", func(t *testing.T) {
		p := validPolicy()
		p.PremiumAmount = d("0")
		assert.Contains(t, fieldsOf(t, p.Validate()), "premiumAmount")
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		p := validPolicy()
		p.EndDate = p.StartDate
		assert.Contains(t, fieldsOf(t, p.Validate()), "endDate")
	})

	t.Run("references are required", func(t *testing.T) {
		p := validPolicy()
		p.Agent = Unresolved[Agent](0)
		p.VehicleType = Unresolved[VehicleClass](0)
		fields := fieldsOf(t, p.Validate())
		assert.Contains(t, fields, "agent")
		assert.Contains(t, fields, "vehicleType")
		assert.NotContains(t, fields, "insuranceProvider")
	})

	t.Run("vehicle info needs a registration number", func(t *testing.T) {
		p := validPolicy()
		p.VehicleInfo = &VehicleInfo{Make: "Honda"}
		assert.Contains(t, fieldsOf(t, p.Validate()), "vehicleInfo.registrationNumber")
	})

	t.Run("rates are range checked", func(t *testing.T) {
		p := validPolicy()
		p.TDSRate = d("120")
		assert.Contains(t, fieldsOf(t, p.Validate()), "tdsRate")
	})
}

func TestPolicyRecalculate(t *testing.T) {
	p := validPolicy()
	now := p.StartDate.AddDate(0, 1, 0)

	p.Recalculate(now)
	assertDecimal(t, "2200", p.OurProfit, "ourProfit")
	assert.Equal(t, PolicyStatusActive, p.Status)

	p.PremiumAmount = d("50000")
	p.Recalculate(now)
	assertDecimal(t, "1100", p.OurProfit, "ourProfit")
	assertDecimal(t, "59000", p.GrossAmount, "grossAmount")

	assert.False(t, p.RefreshStatus(now))
	assert.True(t, p.RefreshStatus(p.EndDate.AddDate(0, 0, 2)))
	assert.Equal(t, PolicyStatusExpired, p.Status)
}

func TestUserValidate(t *testing.T) {
	u := User{Email: "admin@example.com", Name: "Admin", Username: "adm", Role: RoleAdmin}
	assert.NoError(t, u.Validate())

	u.Username = "ab"
	u.Role = "owner"
	fields := fieldsOf(t, u.Validate())
	assert.Equal(t, "must be at least 3 characters", fields["username"])
	assert.Equal(t, "must be one of: admin, sub-user", fields["role"])
}

func TestValidationErrorsJSON(t *testing.T) {
	errs := ValidationErrors{}
	assert.NoError(t, errs.OrNil())

	errs.Add("name", "is required")
	body, err := json.Marshal(errs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"field":"name","message":"is required"}]`, string(body))
	assert.Contains(t, errs.Error(), "name: is required")
}
