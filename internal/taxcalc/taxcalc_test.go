package taxcalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func TestSlabTableTax(t *testing.T) {
	tests := []struct {
		name   string
		table  SlabTable
		income string
		want   string
	}{
		{"zero", NewRegimeSlabs, "0", "0"},
		{"negative", NewRegimeSlabs, "-1000", "0"},
		{"first band only", NewRegimeSlabs, "300000", "0"},
		{"into second band", NewRegimeSlabs, "400000", "5000"},
		{"band boundary", NewRegimeSlabs, "600000", "15000"},
		{"top band", NewRegimeSlabs, "1600000", "180000"},
		{"old regime middle", OldRegimeSlabs, "600000", "32500"},
		{"old regime top", OldRegimeSlabs, "1200000", "172500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, tt.table.Tax(d(tt.income)))
		})
	}
}

func TestSurchargeTableRate(t *testing.T) {
	assertAmount(t, "0", IndividualSurcharge.Rate(d("5000000")), "lower bound is exclusive")
	assertAmount(t, "0.10", IndividualSurcharge.Rate(d("5000001")))
	assertAmount(t, "0.10", IndividualSurcharge.Rate(d("10000000")), "upper bound is inclusive")
	assertAmount(t, "0.15", IndividualSurcharge.Rate(d("10000001")))
	assertAmount(t, "0.37", IndividualSurcharge.Rate(d("60000000")))

	assertAmount(t, "0", CompanySurcharge.Rate(d("10000000")))
	assertAmount(t, "0.07", CompanySurcharge.Rate(d("10000001")))
	assertAmount(t, "0.12", CompanySurcharge.Rate(d("100000001")))
}

func TestComputeIndividualNewRegime(t *testing.T) {
	t.Run("rebate up to seven lakh taxable", func(t *testing.T) {
		b := Compute(Input{EntityType: EntityIndividual, Regime: RegimeNew, Salary: d("750000")})
		assertAmount(t, "700000", b.TaxableIncome)
		assertAmount(t, "0", b.BasicTax)
		assertAmount(t, "0", b.TotalTax)
	})

	t.Run("one rupee over the rebate", func(t *testing.T) {
		b := Compute(Input{EntityType: EntityIndividual, Regime: RegimeNew, Salary: d("750001")})
		assert.True(t, b.TotalTax.IsPositive())
	})

	t.Run("twelve lakh", func(t *testing.T) {
		b := Compute(Input{EntityType: EntityIndividual, Regime: RegimeNew, Salary: d("1200000")})
		assertAmount(t, "1200000", b.GrossIncome)
		assertAmount(t, "1150000", b.TaxableIncome)
		assertAmount(t, "82500", b.BasicTax)
		assertAmount(t, "3300", b.Cess)
		assertAmount(t, "0", b.Surcharge)
		assertAmount(t, "85800", b.TotalTax)
		assert.Nil(t, b.Rate)
	})

	t.Run("other income counts", func(t *testing.T) {
		b := Compute(Input{EntityType: EntityIndividual, Salary: d("1000000"), OtherIncome: d("200000")})
		assertAmount(t, "85800", b.TotalTax)
	})

	t.Run("deductions ignored", func(t *testing.T) {
		b := Compute(Input{
			EntityType: EntityIndividual,
			Regime:     RegimeNew,
			Salary:     d("1200000"),
			Deductions: Deductions{Section80C: d("150000")},
		})
		assertAmount(t, "1150000", b.TaxableIncome)
	})

	t.Run("surcharge above fifty lakh", func(t *testing.T) {
		b := Compute(Input{EntityType: EntityIndividual, Salary: d("6050000")})
		// 6,000,000 taxable: 150,000 up to 15L plus 30% of 45L.
		assertAmount(t, "1500000", b.BasicTax)
		assertAmount(t, "150000", b.Surcharge)
		assertAmount(t, "60000", b.Cess)
		assertAmount(t, "1710000", b.TotalTax)
	})
}

func TestComputeDefaults(t *testing.T) {
	explicit := Compute(Input{EntityType: EntityIndividual, Regime: RegimeNew, Salary: d("1200000")})
	assert.Equal(t, explicit, Compute(Input{Salary: d("1200000")}), "empty entity and regime mean individual, new")
	assert.Equal(t, explicit, Compute(Input{EntityType: EntityIndividual, Regime: "flat", Salary: d("1200000")}))
}

func TestComputeIndividualOldRegime(t *testing.T) {
	t.Run("80C is capped", func(t *testing.T) {
		capped := Compute(Input{
			EntityType: EntityIndividual,
			Regime:     RegimeOld,
			Salary:     d("1200000"),
			Deductions: Deductions{Section80C: d("200000")},
		})
		atCap := Compute(Input{
			EntityType: EntityIndividual,
			Regime:     RegimeOld,
			Salary:     d("1200000"),
			Deductions: Deductions{Section80C: d("150000")},
		})
		assertAmount(t, "1000000", capped.TaxableIncome)
		assertAmount(t, atCap.TaxableIncome.String(), capped.TaxableIncome)
		assertAmount(t, "112500", capped.BasicTax)
	})

	t.Run("home loan interest is capped", func(t *testing.T) {
		b := Compute(Input{
			EntityType: EntityIndividual,
			Regime:     RegimeOld,
			Salary:     d("1500000"),
			Deductions: Deductions{HomeLoanInterest: d("350000")},
		})
		assertAmount(t, "1250000", b.TaxableIncome)
	})

	t.Run("uncapped deductions add up", func(t *testing.T) {
		b := Compute(Input{
			EntityType: EntityIndividual,
			Regime:     RegimeOld,
			Salary:     d("1000000"),
			Deductions: Deductions{
				Section80D:            d("25000"),
				EducationLoanInterest: d("40000"),
				Other:                 d("10000"),
			},
		})
		assertAmount(t, "875000", b.TaxableIncome)
		assertAmount(t, "87500", b.BasicTax)
		assertAmount(t, "3500", b.Cess)
		assertAmount(t, "91000", b.TotalTax)
	})

	t.Run("rebate at five lakh", func(t *testing.T) {
		b := Compute(Input{EntityType: EntityIndividual, Regime: RegimeOld, Salary: d("550000")})
		assertAmount(t, "500000", b.TaxableIncome)
		assertAmount(t, "0", b.TotalTax)
	})

	t.Run("deductions above income clamp to zero", func(t *testing.T) {
		b := Compute(Input{
			EntityType: EntityIndividual,
			Regime:     RegimeOld,
			Salary:     d("100000"),
			Deductions: Deductions{Section80C: d("150000")},
		})
		assertAmount(t, "0", b.TaxableIncome)
		assertAmount(t, "0", b.TotalTax)
	})
}

func TestComputeProprietorship(t *testing.T) {
	t.Run("presumptive income", func(t *testing.T) {
		b := Compute(Input{
			EntityType:       EntityProprietorship,
			BusinessIncome:   d("180000"),
			BusinessExpenses: d("100000"),
			Turnover:         d("1500000"),
		})
		assertAmount(t, "80000", b.GrossIncome)
		assertAmount(t, "120000", b.TaxableIncome)
		assertAmount(t, "0", b.TotalTax)
	})

	t.Run("net above presumptive", func(t *testing.T) {
		b := Compute(Input{
			EntityType:     EntityProprietorship,
			BusinessIncome: d("600000"),
			Turnover:       d("1500000"),
		})
		assertAmount(t, "600000", b.TaxableIncome)
	})

	t.Run("no rebate", func(t *testing.T) {
		b := Compute(Input{
			EntityType:     EntityProprietorship,
			BusinessIncome: d("400000"),
			Turnover:       d("3000000"),
		})
		assertAmount(t, "400000", b.TaxableIncome)
		assertAmount(t, "7500", b.BasicTax)
		assertAmount(t, "300", b.Cess)
		assertAmount(t, "7800", b.TotalTax)
	})

	t.Run("loss above the presumptive limit", func(t *testing.T) {
		b := Compute(Input{
			EntityType:       EntityProprietorship,
			BusinessIncome:   d("100000"),
			BusinessExpenses: d("500000"),
			Turnover:         d("2500000"),
		})
		assertAmount(t, "-400000", b.GrossIncome)
		assertAmount(t, "0", b.TaxableIncome)
		assertAmount(t, "0", b.TotalTax)
	})
}

func TestComputePartnership(t *testing.T) {
	b := Compute(Input{
		EntityType:       EntityPartnership,
		BusinessIncome:   d("1500000"),
		BusinessExpenses: d("500000"),
	})
	require.NotNil(t, b.Rate)
	assertAmount(t, "0.30", *b.Rate)
	assertAmount(t, "1000000", b.TaxableIncome)
	assertAmount(t, "300000", b.BasicTax)
	assertAmount(t, "12000", b.Cess)
	assertAmount(t, "312000", b.TotalTax)
}

func TestComputeCompany(t *testing.T) {
	t.Run("one crore net", func(t *testing.T) {
		b := Compute(Input{
			EntityType:     EntityDomesticCompany,
			BusinessIncome: d("10000000"),
			Turnover:       d("50000000"),
		})
		require.NotNil(t, b.Rate)
		assertAmount(t, "0.25", *b.Rate)
		assertAmount(t, "2500000", b.BasicTax)
		assertAmount(t, "0", b.Surcharge)
		assertAmount(t, "100000", b.Cess)
		assertAmount(t, "2600000", b.TotalTax)
	})

	t.Run("surcharge just above one crore", func(t *testing.T) {
		b := Compute(Input{
			EntityType:     EntityDomesticCompany,
			BusinessIncome: d("10000001"),
			Turnover:       d("50000000"),
		})
		assertAmount(t, "175000.0175", b.Surcharge)
	})

	t.Run("large turnover", func(t *testing.T) {
		b := Compute(Input{
			EntityType:     EntityDomesticCompany,
			BusinessIncome: d("1000000"),
			Turnover:       d("4000000001"),
		})
		require.NotNil(t, b.Rate)
		assertAmount(t, "0.30", *b.Rate)
		assertAmount(t, "300000", b.BasicTax)
	})
}

func TestComputeUnknownEntity(t *testing.T) {
	b := Compute(Input{EntityType: "trust", BusinessIncome: d("500000")})
	assertAmount(t, "500000", b.TaxableIncome)
	assertAmount(t, "0", b.TotalTax)
	assert.Nil(t, b.Rate)
}

func TestComputeNegativeInputs(t *testing.T) {
	for _, e := range []EntityType{EntityIndividual, EntityProprietorship, EntityPartnership, EntityDomesticCompany} {
		for _, r := range []Regime{RegimeNew, RegimeOld} {
			in := Input{
				EntityType:       e,
				Regime:           r,
				Salary:           d("-100"),
				OtherIncome:      d("-5"),
				Deductions:       Deductions{Section80C: d("-1000"), Other: d("-1")},
				BusinessIncome:   d("-200"),
				BusinessExpenses: d("-50"),
				Turnover:         d("-10"),
			}
			require.NotPanics(t, func() { Compute(in) })
			b := Compute(in)
			assert.False(t, b.TaxableIncome.IsNegative(), "%s/%s", e, r)
			assert.False(t, b.TotalTax.IsNegative(), "%s/%s", e, r)
		}
	}
}
