package dto

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

func TestTaxRequestValidate(t *testing.T) {
	require.NoError(t, TaxRequest{}.Validate())
	require.NoError(t, TaxRequest{
		Salary:   decimal.RequireFromString("1200000.50"),
		Turnover: decimal.New(1, 15),
		Deductions: TaxDeductions{
			Section80C: decimal.RequireFromString("0.00000001"),
		},
		BusinessExpenses: decimal.New(-1, 15),
	}.Validate(), "bounds are inclusive")

	tests := []struct {
		name  string
		req   TaxRequest
		field string
	}{
		{"salary above ceiling", TaxRequest{Salary: decimal.RequireFromString("1000000000000000.01")}, "salary"},
		{"large exponent", TaxRequest{OtherIncome: decimal.New(1, 10_000_000)}, "other_income"},
		{"zero with large exponent", TaxRequest{Turnover: decimal.New(0, 16)}, "turnover"},
		{"tiny fraction", TaxRequest{Deductions: TaxDeductions{Other: decimal.New(1, -9)}}, "deductions.other"},
		{"negative below floor", TaxRequest{BusinessIncome: decimal.New(-2, 15)}, "business_income"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *models.ValidationError
			require.True(t, errors.As(tt.req.Validate(), &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
