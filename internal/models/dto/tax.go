package dto

import (
	"github.com/shopspring/decimal"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/taxcalc"
)

// Accepted amounts: at most 10^15 rupees either way, at most 8 decimal places.
// Exponents are checked before magnitude; comparing rescales.
var maxAmount = decimal.New(1, 15)

const (
	minAmountExp = -8
	maxAmountExp = 15
)

// TaxRequest accepts amounts as JSON numbers or numeric strings. Absent
// amounts are zero.
type TaxRequest struct {
	EntityType       string          `json:"entity_type"`
	Regime           string          `json:"regime"`
	Salary           decimal.Decimal `json:"salary"`
	OtherIncome      decimal.Decimal `json:"other_income"`
	Deductions       TaxDeductions   `json:"deductions"`
	BusinessIncome   decimal.Decimal `json:"business_income"`
	BusinessExpenses decimal.Decimal `json:"business_expenses"`
	Turnover         decimal.Decimal `json:"turnover"`
}

type TaxDeductions struct {
	Section80C            decimal.Decimal `json:"section_80c"`
	Section80D            decimal.Decimal `json:"section_80d"`
	HomeLoanInterest      decimal.Decimal `json:"home_loan_interest"`
	EducationLoanInterest decimal.Decimal `json:"education_loan_interest"`
	Other                 decimal.Decimal `json:"other"`
}

// Validate rejects amounts outside the accepted range, naming the first
// offending field.
func (r TaxRequest) Validate() error {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"salary", r.Salary},
		{"other_income", r.OtherIncome},
		{"deductions.section_80c", r.Deductions.Section80C},
		{"deductions.section_80d", r.Deductions.Section80D},
		{"deductions.home_loan_interest", r.Deductions.HomeLoanInterest},
		{"deductions.education_loan_interest", r.Deductions.EducationLoanInterest},
		{"deductions.other", r.Deductions.Other},
		{"business_income", r.BusinessIncome},
		{"business_expenses", r.BusinessExpenses},
		{"turnover", r.Turnover},
	}
	for _, a := range amounts {
		if !validAmount(a.value) {
			return &models.ValidationError{
				Field:  a.field,
				Reason: "must be within ±1e15 with at most 8 decimal places",
			}
		}
	}
	return nil
}

func validAmount(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < minAmountExp || exp > maxAmountExp {
		return false
	}
	return d.Abs().LessThanOrEqual(maxAmount)
}

// Input maps the request onto the calculator's input.
func (r TaxRequest) Input() taxcalc.Input {
	return taxcalc.Input{
		EntityType:  taxcalc.EntityType(r.EntityType),
		Regime:      taxcalc.Regime(r.Regime),
		Salary:      r.Salary,
		OtherIncome: r.OtherIncome,
		Deductions: taxcalc.Deductions{
			Section80C:            r.Deductions.Section80C,
			Section80D:            r.Deductions.Section80D,
			HomeLoanInterest:      r.Deductions.HomeLoanInterest,
			EducationLoanInterest: r.Deductions.EducationLoanInterest,
			Other:                 r.Deductions.Other,
		},
		BusinessIncome:   r.BusinessIncome,
		BusinessExpenses: r.BusinessExpenses,
		Turnover:         r.Turnover,
	}
}

// TaxResponse carries amounts as strings with two decimal places.
type TaxResponse struct {
	EntityType    string  `json:"entity_type"`
	Regime        string  `json:"regime,omitempty"`
	GrossIncome   string  `json:"gross_income"`
	TaxableIncome string  `json:"taxable_income"`
	BasicTax      string  `json:"basic_tax"`
	Rate          *string `json:"rate,omitempty"`
	Cess          string  `json:"cess"`
	Surcharge     string  `json:"surcharge"`
	TotalTax      string  `json:"total_tax"`
}

// NewTaxResponse rounds a breakdown for display.
func NewTaxResponse(entity taxcalc.EntityType, regime taxcalc.Regime, b taxcalc.Breakdown) TaxResponse {
	resp := TaxResponse{
		EntityType:    string(entity),
		Regime:        string(regime),
		GrossIncome:   b.GrossIncome.StringFixed(2),
		TaxableIncome: b.TaxableIncome.StringFixed(2),
		BasicTax:      b.BasicTax.StringFixed(2),
		Cess:          b.Cess.StringFixed(2),
		Surcharge:     b.Surcharge.StringFixed(2),
		TotalTax:      b.TotalTax.StringFixed(2),
	}
	if b.Rate != nil {
		rate := b.Rate.StringFixed(2)
		resp.Rate = &rate
	}
	return resp
}
