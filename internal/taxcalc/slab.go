package taxcalc

import "github.com/shopspring/decimal"

// Band is one marginal band of a slab table: income above the previous band's
// limit and up to UpTo is taxed at Rate.
type Band struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// SlabTable is an ascending progressive table. Income above the last band is
// taxed at TopRate.
type SlabTable struct {
	Bands   []Band
	TopRate decimal.Decimal
}

// Tax returns the progressive tax on income. Non-positive income owes nothing.
func (t SlabTable) Tax(income decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range t.Bands {
		if !income.GreaterThan(lower) {
			return tax
		}
		upper := decimal.Min(income, b.UpTo)
		tax = tax.Add(upper.Sub(lower).Mul(b.Rate))
		lower = b.UpTo
	}
	if income.GreaterThan(lower) {
		tax = tax.Add(income.Sub(lower).Mul(t.TopRate))
	}
	return tax
}

// SurchargeStep applies Rate when taxable income is strictly above Above.
type SurchargeStep struct {
	Above decimal.Decimal
	Rate  decimal.Decimal
}

// SurchargeTable is ordered by ascending Above.
type SurchargeTable []SurchargeStep

// Rate returns the surcharge rate for a taxable income, zero below the first step.
func (t SurchargeTable) Rate(taxable decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, s := range t {
		if taxable.GreaterThan(s.Above) {
			rate = s.Rate
		}
	}
	return rate
}
