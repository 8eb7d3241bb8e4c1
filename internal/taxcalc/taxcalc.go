// Package taxcalc computes Indian income-tax liability for individuals and
// businesses from manually entered figures.
//
// Compute is pure and total. It does not validate its input: negative or
// otherwise out-of-domain amounts are used as given, apart from taxable income,
// which is clamped at zero before any slab or rate is applied. Callers are
// responsible for sanitizing what users type in.
package taxcalc

import "github.com/shopspring/decimal"

// EntityType selects how income becomes taxable and which rates apply.
type EntityType string

const (
	EntityIndividual      EntityType = "individual"
	EntityProprietorship  EntityType = "proprietorship"
	EntityPartnership     EntityType = "partnership"
	EntityDomesticCompany EntityType = "company-domestic"
)

// Regime is the individual tax regime. It is ignored for businesses.
type Regime string

const (
	RegimeNew Regime = "new"
	RegimeOld Regime = "old"
)

// Deductions are only honoured under the old regime. Each is capped
// independently where the statute caps it.
type Deductions struct {
	Section80C            decimal.Decimal
	Section80D            decimal.Decimal
	HomeLoanInterest      decimal.Decimal
	EducationLoanInterest decimal.Decimal
	Other                 decimal.Decimal
}

// Total returns the deductions allowed after caps, including the standard deduction.
func (d Deductions) Total() decimal.Decimal {
	return StandardDeduction.
		Add(decimal.Min(d.Section80C, Section80CCap)).
		Add(d.Section80D).
		Add(decimal.Min(d.HomeLoanInterest, HomeLoanInterestCap)).
		Add(d.EducationLoanInterest).
		Add(d.Other)
}

// Input holds everything a computation may need. Individuals use Salary,
// OtherIncome, Regime and Deductions; businesses use BusinessIncome,
// BusinessExpenses and Turnover.
type Input struct {
	EntityType EntityType
	Regime     Regime

	Salary      decimal.Decimal
	OtherIncome decimal.Decimal
	Deductions  Deductions

	BusinessIncome   decimal.Decimal
	BusinessExpenses decimal.Decimal
	Turnover         decimal.Decimal
}

// Breakdown is the result of a computation. GrossIncome is salary plus other
// income for individuals and net business income for businesses. Rate is set
// only for flat-rate entities.
type Breakdown struct {
	GrossIncome   decimal.Decimal
	TaxableIncome decimal.Decimal
	BasicTax      decimal.Decimal
	Rate          *decimal.Decimal
	Cess          decimal.Decimal
	Surcharge     decimal.Decimal
	TotalTax      decimal.Decimal
}

// Compute returns the tax breakdown for in. An empty entity type is treated as
// an individual; an unrecognised one owes no basic tax.
func Compute(in Input) Breakdown {
	switch in.EntityType {
	case EntityIndividual, "":
		return individual(in)
	case EntityProprietorship:
		return proprietorship(in)
	case EntityPartnership:
		return flatRate(in, PartnershipRate, IndividualSurcharge)
	case EntityDomesticCompany:
		rate := CompanyStandardRate
		if in.Turnover.LessThanOrEqual(CompanyTurnoverLimit) {
			rate = CompanyReducedRate
		}
		return flatRate(in, rate, CompanySurcharge)
	default:
		net := in.BusinessIncome.Sub(in.BusinessExpenses)
		return finish(Breakdown{GrossIncome: net, TaxableIncome: clamp(net), BasicTax: decimal.Zero}, IndividualSurcharge)
	}
}

func individual(in Input) Breakdown {
	gross := in.Salary.Add(in.OtherIncome)
	b := Breakdown{GrossIncome: gross}

	if in.Regime == RegimeOld {
		b.TaxableIncome = clamp(gross.Sub(in.Deductions.Total()))
		b.BasicTax = OldRegimeSlabs.Tax(b.TaxableIncome)
		if b.TaxableIncome.LessThanOrEqual(OldRegimeRebateLimit) {
			b.BasicTax = decimal.Zero
		}
		return finish(b, IndividualSurcharge)
	}

	b.TaxableIncome = clamp(gross.Sub(StandardDeduction))
	b.BasicTax = NewRegimeSlabs.Tax(b.TaxableIncome)
	if b.TaxableIncome.LessThanOrEqual(NewRegimeRebateLimit) {
		b.BasicTax = decimal.Zero
	}
	return finish(b, IndividualSurcharge)
}

// proprietorship is taxed as an individual on the old slabs, with presumptive
// income under section 44AD for small turnovers. There is no rebate.
func proprietorship(in Input) Breakdown {
	net := in.BusinessIncome.Sub(in.BusinessExpenses)
	taxable := net
	if in.Turnover.LessThanOrEqual(PresumptiveTurnoverLimit) {
		taxable = decimal.Max(in.Turnover.Mul(PresumptiveRate), net)
	}
	b := Breakdown{GrossIncome: net, TaxableIncome: clamp(taxable)}
	b.BasicTax = OldRegimeSlabs.Tax(b.TaxableIncome)
	return finish(b, IndividualSurcharge)
}

func flatRate(in Input, rate decimal.Decimal, surcharge SurchargeTable) Breakdown {
	net := in.BusinessIncome.Sub(in.BusinessExpenses)
	b := Breakdown{GrossIncome: net, TaxableIncome: clamp(net), Rate: &rate}
	b.BasicTax = b.TaxableIncome.Mul(rate)
	return finish(b, surcharge)
}

func finish(b Breakdown, surcharge SurchargeTable) Breakdown {
	b.Cess = b.BasicTax.Mul(CessRate)
	b.Surcharge = b.BasicTax.Mul(surcharge.Rate(b.TaxableIncome))
	b.TotalTax = b.BasicTax.Add(b.Cess).Add(b.Surcharge)
	return b
}

func clamp(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
