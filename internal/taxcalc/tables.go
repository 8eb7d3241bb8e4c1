package taxcalc

import "github.com/shopspring/decimal"

// Rates and limits for FY 2023-24 (AY 2024-25). A new fiscal year gets its own
// tables; they are not runtime configuration.

var (
	// StandardDeduction applies to salaried individuals under both regimes.
	StandardDeduction = rupees(50_000)

	// Section80CCap limits investments such as PPF, ELSS and life insurance.
	Section80CCap = rupees(150_000)

	// HomeLoanInterestCap limits interest on a self-occupied home loan.
	HomeLoanInterestCap = rupees(200_000)

	// NewRegimeRebateLimit zeroes tax at or below this taxable income (section 87A).
	NewRegimeRebateLimit = rupees(700_000)

	// OldRegimeRebateLimit is the old regime's section 87A limit.
	OldRegimeRebateLimit = rupees(500_000)

	// PresumptiveTurnoverLimit is the section 44AD turnover ceiling.
	PresumptiveTurnoverLimit = rupees(2_000_000)
	PresumptiveRate          = percent(8)

	PartnershipRate = percent(30)

	// CompanyTurnoverLimit (400 crore) selects the reduced corporate rate.
	CompanyTurnoverLimit = rupees(4_000_000_000)
	CompanyReducedRate   = percent(25)
	CompanyStandardRate  = percent(30)

	// CessRate is the health and education cess on basic tax.
	CessRate = percent(4)
)

// NewRegimeSlabs is the default regime for individuals.
var NewRegimeSlabs = SlabTable{
	Bands: []Band{
		{UpTo: rupees(300_000), Rate: percent(0)},
		{UpTo: rupees(600_000), Rate: percent(5)},
		{UpTo: rupees(900_000), Rate: percent(10)},
		{UpTo: rupees(1_200_000), Rate: percent(15)},
		{UpTo: rupees(1_500_000), Rate: percent(20)},
	},
	TopRate: percent(30),
}

// OldRegimeSlabs also taxes proprietorships.
var OldRegimeSlabs = SlabTable{
	Bands: []Band{
		{UpTo: rupees(250_000), Rate: percent(0)},
		{UpTo: rupees(500_000), Rate: percent(5)},
		{UpTo: rupees(1_000_000), Rate: percent(20)},
	},
	TopRate: percent(30),
}

// IndividualSurcharge covers individuals, proprietorships and partnerships.
var IndividualSurcharge = SurchargeTable{
	{Above: rupees(5_000_000), Rate: percent(10)},
	{Above: rupees(10_000_000), Rate: percent(15)},
	{Above: rupees(20_000_000), Rate: percent(25)},
	{Above: rupees(50_000_000), Rate: percent(37)},
}

// CompanySurcharge is deliberately separate from IndividualSurcharge; the
// brackets and rates differ.
var CompanySurcharge = SurchargeTable{
	{Above: rupees(10_000_000), Rate: percent(7)},
	{Above: rupees(100_000_000), Rate: percent(12)},
}

func rupees(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func percent(n int64) decimal.Decimal { return decimal.New(n, -2) }
