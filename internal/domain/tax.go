package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrTaxRegimeInvalid = errors.New("tax regime must be new or old")

// TaxRegime selects one of the two mutually exclusive rulesets.
// They are never blended.
type TaxRegime string

const (
	RegimeNew TaxRegime = "new"
	RegimeOld TaxRegime = "old"
)

// Valid reports whether r is a known regime
func (r TaxRegime) Valid() bool {
	return r == RegimeNew || r == RegimeOld
}

// Deduction limits (FY 2024-25 style)
var (
	StandardDeduction = decimal.NewFromInt(50_000)  // salaried only
	Cap80C            = decimal.NewFromInt(150_000) // 80C incl. life insurance premium
	CapHomeLoan24B    = decimal.NewFromInt(200_000) // section 24(b), self-occupied
)

// Rebate thresholds: taxable income at or below these zero out the base tax
var (
	RebateThresholdNew = decimal.NewFromInt(700_000)
	RebateThresholdOld = decimal.NewFromInt(500_000)
)

// OldRegimeDeductions carries the deduction fields that are only legal under
// the old regime. The new regime path never sees these.
type OldRegimeDeductions struct {
	Investments80C       decimal.Decimal // PF/ELSS/PPF etc.
	LifeInsurancePremium decimal.Decimal // merged into the 80C cap
	HRA                  decimal.Decimal
	LTA                  decimal.Decimal
	MedicalReimbursement decimal.Decimal
	EducationLoan80E     decimal.Decimal // no cap
	HomeLoanInterest24B  decimal.Decimal // capped at 2L
}

// TaxInput is the input to a tax computation. Old holds deduction fields and
// is only consulted when Regime is RegimeOld.
type TaxInput struct {
	GrossAnnualIncome decimal.Decimal
	IsSalaried        bool
	Regime            TaxRegime
	Old               *OldRegimeDeductions
}

// TaxResult is fully derived and recomputed on demand; it is never persisted
// as authoritative state.
type TaxResult struct {
	Regime          TaxRegime       `json:"regime"`
	GrossIncome     decimal.Decimal `json:"grossIncome"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	BaseTax         decimal.Decimal `json:"baseTax"`
	Surcharge       decimal.Decimal `json:"surcharge"`
	Cess            decimal.Decimal `json:"cess"`
	TotalTax        decimal.Decimal `json:"totalTax"`
	MonthlyTax      decimal.Decimal `json:"monthlyTax"`
	TakeHomeAnnual  decimal.Decimal `json:"takeHomeAnnual"`
	TakeHomeMonthly decimal.Decimal `json:"takeHomeMonthly"`
}

// TaxSlab is one income band. UpTo is the band's upper bound; a zero UpTo
// marks the final unbounded band.
type TaxSlab struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// Slab tables evaluated in order, lowest band first
var (
	NewRegimeSlabs = []TaxSlab{
		{UpTo: decimal.NewFromInt(300_000), Rate: decimal.Zero},
		{UpTo: decimal.NewFromInt(600_000), Rate: decimal.NewFromFloat(0.05)},
		{UpTo: decimal.NewFromInt(900_000), Rate: decimal.NewFromFloat(0.10)},
		{UpTo: decimal.NewFromInt(1_200_000), Rate: decimal.NewFromFloat(0.15)},
		{UpTo: decimal.NewFromInt(1_500_000), Rate: decimal.NewFromFloat(0.20)},
		{Rate: decimal.NewFromFloat(0.30)},
	}
	OldRegimeSlabs = []TaxSlab{
		{UpTo: decimal.NewFromInt(250_000), Rate: decimal.Zero},
		{UpTo: decimal.NewFromInt(500_000), Rate: decimal.NewFromFloat(0.05)},
		{UpTo: decimal.NewFromInt(1_000_000), Rate: decimal.NewFromFloat(0.20)},
		{Rate: decimal.NewFromFloat(0.30)},
	}
)

// SurchargeTier maps a gross-income floor to a surcharge rate. OldRate and
// NewRate differ only on the top tier, where the new regime caps at 25%.
type SurchargeTier struct {
	IncomeAbove decimal.Decimal
	OldRate     decimal.Decimal
	NewRate     decimal.Decimal
}

// SurchargeTiers evaluated highest floor first
var SurchargeTiers = []SurchargeTier{
	{IncomeAbove: decimal.NewFromInt(50_000_000), OldRate: decimal.NewFromFloat(0.37), NewRate: decimal.NewFromFloat(0.25)},
	{IncomeAbove: decimal.NewFromInt(20_000_000), OldRate: decimal.NewFromFloat(0.25), NewRate: decimal.NewFromFloat(0.25)},
	{IncomeAbove: decimal.NewFromInt(10_000_000), OldRate: decimal.NewFromFloat(0.15), NewRate: decimal.NewFromFloat(0.15)},
	{IncomeAbove: decimal.NewFromInt(5_000_000), OldRate: decimal.NewFromFloat(0.10), NewRate: decimal.NewFromFloat(0.10)},
}

// CessRate is the health & education cess applied on base tax + surcharge
var CessRate = decimal.NewFromFloat(0.04)
