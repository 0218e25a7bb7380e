package service

import (
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// TaxService computes income tax under the new and old Indian regimes
// (FY 2024-25 style). It is stateless; every call derives the full result
// from its input.
type TaxService struct{}

// NewTaxService creates a new TaxService
func NewTaxService() *TaxService {
	return &TaxService{}
}

// CalculateTax runs the full pipeline: deduction aggregation, slab tax,
// rebate, surcharge and cess. Monetary inputs are assumed pre-clamped to
// non-negative values by domain.ParseAmount.
func (s *TaxService) CalculateTax(input domain.TaxInput) (*domain.TaxResult, error) {
	if !input.Regime.Valid() {
		return nil, domain.ErrTaxRegimeInvalid
	}

	gross := input.GrossAnnualIncome
	deductions := totalDeductions(input)
	taxable := decimal.Max(decimal.Zero, gross.Sub(deductions))

	baseTax := slabTax(taxable, slabsFor(input.Regime))
	if taxable.LessThanOrEqual(rebateThresholdFor(input.Regime)) {
		// §87A-style rebate: a hard cliff, applied before surcharge
		baseTax = decimal.Zero
	}

	surcharge := baseTax.Mul(surchargeRate(input.Regime, gross))
	cess := baseTax.Add(surcharge).Mul(domain.CessRate)
	totalTax := baseTax.Add(surcharge).Add(cess)

	takeHome := gross.Sub(totalTax)
	twelve := decimal.NewFromInt(12)

	return &domain.TaxResult{
		Regime:          input.Regime,
		GrossIncome:     gross,
		TotalDeductions: deductions,
		TaxableIncome:   taxable,
		BaseTax:         baseTax,
		Surcharge:       surcharge,
		Cess:            cess,
		TotalTax:        totalTax,
		MonthlyTax:      totalTax.Div(twelve),
		TakeHomeAnnual:  takeHome,
		TakeHomeMonthly: takeHome.Div(twelve),
	}, nil
}

// totalDeductions aggregates deductions for the selected regime. Under the
// new regime only the standard deduction applies; the old-regime fields are
// never consulted.
func totalDeductions(input domain.TaxInput) decimal.Decimal {
	standard := decimal.Zero
	if input.IsSalaried {
		standard = domain.StandardDeduction
	}

	if input.Regime == domain.RegimeNew || input.Old == nil {
		return standard
	}

	old := input.Old
	// Life insurance premium is merged into the 80C bucket before capping
	in80C := decimal.Min(old.Investments80C.Add(old.LifeInsurancePremium), domain.Cap80C)
	homeInterest := decimal.Min(old.HomeLoanInterest24B, domain.CapHomeLoan24B)

	return in80C.
		Add(homeInterest).
		Add(old.HRA).
		Add(old.LTA).
		Add(old.MedicalReimbursement).
		Add(old.EducationLoan80E).
		Add(standard)
}

// slabTax accumulates tax marginally across the slab bands
func slabTax(taxable decimal.Decimal, slabs []domain.TaxSlab) decimal.Decimal {
	tax := decimal.Zero
	last := decimal.Zero

	for _, slab := range slabs {
		upper := taxable
		if !slab.UpTo.IsZero() {
			upper = decimal.Min(taxable, slab.UpTo)
		}
		span := decimal.Max(decimal.Zero, upper.Sub(last))
		tax = tax.Add(span.Mul(slab.Rate))

		if slab.UpTo.IsZero() || taxable.LessThanOrEqual(slab.UpTo) {
			break
		}
		last = slab.UpTo
	}
	return tax
}

// surchargeRate picks the tier by gross income. The top tier is 37% under
// the old regime but capped at 25% under the new one.
func surchargeRate(regime domain.TaxRegime, grossIncome decimal.Decimal) decimal.Decimal {
	for _, tier := range domain.SurchargeTiers {
		if grossIncome.GreaterThan(tier.IncomeAbove) {
			if regime == domain.RegimeNew {
				return tier.NewRate
			}
			return tier.OldRate
		}
	}
	return decimal.Zero
}

func slabsFor(regime domain.TaxRegime) []domain.TaxSlab {
	if regime == domain.RegimeOld {
		return domain.OldRegimeSlabs
	}
	return domain.NewRegimeSlabs
}

func rebateThresholdFor(regime domain.TaxRegime) decimal.Decimal {
	if regime == domain.RegimeOld {
		return domain.RebateThresholdOld
	}
	return domain.RebateThresholdNew
}
