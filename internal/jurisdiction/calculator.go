package jurisdiction

import (
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculator computes the income tax owed to one sub-national jurisdiction.
// Implementations hold only immutable tables and are safe for concurrent use.
type Calculator interface {
	Code() string
	Name() string
	Calculate(in domain.JurisdictionInput) domain.JurisdictionTaxResult
	StandardDeduction(status domain.FilingStatus, year int) decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// effectiveRate is total/gross as a ratio, or zero when gross is not positive
func effectiveRate(total, gross decimal.Decimal) decimal.Decimal {
	if gross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return total.Div(gross)
}

// walkYear applies one year's deduction and brackets to an income base
func walkYear(code, name string, gross decimal.Decimal, yd domain.JurisdictionYearData, status domain.FilingStatus) domain.JurisdictionTaxResult {
	deduction := yd.StandardDeduction.For(status)
	taxable := decimal.Max(decimal.Zero, gross.Sub(deduction))
	tax, marginal, breakdown := yd.Brackets.For(status).Walk(taxable)

	return domain.JurisdictionTaxResult{
		Code:              code,
		Name:              name,
		GrossIncome:       gross,
		StandardDeduction: deduction,
		TaxableIncome:     taxable,
		BracketTax:        tax,
		Surcharge:         decimal.Zero,
		ExemptionCredit:   decimal.Zero,
		TotalTax:          tax,
		EffectiveRate:     effectiveRate(tax, gross),
		MarginalRate:      marginal.Mul(hundred),
		BracketBreakdown:  breakdown,
	}
}

// zeroResult is the shape returned by jurisdictions that levy no income tax
func zeroResult(code, name string, gross decimal.Decimal, note string) domain.JurisdictionTaxResult {
	return domain.JurisdictionTaxResult{
		Code:              code,
		Name:              name,
		GrossIncome:       gross,
		StandardDeduction: decimal.Zero,
		TaxableIncome:     decimal.Zero,
		BracketTax:        decimal.Zero,
		Surcharge:         decimal.Zero,
		ExemptionCredit:   decimal.Zero,
		TotalTax:          decimal.Zero,
		EffectiveRate:     decimal.Zero,
		MarginalRate:      decimal.Zero,
		BracketBreakdown:  []domain.BracketBreakdownEntry{},
		Note:              note,
	}
}

func deductions(single, joint int64) domain.StandardDeductionTable {
	return domain.StandardDeductionTable{
		domain.FilingStatusSingle: decimal.NewFromInt(single),
		domain.FilingStatusJoint:  decimal.NewFromInt(joint),
	}
}
