package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseFilingStatus(t *testing.T) {
	tests := map[string]FilingStatus{
		"single":                 FilingStatusSingle,
		"joint":                  FilingStatusJoint,
		" Joint ":                FilingStatusJoint,
		"MFJ":                    FilingStatusJoint,
		"married_filing_jointly": FilingStatusJoint,
		"head_of_household":      FilingStatusSingle,
		"":                       FilingStatusSingle,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseFilingStatus(in), "input %q", in)
	}
}

func TestTaxInput_Normalize(t *testing.T) {
	in := TaxInput{Wages: decimal.NewFromInt(1000)}
	out := in.Normalize()

	assert.Equal(t, DefaultTaxYear, out.TaxYear)
	assert.Equal(t, FilingStatusSingle, out.FilingStatus)
	assert.Equal(t, DefaultJurisdictionCode, out.JurisdictionCode)
	assert.True(t, out.Wages.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 0, in.TaxYear, "Normalize returns a copy")

	out = TaxInput{TaxYear: 2025, FilingStatus: "JOINT", JurisdictionCode: " tx"}.Normalize()
	assert.Equal(t, 2025, out.TaxYear)
	assert.Equal(t, FilingStatusJoint, out.FilingStatus)
	assert.Equal(t, "TX", out.JurisdictionCode)
}

func TestJurisdictionInput_IncomeBase(t *testing.T) {
	ji := JurisdictionInput{
		Wages:                decimal.NewFromInt(80000),
		InterestIncome:       decimal.NewFromInt(1000),
		DividendIncome:       decimal.NewFromInt(2000),
		CapitalGains:         decimal.NewFromInt(-3000),
		SelfEmploymentIncome: decimal.NewFromInt(5000),
	}
	assert.True(t, ji.IncomeBase().Equal(decimal.NewFromInt(85000)), "Component sum without federal AGI")

	agi := decimal.NewFromInt(84000)
	ji.FederalAGI = &agi
	assert.True(t, ji.IncomeBase().Equal(agi))
	assert.True(t, ji.ComponentIncome().Equal(decimal.NewFromInt(85000)))
}

func TestTaxSummary_Refund(t *testing.T) {
	owed := TaxSummary{AmountOwed: decimal.NewFromInt(250)}
	assert.False(t, owed.IsRefund())
	assert.True(t, owed.RefundAmount().IsZero())

	refund := TaxSummary{AmountOwed: decimal.NewFromInt(-400)}
	assert.True(t, refund.IsRefund())
	assert.True(t, refund.RefundAmount().Equal(decimal.NewFromInt(400)))

	even := TaxSummary{AmountOwed: decimal.Zero}
	assert.True(t, even.IsRefund(), "A zero balance is reported as a refund")
}
