package domain

import "github.com/shopspring/decimal"

// FederalTaxResult is the itemized federal liability for one return.
// TotalFederalTax = OrdinaryIncomeTax + CapitalGainsTax + SelfEmploymentTax + Surtax.
type FederalTaxResult struct {
	TaxYear      int          `json:"taxYear"`
	FilingStatus FilingStatus `json:"filingStatus"`

	Wages              decimal.Decimal `json:"wages"`
	InterestIncome     decimal.Decimal `json:"interestIncome"`
	OrdinaryDividends  decimal.Decimal `json:"ordinaryDividends"` // non-qualified portion
	QualifiedDividends decimal.Decimal `json:"qualifiedDividends"`
	CapitalGains       decimal.Decimal `json:"capitalGains"` // net component after netting and loss limit
	SelfEmployment     decimal.Decimal `json:"selfEmploymentIncome"`

	GrossIncome             decimal.Decimal `json:"grossIncome"`
	SelfEmploymentDeduction decimal.Decimal `json:"selfEmploymentDeduction"`
	AdjustedGrossIncome     decimal.Decimal `json:"adjustedGrossIncome"`
	StandardDeduction       decimal.Decimal `json:"standardDeduction"`
	ItemizedDeductions      decimal.Decimal `json:"itemizedDeductions"`
	DeductionApplied        decimal.Decimal `json:"deductionApplied"`
	TaxableIncome           decimal.Decimal `json:"taxableIncome"`
	OrdinaryTaxableIncome   decimal.Decimal `json:"ordinaryTaxableIncome"`
	PreferentialIncome      decimal.Decimal `json:"preferentialIncome"`

	OrdinaryIncomeTax      decimal.Decimal `json:"ordinaryIncomeTax"`
	CapitalGainsTax        decimal.Decimal `json:"capitalGainsTax"`
	SelfEmploymentTax      decimal.Decimal `json:"selfEmploymentTax"`
	SocialSecurityTax      decimal.Decimal `json:"selfEmploymentSocialSecurityTax"`
	MedicareTax            decimal.Decimal `json:"selfEmploymentMedicareTax"`
	AdditionalMedicareTax  decimal.Decimal `json:"additionalMedicareTax"`
	NetInvestmentIncomeTax decimal.Decimal `json:"netInvestmentIncomeTax"`
	Surtax                 decimal.Decimal `json:"surtax"`
	TotalFederalTax        decimal.Decimal `json:"totalFederalTax"`

	// Excess of Medicare tax withheld over the regular 1.45% on Medicare wages
	AdditionalMedicareWithholding decimal.Decimal `json:"additionalMedicareWithholding"`

	EffectiveRate    decimal.Decimal         `json:"effectiveRate"` // ratio of total tax to gross income
	MarginalRate     decimal.Decimal         `json:"marginalRate"`  // percent
	BracketBreakdown []BracketBreakdownEntry `json:"bracketBreakdown"`
}

// JurisdictionTaxResult is the itemized liability for one sub-national
// jurisdiction. TotalTax = BracketTax + Surcharge; no variant grants an
// exemption credit, so ExemptionCredit is always zero.
type JurisdictionTaxResult struct {
	Code string `json:"code"`
	Name string `json:"name"`

	GrossIncome       decimal.Decimal `json:"grossIncome"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	TaxableIncome     decimal.Decimal `json:"taxableIncome"`
	BracketTax        decimal.Decimal `json:"bracketTax"`
	Surcharge         decimal.Decimal `json:"surcharge"`
	ExemptionCredit   decimal.Decimal `json:"exemptionCredit"`
	TotalTax          decimal.Decimal `json:"totalTax"`

	EffectiveRate    decimal.Decimal         `json:"effectiveRate"` // ratio of total tax to gross income
	MarginalRate     decimal.Decimal         `json:"marginalRate"`  // percent
	BracketBreakdown []BracketBreakdownEntry `json:"bracketBreakdown"`

	// Note explains placeholder results for no-tax or unsupported jurisdictions
	Note string `json:"note,omitempty"`
}

// Outcome of a return
const (
	OutcomeOwed   = "owed"
	OutcomeRefund = "refund"
)

// TaxSummary is the complete result of one calculation. It owns its federal
// and jurisdiction results by value and is not modified after it is returned.
type TaxSummary struct {
	TaxYear          int          `json:"taxYear"`
	FilingStatus     FilingStatus `json:"filingStatus"`
	JurisdictionCode string       `json:"state"`

	TotalWages          decimal.Decimal `json:"totalWages"`
	TotalInterest       decimal.Decimal `json:"totalInterest"`
	TotalDividends      decimal.Decimal `json:"totalDividends"`
	TotalCapitalGains   decimal.Decimal `json:"totalCapitalGains"`
	TotalSelfEmployment decimal.Decimal `json:"totalSelfEmployment"`
	GrossIncome         decimal.Decimal `json:"grossIncome"` // sum of the totals, before capital loss limits

	Federal      FederalTaxResult      `json:"federal"`
	Jurisdiction JurisdictionTaxResult `json:"jurisdiction"`

	TotalFederalWithheld      decimal.Decimal `json:"totalFederalWithheld"`
	TotalJurisdictionWithheld decimal.Decimal `json:"totalStateWithheld"`

	TotalTaxLiability decimal.Decimal `json:"totalTaxLiability"`
	TotalWithheld     decimal.Decimal `json:"totalWithheld"`
	AmountOwed        decimal.Decimal `json:"amountOwed"` // positive = owed, otherwise refund
	Outcome           string          `json:"refundOrOwed"`
}

// IsRefund reports whether withholding covers the liability
func (ts *TaxSummary) IsRefund() bool {
	return ts.AmountOwed.LessThanOrEqual(decimal.Zero)
}

// RefundAmount returns the refund as a positive number, or zero when tax is owed
func (ts *TaxSummary) RefundAmount() decimal.Decimal {
	if !ts.IsRefund() {
		return decimal.Zero
	}
	return ts.AmountOwed.Neg()
}
