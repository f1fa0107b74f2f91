package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status of a return
type FilingStatus string

const (
	FilingStatusSingle FilingStatus = "single"
	FilingStatusJoint  FilingStatus = "joint"
)

// Default values applied to fields the caller leaves empty
const (
	DefaultTaxYear          = 2024
	DefaultJurisdictionCode = "CA"
)

// ParseFilingStatus maps user-facing spellings onto a modeled status.
// Unrecognized values fall back to single.
func ParseFilingStatus(s string) FilingStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "joint", "mfj", "married_filing_jointly", "married":
		return FilingStatusJoint
	default:
		return FilingStatusSingle
	}
}

// IsJoint reports whether the status is married filing jointly
func (fs FilingStatus) IsJoint() bool {
	return fs == FilingStatusJoint
}

// TaxInput is the flat set of income and withholding figures for one return.
// Every monetary field defaults to zero. Negative values are only meaningful
// for capital gains, where they represent a loss before netting.
type TaxInput struct {
	TaxYear          int          `yaml:"tax_year" json:"taxYear"`
	FilingStatus     FilingStatus `yaml:"filing_status" json:"filingStatus"`
	JurisdictionCode string       `yaml:"state" json:"state"`

	// W-2
	Wages               decimal.Decimal `yaml:"w2_wages" json:"w2Wages"`
	FederalWithheld     decimal.Decimal `yaml:"w2_federal_withheld" json:"w2FederalWithheld"`
	StateWithheld       decimal.Decimal `yaml:"w2_state_withheld" json:"w2StateWithheld"`
	SocialSecurityWages decimal.Decimal `yaml:"w2_social_security_wages" json:"w2SocialSecurityWages"`
	MedicareWages       decimal.Decimal `yaml:"w2_medicare_wages" json:"w2MedicareWages"`
	MedicareTaxWithheld decimal.Decimal `yaml:"w2_medicare_tax" json:"w2MedicareTax"`
	DisabilityInsurance decimal.Decimal `yaml:"w2_casdi" json:"w2Casdi"`

	// 1099-INT
	InterestIncome          decimal.Decimal `yaml:"interest_income" json:"interestIncome"`
	TaxExemptInterest       decimal.Decimal `yaml:"tax_exempt_interest" json:"taxExemptInterest"`
	InterestFederalWithheld decimal.Decimal `yaml:"interest_federal_withheld" json:"interestFederalWithheld"`

	// 1099-DIV; ordinary dividends include the qualified portion
	OrdinaryDividends        decimal.Decimal `yaml:"ordinary_dividends" json:"ordinaryDividends"`
	QualifiedDividends       decimal.Decimal `yaml:"qualified_dividends" json:"qualifiedDividends"`
	CapitalGainDistributions decimal.Decimal `yaml:"capital_gain_distributions" json:"capitalGainDistributions"`
	DividendFederalWithheld  decimal.Decimal `yaml:"dividend_federal_withheld" json:"dividendFederalWithheld"`

	// 1099-B
	ShortTermGains decimal.Decimal `yaml:"short_term_gains" json:"shortTermGains"`
	LongTermGains  decimal.Decimal `yaml:"long_term_gains" json:"longTermGains"`

	// 1099-NEC
	SelfEmploymentIncome          decimal.Decimal `yaml:"self_employment_income" json:"selfEmploymentIncome"`
	SelfEmploymentFederalWithheld decimal.Decimal `yaml:"self_employment_federal_withheld" json:"selfEmploymentFederalWithheld"`

	// Other payments and deductions
	EstimatedTaxPayments decimal.Decimal `yaml:"estimated_tax_payments" json:"estimatedTaxPayments"`
	OtherWithholding     decimal.Decimal `yaml:"other_withholding" json:"otherWithholding"`
	ItemizedDeductions   decimal.Decimal `yaml:"itemized_deductions" json:"itemizedDeductions"`
}

// Normalize fills in the default year, filing status and jurisdiction and
// canonicalizes their spelling. Monetary fields are left untouched.
func (in TaxInput) Normalize() TaxInput {
	if in.TaxYear == 0 {
		in.TaxYear = DefaultTaxYear
	}
	in.FilingStatus = ParseFilingStatus(string(in.FilingStatus))
	in.JurisdictionCode = NormalizeJurisdictionCode(in.JurisdictionCode)
	if in.JurisdictionCode == "" {
		in.JurisdictionCode = DefaultJurisdictionCode
	}
	return in
}

// NormalizeJurisdictionCode trims and upper-cases a two-letter code
func NormalizeJurisdictionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// JurisdictionInput is the income picture handed to a jurisdiction calculator.
// Dividends and capital gains are totals; jurisdictions do not distinguish
// qualified dividends or holding periods.
type JurisdictionInput struct {
	Wages                decimal.Decimal
	InterestIncome       decimal.Decimal
	DividendIncome       decimal.Decimal
	CapitalGains         decimal.Decimal
	SelfEmploymentIncome decimal.Decimal
	TaxYear              int
	FilingStatus         FilingStatus

	// FederalAGI, when set, is used as the income base by jurisdictions that
	// start from federal adjusted gross income.
	FederalAGI           *decimal.Decimal
	FederalTaxableIncome decimal.Decimal
}

// ComponentIncome sums the individual income fields. Jurisdictions that start
// from federal AGI use this as an approximation when AGI is not supplied; it
// ignores above-the-line adjustments and loss limits.
func (ji JurisdictionInput) ComponentIncome() decimal.Decimal {
	return ji.Wages.
		Add(ji.InterestIncome).
		Add(ji.DividendIncome).
		Add(ji.CapitalGains).
		Add(ji.SelfEmploymentIncome)
}

// IncomeBase returns federal AGI when supplied, otherwise ComponentIncome
func (ji JurisdictionInput) IncomeBase() decimal.Decimal {
	if ji.FederalAGI != nil {
		return *ji.FederalAGI
	}
	return ji.ComponentIncome()
}

// FederalInput is the income picture handed to the federal calculator, with
// dividends already split and capital gain distributions folded into
// long-term gains.
type FederalInput struct {
	Wages                 decimal.Decimal
	InterestIncome        decimal.Decimal
	NonQualifiedDividends decimal.Decimal
	QualifiedDividends    decimal.Decimal
	ShortTermGains        decimal.Decimal
	LongTermGains         decimal.Decimal
	SelfEmploymentIncome  decimal.Decimal
	ItemizedDeductions    decimal.Decimal

	// W-2 boxes 3, 5 and 6. Social Security wages default to Wages when zero.
	SocialSecurityWages decimal.Decimal
	MedicareWages       decimal.Decimal
	MedicareTaxWithheld decimal.Decimal

	TaxYear      int
	FilingStatus FilingStatus
}
