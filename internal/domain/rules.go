package domain

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// BaselineTaxYear is used whenever a table has no entry for the requested year
const BaselineTaxYear = 2024

// ByFilingStatus holds one value per modeled filing status
type ByFilingStatus struct {
	Single decimal.Decimal `yaml:"single" json:"single"`
	Joint  decimal.Decimal `yaml:"joint" json:"joint"`
}

// For returns the value for a status
func (b ByFilingStatus) For(status FilingStatus) decimal.Decimal {
	if status.IsJoint() {
		return b.Joint
	}
	return b.Single
}

// TablesByFilingStatus holds one bracket table per modeled filing status
type TablesByFilingStatus struct {
	Single BracketTable `yaml:"single" json:"single"`
	Joint  BracketTable `yaml:"joint" json:"joint"`
}

// For returns the table for a status, falling back to the single table when
// the status has none
func (t TablesByFilingStatus) For(status FilingStatus) BracketTable {
	if status.IsJoint() && len(t.Joint) > 0 {
		return t.Joint
	}
	return t.Single
}

// FederalYearRules are the year-indexed federal parameters
type FederalYearRules struct {
	StandardDeduction      ByFilingStatus       `yaml:"standard_deduction" json:"standardDeduction"`
	OrdinaryBrackets       TablesByFilingStatus `yaml:"ordinary_brackets" json:"ordinaryBrackets"`
	PreferentialBrackets   TablesByFilingStatus `yaml:"preferential_brackets" json:"preferentialBrackets"`
	SocialSecurityWageBase decimal.Decimal      `yaml:"social_security_wage_base" json:"socialSecurityWageBase"`
}

// FederalConstants are the federal parameters that do not change by year
type FederalConstants struct {
	NetEarningsFactor            decimal.Decimal `yaml:"net_earnings_factor" json:"netEarningsFactor"`
	SocialSecurityRate           decimal.Decimal `yaml:"social_security_rate" json:"socialSecurityRate"`
	MedicareRate                 decimal.Decimal `yaml:"medicare_rate" json:"medicareRate"`
	EmployeeMedicareRate         decimal.Decimal `yaml:"employee_medicare_rate" json:"employeeMedicareRate"`
	AdditionalMedicareRate       decimal.Decimal `yaml:"additional_medicare_rate" json:"additionalMedicareRate"`
	AdditionalMedicareThreshold  ByFilingStatus  `yaml:"additional_medicare_threshold" json:"additionalMedicareThreshold"`
	NetInvestmentIncomeRate      decimal.Decimal `yaml:"net_investment_income_rate" json:"netInvestmentIncomeRate"`
	NetInvestmentIncomeThreshold ByFilingStatus  `yaml:"net_investment_income_threshold" json:"netInvestmentIncomeThreshold"`
	CapitalLossLimit             decimal.Decimal `yaml:"capital_loss_limit" json:"capitalLossLimit"`
}

// FederalRules is the complete federal rule set loaded at startup
type FederalRules struct {
	Constants FederalConstants         `yaml:"constants" json:"constants"`
	Years     map[int]FederalYearRules `yaml:"years" json:"years"`
}

// ForYear returns the rules for a tax year, or the baseline year's rules when
// the year is not present. The second result is the year actually used.
func (fr *FederalRules) ForYear(year int) (FederalYearRules, int) {
	if rules, ok := fr.Years[year]; ok {
		return rules, year
	}
	return fr.Years[BaselineTaxYear], BaselineTaxYear
}

// Validate checks that every year carries usable tables
func (fr *FederalRules) Validate() error {
	if len(fr.Years) == 0 {
		return fmt.Errorf("no federal tax years defined")
	}
	if _, ok := fr.Years[BaselineTaxYear]; !ok {
		return fmt.Errorf("baseline tax year %d is missing", BaselineTaxYear)
	}
	for _, year := range sortedYears(fr.Years) {
		rules := fr.Years[year]
		for _, status := range []FilingStatus{FilingStatusSingle, FilingStatusJoint} {
			if err := rules.OrdinaryBrackets.For(status).Validate(); err != nil {
				return fmt.Errorf("year %d %s ordinary brackets: %w", year, status, err)
			}
			if err := rules.PreferentialBrackets.For(status).Validate(); err != nil {
				return fmt.Errorf("year %d %s preferential brackets: %w", year, status, err)
			}
		}
		if rules.SocialSecurityWageBase.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("year %d: social security wage base must be positive", year)
		}
	}
	if fr.Constants.NetEarningsFactor.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("net earnings factor must be positive")
	}
	if fr.Constants.CapitalLossLimit.IsNegative() {
		return fmt.Errorf("capital loss limit must be expressed as a positive amount")
	}
	return nil
}

func sortedYears[T any](m map[int]T) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// JurisdictionYearData is one year of a data-driven jurisdiction's tables
type JurisdictionYearData struct {
	StandardDeduction StandardDeductionTable `yaml:"std_deduction" json:"std_deduction"`
	Brackets          TablesByFilingStatus   `yaml:"brackets" json:"brackets"`
}

// StandardDeductionTable records which statuses were actually supplied so a
// missing joint amount can fall back to the single amount.
type StandardDeductionTable map[FilingStatus]decimal.Decimal

// For returns the deduction for a status, falling back to single, then zero
func (t StandardDeductionTable) For(status FilingStatus) decimal.Decimal {
	if v, ok := t[status]; ok {
		return v
	}
	return t[FilingStatusSingle]
}

// JurisdictionData is one jurisdiction's entry in the data file. Year entries
// sit beside the fixed keys, keyed by the year as a string.
type JurisdictionData struct {
	Name         string
	HasIncomeTax bool
	Notes        string
	Years        map[int]JurisdictionYearData
}

// UnmarshalYAML splits the fixed keys from the year keys
func (jd *JurisdictionData) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: jurisdiction entry must be a mapping", node.Line)
	}
	jd.Years = make(map[int]JurisdictionYearData)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "name":
			jd.Name = value.Value
		case "notes":
			jd.Notes = value.Value
		case "has_income_tax":
			if err := value.Decode(&jd.HasIncomeTax); err != nil {
				return fmt.Errorf("line %d: has_income_tax: %w", value.Line, err)
			}
		default:
			year, err := strconv.Atoi(key.Value)
			if err != nil {
				return fmt.Errorf("line %d: unexpected key %q", key.Line, key.Value)
			}
			var yd JurisdictionYearData
			if err := value.Decode(&yd); err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}
			jd.Years[year] = yd
		}
	}
	return nil
}

// ForYear returns the year's data, falling back to the baseline year.
// ok is false when neither is present.
func (jd *JurisdictionData) ForYear(year int) (data JurisdictionYearData, used int, ok bool) {
	if yd, found := jd.Years[year]; found {
		return yd, year, true
	}
	yd, found := jd.Years[BaselineTaxYear]
	return yd, BaselineTaxYear, found
}

// JurisdictionDataSet maps a two-letter code to its data
type JurisdictionDataSet map[string]JurisdictionData

// Lookup finds a jurisdiction by code, ignoring case and surrounding space
func (ds JurisdictionDataSet) Lookup(code string) (JurisdictionData, bool) {
	jd, ok := ds[NormalizeJurisdictionCode(code)]
	return jd, ok
}

// Codes returns the codes in sorted order
func (ds JurisdictionDataSet) Codes() []string {
	codes := make([]string, 0, len(ds))
	for code := range ds {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Validate checks the bracket tables of every taxing jurisdiction
func (ds JurisdictionDataSet) Validate() error {
	for _, code := range ds.Codes() {
		jd := ds[code]
		if !jd.HasIncomeTax {
			continue
		}
		if len(jd.Years) == 0 {
			return fmt.Errorf("%s: has_income_tax is set but no years are defined", code)
		}
		for _, year := range sortedYears(jd.Years) {
			yd := jd.Years[year]
			if err := yd.Brackets.Single.Validate(); err != nil {
				return fmt.Errorf("%s %d single brackets: %w", code, year, err)
			}
			if len(yd.Brackets.Joint) > 0 {
				if err := yd.Brackets.Joint.Validate(); err != nil {
					return fmt.Errorf("%s %d joint brackets: %w", code, year, err)
				}
			}
		}
	}
	return nil
}
