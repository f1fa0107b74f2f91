package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/opentax/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of return input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadInput loads a return from a YAML or JSON file and applies defaults
func (ip *InputParser) LoadInput(filename string) (*domain.TaxInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseInput(data)
}

// ParseInput parses YAML or JSON bytes into a normalized input
func (ip *InputParser) ParseInput(data []byte) (*domain.TaxInput, error) {
	var input domain.TaxInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	normalized := input.Normalize()
	return &normalized, nil
}

// ValidateInput rejects values the engine would silently misread. Gains may be
// negative; every other amount must not be.
func (ip *InputParser) ValidateInput(input *domain.TaxInput) error {
	if input.TaxYear < 0 {
		return fmt.Errorf("tax_year cannot be negative")
	}

	amounts := []struct {
		name  string
		value interface{ IsNegative() bool }
	}{
		{"w2_wages", input.Wages},
		{"w2_federal_withheld", input.FederalWithheld},
		{"w2_state_withheld", input.StateWithheld},
		{"w2_social_security_wages", input.SocialSecurityWages},
		{"w2_medicare_wages", input.MedicareWages},
		{"w2_medicare_tax", input.MedicareTaxWithheld},
		{"w2_casdi", input.DisabilityInsurance},
		{"interest_income", input.InterestIncome},
		{"tax_exempt_interest", input.TaxExemptInterest},
		{"interest_federal_withheld", input.InterestFederalWithheld},
		{"ordinary_dividends", input.OrdinaryDividends},
		{"qualified_dividends", input.QualifiedDividends},
		{"capital_gain_distributions", input.CapitalGainDistributions},
		{"dividend_federal_withheld", input.DividendFederalWithheld},
		{"self_employment_income", input.SelfEmploymentIncome},
		{"self_employment_federal_withheld", input.SelfEmploymentFederalWithheld},
		{"estimated_tax_payments", input.EstimatedTaxPayments},
		{"other_withholding", input.OtherWithholding},
		{"itemized_deductions", input.ItemizedDeductions},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}

	if input.QualifiedDividends.GreaterThan(input.OrdinaryDividends) {
		return fmt.Errorf("qualified_dividends (%s) cannot exceed ordinary_dividends (%s)",
			input.QualifiedDividends.StringFixed(2), input.OrdinaryDividends.StringFixed(2))
	}

	return nil
}
