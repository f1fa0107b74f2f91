package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/opentax/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/federal.yaml
var defaultFederalRules []byte

//go:embed data/states.yaml
var defaultJurisdictionData []byte

// DefaultFederalRules parses the federal rules compiled into the binary
func DefaultFederalRules() (*domain.FederalRules, error) {
	rules, err := ParseFederalRules(defaultFederalRules)
	if err != nil {
		return nil, fmt.Errorf("embedded federal rules: %w", err)
	}
	return rules, nil
}

// LoadFederalRules reads federal rules from a file. An empty path selects the
// embedded defaults.
func LoadFederalRules(path string) (*domain.FederalRules, error) {
	if path == "" {
		return DefaultFederalRules()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read federal rules %s: %w", path, err)
	}
	rules, err := ParseFederalRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// ParseFederalRules decodes and validates federal rules
func ParseFederalRules(data []byte) (*domain.FederalRules, error) {
	var rules domain.FederalRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse federal rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid federal rules: %w", err)
	}
	return &rules, nil
}

// DefaultJurisdictionData parses the jurisdiction tables compiled into the binary
func DefaultJurisdictionData() (domain.JurisdictionDataSet, error) {
	ds, err := ParseJurisdictionData(defaultJurisdictionData)
	if err != nil {
		return nil, fmt.Errorf("embedded jurisdiction data: %w", err)
	}
	return ds, nil
}

// LoadJurisdictionData reads jurisdiction tables from a YAML or JSON file. An
// empty path selects the embedded defaults.
func LoadJurisdictionData(path string) (domain.JurisdictionDataSet, error) {
	if path == "" {
		return DefaultJurisdictionData()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jurisdiction data %s: %w", path, err)
	}
	ds, err := ParseJurisdictionData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ParseJurisdictionData decodes and validates jurisdiction tables. Codes are
// normalized so lookups are case-insensitive.
func ParseJurisdictionData(data []byte) (domain.JurisdictionDataSet, error) {
	var raw map[string]domain.JurisdictionData
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse jurisdiction data: %w", err)
	}

	ds := make(domain.JurisdictionDataSet, len(raw))
	for code, jd := range raw {
		normalized := domain.NormalizeJurisdictionCode(code)
		if _, dup := ds[normalized]; dup {
			return nil, fmt.Errorf("duplicate jurisdiction code %q", normalized)
		}
		ds[normalized] = jd
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid jurisdiction data: %w", err)
	}
	return ds, nil
}
