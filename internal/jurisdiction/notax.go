package jurisdiction

import (
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

// NoIncomeTax always returns a zero liability. It backs the statutory
// no-tax states and the placeholder for codes with no data.
type NoIncomeTax struct {
	code string
	name string
	note string
}

// NewNoIncomeTax creates a zero-tax calculator. note may be empty.
func NewNoIncomeTax(code, name, note string) *NoIncomeTax {
	return &NoIncomeTax{code: code, name: name, note: note}
}

func (n *NoIncomeTax) Code() string { return n.code }
func (n *NoIncomeTax) Name() string { return n.name }

// Calculate reports the income base for reference; every tax figure is zero
func (n *NoIncomeTax) Calculate(in domain.JurisdictionInput) domain.JurisdictionTaxResult {
	return zeroResult(n.code, n.name, in.IncomeBase(), n.note)
}

func (n *NoIncomeTax) StandardDeduction(domain.FilingStatus, int) decimal.Decimal {
	return decimal.Zero
}
