package jurisdiction

import (
	"fmt"

	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

// Generic computes tax from a jurisdiction's entry in the data file, so that
// flat and simple progressive states need no code of their own.
type Generic struct {
	code string
	data domain.JurisdictionData
}

// NewGeneric creates a data-driven calculator
func NewGeneric(code string, data domain.JurisdictionData) *Generic {
	return &Generic{code: code, data: data}
}

func (g *Generic) Code() string { return g.code }

func (g *Generic) Name() string {
	if g.data.Name == "" {
		return g.code
	}
	return g.data.Name
}

// note is the explanation shown for a jurisdiction without income tax
func (g *Generic) note() string {
	if g.data.Notes != "" {
		return g.data.Notes
	}
	return fmt.Sprintf("%s has no state income tax.", g.Name())
}

// Calculate applies the year's tables to federal AGI, or to the component sum
// when AGI is not supplied. Years without data use the baseline year's tables.
func (g *Generic) Calculate(in domain.JurisdictionInput) domain.JurisdictionTaxResult {
	base := in.IncomeBase()

	if !g.data.HasIncomeTax {
		result := zeroResult(g.code, g.Name(), base, g.note())
		result.BracketBreakdown = []domain.BracketBreakdownEntry{{
			RangeStart:      decimal.Zero,
			RangeEnd:        decimal.Zero,
			Rate:            decimal.Zero,
			IncomeInBracket: decimal.Zero,
			TaxInBracket:    decimal.Zero,
			Label:           result.Note,
		}}
		return result
	}

	yd, _, ok := g.data.ForYear(in.TaxYear)
	if !ok {
		return zeroResult(g.code, g.Name(), base, fmt.Sprintf("No %d tax tables available for %s.", in.TaxYear, g.Name()))
	}

	result := walkYear(g.code, g.Name(), base, yd, in.FilingStatus)
	result.Note = g.data.Notes
	return result
}

// StandardDeduction returns zero for jurisdictions without income tax
func (g *Generic) StandardDeduction(status domain.FilingStatus, year int) decimal.Decimal {
	if !g.data.HasIncomeTax {
		return decimal.Zero
	}
	yd, _, ok := g.data.ForYear(year)
	if !ok {
		return decimal.Zero
	}
	return yd.StandardDeduction.For(status)
}
