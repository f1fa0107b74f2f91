package jurisdiction

import (
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

// NewYork applies one tiered table to every filer, starting from federal
// AGI. The standard deduction is the only filing-status distinction.
type NewYork struct {
	years map[int]domain.JurisdictionYearData
}

// NewNewYork creates the New York calculator
func NewNewYork() *NewYork {
	return &NewYork{
		years: map[int]domain.JurisdictionYearData{
			2024: {
				StandardDeduction: deductions(8000, 16050),
				Brackets: domain.TablesByFilingStatus{
					Single: domain.BracketTable{
						domain.NewBracket(8500, 0.04),
						domain.NewBracket(11700, 0.045),
						domain.NewBracket(13900, 0.0525),
						domain.NewBracket(80650, 0.0585),
						domain.NewBracket(215400, 0.0625),
						domain.NewBracket(1077550, 0.0685),
						domain.NewBracket(5000000, 0.0965),
						domain.NewBracket(25000000, 0.103),
						domain.NewTopBracket(0.109),
					},
				},
			},
		},
	}
}

func (ny *NewYork) Code() string { return "NY" }
func (ny *NewYork) Name() string { return "New York" }

func (ny *NewYork) yearData(year int) domain.JurisdictionYearData {
	if yd, ok := ny.years[year]; ok {
		return yd
	}
	return ny.years[domain.BaselineTaxYear]
}

// Calculate uses federal AGI when supplied and otherwise reconstructs it from
// the income components, which overstates AGI by any above-the-line
// adjustments and capital loss limits.
func (ny *NewYork) Calculate(in domain.JurisdictionInput) domain.JurisdictionTaxResult {
	return walkYear(ny.Code(), ny.Name(), in.IncomeBase(), ny.yearData(in.TaxYear), in.FilingStatus)
}

// StandardDeduction returns the deduction for the status and year
func (ny *NewYork) StandardDeduction(status domain.FilingStatus, year int) decimal.Decimal {
	return ny.yearData(year).StandardDeduction.For(status)
}
