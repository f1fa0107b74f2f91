package jurisdiction

import (
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

// California taxes every income type as ordinary income on a filing-status
// aware table, plus the Mental Health Services surcharge on taxable income
// above a fixed threshold.
type California struct {
	years              map[int]domain.JurisdictionYearData
	surchargeThreshold decimal.Decimal
	surchargeRate      decimal.Decimal
}

// NewCalifornia creates the California calculator with the 2024 and 2025 tables
func NewCalifornia() *California {
	return &California{
		years: map[int]domain.JurisdictionYearData{
			2024: {
				StandardDeduction: deductions(5540, 11080),
				Brackets: domain.TablesByFilingStatus{
					Single: domain.BracketTable{
						domain.NewBracket(10756, 0.01),
						domain.NewBracket(25499, 0.02),
						domain.NewBracket(40245, 0.04),
						domain.NewBracket(55866, 0.06),
						domain.NewBracket(70606, 0.08),
						domain.NewBracket(360659, 0.093),
						domain.NewBracket(432787, 0.103),
						domain.NewBracket(721314, 0.113),
						domain.NewTopBracket(0.123),
					},
					Joint: domain.BracketTable{
						domain.NewBracket(21512, 0.01),
						domain.NewBracket(50998, 0.02),
						domain.NewBracket(80490, 0.04),
						domain.NewBracket(111732, 0.06),
						domain.NewBracket(141212, 0.08),
						domain.NewBracket(721318, 0.093),
						domain.NewBracket(865574, 0.103),
						domain.NewBracket(1442628, 0.113),
						domain.NewTopBracket(0.123),
					},
				},
			},
			2025: {
				StandardDeduction: deductions(5706, 11412),
				Brackets: domain.TablesByFilingStatus{
					Single: domain.BracketTable{
						domain.NewBracket(11079, 0.01),
						domain.NewBracket(26264, 0.02),
						domain.NewBracket(41452, 0.04),
						domain.NewBracket(57542, 0.06),
						domain.NewBracket(72724, 0.08),
						domain.NewBracket(371479, 0.093),
						domain.NewBracket(445771, 0.103),
						domain.NewBracket(742953, 0.113),
						domain.NewTopBracket(0.123),
					},
					Joint: domain.BracketTable{
						domain.NewBracket(22158, 0.01),
						domain.NewBracket(52528, 0.02),
						domain.NewBracket(82904, 0.04),
						domain.NewBracket(115084, 0.06),
						domain.NewBracket(145448, 0.08),
						domain.NewBracket(742958, 0.093),
						domain.NewBracket(891542, 0.103),
						domain.NewBracket(1485906, 0.113),
						domain.NewTopBracket(0.123),
					},
				},
			},
		},
		surchargeThreshold: decimal.NewFromInt(1000000),
		surchargeRate:      decimal.NewFromFloat(0.01),
	}
}

func (c *California) Code() string { return "CA" }
func (c *California) Name() string { return "California" }

func (c *California) yearData(year int) domain.JurisdictionYearData {
	if yd, ok := c.years[year]; ok {
		return yd
	}
	return c.years[domain.BaselineTaxYear]
}

// Calculate ignores federal AGI: the base is the sum of income components,
// with capital gains and all dividends taxed as ordinary income.
func (c *California) Calculate(in domain.JurisdictionInput) domain.JurisdictionTaxResult {
	result := walkYear(c.Code(), c.Name(), in.ComponentIncome(), c.yearData(in.TaxYear), in.FilingStatus)

	if result.TaxableIncome.GreaterThan(c.surchargeThreshold) {
		result.Surcharge = result.TaxableIncome.Sub(c.surchargeThreshold).Mul(c.surchargeRate)
		result.TotalTax = result.BracketTax.Add(result.Surcharge)
		result.EffectiveRate = effectiveRate(result.TotalTax, result.GrossIncome)
	}
	return result
}

// StandardDeduction returns the deduction for the status and year
func (c *California) StandardDeduction(status domain.FilingStatus, year int) decimal.Decimal {
	return c.yearData(year).StandardDeduction.For(status)
}
