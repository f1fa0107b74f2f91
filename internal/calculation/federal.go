package calculation

import (
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/rgehrsitz/opentax/internal/logging"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// FederalCalculator computes federal income tax, self-employment tax and the
// earnings surtaxes from a year-indexed rule set. It holds no per-call state.
type FederalCalculator struct {
	Rules  *domain.FederalRules
	Logger logging.Logger
}

// NewFederalCalculator creates a calculator over the given rules
func NewFederalCalculator(rules *domain.FederalRules) *FederalCalculator {
	return &FederalCalculator{Rules: rules, Logger: logging.NopLogger{}}
}

// SetLogger sets the logger; nil installs a no-op logger
func (fc *FederalCalculator) SetLogger(logger logging.Logger) {
	fc.Logger = logging.OrNop(logger)
}

// NetCapitalGains splits net short- and long-term results into the part taxed
// as ordinary income and the part taxed at preferential rates. A net loss is
// limited to lossLimit and is entirely ordinary.
func NetCapitalGains(shortTerm, longTerm, lossLimit decimal.Decimal) (ordinary, preferential decimal.Decimal) {
	combined := shortTerm.Add(longTerm)

	if combined.IsNegative() {
		return decimal.Max(combined, lossLimit.Abs().Neg()), decimal.Zero
	}

	stGain := shortTerm.GreaterThan(decimal.Zero)
	ltGain := longTerm.GreaterThan(decimal.Zero)
	switch {
	case stGain && ltGain:
		return shortTerm, longTerm
	case stGain:
		// Long-term loss absorbed by the short-term gain
		return combined, decimal.Zero
	case ltGain:
		// Short-term loss absorbed by the long-term gain
		return decimal.Zero, combined
	default:
		return decimal.Zero, decimal.Zero
	}
}

// selfEmploymentTax returns the Social Security and Medicare portions of SE
// tax. The Social Security wage base is shared with W-2 wages; the Medicare
// portion includes the additional rate above the status threshold.
func (fc *FederalCalculator) selfEmploymentTax(income, ssWages decimal.Decimal, year domain.FederalYearRules, status domain.FilingStatus) (ss, medicare decimal.Decimal) {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	c := fc.Rules.Constants

	netEarnings := income.Mul(c.NetEarningsFactor)

	wageRoom := decimal.Max(decimal.Zero, year.SocialSecurityWageBase.Sub(ssWages))
	ss = decimal.Min(netEarnings, wageRoom).Mul(c.SocialSecurityRate)

	medicare = netEarnings.Mul(c.MedicareRate)
	threshold := c.AdditionalMedicareThreshold.For(status)
	if netEarnings.GreaterThan(threshold) {
		medicare = medicare.Add(netEarnings.Sub(threshold).Mul(c.AdditionalMedicareRate))
	}
	return ss, medicare
}

// additionalMedicareTax is the surtax on wages above the status threshold
func (fc *FederalCalculator) additionalMedicareTax(wages decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	c := fc.Rules.Constants
	threshold := c.AdditionalMedicareThreshold.For(status)
	if wages.LessThanOrEqual(threshold) {
		return decimal.Zero
	}
	return wages.Sub(threshold).Mul(c.AdditionalMedicareRate)
}

// netInvestmentIncomeTax applies the NIIT rate to the lesser of net
// investment income and AGI above the status threshold
func (fc *FederalCalculator) netInvestmentIncomeTax(investmentIncome, agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	c := fc.Rules.Constants
	if investmentIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	excess := agi.Sub(c.NetInvestmentIncomeThreshold.For(status))
	if excess.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(investmentIncome, excess).Mul(c.NetInvestmentIncomeRate)
}

// additionalMedicareWithholding is Medicare tax withheld beyond the regular
// employee rate on Medicare wages, which is credited against the surtax
func (fc *FederalCalculator) additionalMedicareWithholding(withheld, medicareWages decimal.Decimal) decimal.Decimal {
	regular := medicareWages.Mul(fc.Rules.Constants.EmployeeMedicareRate)
	return decimal.Max(decimal.Zero, withheld.Sub(regular))
}

// Compute calculates the federal liability. No input is rejected: negative
// amounts flow through the arithmetic and taxable income is floored at zero.
func (fc *FederalCalculator) Compute(in domain.FederalInput) domain.FederalTaxResult {
	year, usedYear := fc.Rules.ForYear(in.TaxYear)
	if usedYear != in.TaxYear {
		fc.Logger.Debugf("federal: no rules for %d, using %d", in.TaxYear, usedYear)
	}
	status := in.FilingStatus
	c := fc.Rules.Constants

	// Schedule D netting
	ordinaryGain, preferentialGain := NetCapitalGains(in.ShortTermGains, in.LongTermGains, c.CapitalLossLimit)
	capitalComponent := ordinaryGain.Add(preferentialGain)

	gross := in.Wages.
		Add(in.InterestIncome).
		Add(in.NonQualifiedDividends).
		Add(in.QualifiedDividends).
		Add(capitalComponent).
		Add(in.SelfEmploymentIncome)

	// Self-employment tax and the above-the-line deduction for half of it
	ssWages := in.SocialSecurityWages
	if ssWages.IsZero() {
		ssWages = in.Wages
	}
	seSS, seMedicare := fc.selfEmploymentTax(in.SelfEmploymentIncome, ssWages, year, status)
	seTax := seSS.Add(seMedicare)
	seDeduction := seTax.Div(two)

	agi := gross.Sub(seDeduction)

	standard := year.StandardDeduction.For(status)
	deduction := decimal.Max(standard, in.ItemizedDeductions)
	taxable := decimal.Max(decimal.Zero, agi.Sub(deduction))

	// Preferential income stacks on top of ordinary income
	preferential := in.QualifiedDividends.Add(preferentialGain)
	ordinaryTaxable := decimal.Max(decimal.Zero, taxable.Sub(preferential))
	stacked := decimal.Min(preferential, taxable.Sub(ordinaryTaxable))

	ordinaryTax, marginal, breakdown := year.OrdinaryBrackets.For(status).Walk(ordinaryTaxable)
	capitalGainsTax := year.PreferentialBrackets.For(status).StackedTax(ordinaryTaxable, stacked)

	// Surtaxes
	additionalMedicare := fc.additionalMedicareTax(in.Wages, status)
	investmentIncome := decimal.Max(decimal.Zero,
		in.InterestIncome.
			Add(in.NonQualifiedDividends).
			Add(in.QualifiedDividends).
			Add(decimal.Max(decimal.Zero, capitalComponent)))
	niit := fc.netInvestmentIncomeTax(investmentIncome, agi, status)
	surtax := additionalMedicare.Add(niit)

	total := ordinaryTax.Add(capitalGainsTax).Add(seTax).Add(surtax)

	effective := decimal.Zero
	if gross.GreaterThan(decimal.Zero) {
		effective = total.Div(gross)
	}

	return domain.FederalTaxResult{
		TaxYear:      in.TaxYear,
		FilingStatus: status,

		Wages:              in.Wages,
		InterestIncome:     in.InterestIncome,
		OrdinaryDividends:  in.NonQualifiedDividends,
		QualifiedDividends: in.QualifiedDividends,
		CapitalGains:       capitalComponent,
		SelfEmployment:     in.SelfEmploymentIncome,

		GrossIncome:             gross,
		SelfEmploymentDeduction: seDeduction,
		AdjustedGrossIncome:     agi,
		StandardDeduction:       standard,
		ItemizedDeductions:      in.ItemizedDeductions,
		DeductionApplied:        deduction,
		TaxableIncome:           taxable,
		OrdinaryTaxableIncome:   ordinaryTaxable,
		PreferentialIncome:      stacked,

		OrdinaryIncomeTax:      ordinaryTax,
		CapitalGainsTax:        capitalGainsTax,
		SelfEmploymentTax:      seTax,
		SocialSecurityTax:      seSS,
		MedicareTax:            seMedicare,
		AdditionalMedicareTax:  additionalMedicare,
		NetInvestmentIncomeTax: niit,
		Surtax:                 surtax,
		TotalFederalTax:        total,

		AdditionalMedicareWithholding: fc.additionalMedicareWithholding(in.MedicareTaxWithheld, in.MedicareWages),

		EffectiveRate:    effective,
		MarginalRate:     marginal.Mul(hundred),
		BracketBreakdown: breakdown,
	}
}
