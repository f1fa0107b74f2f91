package calculation

import (
	"github.com/rgehrsitz/opentax/internal/config"
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/rgehrsitz/opentax/internal/jurisdiction"
	"github.com/rgehrsitz/opentax/internal/logging"
	"github.com/shopspring/decimal"
)

// TaxEngine orchestrates one complete return: federal liability, the
// resolved jurisdiction's liability, withholding and the balance due.
// It is safe for concurrent use once constructed.
type TaxEngine struct {
	Federal       *FederalCalculator
	Jurisdictions *jurisdiction.Registry
	Logger        logging.Logger
}

// NewTaxEngine creates an engine from loaded rules
func NewTaxEngine(rules *domain.FederalRules, data domain.JurisdictionDataSet) *TaxEngine {
	return &TaxEngine{
		Federal:       NewFederalCalculator(rules),
		Jurisdictions: jurisdiction.NewRegistry(data),
		Logger:        logging.NopLogger{},
	}
}

// NewDefaultTaxEngine creates an engine from the embedded rule files
func NewDefaultTaxEngine() (*TaxEngine, error) {
	rules, err := config.DefaultFederalRules()
	if err != nil {
		return nil, err
	}
	data, err := config.DefaultJurisdictionData()
	if err != nil {
		return nil, err
	}
	return NewTaxEngine(rules, data), nil
}

// SetLogger sets the logger for the engine and its calculators; nil installs
// a no-op logger
func (te *TaxEngine) SetLogger(logger logging.Logger) {
	te.Logger = logging.OrNop(logger)
	te.Federal.SetLogger(logger)
	te.Jurisdictions.SetLogger(logger)
}

// Summarize computes the complete summary for one return. Defaults are
// applied to the year, filing status and jurisdiction; the input is not
// modified.
func (te *TaxEngine) Summarize(raw domain.TaxInput) domain.TaxSummary {
	in := raw.Normalize()

	nonQualified := in.OrdinaryDividends.Sub(in.QualifiedDividends)
	longTerm := in.LongTermGains.Add(in.CapitalGainDistributions)
	totalGains := in.ShortTermGains.Add(longTerm)

	te.Logger.Debugf("summarize: year=%d status=%s jurisdiction=%s", in.TaxYear, in.FilingStatus, in.JurisdictionCode)

	federal := te.Federal.Compute(domain.FederalInput{
		Wages:                 in.Wages,
		InterestIncome:        in.InterestIncome,
		NonQualifiedDividends: nonQualified,
		QualifiedDividends:    in.QualifiedDividends,
		ShortTermGains:        in.ShortTermGains,
		LongTermGains:         longTerm,
		SelfEmploymentIncome:  in.SelfEmploymentIncome,
		ItemizedDeductions:    in.ItemizedDeductions,
		SocialSecurityWages:   in.SocialSecurityWages,
		MedicareWages:         in.MedicareWages,
		MedicareTaxWithheld:   in.MedicareTaxWithheld,
		TaxYear:               in.TaxYear,
		FilingStatus:          in.FilingStatus,
	})

	agi := federal.AdjustedGrossIncome
	calc := te.Jurisdictions.Resolve(in.JurisdictionCode)
	local := calc.Calculate(domain.JurisdictionInput{
		Wages:                in.Wages,
		InterestIncome:       in.InterestIncome,
		DividendIncome:       in.OrdinaryDividends,
		CapitalGains:         totalGains,
		SelfEmploymentIncome: in.SelfEmploymentIncome,
		TaxYear:              in.TaxYear,
		FilingStatus:         in.FilingStatus,
		FederalAGI:           &agi,
		FederalTaxableIncome: federal.TaxableIncome,
	})

	federalWithheld := sum(
		in.FederalWithheld,
		in.InterestFederalWithheld,
		in.DividendFederalWithheld,
		in.SelfEmploymentFederalWithheld,
		in.EstimatedTaxPayments,
		in.OtherWithholding,
		federal.AdditionalMedicareWithholding,
	)
	localWithheld := in.StateWithheld.Add(in.DisabilityInsurance)

	liability := federal.TotalFederalTax.Add(local.TotalTax)
	withheld := federalWithheld.Add(localWithheld)
	owed := liability.Sub(withheld)

	outcome := domain.OutcomeOwed
	if owed.LessThanOrEqual(decimal.Zero) {
		outcome = domain.OutcomeRefund
	}

	return domain.TaxSummary{
		TaxYear:          in.TaxYear,
		FilingStatus:     in.FilingStatus,
		JurisdictionCode: in.JurisdictionCode,

		TotalWages:          in.Wages,
		TotalInterest:       in.InterestIncome,
		TotalDividends:      in.OrdinaryDividends,
		TotalCapitalGains:   totalGains,
		TotalSelfEmployment: in.SelfEmploymentIncome,
		GrossIncome:         sum(in.Wages, in.InterestIncome, in.OrdinaryDividends, totalGains, in.SelfEmploymentIncome),

		Federal:      federal,
		Jurisdiction: local,

		TotalFederalWithheld:      federalWithheld,
		TotalJurisdictionWithheld: localWithheld,

		TotalTaxLiability: liability,
		TotalWithheld:     withheld,
		AmountOwed:        owed,
		Outcome:           outcome,
	}
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
