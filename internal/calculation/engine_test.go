package calculation

import (
	"sync"
	"testing"

	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/rgehrsitz/opentax/internal/jurisdiction"
	"github.com/rgehrsitz/opentax/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *TaxEngine {
	t.Helper()
	engine, err := NewDefaultTaxEngine()
	require.NoError(t, err)
	return engine
}

func TestNewDefaultTaxEngine(t *testing.T) {
	engine := newTestEngine(t)

	assert.NotNil(t, engine.Federal, "Should initialize federal calculator")
	assert.NotNil(t, engine.Jurisdictions, "Should initialize registry")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestTaxEngine_SetLogger(t *testing.T) {
	engine := newTestEngine(t)

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")
	assert.Equal(t, customLogger, engine.Federal.Logger, "Should propagate to the federal calculator")

	engine.Summarize(domain.TaxInput{JurisdictionCode: "ZZ"})
	assert.NotEmpty(t, customLogger.messages)

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, logging.NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestTaxEngine_Summarize_WagesCalifornia(t *testing.T) {
	engine := newTestEngine(t)

	summary := engine.Summarize(domain.TaxInput{
		Wages:           d("100000"),
		FederalWithheld: d("15000"),
		StateWithheld:   d("5000"),
	})

	assert.Equal(t, domain.DefaultTaxYear, summary.TaxYear)
	assert.Equal(t, domain.FilingStatusSingle, summary.FilingStatus)
	assert.Equal(t, "CA", summary.JurisdictionCode, "California is the default jurisdiction")

	assertDecimal(t, "13841", summary.Federal.TotalFederalTax, "federal")
	assertDecimal(t, "94460", summary.Jurisdiction.TaxableIncome, "CA taxable")
	assertDecimal(t, "5327.142", summary.Jurisdiction.TotalTax, "CA tax")
	assertDecimal(t, "19168.142", summary.TotalTaxLiability, "liability")
	assertDecimal(t, "20000", summary.TotalWithheld, "withheld")
	assertDecimal(t, "-831.858", summary.AmountOwed, "amount owed")
	assert.Equal(t, domain.OutcomeRefund, summary.Outcome)
	assertDecimal(t, "831.858", summary.RefundAmount(), "refund")
}

func TestTaxEngine_Summarize_IncomeSplits(t *testing.T) {
	engine := newTestEngine(t)

	summary := engine.Summarize(domain.TaxInput{
		Wages:                    d("80000"),
		OrdinaryDividends:        d("1000"),
		QualifiedDividends:       d("600"),
		CapitalGainDistributions: d("2000"),
		ShortTermGains:           d("1000"),
		LongTermGains:            d("5000"),
		JurisdictionCode:         "tx",
	})

	assertDecimal(t, "400", summary.Federal.OrdinaryDividends, "non-qualified dividends")
	assertDecimal(t, "600", summary.Federal.QualifiedDividends, "qualified dividends")
	assertDecimal(t, "8000", summary.TotalCapitalGains, "total gains include distributions")
	assertDecimal(t, "8000", summary.Federal.CapitalGains, "federal capital component")
	assertDecimal(t, "7600", summary.Federal.PreferentialIncome, "distributions fold into long-term")
	assertDecimal(t, "1000", summary.TotalDividends, "total dividends")
	assertDecimal(t, "89000", summary.GrossIncome, "gross")

	assert.Equal(t, "TX", summary.JurisdictionCode)
	assert.True(t, summary.Jurisdiction.TotalTax.IsZero())
	assert.True(t, summary.TotalTaxLiability.Equal(summary.Federal.TotalFederalTax))
	assert.Equal(t, domain.OutcomeOwed, summary.Outcome)
}

func TestTaxEngine_Summarize_Withholding(t *testing.T) {
	engine := newTestEngine(t)

	summary := engine.Summarize(domain.TaxInput{
		Wages:                         d("250000"),
		MedicareWages:                 d("250000"),
		MedicareTaxWithheld:           d("4075"),
		FederalWithheld:               d("50000"),
		InterestFederalWithheld:       d("10"),
		DividendFederalWithheld:       d("20"),
		SelfEmploymentFederalWithheld: d("30"),
		EstimatedTaxPayments:          d("1000"),
		OtherWithholding:              d("40"),
		StateWithheld:                 d("12000"),
		DisabilityInsurance:           d("1500"),
		JurisdictionCode:              "CA",
	})

	assertDecimal(t, "450", summary.Federal.AdditionalMedicareWithholding, "medicare credit")
	assertDecimal(t, "51550", summary.TotalFederalWithheld, "federal withheld")
	assertDecimal(t, "13500", summary.TotalJurisdictionWithheld, "disability insurance counts as state withholding")
	assert.True(t, summary.TotalWithheld.Equal(summary.TotalFederalWithheld.Add(summary.TotalJurisdictionWithheld)))
	assert.True(t, summary.AmountOwed.Equal(summary.TotalTaxLiability.Sub(summary.TotalWithheld)))
}

func TestTaxEngine_Summarize_NetInvestmentIncomeJoint(t *testing.T) {
	engine := newTestEngine(t)

	summary := engine.Summarize(domain.TaxInput{
		Wages:            d("200000"),
		LongTermGains:    d("100000"),
		FilingStatus:     domain.FilingStatusJoint,
		JurisdictionCode: "NY",
	})

	assertDecimal(t, "1900", summary.Federal.NetInvestmentIncomeTax, "niit")
	assertDecimal(t, "300000", summary.Jurisdiction.GrossIncome, "NY starts from federal AGI")
	assertDecimal(t, "16050", summary.Jurisdiction.StandardDeduction, "NY joint deduction")
}

func TestTaxEngine_Summarize_FederalAGIPassedToJurisdiction(t *testing.T) {
	engine := newTestEngine(t)

	summary := engine.Summarize(domain.TaxInput{
		Wages:            d("100000"),
		ShortTermGains:   d("-10000"),
		JurisdictionCode: "CO",
	})

	assertDecimal(t, "97000", summary.Federal.AdjustedGrossIncome, "federal AGI after loss limit")
	assertDecimal(t, "97000", summary.Jurisdiction.GrossIncome, "generic states start from federal AGI")
	assertDecimal(t, "90000", summary.GrossIncome, "summary gross is the raw total")
}

func TestTaxEngine_Summarize_Placeholders(t *testing.T) {
	engine := newTestEngine(t)

	gu := engine.Summarize(domain.TaxInput{Wages: d("60000"), JurisdictionCode: "GU"})
	assert.True(t, gu.Jurisdiction.TotalTax.IsZero())
	assert.Equal(t, "Territory tax system not yet fully integrated. Using $0 placeholder.", gu.Jurisdiction.Note)

	unknown := engine.Summarize(domain.TaxInput{Wages: d("60000"), JurisdictionCode: "ZZ"})
	assert.True(t, unknown.Jurisdiction.TotalTax.IsZero())
	assert.NotEmpty(t, unknown.Jurisdiction.Note)
}

func TestTaxEngine_Summarize_ZeroBalanceIsRefund(t *testing.T) {
	engine := newTestEngine(t)

	summary := engine.Summarize(domain.TaxInput{JurisdictionCode: "TX"})
	assert.True(t, summary.AmountOwed.IsZero())
	assert.Equal(t, domain.OutcomeRefund, summary.Outcome)
}

func TestTaxEngine_Summarize_CustomJurisdiction(t *testing.T) {
	engine := newTestEngine(t)
	engine.Jurisdictions.Register("CA", func(code string) jurisdiction.Calculator {
		return jurisdiction.NewNoIncomeTax(code, "California (exempt)", "")
	})

	summary := engine.Summarize(domain.TaxInput{Wages: d("100000")})
	assert.True(t, summary.Jurisdiction.TotalTax.IsZero())
	assert.Equal(t, "California (exempt)", summary.Jurisdiction.Name)
}

func TestTaxEngine_Summarize_Concurrent(t *testing.T) {
	engine := newTestEngine(t)
	input := domain.TaxInput{
		Wages:                d("185000"),
		InterestIncome:       d("2500"),
		OrdinaryDividends:    d("4000"),
		QualifiedDividends:   d("3000"),
		LongTermGains:        d("25000"),
		SelfEmploymentIncome: d("12000"),
		JurisdictionCode:     "OR",
		FilingStatus:         domain.FilingStatusJoint,
		TaxYear:              2025,
	}
	expected := engine.Summarize(input)

	var wg sync.WaitGroup
	results := make([]domain.TaxSummary, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Summarize(input)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, r.AmountOwed.Equal(expected.AmountOwed))
		assert.True(t, r.Jurisdiction.TotalTax.Equal(expected.Jurisdiction.TotalTax))
	}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(msg string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, msg)
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.record("DEBUG: " + format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.record("INFO: " + format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.record("WARN: " + format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.record("ERROR: " + format)
}
