package jurisdiction

import (
	"sync"
	"testing"

	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func wagesOnly(wages string, status domain.FilingStatus, year int) domain.JurisdictionInput {
	return domain.JurisdictionInput{
		Wages:        d(wages),
		TaxYear:      year,
		FilingStatus: status,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: got %s want %s", field, got.String(), want)
}

func TestCalifornia_Calculate(t *testing.T) {
	ca := NewCalifornia()

	tests := []struct {
		name          string
		input         domain.JurisdictionInput
		wantTaxable   string
		wantBracket   string
		wantSurcharge string
		wantMarginal  string
	}{
		{
			name:          "single 2024 wages",
			input:         wagesOnly("100000", domain.FilingStatusSingle, 2024),
			wantTaxable:   "94460",
			wantBracket:   "5327.142",
			wantSurcharge: "0",
			wantMarginal:  "9.3",
		},
		{
			name:          "joint 2024 uses joint table and deduction",
			input:         wagesOnly("100000", domain.FilingStatusJoint, 2024),
			wantTaxable:   "88920",
			wantBracket:   "2490.32",
			wantSurcharge: "0",
			wantMarginal:  "6",
		},
		{
			name:          "surcharge above one million",
			input:         wagesOnly("2000000", domain.FilingStatusSingle, 2024),
			wantTaxable:   "1994460",
			wantBracket:   "226713.342",
			wantSurcharge: "9944.6",
			wantMarginal:  "12.3",
		},
		{
			name:          "no surcharge at exactly one million",
			input:         wagesOnly("1005540", domain.FilingStatusSingle, 2024),
			wantTaxable:   "1000000",
			wantBracket:   "104394.762",
			wantSurcharge: "0",
			wantMarginal:  "12.3",
		},
		{
			name:          "unknown year falls back to 2024",
			input:         wagesOnly("100000", domain.FilingStatusSingle, 2031),
			wantTaxable:   "94460",
			wantBracket:   "5327.142",
			wantSurcharge: "0",
			wantMarginal:  "9.3",
		},
		{
			name:          "income below deduction",
			input:         wagesOnly("3000", domain.FilingStatusSingle, 2024),
			wantTaxable:   "0",
			wantBracket:   "0",
			wantSurcharge: "0",
			wantMarginal:  "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ca.Calculate(tt.input)

			assert.Equal(t, "CA", result.Code)
			assertDecimal(t, tt.wantTaxable, result.TaxableIncome, "taxable")
			assertDecimal(t, tt.wantBracket, result.BracketTax, "bracket tax")
			assertDecimal(t, tt.wantSurcharge, result.Surcharge, "surcharge")
			assertDecimal(t, tt.wantMarginal, result.MarginalRate, "marginal")
			assert.True(t, result.TotalTax.Equal(result.BracketTax.Add(result.Surcharge)))
			assert.True(t, result.ExemptionCredit.IsZero())
		})
	}
}

func TestCalifornia_CapitalGainsTaxedAsOrdinary(t *testing.T) {
	ca := NewCalifornia()

	wages := ca.Calculate(wagesOnly("100000", domain.FilingStatusSingle, 2024))
	mixed := ca.Calculate(domain.JurisdictionInput{
		Wages:          d("60000"),
		CapitalGains:   d("30000"),
		DividendIncome: d("10000"),
		TaxYear:        2024,
		FilingStatus:   domain.FilingStatusSingle,
	})

	assert.True(t, wages.TotalTax.Equal(mixed.TotalTax), "same total income, same tax")
}

func TestCalifornia_IgnoresFederalAGI(t *testing.T) {
	ca := NewCalifornia()
	in := wagesOnly("100000", domain.FilingStatusSingle, 2024)
	agi := d("50000")
	in.FederalAGI = &agi

	assertDecimal(t, "100000", ca.Calculate(in).GrossIncome, "gross")
}

func TestCalifornia_StandardDeduction(t *testing.T) {
	ca := NewCalifornia()
	assertDecimal(t, "5540", ca.StandardDeduction(domain.FilingStatusSingle, 2024), "2024 single")
	assertDecimal(t, "11080", ca.StandardDeduction(domain.FilingStatusJoint, 2024), "2024 joint")
	assertDecimal(t, "5706", ca.StandardDeduction(domain.FilingStatusSingle, 2025), "2025 single")
	assertDecimal(t, "11412", ca.StandardDeduction(domain.FilingStatusJoint, 2025), "2025 joint")
	assertDecimal(t, "5540", ca.StandardDeduction(domain.FilingStatusSingle, 1999), "fallback")
}

func TestNewYork_Calculate(t *testing.T) {
	ny := NewNewYork()

	result := ny.Calculate(wagesOnly("100000", domain.FilingStatusSingle, 2024))
	assertDecimal(t, "92000", result.TaxableIncome, "taxable")
	assertDecimal(t, "5213.75", result.TotalTax, "total")
	assertDecimal(t, "6.25", result.MarginalRate, "marginal")
	assert.Len(t, result.BracketBreakdown, 5)

	in := wagesOnly("100000", domain.FilingStatusSingle, 2024)
	agi := d("108000")
	in.FederalAGI = &agi
	withAGI := ny.Calculate(in)
	assertDecimal(t, "108000", withAGI.GrossIncome, "federal AGI is the base")
	assertDecimal(t, "100000", withAGI.TaxableIncome, "taxable from AGI")

	joint := ny.Calculate(wagesOnly("100000", domain.FilingStatusJoint, 2025))
	assertDecimal(t, "16050", joint.StandardDeduction, "joint deduction")
	assertDecimal(t, "83950", joint.TaxableIncome, "joint taxable on the single table")
}

func TestNoIncomeTax(t *testing.T) {
	tx := NewNoIncomeTax("TX", "Texas", "")

	result := tx.Calculate(domain.JurisdictionInput{
		Wages:          d("500000"),
		CapitalGains:   d("1000000"),
		InterestIncome: d("2500"),
		TaxYear:        2024,
	})

	assert.True(t, result.TotalTax.IsZero())
	assert.True(t, result.TaxableIncome.IsZero())
	assert.True(t, result.StandardDeduction.IsZero())
	assert.True(t, result.EffectiveRate.IsZero())
	assert.True(t, result.MarginalRate.IsZero())
	assert.NotNil(t, result.BracketBreakdown)
	assert.Empty(t, result.BracketBreakdown)
	assert.Empty(t, result.Note)
	assert.True(t, tx.StandardDeduction(domain.FilingStatusJoint, 2025).IsZero())
}

func testData() domain.JurisdictionDataSet {
	return domain.JurisdictionDataSet{
		"CO": {
			Name:         "Colorado",
			HasIncomeTax: true,
			Years: map[int]domain.JurisdictionYearData{
				2024: {
					StandardDeduction: deductions(14600, 29200),
					Brackets: domain.TablesByFilingStatus{
						Single: domain.BracketTable{domain.NewTopBracket(0.044)},
					},
				},
			},
		},
		"PR": {
			Name:         "Puerto Rico",
			HasIncomeTax: true,
			Years: map[int]domain.JurisdictionYearData{
				2024: {
					StandardDeduction: domain.StandardDeductionTable{domain.FilingStatusSingle: decimal.Zero},
					Brackets: domain.TablesByFilingStatus{
						Single: domain.BracketTable{
							domain.NewBracket(9000, 0),
							domain.NewBracket(25000, 0.07),
							domain.NewBracket(41500, 0.14),
							domain.NewBracket(61500, 0.25),
							domain.NewTopBracket(0.33),
						},
						Joint: domain.BracketTable{
							domain.NewBracket(18000, 0),
							domain.NewBracket(50000, 0.07),
							domain.NewBracket(83000, 0.14),
							domain.NewBracket(123000, 0.25),
							domain.NewTopBracket(0.33),
						},
					},
				},
			},
		},
		"GU": {
			Name:         "Guam",
			HasIncomeTax: false,
			Notes:        "Territory tax system not yet fully integrated. Using $0 placeholder.",
		},
		"XX": {
			Name:         "Nowhere",
			HasIncomeTax: false,
		},
		"TX": {
			Name:         "Texas (data)",
			HasIncomeTax: true,
			Years: map[int]domain.JurisdictionYearData{
				2024: {Brackets: domain.TablesByFilingStatus{Single: domain.BracketTable{domain.NewTopBracket(0.5)}}},
			},
		},
	}
}

func TestGeneric_FlatState(t *testing.T) {
	co := NewGeneric("CO", testData()["CO"])

	result := co.Calculate(wagesOnly("100000", domain.FilingStatusSingle, 2024))
	assertDecimal(t, "85400", result.TaxableIncome, "taxable")
	assertDecimal(t, "3757.6", result.TotalTax, "total")
	assertDecimal(t, "4.4", result.MarginalRate, "marginal")
	assertDecimal(t, "0.037576", result.EffectiveRate, "effective")

	fallback := co.Calculate(wagesOnly("100000", domain.FilingStatusJoint, 2026))
	assertDecimal(t, "29200", fallback.StandardDeduction, "joint deduction from baseline year")
	assertDecimal(t, "3115.2", fallback.TotalTax, "single table for joint filers")
}

func TestGeneric_PuertoRicoJointTable(t *testing.T) {
	pr := NewGeneric("PR", testData()["PR"])

	single := pr.Calculate(wagesOnly("25000", domain.FilingStatusSingle, 2024))
	assertDecimal(t, "1120", single.TotalTax, "single")

	joint := pr.Calculate(wagesOnly("25000", domain.FilingStatusJoint, 2024))
	assertDecimal(t, "490", joint.TotalTax, "joint")
	assertDecimal(t, "0", joint.StandardDeduction, "missing joint deduction falls back to single")
}

func TestGeneric_NoIncomeTaxNote(t *testing.T) {
	data := testData()

	gu := NewGeneric("GU", data["GU"]).Calculate(wagesOnly("80000", domain.FilingStatusSingle, 2024))
	assert.True(t, gu.TotalTax.IsZero())
	require.Len(t, gu.BracketBreakdown, 1)
	assert.Equal(t, "Territory tax system not yet fully integrated. Using $0 placeholder.", gu.BracketBreakdown[0].Label)
	assert.Equal(t, gu.BracketBreakdown[0].Label, gu.Note)

	xx := NewGeneric("XX", data["XX"])
	assert.Equal(t, "Nowhere has no state income tax.", xx.Calculate(domain.JurisdictionInput{}).Note)
	assert.True(t, xx.StandardDeduction(domain.FilingStatusSingle, 2024).IsZero())
}

func TestGeneric_UsesFederalAGI(t *testing.T) {
	co := NewGeneric("CO", testData()["CO"])
	in := wagesOnly("100000", domain.FilingStatusSingle, 2024)
	agi := d("114600")
	in.FederalAGI = &agi

	assertDecimal(t, "4400", co.Calculate(in).TotalTax, "AGI base")
}

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry(testData())

	tests := []struct {
		code     string
		wantType interface{}
		wantCode string
	}{
		{"CA", &California{}, "CA"},
		{" ny ", &NewYork{}, "NY"},
		{"tx", &NoIncomeTax{}, "TX"},
		{"FL", &NoIncomeTax{}, "FL"},
		{"CO", &Generic{}, "CO"},
		{"GU", &Generic{}, "GU"},
		{"ZZ", &NoIncomeTax{}, "ZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			calc := registry.Resolve(tt.code)
			assert.IsType(t, tt.wantType, calc)
			assert.Equal(t, tt.wantCode, calc.Code())
		})
	}
}

func TestRegistry_HandCodedTakesPrecedence(t *testing.T) {
	registry := NewRegistry(testData())

	result := registry.Resolve("TX").Calculate(wagesOnly("100000", domain.FilingStatusSingle, 2024))
	assert.True(t, result.TotalTax.IsZero(), "statutory no-tax list wins over data")
	assert.Equal(t, "Texas", result.Name)
}

func TestRegistry_UnknownCodePlaceholder(t *testing.T) {
	registry := NewRegistry(nil)

	result := registry.Resolve("QQ").Calculate(wagesOnly("100000", domain.FilingStatusSingle, 2024))
	assert.True(t, result.TotalTax.IsZero())
	assert.Contains(t, result.Note, "No tax data available for QQ")
}

func TestRegistry_Memoizes(t *testing.T) {
	registry := NewRegistry(testData())

	first := registry.Resolve("co")
	second := registry.Resolve("CO")
	assert.Same(t, first, second)
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	registry := NewRegistry(testData())
	codes := []string{"CA", "NY", "TX", "CO", "PR", "GU", "ZZ"}

	var wg sync.WaitGroup
	results := make([][]Calculator, 16)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, code := range codes {
				results[g] = append(results[g], registry.Resolve(code))
			}
		}(g)
	}
	wg.Wait()

	for g := 1; g < len(results); g++ {
		for i := range codes {
			assert.Same(t, results[0][i], results[g][i], "goroutines see one calculator per code")
		}
	}
}

func TestRegistry_RegisterAndCodes(t *testing.T) {
	registry := NewRegistry(testData())
	before := registry.Resolve("OH")
	assert.IsType(t, &NoIncomeTax{}, before)

	registry.Register("oh", func(code string) Calculator { return NewGeneric(code, testData()["CO"]) })
	assert.IsType(t, &Generic{}, registry.Resolve("OH"), "Register replaces a cached placeholder")

	codes := registry.Codes()
	assert.Contains(t, codes, "CA")
	assert.Contains(t, codes, "OH")
	assert.Contains(t, codes, "PR")
	assert.Contains(t, codes, "WY")
	assert.NotContains(t, codes, "ZZ")
	assert.IsIncreasing(t, codes)
}

func TestRegistry_RegisterDuringResolve(t *testing.T) {
	registry := NewRegistry(testData())
	codes := []string{"CA", "NY", "TX", "CO", "OH", "ZZ"}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for _, code := range codes {
					registry.Resolve(code)
				}
				registry.Codes()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		registry.Register("OH", func(code string) Calculator { return NewGeneric(code, testData()["CO"]) })
	}()
	wg.Wait()

	assert.IsType(t, &Generic{}, registry.Resolve("OH"), "resolves after Register see the new factory")
	assert.Contains(t, registry.Codes(), "OH")
}

func TestJurisdictionTotals_BracketPlusSurcharge(t *testing.T) {
	registry := NewRegistry(testData())

	tests := []struct {
		code      string
		wages     string
		wantTotal string
	}{
		{"CA", "2000000", "236657.942"},
		{"CA", "100000", "5327.142"},
		{"CO", "100000", "3757.6"},
		{"TX", "100000", "0"},
		{"ZZ", "100000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.wages, func(t *testing.T) {
			result := registry.Resolve(tt.code).Calculate(wagesOnly(tt.wages, domain.FilingStatusSingle, 2024))

			assertDecimal(t, tt.wantTotal, result.TotalTax, "total")
			assert.True(t, result.TotalTax.Equal(result.BracketTax.Add(result.Surcharge)), "total is bracket tax plus surcharge")
			assert.True(t, result.ExemptionCredit.IsZero(), "no exemption credit is applied")
		})
	}
}

func TestRegistry_SetLogger(t *testing.T) {
	registry := NewRegistry(nil)
	logger := &recordingLogger{}
	registry.SetLogger(logger)

	registry.Resolve("QQ")
	assert.NotEmpty(t, logger.warnings)

	registry.SetLogger(nil)
	assert.NotPanics(t, func() { registry.Resolve("QR") })
}

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Debugf(string, ...interface{}) {}
func (l *recordingLogger) Infof(string, ...interface{})  {}
func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, format)
}
func (l *recordingLogger) Errorf(string, ...interface{}) {}
