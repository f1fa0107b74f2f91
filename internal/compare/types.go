package compare

import (
	"fmt"

	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult is one jurisdiction's outcome for the shared return
type ComparisonResult struct {
	Code    string             `json:"code"`
	Name    string             `json:"name"`
	Summary *domain.TaxSummary `json:"-"`

	// Key Metrics
	JurisdictionTax  decimal.Decimal `json:"jurisdictionTax"`
	TotalTax         decimal.Decimal `json:"totalTax"`
	EffectiveRate    decimal.Decimal `json:"effectiveRate"` // total tax over gross income
	AfterTaxIncome   decimal.Decimal `json:"afterTaxIncome"`
	AmountOwed       decimal.Decimal `json:"amountOwed"`
	JurisdictionNote string          `json:"note,omitempty"`

	// Placeholder is set when the code has no tax data and resolved to $0
	Placeholder bool `json:"placeholder,omitempty"`

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
}

// ComparisonSet is the base jurisdiction plus the alternatives
type ComparisonSet struct {
	TaxYear            int                 `json:"taxYear"`
	FilingStatus       domain.FilingStatus `json:"filingStatus"`
	GrossIncome        decimal.Decimal     `json:"grossIncome"`
	BaseCode           string              `json:"baseCode"`
	BaseResult         *ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult  `json:"alternativeResults"`
	Recommendations    []string            `json:"recommendations"`
}

// MetricsCalculator extracts comparison metrics from summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics for one summary
func (mc *MetricsCalculator) CalculateMetrics(summary *domain.TaxSummary) ComparisonResult {
	result := ComparisonResult{
		Code:             summary.JurisdictionCode,
		Name:             summary.Jurisdiction.Name,
		Summary:          summary,
		JurisdictionTax:  summary.Jurisdiction.TotalTax,
		TotalTax:         summary.TotalTaxLiability,
		AfterTaxIncome:   summary.GrossIncome.Sub(summary.TotalTaxLiability),
		JurisdictionNote: summary.Jurisdiction.Note,
		AmountOwed:       summary.AmountOwed,
		EffectiveRate:    decimal.Zero,
	}
	if summary.GrossIncome.IsPositive() {
		result.EffectiveRate = summary.TotalTaxLiability.Div(summary.GrossIncome)
	}
	return result
}

// CalculateComparison fills in the deltas between an alternative and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.TaxDiffFromBase = alt.TotalTax.Sub(base.TotalTax)
	if !base.TotalTax.IsZero() {
		alt.TaxPctFromBase = alt.TaxDiffFromBase.Div(base.TotalTax).Mul(hundred)
	}
	return alt
}

// GenerateRecommendations summarizes the cheapest and most expensive options
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	lowest := compSet.BaseResult
	highest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.LessThan(lowest.TotalTax) {
			lowest = alt
		}
		if alt.TotalTax.GreaterThan(highest.TotalTax) {
			highest = alt
		}
	}

	if lowest != compSet.BaseResult {
		savings := compSet.BaseResult.TotalTax.Sub(lowest.TotalTax)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Taxes: %s saves $%s compared to %s", lowest.Code, savings.StringFixed(0), compSet.BaseCode))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Taxes: %s already has the lowest total tax of the jurisdictions compared", compSet.BaseCode))
	}

	if highest != compSet.BaseResult {
		extra := highest.TotalTax.Sub(compSet.BaseResult.TotalTax)
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Taxes: %s costs $%s more than %s", highest.Code, extra.StringFixed(0), compSet.BaseCode))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.Placeholder {
			recommendations = append(recommendations,
				fmt.Sprintf("Placeholder: %s has no tax data; its state tax is shown as $0", alt.Code))
		}
	}

	return recommendations
}
