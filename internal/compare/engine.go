package compare

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/opentax/internal/calculation"
	"github.com/rgehrsitz/opentax/internal/domain"
)

// maxParallel bounds the number of summaries computed at once
const maxParallel = 8

// CompareEngine runs one return against several jurisdictions
type CompareEngine struct {
	CalcEngine        *calculation.TaxEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.TaxEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseCode string   // defaults to the input's jurisdiction
	Codes    []string // alternatives; duplicates and the base are skipped
}

// Compare computes a summary per jurisdiction. The state withholding from the
// input is applied to every alternative, so AmountOwed shows the balance as if
// the same withholding had been paid there.
func (ce *CompareEngine) Compare(ctx context.Context, input domain.TaxInput, options CompareOptions) (*ComparisonSet, error) {
	input = input.Normalize()
	baseCode := domain.NormalizeJurisdictionCode(options.BaseCode)
	if baseCode == "" {
		baseCode = input.JurisdictionCode
	}

	codes := []string{baseCode}
	seen := map[string]bool{baseCode: true}
	for _, code := range options.Codes {
		code = domain.NormalizeJurisdictionCode(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	if len(codes) < 2 {
		return nil, fmt.Errorf("at least one jurisdiction other than %s is required", baseCode)
	}

	summaries := make([]domain.TaxSummary, len(codes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in := input
			in.JurisdictionCode = code
			summaries[i] = ce.CalcEngine.Summarize(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("comparison cancelled: %w", err)
	}

	known := map[string]bool{}
	for _, code := range ce.CalcEngine.Jurisdictions.Codes() {
		known[code] = true
	}

	base := ce.MetricsCalculator.CalculateMetrics(&summaries[0])
	base.Placeholder = !known[baseCode]
	alternatives := make([]ComparisonResult, 0, len(codes)-1)
	for i := 1; i < len(summaries); i++ {
		alt := ce.MetricsCalculator.CalculateMetrics(&summaries[i])
		alt.Placeholder = !known[codes[i]]
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, base))
	}

	compSet := &ComparisonSet{
		TaxYear:            input.TaxYear,
		FilingStatus:       input.FilingStatus,
		GrossIncome:        summaries[0].GrossIncome,
		BaseCode:           baseCode,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
