package compare

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing jurisdictions
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("JURISDICTION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Tax Year: %d  Filing Status: %s  Gross Income: $%s\n",
		compSet.TaxYear, compSet.FilingStatus, compSet.GrossIncome.StringFixed(2)))
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Jurisdiction",
		numWidth, "State Tax",
		numWidth, "Total Tax",
		numWidth, "Effective",
		numWidth, "vs Base"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	for i := range compSet.AlternativeResults {
		sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Code
	if result.Name != "" && result.Name != result.Code {
		name += " " + result.Name
	}
	delta := "(base)"
	if !isBase {
		delta = tf.deltaSymbol(result.TaxDiffFromBase) + "$" + result.TaxDiffFromBase.Abs().StringFixed(0)
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+result.JurisdictionTax.StringFixed(2),
		numWidth, "$"+result.TotalTax.StringFixed(2),
		numWidth, result.EffectiveRate.Mul(hundred).StringFixed(2)+"%",
		numWidth, delta)
}

// deltaSymbol returns the sign of a tax difference; more tax is positive
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+"
	case delta.IsNegative():
		return "-"
	default:
		return " "
	}
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Code",
		"Name",
		"Type",
		"Jurisdiction Tax",
		"Total Tax",
		"Effective Rate",
		"After-Tax Income",
		"Amount Owed",
		"Tax Diff from Base",
		"Tax % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.Code,
		result.Name,
		kind,
		result.JurisdictionTax.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.AfterTaxIncome.StringFixed(2),
		result.AmountOwed.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
	}
}

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
