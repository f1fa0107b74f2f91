package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/opentax/internal/output"
)

// TableFormatter formats a solve result for the console
type TableFormatter struct{}

// Format generates the report for a result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN INCOME\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Solve For:         %s\n", result.Request.SolveFor))
	sb.WriteString(fmt.Sprintf("Target Net Income: %s\n", output.FormatCurrency(result.Request.TargetNetIncome)))
	sb.WriteString(fmt.Sprintf("Status:            %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:        %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:       %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Required Income:   %s\n", output.FormatCurrency(result.RequiredIncome)))
	sb.WriteString(fmt.Sprintf("Total Tax:         %s\n", output.FormatCurrency(result.TotalTax)))
	sb.WriteString(fmt.Sprintf("Net Income:        %s\n", output.FormatCurrency(result.NetIncome)))
	if s := result.Summary; s != nil {
		sb.WriteString(fmt.Sprintf("Federal Tax:       %s\n", output.FormatCurrency(s.Federal.TotalFederalTax)))
		sb.WriteString(fmt.Sprintf("%-19s%s\n", s.JurisdictionCode+" Tax:", output.FormatCurrency(s.Jurisdiction.TotalTax)))
		sb.WriteString(fmt.Sprintf("Marginal Rate:     %s federal, %s state\n",
			output.FormatPercentage(s.Federal.MarginalRate), output.FormatPercentage(s.Jurisdiction.MarginalRate)))
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "converged"
	}
	return "did not converge"
}

// JSONFormatter formats a result as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a result
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
