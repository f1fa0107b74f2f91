package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the full itemized report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(s *domain.TaxSummary) ([]byte, error) {
	var buf bytes.Buffer
	f := s.Federal
	j := s.Jurisdiction

	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintf(&buf, "TAX SUMMARY %d (%s, %s)\n", s.TaxYear, s.FilingStatus, jurisdictionLabel(j))
	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INCOME:")
	line(&buf, "Wages", s.TotalWages)
	line(&buf, "Interest", s.TotalInterest)
	line(&buf, "Dividends", s.TotalDividends)
	line(&buf, "Capital Gains", s.TotalCapitalGains)
	line(&buf, "Self-Employment", s.TotalSelfEmployment)
	line(&buf, "TOTAL GROSS INCOME", s.GrossIncome)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "FEDERAL:")
	line(&buf, "Gross Income", f.GrossIncome)
	if !f.SelfEmploymentDeduction.IsZero() {
		line(&buf, "Half SE Tax Deduction", f.SelfEmploymentDeduction.Neg())
	}
	line(&buf, "Adjusted Gross Income", f.AdjustedGrossIncome)
	line(&buf, deductionLabel(f), f.DeductionApplied.Neg())
	line(&buf, "Taxable Income", f.TaxableIncome)
	line(&buf, "Ordinary Income Tax", f.OrdinaryIncomeTax)
	line(&buf, "Capital Gains Tax", f.CapitalGainsTax)
	if !f.SelfEmploymentTax.IsZero() {
		line(&buf, "Self-Employment Tax", f.SelfEmploymentTax)
	}
	if !f.AdditionalMedicareTax.IsZero() {
		line(&buf, "Additional Medicare Tax", f.AdditionalMedicareTax)
	}
	if !f.NetInvestmentIncomeTax.IsZero() {
		line(&buf, "Net Investment Income Tax", f.NetInvestmentIncomeTax)
	}
	line(&buf, "TOTAL FEDERAL TAX", f.TotalFederalTax)
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Effective Rate", FormatRatio(f.EffectiveRate))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Marginal Rate", FormatPercentage(f.MarginalRate))
	writeBreakdown(&buf, f.BracketBreakdown)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%s:\n", strings.ToUpper(jurisdictionLabel(j)))
	if j.Note != "" {
		fmt.Fprintf(&buf, "  Note: %s\n", j.Note)
	}
	line(&buf, "Gross Income", j.GrossIncome)
	line(&buf, "Standard Deduction", j.StandardDeduction.Neg())
	line(&buf, "Taxable Income", j.TaxableIncome)
	line(&buf, "Bracket Tax", j.BracketTax)
	if !j.Surcharge.IsZero() {
		line(&buf, "Surcharge", j.Surcharge)
	}
	line(&buf, "TOTAL STATE TAX", j.TotalTax)
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Effective Rate", FormatRatio(j.EffectiveRate))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Marginal Rate", FormatPercentage(j.MarginalRate))
	writeBreakdown(&buf, j.BracketBreakdown)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "BOTTOM LINE:")
	line(&buf, "Total Tax Liability", s.TotalTaxLiability)
	line(&buf, "Federal Withheld", s.TotalFederalWithheld)
	line(&buf, "State Withheld", s.TotalJurisdictionWithheld)
	line(&buf, "Total Withheld", s.TotalWithheld)
	fmt.Fprintln(&buf, "  "+strings.Repeat("-", 45))
	fmt.Fprintln(&buf, "  "+bottomLine(s))

	return buf.Bytes(), nil
}

// ConsoleLiteFormatter renders a few headline numbers
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(s *domain.TaxSummary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX SUMMARY %d (%s, %s)\n", s.TaxYear, s.FilingStatus, jurisdictionLabel(s.Jurisdiction))
	line(&buf, "Gross Income", s.GrossIncome)
	line(&buf, "Federal Tax", s.Federal.TotalFederalTax)
	line(&buf, "State Tax", s.Jurisdiction.TotalTax)
	line(&buf, "Total Withheld", s.TotalWithheld)
	fmt.Fprintln(&buf, "  "+bottomLine(s))
	return buf.Bytes(), nil
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-28s %16s\n", label+":", FormatCurrency(amount))
}

func writeBreakdown(buf *bytes.Buffer, rows []domain.BracketBreakdownEntry) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(buf, "  Brackets:")
	for _, r := range rows {
		if r.Label != "" {
			fmt.Fprintf(buf, "    %s\n", r.Label)
			continue
		}
		fmt.Fprintf(buf, "    %7s  %14s - %-14s %14s\n",
			FormatRatio(r.Rate), FormatCurrency(r.RangeStart), FormatCurrency(r.RangeEnd), FormatCurrency(r.TaxInBracket))
	}
}

func jurisdictionLabel(j domain.JurisdictionTaxResult) string {
	if j.Name == "" || j.Name == j.Code {
		return j.Code
	}
	return fmt.Sprintf("%s %s", j.Code, j.Name)
}

func deductionLabel(f domain.FederalTaxResult) string {
	if f.DeductionApplied.GreaterThan(f.StandardDeduction) {
		return "Itemized Deductions"
	}
	return "Standard Deduction"
}

func bottomLine(s *domain.TaxSummary) string {
	if s.IsRefund() {
		return fmt.Sprintf("%-28s %16s", "REFUND:", FormatCurrency(s.RefundAmount()))
	}
	return fmt.Sprintf("%-28s %16s", "AMOUNT OWED:", FormatCurrency(s.AmountOwed))
}
