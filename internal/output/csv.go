package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/opentax/internal/domain"
)

// CSVSummarizer writes one header row and one row of headline figures
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(s *domain.TaxSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"TaxYear", "FilingStatus", "Jurisdiction", "GrossIncome", "FederalTax", "StateTax", "TotalLiability", "TotalWithheld", "AmountOwed", "Outcome"}
	row := []string{
		strconv.Itoa(s.TaxYear),
		string(s.FilingStatus),
		s.JurisdictionCode,
		s.GrossIncome.StringFixed(2),
		s.Federal.TotalFederalTax.StringFixed(2),
		s.Jurisdiction.TotalTax.StringFixed(2),
		s.TotalTaxLiability.StringFixed(2),
		s.TotalWithheld.StringFixed(2),
		s.AmountOwed.StringFixed(2),
		s.Outcome,
	}
	if err := w.WriteAll([][]string{header, row}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetailedCSVFormatter writes one row per line item and bracket
type DetailedCSVFormatter struct{}

func (c DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (c DetailedCSVFormatter) Format(s *domain.TaxSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	f := s.Federal
	j := s.Jurisdiction

	rows := [][]string{
		{"Section", "Item", "Amount"},
		{"income", "wages", s.TotalWages.StringFixed(2)},
		{"income", "interest", s.TotalInterest.StringFixed(2)},
		{"income", "dividends", s.TotalDividends.StringFixed(2)},
		{"income", "capital_gains", s.TotalCapitalGains.StringFixed(2)},
		{"income", "self_employment", s.TotalSelfEmployment.StringFixed(2)},
		{"income", "gross_income", s.GrossIncome.StringFixed(2)},
		{"federal", "adjusted_gross_income", f.AdjustedGrossIncome.StringFixed(2)},
		{"federal", "deduction", f.DeductionApplied.StringFixed(2)},
		{"federal", "taxable_income", f.TaxableIncome.StringFixed(2)},
		{"federal", "ordinary_income_tax", f.OrdinaryIncomeTax.StringFixed(2)},
		{"federal", "capital_gains_tax", f.CapitalGainsTax.StringFixed(2)},
		{"federal", "self_employment_tax", f.SelfEmploymentTax.StringFixed(2)},
		{"federal", "additional_medicare_tax", f.AdditionalMedicareTax.StringFixed(2)},
		{"federal", "net_investment_income_tax", f.NetInvestmentIncomeTax.StringFixed(2)},
		{"federal", "total_tax", f.TotalFederalTax.StringFixed(2)},
	}
	for _, b := range f.BracketBreakdown {
		rows = append(rows, []string{"federal_bracket", b.Rate.StringFixed(4), b.TaxInBracket.StringFixed(2)})
	}

	state := "state_" + j.Code
	rows = append(rows,
		[]string{state, "taxable_income", j.TaxableIncome.StringFixed(2)},
		[]string{state, "bracket_tax", j.BracketTax.StringFixed(2)},
		[]string{state, "surcharge", j.Surcharge.StringFixed(2)},
		[]string{state, "total_tax", j.TotalTax.StringFixed(2)},
	)
	for _, b := range j.BracketBreakdown {
		item := b.Rate.StringFixed(4)
		if b.Label != "" {
			item = b.Label
		}
		rows = append(rows, []string{state + "_bracket", item, b.TaxInBracket.StringFixed(2)})
	}

	rows = append(rows,
		[]string{"payments", "federal_withheld", s.TotalFederalWithheld.StringFixed(2)},
		[]string{"payments", "state_withheld", s.TotalJurisdictionWithheld.StringFixed(2)},
		[]string{"total", "liability", s.TotalTaxLiability.StringFixed(2)},
		[]string{"total", "amount_owed", s.AmountOwed.StringFixed(2)},
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
