package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/opentax/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	title := TitleStyle.Render("opentax") + " " + SubtitleStyle.Render(m.currentScene.String())

	var content, help string
	switch m.currentScene {
	case SceneResults:
		content = m.renderResults()
		help = renderHelp(m.keys.Back, m.keys.Quit)
	default:
		content = m.renderForm()
		help = renderHelp(m.keys.Next, m.keys.Prev, m.keys.Calculate, m.keys.Quit)
	}

	parts := []string{title, "", content}
	if m.err != nil {
		parts = append(parts, "", ErrorStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, "", help)
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderForm() string {
	rows := make([]string, len(fields))
	for i, f := range fields {
		label := LabelStyle.Render(f.label)
		if i == m.focus {
			label = FocusedLabelStyle.Render(f.label)
		}
		rows[i] = label + m.inputs[i].View()
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderResults() string {
	s := m.summary
	if s == nil {
		return NoteStyle.Render("No results yet.")
	}
	f := s.Federal
	j := s.Jurisdiction

	federal := panel("Federal",
		row("Adjusted gross income", f.AdjustedGrossIncome),
		row("Deduction", f.DeductionApplied),
		row("Taxable income", f.TaxableIncome),
		row("Ordinary tax", f.OrdinaryIncomeTax),
		row("Capital gains tax", f.CapitalGainsTax),
		row("Self-employment tax", f.SelfEmploymentTax),
		row("Surtax", f.Surtax),
		row("Total", f.TotalFederalTax),
		rate(f.EffectiveRate, f.MarginalRate),
	)

	stateLines := []string{
		row("Income", j.GrossIncome),
		row("Deduction", j.StandardDeduction),
		row("Taxable income", j.TaxableIncome),
		row("Bracket tax", j.BracketTax),
		row("Surcharge", j.Surcharge),
		row("Total", j.TotalTax),
		rate(j.EffectiveRate, j.MarginalRate),
	}
	if j.Note != "" {
		stateLines = append(stateLines, NoteStyle.Width(44).Render(j.Note))
	}
	state := panel(fmt.Sprintf("%s %s", j.Code, j.Name), stateLines...)

	var bottom string
	if s.IsRefund() {
		bottom = RefundStyle.Render("Refund: " + output.FormatCurrency(s.RefundAmount()))
	} else {
		bottom = OwedStyle.Render("Amount owed: " + output.FormatCurrency(s.AmountOwed))
	}

	header := SubtitleStyle.Render(fmt.Sprintf("%d • %s • gross income %s", s.TaxYear, s.FilingStatus, output.FormatCurrency(s.GrossIncome)))
	totals := lipgloss.JoinVertical(lipgloss.Left,
		row("Total liability", s.TotalTaxLiability),
		row("Total withheld", s.TotalWithheld),
		bottom,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, federal, state),
		totals,
	)
}

func panel(title string, lines ...string) string {
	body := append([]string{PanelTitleStyle.Render(title)}, lines...)
	return PanelStyle.Render(strings.Join(body, "\n"))
}

func row(label string, amount decimal.Decimal) string {
	return fmt.Sprintf("%-24s %16s", label, output.FormatCurrency(amount))
}

func rate(effective, marginal decimal.Decimal) string {
	return SubtitleStyle.Render(fmt.Sprintf("effective %s • marginal %s", output.FormatRatio(effective), output.FormatPercentage(marginal)))
}
