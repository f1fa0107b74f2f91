package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/opentax/internal/calculation"
	"github.com/rgehrsitz/opentax/internal/domain"
)

// field is one editable input on the form. get reads the field's current
// value from a TaxInput and set writes the parsed text back.
type field struct {
	label string
	get   func(in *domain.TaxInput) string
	set   func(in *domain.TaxInput, text string) error
}

func amountField(label string, ptr func(in *domain.TaxInput) *decimal.Decimal) field {
	return field{
		label: label,
		get: func(in *domain.TaxInput) string {
			v := *ptr(in)
			if v.IsZero() {
				return ""
			}
			return v.String()
		},
		set: func(in *domain.TaxInput, text string) error {
			text = strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(text))
			if text == "" {
				*ptr(in) = decimal.Zero
				return nil
			}
			v, err := decimal.NewFromString(text)
			if err != nil {
				return fmt.Errorf("invalid amount %q", text)
			}
			*ptr(in) = v
			return nil
		},
	}
}

var fields = []field{
	{
		label: "Tax year",
		get:   func(in *domain.TaxInput) string { return strconv.Itoa(in.TaxYear) },
		set: func(in *domain.TaxInput, text string) error {
			text = strings.TrimSpace(text)
			if text == "" {
				in.TaxYear = 0
				return nil
			}
			year, err := strconv.Atoi(text)
			if err != nil || year < 0 {
				return fmt.Errorf("invalid year %q", text)
			}
			in.TaxYear = year
			return nil
		},
	},
	{
		label: "Filing status (single/joint)",
		get:   func(in *domain.TaxInput) string { return string(in.FilingStatus) },
		set: func(in *domain.TaxInput, text string) error {
			in.FilingStatus = domain.FilingStatus(text)
			return nil
		},
	},
	{
		label: "State",
		get:   func(in *domain.TaxInput) string { return in.JurisdictionCode },
		set: func(in *domain.TaxInput, text string) error {
			in.JurisdictionCode = text
			return nil
		},
	},
	amountField("W-2 wages", func(in *domain.TaxInput) *decimal.Decimal { return &in.Wages }),
	amountField("Federal withheld", func(in *domain.TaxInput) *decimal.Decimal { return &in.FederalWithheld }),
	amountField("State withheld", func(in *domain.TaxInput) *decimal.Decimal { return &in.StateWithheld }),
	amountField("Interest", func(in *domain.TaxInput) *decimal.Decimal { return &in.InterestIncome }),
	amountField("Ordinary dividends", func(in *domain.TaxInput) *decimal.Decimal { return &in.OrdinaryDividends }),
	amountField("Qualified dividends", func(in *domain.TaxInput) *decimal.Decimal { return &in.QualifiedDividends }),
	amountField("Short-term gains", func(in *domain.TaxInput) *decimal.Decimal { return &in.ShortTermGains }),
	amountField("Long-term gains", func(in *domain.TaxInput) *decimal.Decimal { return &in.LongTermGains }),
	amountField("Self-employment income", func(in *domain.TaxInput) *decimal.Decimal { return &in.SelfEmploymentIncome }),
	amountField("Estimated payments", func(in *domain.TaxInput) *decimal.Decimal { return &in.EstimatedTaxPayments }),
}

// Model represents the entire application state
type Model struct {
	currentScene Scene

	width  int
	height int

	engine *calculation.TaxEngine
	keys   KeyMap

	// base keeps fields the form does not edit, such as W-2 box 3 and 5
	// figures loaded from a file
	base    domain.TaxInput
	inputs  []textinput.Model
	focus   int
	summary *domain.TaxSummary

	err error
}

// NewModel creates a form prefilled from initial, which may be nil
func NewModel(engine *calculation.TaxEngine, initial *domain.TaxInput) Model {
	base := domain.TaxInput{}
	if initial != nil {
		base = *initial
	}
	base = base.Normalize()

	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = 16
		ti.Placeholder = "0"
		ti.SetValue(f.get(&base))
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		currentScene: SceneForm,
		engine:       engine,
		keys:         DefaultKeyMap(),
		base:         base,
		inputs:       inputs,
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Input parses the form into a TaxInput
func (m Model) Input() (domain.TaxInput, error) {
	in := m.base
	for i, f := range fields {
		if err := f.set(&in, m.inputs[i].Value()); err != nil {
			return domain.TaxInput{}, fmt.Errorf("%s: %w", f.label, err)
		}
	}
	return in.Normalize(), nil
}

// Summary returns the last computed summary, or nil
func (m Model) Summary() *domain.TaxSummary {
	return m.summary
}

// Scene returns the scene being displayed
func (m Model) Scene() Scene {
	return m.currentScene
}

// calculateCmd runs the engine off the update loop
func calculateCmd(engine *calculation.TaxEngine, in domain.TaxInput) tea.Cmd {
	return func() tea.Msg {
		return CalculationCompleteMsg{Summary: engine.Summarize(in)}
	}
}
