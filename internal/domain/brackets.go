package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Bracket is one marginal tier. A rate applies to income strictly above the
// previous bracket's upper bound and at or below this one. An invalid Upper
// means the bracket is unbounded.
type Bracket struct {
	Upper decimal.NullDecimal `json:"upper"`
	Rate  decimal.Decimal     `json:"rate"`
}

// NewBracket creates a bounded bracket
func NewBracket(upper int64, rate float64) Bracket {
	return Bracket{
		Upper: decimal.NullDecimal{Decimal: decimal.NewFromInt(upper), Valid: true},
		Rate:  decimal.NewFromFloat(rate),
	}
}

// NewTopBracket creates the unbounded final bracket
func NewTopBracket(rate float64) Bracket {
	return Bracket{Rate: decimal.NewFromFloat(rate)}
}

// IsUnbounded reports whether the bracket has no upper limit
func (b Bracket) IsUnbounded() bool {
	return !b.Upper.Valid
}

// capAt returns min(amount, upper), treating an unbounded bracket as infinite.
func (b Bracket) capAt(amount decimal.Decimal) decimal.Decimal {
	if b.IsUnbounded() {
		return amount
	}
	return decimal.Min(amount, b.Upper.Decimal)
}

// UnmarshalYAML reads the `[upper_or_null, rate]` pair form used by the rule files.
func (b *Bracket) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: bracket must be a [upper, rate] pair", node.Line)
	}

	upperNode, rateNode := node.Content[0], node.Content[1]
	if upperNode.ShortTag() == "!!null" {
		b.Upper = decimal.NullDecimal{}
	} else {
		upper, err := decimal.NewFromString(upperNode.Value)
		if err != nil {
			return fmt.Errorf("line %d: invalid bracket upper bound %q: %w", upperNode.Line, upperNode.Value, err)
		}
		b.Upper = decimal.NullDecimal{Decimal: upper, Valid: true}
	}

	rate, err := decimal.NewFromString(rateNode.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid bracket rate %q: %w", rateNode.Line, rateNode.Value, err)
	}
	b.Rate = rate
	return nil
}

// MarshalYAML writes the bracket back in pair form
func (b Bracket) MarshalYAML() (interface{}, error) {
	var upper interface{}
	if !b.IsUnbounded() {
		upper = b.Upper.Decimal.String()
	}
	return []interface{}{upper, b.Rate.String()}, nil
}

// BracketTable is an ordered, non-overlapping list of brackets whose final
// entry is unbounded. Rates are expected, not required, to be non-decreasing.
type BracketTable []Bracket

// BracketBreakdownEntry is one row of a bracket walk
type BracketBreakdownEntry struct {
	RangeStart      decimal.Decimal `json:"rangeStart"`
	RangeEnd        decimal.Decimal `json:"rangeEnd"`
	Rate            decimal.Decimal `json:"rate"`
	IncomeInBracket decimal.Decimal `json:"incomeInBracket"`
	TaxInBracket    decimal.Decimal `json:"taxInBracket"`
	Label           string          `json:"label,omitempty"`
}

// Validate checks the structural rules of the table
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	previous := decimal.Zero
	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate %s must be between 0 and 1", i, b.Rate)
		}
		last := i == len(t)-1
		if b.IsUnbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the final bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: final bracket must be unbounded", i)
		}
		if !b.Upper.Decimal.GreaterThan(previous) {
			return fmt.Errorf("bracket %d: upper bound %s must exceed %s", i, b.Upper.Decimal, previous)
		}
		previous = b.Upper.Decimal
	}
	return nil
}

// Walk applies the table to a taxable amount. It returns the total tax, the
// marginal rate (rate of the last bracket that received income) and one
// breakdown row per bracket with a nonzero allocation.
//
// For amounts <= 0 the tax is zero, the breakdown is empty and the marginal
// rate is the first bracket's rate: the rate the next dollar would pay.
func (t BracketTable) Walk(amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, []BracketBreakdownEntry) {
	if len(t) == 0 {
		return decimal.Zero, decimal.Zero, []BracketBreakdownEntry{}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, t[0].Rate, []BracketBreakdownEntry{}
	}

	totalTax := decimal.Zero
	marginal := decimal.Zero
	previous := decimal.Zero
	breakdown := make([]BracketBreakdownEntry, 0, len(t))

	for _, b := range t {
		if amount.LessThanOrEqual(previous) {
			break
		}
		end := b.capAt(amount)
		incomeInBracket := end.Sub(previous)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			taxInBracket := incomeInBracket.Mul(b.Rate)
			totalTax = totalTax.Add(taxInBracket)
			marginal = b.Rate
			breakdown = append(breakdown, BracketBreakdownEntry{
				RangeStart:      previous,
				RangeEnd:        end,
				Rate:            b.Rate,
				IncomeInBracket: incomeInBracket,
				TaxInBracket:    taxInBracket,
			})
		}
		if b.IsUnbounded() {
			break
		}
		previous = b.Upper.Decimal
	}

	return totalTax, marginal, breakdown
}

// StackedTax taxes the income range [base, base+amount] against the table:
// each bracket's rate applies only to the overlap between that range and the
// bracket's span. Used for preferential income stacked on ordinary income.
func (t BracketTable) StackedTax(base, amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if base.IsNegative() {
		base = decimal.Zero
	}
	top := base.Add(amount)

	tax := decimal.Zero
	previous := decimal.Zero
	for _, b := range t {
		// Skip brackets wholly below the stack
		if !b.IsUnbounded() && b.Upper.Decimal.LessThanOrEqual(base) {
			previous = b.Upper.Decimal
			continue
		}
		start := decimal.Max(base, previous)
		end := b.capAt(top)
		if end.GreaterThan(start) {
			tax = tax.Add(end.Sub(start).Mul(b.Rate))
		}
		if b.IsUnbounded() || top.LessThanOrEqual(b.Upper.Decimal) {
			break
		}
		previous = b.Upper.Decimal
	}
	return tax
}

// TopRate returns the rate of the final bracket
func (t BracketTable) TopRate() decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	return t[len(t)-1].Rate
}
