package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/opentax/internal/calculation"
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the income needed to reach an after-tax target. After-tax
// income is gross income less total liability, which rises with either
// income field because no combined marginal rate reaches 100%.
type Solver struct {
	CalcEngine *calculation.TaxEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.TaxEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.TaxEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs a bracketing binary search on the requested income field
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	iterations := 0
	evaluate := func(amount decimal.Decimal) (domain.TaxSummary, decimal.Decimal) {
		iterations++
		summary := s.CalcEngine.Summarize(withIncome(req.Input, req.SolveFor, amount))
		return summary, summary.GrossIncome.Sub(summary.TotalTaxLiability)
	}

	result := &Result{Request: req}
	finish := func(amount decimal.Decimal, summary domain.TaxSummary, net decimal.Decimal, info string) *Result {
		result.Success = true
		result.Iterations = iterations
		result.ConvergenceInfo = info
		result.RequiredIncome = amount
		result.NetIncome = net
		result.TotalTax = summary.TotalTaxLiability
		result.Summary = &summary
		return result
	}

	// The other income alone may already reach the target
	lo := decimal.Zero
	summary, net := evaluate(lo)
	if net.GreaterThanOrEqual(req.TargetNetIncome) {
		return finish(lo, summary, net, "target met without this income"), nil
	}

	// Grow the upper bound until it brackets the target
	hi := decimal.Max(req.TargetNetIncome, decimal.NewFromInt(1))
	hiSummary, hiNet := evaluate(hi)
	for hiNet.LessThan(req.TargetNetIncome) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if iterations >= req.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("no %s amount up to %s reaches the target", req.SolveFor, hi.StringFixed(2)),
			}
		}
		lo = hi
		hi = hi.Mul(two)
		hiSummary, hiNet = evaluate(hi)
	}

	for hi.Sub(lo).GreaterThan(req.Tolerance) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if iterations >= req.MaxIterations {
			info := fmt.Sprintf("stopped after %d iterations within $%s", iterations, hi.Sub(lo).StringFixed(2))
			r := finish(hi, hiSummary, hiNet, info)
			r.Success = false
			return r, nil
		}
		mid := lo.Add(hi).Div(two)
		midSummary, midNet := evaluate(mid)
		if midNet.GreaterThanOrEqual(req.TargetNetIncome) {
			hi, hiSummary, hiNet = mid, midSummary, midNet
		} else {
			lo = mid
		}
	}

	return finish(hi, hiSummary, hiNet, fmt.Sprintf("converged within $%s", req.Tolerance.StringFixed(2))), nil
}

// withIncome returns a copy of in with the solved field set to amount.
// W-2 boxes 3 and 5 are cleared when solving for wages so they follow the
// trial wage amount.
func withIncome(in domain.TaxInput, field SolveFor, amount decimal.Decimal) domain.TaxInput {
	switch field {
	case SolveSelfEmployment:
		in.SelfEmploymentIncome = amount
	default:
		in.Wages = amount
		in.SocialSecurityWages = decimal.Zero
		in.MedicareWages = decimal.Zero
	}
	return in
}
