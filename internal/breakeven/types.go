package breakeven

import (
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveFor names the income field the solver varies
type SolveFor string

const (
	SolveWages          SolveFor = "wages"
	SolveSelfEmployment SolveFor = "self_employment"
)

// Request asks for the income that yields a target after-tax income, with
// every other figure in Input held fixed
type Request struct {
	Input           domain.TaxInput
	SolveFor        SolveFor
	TargetNetIncome decimal.Decimal
	MaxIterations   int             // Maximum solver iterations
	Tolerance       decimal.Decimal // Convergence tolerance for binary search
}

// Result contains the results of a solve
type Result struct {
	Request         Request
	Success         bool
	Iterations      int
	ConvergenceInfo string

	RequiredIncome decimal.Decimal    `json:"required_income"`
	NetIncome      decimal.Decimal    `json:"net_income"`
	TotalTax       decimal.Decimal    `json:"total_tax"`
	Summary        *domain.TaxSummary `json:"summary"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 100,
	}
}

// Validate checks the request before solving
func (r *Request) Validate() error {
	switch r.SolveFor {
	case SolveWages, SolveSelfEmployment:
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported income field: " + string(r.SolveFor),
		}
	}
	if r.TargetNetIncome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target net income cannot be negative",
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
