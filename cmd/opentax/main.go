package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/opentax/internal/breakeven"
	"github.com/rgehrsitz/opentax/internal/calculation"
	"github.com/rgehrsitz/opentax/internal/compare"
	"github.com/rgehrsitz/opentax/internal/config"
	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/rgehrsitz/opentax/internal/logging"
	"github.com/rgehrsitz/opentax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "opentax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "opentax",
		Short:         "Federal and state income tax calculator",
		Long:          "Computes federal and state income tax liability, withholding and the resulting refund or balance due from a YAML or JSON input file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	root.PersistentFlags().String("federal-rules", "", "Path to a federal rules YAML file (default: built-in rules)")
	root.PersistentFlags().String("jurisdictions", "", "Path to a jurisdiction data YAML or JSON file (default: built-in data)")

	root.AddCommand(calculateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(breakEvenCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(jurisdictionsCmd())
	root.AddCommand(versionCmd())
	return root
}

// newLogger returns a zap logger at debug level when --debug is set and at
// warn level otherwise, so placeholder fallbacks are still reported
func newLogger(cmd *cobra.Command) (*zap.SugaredLogger, error) {
	level := "warn"
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	return logging.NewZapLogger(level)
}

// newEngine loads the rule files named by the persistent flags
func newEngine(cmd *cobra.Command, logger logging.Logger) (*calculation.TaxEngine, error) {
	rulesPath, _ := cmd.Flags().GetString("federal-rules")
	dataPath, _ := cmd.Flags().GetString("jurisdictions")

	rules, err := config.LoadFederalRules(rulesPath)
	if err != nil {
		return nil, err
	}
	data, err := config.LoadJurisdictionData(dataPath)
	if err != nil {
		return nil, err
	}
	logger.Debugf("loaded federal rules for %d years and %d jurisdictions", len(rules.Years), len(data))

	engine := calculation.NewTaxEngine(rules, data)
	engine.SetLogger(logger)
	return engine, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate federal and state tax for an input file",
		Long: `Calculate federal and state tax for a YAML or JSON input file.

Examples:
  opentax calculate return.yaml
  opentax calculate return.yaml --state NY --format json
  opentax calculate return.yaml --format detailed-csv --save
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			parser := config.NewInputParser()
			input, err := parser.LoadInput(args[0])
			if err != nil {
				return err
			}
			if err := applyOverrides(cmd, input); err != nil {
				return err
			}

			engine, err := newEngine(cmd, logger)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			summary := engine.Summarize(*input)

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, &summary, extensionFor(f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(&summary)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().String("state", "", "Override the jurisdiction code from the input file")
	cmd.Flags().Int("year", 0, "Override the tax year from the input file")
	cmd.Flags().String("filing-status", "", "Override the filing status from the input file (single, joint)")
	return cmd
}

// applyOverrides copies any override flags onto the input and renormalizes it
func applyOverrides(cmd *cobra.Command, input *domain.TaxInput) error {
	if state, _ := cmd.Flags().GetString("state"); state != "" {
		input.JurisdictionCode = state
	}
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		if year < 0 {
			return fmt.Errorf("invalid tax year %d", year)
		}
		input.TaxYear = year
	}
	if status, _ := cmd.Flags().GetString("filing-status"); status != "" {
		input.FilingStatus = domain.FilingStatus(status)
	}
	*input = input.Normalize()
	return nil
}

func extensionFor(f output.Formatter) string {
	switch f.Name() {
	case "json":
		return "json"
	case "csv", "detailed-csv":
		return "csv"
	default:
		return "txt"
	}
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the same return across jurisdictions",
		Long: `Compare the total tax for one return in its own jurisdiction against others.

Examples:
  opentax compare return.yaml --with TX,NY,CO
  opentax compare return.yaml --base NY --with CA,FL --format csv
  opentax compare return.yaml --with TX --filing-status joint --year 2025
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			input, err := config.NewInputParser().LoadInput(args[0])
			if err != nil {
				return err
			}
			if err := applyOverrides(cmd, input); err != nil {
				return err
			}
			engine, err := newEngine(cmd, logger)
			if err != nil {
				return err
			}

			base, _ := cmd.Flags().GetString("base")
			with, _ := cmd.Flags().GetStringSlice("with")
			compSet, err := compare.NewCompareEngine(engine).Compare(context.Background(), *input, compare.CompareOptions{
				BaseCode: base,
				Codes:    with,
			})
			if err != nil {
				return err
			}

			var out string
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "table":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unknown format %q (available: table, csv, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("base", "", "Base jurisdiction (default: the input file's state)")
	cmd.Flags().StringSlice("with", nil, "Comma-separated jurisdictions to compare against (required)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().String("state", "", "Override the jurisdiction code from the input file")
	cmd.Flags().Int("year", 0, "Override the tax year from the input file")
	cmd.Flags().String("filing-status", "", "Override the filing status from the input file (single, joint)")
	_ = cmd.MarkFlagRequired("with")
	return cmd
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the income needed to reach a target after-tax income",
		Long: `Find the wages or self-employment income that, together with the other
income in the input file, leaves the target amount after federal and state tax.

Examples:
  opentax break-even return.yaml --target 90000
  opentax break-even return.yaml --target 60000 --solve-for self_employment
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			input, err := config.NewInputParser().LoadInput(args[0])
			if err != nil {
				return err
			}
			if err := applyOverrides(cmd, input); err != nil {
				return err
			}
			engine, err := newEngine(cmd, logger)
			if err != nil {
				return err
			}

			targetStr, _ := cmd.Flags().GetString("target")
			target, err := decimal.NewFromString(targetStr)
			if err != nil {
				return fmt.Errorf("invalid target %q: %w", targetStr, err)
			}
			solveFor, _ := cmd.Flags().GetString("solve-for")

			result, err := breakeven.NewDefaultSolver(engine).Solve(context.Background(), breakeven.Request{
				Input:           *input,
				SolveFor:        breakeven.SolveFor(solveFor),
				TargetNetIncome: target,
			})
			if err != nil {
				return err
			}

			var out string
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "table":
				out = (&breakeven.TableFormatter{}).Format(result)
			case "json":
				out, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			default:
				return fmt.Errorf("unknown format %q (available: table, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("target", "", "Target after-tax income (required)")
	cmd.Flags().String("solve-for", string(breakeven.SolveWages), "Income to solve for (wages, self_employment)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().String("state", "", "Override the jurisdiction code from the input file")
	cmd.Flags().Int("year", 0, "Override the tax year from the input file")
	cmd.Flags().String("filing-status", "", "Override the filing status from the input file (single, joint)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file and the configured rule files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if _, err := config.NewInputParser().LoadInput(args[0]); err != nil {
				return err
			}
			if _, err := newEngine(cmd, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
			return nil
		},
	}
}

func jurisdictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jurisdictions",
		Short: "List supported jurisdictions and their standard deductions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd, logging.NopLogger{})
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			status := domain.ParseFilingStatus(flagString(cmd, "filing-status"))
			writeJurisdictions(cmd.OutOrStdout(), engine, year, status)
			return nil
		},
	}
	cmd.Flags().Int("year", domain.DefaultTaxYear, "Tax year for the standard deduction column")
	cmd.Flags().String("filing-status", "single", "Filing status for the standard deduction column")
	return cmd
}

func writeJurisdictions(w io.Writer, engine *calculation.TaxEngine, year int, status domain.FilingStatus) {
	fmt.Fprintf(w, "%-4s %-34s %14s\n", "CODE", "NAME", "STD DEDUCTION")
	for _, code := range engine.Jurisdictions.Codes() {
		calc := engine.Jurisdictions.Resolve(code)
		fmt.Fprintf(w, "%-4s %-34s %14s\n", code, calc.Name(), output.FormatCurrency(calc.StandardDeduction(status, year)))
	}
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
