// Package dicestats builds the dicestats command line: exact statistics and
// seeded rolls of dice expressions, computed in-process.
package dicestats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/louisbranch/dicestats/internal/core/canonical"
	"github.com/louisbranch/dicestats/internal/core/check"
	"github.com/louisbranch/dicestats/internal/core/stats"
	apperrors "github.com/louisbranch/dicestats/internal/platform/errors"
	"github.com/louisbranch/dicestats/internal/platform/errors/i18n"
	"github.com/louisbranch/dicestats/internal/random"
	"github.com/louisbranch/dicestats/internal/services/dicestats/domainerr"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

// Config holds CLI defaults read from the environment.
type Config struct {
	Lang           string `env:"LANG"            envDefault:"en"`
	HistogramWidth int    `env:"HISTOGRAM_WIDTH" envDefault:"40"`
}

var (
	barColor   = lipgloss.Color("#7C3AED")
	labelColor = lipgloss.Color("#6B7280")
)

// NewRootCommand returns the dicestats command tree writing to out.
func NewRootCommand(cfg Config, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "dicestats",
		Short:         "Exact statistics for dice expressions",
		Long:          "dicestats computes the expected value, variance and exact probability\ndistribution of arithmetic dice expressions such as -2d3+1d4 or (1d6+2)*3.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&cfg.Lang, "lang", cfg.Lang, "language for numbers and error messages (en, de)")
	root.AddCommand(newStatsCommand(&cfg), newRollCommand(&cfg))
	return root
}

type statsOptions struct {
	expression   string
	expected     bool
	variance     bool
	distribution bool
	atLeast      float64
}

func newStatsCommand(cfg *Config) *cobra.Command {
	var opts statsOptions
	cmd := &cobra.Command{
		Use:   "stats [EXPR]",
		Short: "Compute statistics of an expression",
		Example: "  dicestats stats -2d3+1d4\n" +
			"  dicestats stats --distribution --at-least 7 2d6",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression, err := expressionArg(opts.expression, args)
			if err != nil {
				return err
			}
			opts.expression = expression
			withOdds := cmd.Flags().Changed("at-least")
			return runStats(cmd.OutOrStdout(), *cfg, opts, withOdds)
		},
	}
	cmd.Flags().StringVarP(&opts.expression, "expr", "e", "", "dice expression (alternative to the positional argument)")
	cmd.Flags().BoolVar(&opts.expected, "expected", false, "compute the expected value")
	cmd.Flags().BoolVar(&opts.variance, "variance", false, "compute the variance")
	cmd.Flags().BoolVar(&opts.distribution, "distribution", false, "compute the probability distribution")
	cmd.Flags().Float64Var(&opts.atLeast, "at-least", 0, "also report the chance of an outcome at least this value")
	return cmd
}

type rollOptions struct {
	expression string
	seed       int64
	times      int
	atLeast    float64
}

func newRollCommand(cfg *Config) *cobra.Command {
	var opts rollOptions
	cmd := &cobra.Command{
		Use:     "roll [EXPR]",
		Short:   "Roll an expression",
		Example: "  dicestats roll --seed 42 --times 3 3d6+1",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression, err := expressionArg(opts.expression, args)
			if err != nil {
				return err
			}
			opts.expression = expression
			var requested *int64
			if cmd.Flags().Changed("seed") {
				requested = &opts.seed
			}
			withCheck := cmd.Flags().Changed("at-least")
			return runRoll(cmd.OutOrStdout(), *cfg, opts, requested, withCheck)
		},
	}
	cmd.Flags().StringVarP(&opts.expression, "expr", "e", "", "dice expression (alternative to the positional argument)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for a reproducible roll")
	cmd.Flags().IntVar(&opts.times, "times", 1, "number of rolls drawn from the seed")
	cmd.Flags().Float64Var(&opts.atLeast, "at-least", 0, "report whether each total meets this difficulty")
	return cmd
}

func expressionArg(flagValue string, args []string) (string, error) {
	switch {
	case len(args) == 1 && strings.TrimSpace(flagValue) != "":
		return "", errors.New("give the expression either as an argument or with --expr, not both")
	case len(args) == 1:
		return args[0], nil
	default:
		return flagValue, nil
	}
}

func runStats(out io.Writer, cfg Config, opts statsOptions, withOdds bool) error {
	kinds := selectedKinds(opts)
	if withOdds && !containsKind(kinds, stats.ProbabilityDistribution) {
		kinds = append(kinds, stats.ProbabilityDistribution)
	}
	if strings.TrimSpace(opts.expression) == "" {
		return localize(cfg.Lang, apperrors.New(apperrors.CodeExpressionEmpty, "expression is empty"))
	}

	result, err := stats.CalculateStatistic(opts.expression, kinds...)
	if err != nil {
		return localize(cfg.Lang, err)
	}

	p := message.NewPrinter(i18n.Match(cfg.Lang))
	renderer := lipgloss.NewRenderer(out)
	label := renderer.NewStyle().Foreground(labelColor)

	fmt.Fprintln(out, label.Render(p.Sprintf("expression:")), strings.Join(strings.Fields(opts.expression), ""))
	for _, kind := range kinds {
		switch kind {
		case stats.ExpectedValue:
			fmt.Fprintln(out, label.Render(p.Sprintf("expected value:")), p.Sprintf("%.4f", result.ExpectedValue))
		case stats.Variance:
			fmt.Fprintln(out, label.Render(p.Sprintf("variance:")), p.Sprintf("%.4f", result.Variance))
			fmt.Fprintln(out, label.Render(p.Sprintf("std dev:")), p.Sprintf("%.4f", math.Sqrt(result.Variance)))
		case stats.ProbabilityDistribution:
			fmt.Fprintln(out, label.Render(p.Sprintf("distribution:")))
			writeHistogram(out, renderer, p, result.Distribution.Outcomes(), cfg.HistogramWidth)
		}
	}
	if withOdds {
		odds := check.Chance(result.Distribution, opts.atLeast)
		fmt.Fprintln(out, label.Render(p.Sprintf("chance of at least %v:", formatValue(opts.atLeast))), p.Sprintf("%.4f", odds.Success))
	}
	return nil
}

func selectedKinds(opts statsOptions) []stats.Kind {
	var kinds []stats.Kind
	if opts.expected {
		kinds = append(kinds, stats.ExpectedValue)
	}
	if opts.variance {
		kinds = append(kinds, stats.Variance)
	}
	if opts.distribution {
		kinds = append(kinds, stats.ProbabilityDistribution)
	}
	if len(kinds) == 0 {
		return stats.AllKinds()
	}
	return kinds
}

func containsKind(kinds []stats.Kind, want stats.Kind) bool {
	for _, kind := range kinds {
		if kind == want {
			return true
		}
	}
	return false
}

// writeHistogram prints one bar per outcome, scaled so the most likely
// outcome spans width cells.
func writeHistogram(out io.Writer, renderer *lipgloss.Renderer, p *message.Printer, outcomes []stats.Outcome, width int) {
	if width <= 0 {
		width = 40
	}
	var peak float64
	labelWidth := 0
	for _, outcome := range outcomes {
		peak = math.Max(peak, outcome.Probability)
		labelWidth = max(labelWidth, len(formatValue(outcome.Value)))
	}
	bar := renderer.NewStyle().Foreground(barColor)
	for _, outcome := range outcomes {
		cells := 0
		if peak > 0 {
			cells = int(math.Round(outcome.Probability / peak * float64(width)))
		}
		if cells == 0 && outcome.Probability > 0 {
			cells = 1
		}
		fmt.Fprintf(out, "  %*s  %s  %s\n",
			labelWidth, formatValue(outcome.Value),
			p.Sprintf("%.4f", outcome.Probability),
			bar.Render(strings.Repeat("█", cells)))
	}
}

func runRoll(out io.Writer, cfg Config, opts rollOptions, requested *int64, withCheck bool) error {
	if strings.TrimSpace(opts.expression) == "" {
		return localize(cfg.Lang, apperrors.New(apperrors.CodeExpressionEmpty, "expression is empty"))
	}
	if opts.times < 1 {
		return fmt.Errorf("--times must be at least 1, got %d", opts.times)
	}
	form, err := canonical.Parse(opts.expression)
	if err != nil {
		return localize(cfg.Lang, err)
	}
	seed, source, err := random.ResolveSeed(requested, nil)
	if err != nil {
		return err
	}

	p := message.NewPrinter(i18n.Match(cfg.Lang))
	label := lipgloss.NewRenderer(out).NewStyle().Foreground(labelColor)
	fmt.Fprintln(out, label.Render(p.Sprintf("seed:")), strconv.FormatInt(seed, 10), "("+string(source)+")")

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < opts.times; i++ {
		sample, err := stats.SampleForm(form, rng)
		if err != nil {
			return localize(cfg.Lang, err)
		}
		line := formatValue(sample.Value)
		for _, roll := range sample.Rolls {
			line += fmt.Sprintf("  %s%v", roll.Spec, roll.Results)
		}
		if withCheck {
			result := check.Check(sample.Value, opts.atLeast)
			verdict := p.Sprintf("fail")
			if result.Success {
				verdict = p.Sprintf("success")
			}
			line += "  " + verdict + " (" + formatSigned(result.Margin) + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// localize renders engine and domain errors in the configured language.
func localize(lang string, err error) error {
	domainErr := domainerr.FromEngineError(err)
	if domainErr == nil {
		return err
	}
	catalog := i18n.GetCatalog(lang)
	return errors.New(catalog.Format(string(domainErr.Code), domainErr.Metadata))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSigned(v float64) string {
	if v >= 0 {
		return "+" + formatValue(v)
	}
	return formatValue(v)
}
