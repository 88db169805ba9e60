package domain

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/louisbranch/dicestats/internal/core/check"
	"github.com/louisbranch/dicestats/internal/core/stats"
	"github.com/louisbranch/dicestats/internal/platform/timeouts"
	"github.com/louisbranch/dicestats/internal/services/dicestats/api/grpc/statistics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// StatisticsClient is the subset of the statistics gRPC client the tools use.
type StatisticsClient interface {
	CalculateStatistic(ctx context.Context, req statistics.CalculateRequest, opts ...grpc.CallOption) (statistics.CalculateResponse, error)
	RollExpression(ctx context.Context, req statistics.RollRequest, opts ...grpc.CallOption) (statistics.Roll, error)
	GetRoll(ctx context.Context, id string, opts ...grpc.CallOption) (statistics.Roll, error)
}

// DiceStatisticsInput represents the MCP tool input for expression statistics.
type DiceStatisticsInput struct {
	Expression string   `json:"expression" jsonschema:"dice expression such as 2d6+3 or (1d4+2)*3"`
	Statistics []string `json:"statistics,omitempty" jsonschema:"statistics to compute: EXPECTED_VALUE, VARIANCE, PROBABILITY_DISTRIBUTION (default all)"`
	Difficulty *float64 `json:"difficulty,omitempty" jsonschema:"optional target; adds the chance of meeting or beating it"`
	Locale     string   `json:"locale,omitempty" jsonschema:"optional locale for error messages, e.g. de"`
}

// OutcomeResult is one point of a probability distribution.
type OutcomeResult struct {
	Value       float64 `json:"value" jsonschema:"possible outcome"`
	Probability float64 `json:"probability" jsonschema:"probability of the outcome"`
}

// OddsResult is the chance of meeting a difficulty.
type OddsResult struct {
	Difficulty     float64 `json:"difficulty" jsonschema:"target the outcome must meet or beat"`
	Success        float64 `json:"success" jsonschema:"probability the outcome is at least the difficulty"`
	Failure        float64 `json:"failure" jsonschema:"probability the outcome is below the difficulty"`
	ExpectedMargin float64 `json:"expected_margin" jsonschema:"expected outcome minus difficulty"`
}

// DiceStatisticsResult represents the MCP tool output for expression statistics.
type DiceStatisticsResult struct {
	Expression    string          `json:"expression" jsonschema:"expression that was evaluated"`
	Statistics    []string        `json:"statistics" jsonschema:"statistics that were computed"`
	ExpectedValue *float64        `json:"expected_value,omitempty" jsonschema:"expected value, if requested"`
	Variance      *float64        `json:"variance,omitempty" jsonschema:"variance, if requested"`
	StdDev        *float64        `json:"std_dev,omitempty" jsonschema:"standard deviation, if variance was requested"`
	Distribution  []OutcomeResult `json:"distribution,omitempty" jsonschema:"probability of each outcome ordered by value, if requested"`
	Odds          *OddsResult     `json:"odds,omitempty" jsonschema:"chance of meeting the difficulty, if one was given"`
	Cached        bool            `json:"cached" jsonschema:"whether the result came from the statistics cache"`
}

// DiceStatisticsTool defines the MCP tool schema for expression statistics.
func DiceStatisticsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_statistics",
		Description: "Computes the expected value, variance and exact probability distribution of a dice expression",
	}
}

// DiceStatisticsHandler computes statistics through the statistics service.
func DiceStatisticsHandler(client StatisticsClient) mcp.ToolHandlerFor[DiceStatisticsInput, DiceStatisticsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiceStatisticsInput) (*mcp.CallToolResult, DiceStatisticsResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DiceStatisticsResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		expression := strings.TrimSpace(input.Expression)
		if expression == "" {
			return nil, DiceStatisticsResult{}, fmt.Errorf("expression is required")
		}
		kinds, err := parseKinds(input.Statistics)
		if err != nil {
			return nil, DiceStatisticsResult{}, err
		}
		if input.Difficulty != nil && len(kinds) > 0 && !containsKind(kinds, stats.ProbabilityDistribution) {
			kinds = append(kinds, stats.ProbabilityDistribution)
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
		defer cancel()
		callCtx, callMeta := NewOutgoingContext(runCtx, invocationID, input.Locale)

		response, err := client.CalculateStatistic(callCtx, statistics.CalculateRequest{
			Expression: expression,
			Statistics: kinds,
		})
		if err != nil {
			return nil, DiceStatisticsResult{}, fmt.Errorf("dice statistics failed: %w", err)
		}

		result := DiceStatisticsResult{
			Expression: response.Expression,
			Statistics: make([]string, 0, len(response.Statistics)),
			Cached:     response.Cached,
		}
		for _, kind := range response.Statistics {
			result.Statistics = append(result.Statistics, kind.String())
			switch kind {
			case stats.ExpectedValue:
				value := response.Result.ExpectedValue
				result.ExpectedValue = &value
			case stats.Variance:
				variance := response.Result.Variance
				stdDev := math.Sqrt(variance)
				result.Variance = &variance
				result.StdDev = &stdDev
			case stats.ProbabilityDistribution:
				for _, outcome := range response.Result.Distribution.Outcomes() {
					result.Distribution = append(result.Distribution, OutcomeResult{Value: outcome.Value, Probability: outcome.Probability})
				}
			}
		}
		if input.Difficulty != nil && response.Result.Distribution != nil {
			odds := check.Chance(response.Result.Distribution, *input.Difficulty)
			result.Odds = &OddsResult{
				Difficulty:     *input.Difficulty,
				Success:        odds.Success,
				Failure:        odds.Failure,
				ExpectedMargin: odds.ExpectedMargin,
			}
		}

		return CallToolResultWithMetadata(callMeta), result, nil
	}
}

func parseKinds(names []string) ([]stats.Kind, error) {
	kinds := make([]stats.Kind, 0, len(names))
	for _, name := range names {
		kind, err := stats.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("statistic %q: %w", name, err)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func containsKind(kinds []stats.Kind, want stats.Kind) bool {
	for _, kind := range kinds {
		if kind == want {
			return true
		}
	}
	return false
}
