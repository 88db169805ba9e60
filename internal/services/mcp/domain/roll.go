package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/dicestats/internal/core/check"
	"github.com/louisbranch/dicestats/internal/platform/timeouts"
	"github.com/louisbranch/dicestats/internal/services/dicestats/api/grpc/statistics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DiceRollInput represents the MCP tool input for rolling an expression.
type DiceRollInput struct {
	Expression string   `json:"expression" jsonschema:"dice expression such as 2d6+3"`
	Seed       *int64   `json:"seed,omitempty" jsonschema:"optional seed for a reproducible roll"`
	Difficulty *float64 `json:"difficulty,omitempty" jsonschema:"optional target the total must meet or beat"`
	Locale     string   `json:"locale,omitempty" jsonschema:"optional locale for error messages, e.g. de"`
}

// DiceRollGetInput represents the MCP tool input for fetching a logged roll.
type DiceRollGetInput struct {
	RollID string `json:"roll_id" jsonschema:"identifier returned by dice_roll"`
}

// DiceRollTerm is the faces rolled for one dice term.
type DiceRollTerm struct {
	Dice    string `json:"dice" jsonschema:"dice term, e.g. 2d6"`
	Results []int  `json:"results" jsonschema:"face rolled by each die"`
	Total   int    `json:"total" jsonschema:"sum of the faces"`
}

// CheckResult reports how a total compares with a difficulty.
type CheckResult struct {
	Difficulty float64 `json:"difficulty" jsonschema:"target the total had to meet or beat"`
	Success    bool    `json:"success" jsonschema:"whether the total met the difficulty"`
	Margin     float64 `json:"margin" jsonschema:"total minus difficulty"`
}

// DiceRollResult represents the MCP tool output for a roll.
type DiceRollResult struct {
	RollID     string         `json:"roll_id" jsonschema:"identifier for fetching the roll later"`
	Expression string         `json:"expression" jsonschema:"expression that was rolled"`
	Total      float64        `json:"total" jsonschema:"value of the expression for this roll"`
	Seed       string         `json:"seed" jsonschema:"seed used, as a decimal string"`
	SeedSource string         `json:"seed_source" jsonschema:"seed source (CLIENT or SERVER)"`
	Dice       []DiceRollTerm `json:"dice" jsonschema:"faces rolled per dice term"`
	Check      *CheckResult   `json:"check,omitempty" jsonschema:"difficulty check, if a difficulty was given"`
}

// DiceRollTool defines the MCP tool schema for rolling an expression.
func DiceRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_roll",
		Description: "Rolls a dice expression once with an optional seed; rolls can be replayed from the returned seed",
	}
}

// DiceRollGetTool defines the MCP tool schema for fetching a logged roll.
func DiceRollGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_roll_get",
		Description: "Returns a previously logged roll by its roll_id",
	}
}

// DiceRollHandler rolls an expression through the statistics service.
func DiceRollHandler(client StatisticsClient) mcp.ToolHandlerFor[DiceRollInput, DiceRollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiceRollInput) (*mcp.CallToolResult, DiceRollResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DiceRollResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		expression := strings.TrimSpace(input.Expression)
		if expression == "" {
			return nil, DiceRollResult{}, fmt.Errorf("expression is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
		defer cancel()
		callCtx, callMeta := NewOutgoingContext(runCtx, invocationID, input.Locale)

		roll, err := client.RollExpression(callCtx, statistics.RollRequest{Expression: expression, Seed: input.Seed})
		if err != nil {
			return nil, DiceRollResult{}, fmt.Errorf("dice roll failed: %w", err)
		}

		result := rollResult(roll)
		if input.Difficulty != nil {
			outcome := check.Check(roll.Total, *input.Difficulty)
			result.Check = &CheckResult{Difficulty: *input.Difficulty, Success: outcome.Success, Margin: outcome.Margin}
		}
		return CallToolResultWithMetadata(callMeta), result, nil
	}
}

// DiceRollGetHandler fetches a logged roll through the statistics service.
func DiceRollGetHandler(client StatisticsClient) mcp.ToolHandlerFor[DiceRollGetInput, DiceRollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiceRollGetInput) (*mcp.CallToolResult, DiceRollResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DiceRollResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		rollID := strings.TrimSpace(input.RollID)
		if rollID == "" {
			return nil, DiceRollResult{}, fmt.Errorf("roll_id is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
		defer cancel()
		callCtx, callMeta := NewOutgoingContext(runCtx, invocationID, "")

		roll, err := client.GetRoll(callCtx, rollID)
		if err != nil {
			return nil, DiceRollResult{}, fmt.Errorf("get roll failed: %w", err)
		}
		return CallToolResultWithMetadata(callMeta), rollResult(roll), nil
	}
}

func rollResult(roll statistics.Roll) DiceRollResult {
	result := DiceRollResult{
		RollID:     roll.ID,
		Expression: roll.Expression,
		Total:      roll.Total,
		Seed:       strconv.FormatInt(roll.Seed, 10),
		SeedSource: roll.SeedSource,
		Dice:       make([]DiceRollTerm, 0, len(roll.Dice)),
	}
	for _, term := range roll.Dice {
		results := make([]int, len(term.Results))
		copy(results, term.Results)
		result.Dice = append(result.Dice, DiceRollTerm{Dice: term.Dice, Results: results, Total: term.Total})
	}
	return result
}
