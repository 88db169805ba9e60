// Package errors defines the structured errors dicestats returns over gRPC.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Expression errors
	CodeExpressionEmpty       Code = "EXPRESSION_EMPTY"
	CodeExpressionLexError    Code = "EXPRESSION_LEX_ERROR"
	CodeExpressionSyntaxError Code = "EXPRESSION_SYNTAX_ERROR"
	CodeExpressionEvaluation  Code = "EXPRESSION_EVALUATION_ERROR"
	CodeExpressionUnsupported Code = "EXPRESSION_UNSUPPORTED"
	CodeExpressionTooLarge    Code = "EXPRESSION_TOO_LARGE"

	// Request errors
	CodeStatisticKindInvalid Code = "STATISTIC_KIND_INVALID"
	CodeSeedInvalid          Code = "SEED_INVALID"

	// Dice errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - the expression or request cannot be computed
	case CodeExpressionEmpty,
		CodeExpressionLexError,
		CodeExpressionSyntaxError,
		CodeExpressionEvaluation,
		CodeStatisticKindInvalid,
		CodeSeedInvalid,
		CodeDiceMissing,
		CodeDiceInvalidSpec:
		return codes.InvalidArgument

	// Unimplemented - valid grammar with no defined statistics
	case CodeExpressionUnsupported:
		return codes.Unimplemented

	case CodeExpressionTooLarge:
		return codes.ResourceExhausted

	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
