// Package domainerr classifies errors from the dice expression engine into
// domain errors shared by every transport.
package domainerr

import (
	"errors"
	"strconv"

	"github.com/louisbranch/dicestats/internal/core/dice"
	"github.com/louisbranch/dicestats/internal/core/expr"
	"github.com/louisbranch/dicestats/internal/core/stats"
	apperrors "github.com/louisbranch/dicestats/internal/platform/errors"
)

// FromEngineError classifies an error returned by the expression engine.
// Errors that do not come from the engine map to CodeUnknown.
func FromEngineError(err error) *apperrors.Error {
	if err == nil {
		return nil
	}
	if domainErr, ok := apperrors.As(err); ok {
		return domainErr
	}

	var (
		lexErr         *expr.LexError
		syntaxErr      *expr.SyntaxError
		evalErr        *expr.EvaluationError
		unsupportedErr *expr.UnsupportedExpressionError
	)
	switch {
	case errors.As(err, &lexErr):
		return apperrors.Wrap(apperrors.CodeExpressionLexError, err.Error(), err).
			WithMetadata("Character", strconv.QuoteRune(lexErr.Char)).
			WithMetadata("Position", strconv.Itoa(lexErr.Pos))
	case errors.As(err, &syntaxErr):
		return apperrors.Wrap(apperrors.CodeExpressionSyntaxError, err.Error(), err).
			WithMetadata("Position", strconv.Itoa(syntaxErr.Pos)).
			WithMetadata("Detail", syntaxErr.Message)
	case errors.As(err, &unsupportedErr):
		return apperrors.Wrap(apperrors.CodeExpressionUnsupported, err.Error(), err).
			WithMetadata("Position", strconv.Itoa(unsupportedErr.Pos)).
			WithMetadata("Detail", unsupportedErr.Reason)
	case errors.Is(err, dice.ErrDistributionTooLarge), errors.Is(err, dice.ErrTooManyThrows):
		return apperrors.Wrap(apperrors.CodeExpressionTooLarge, err.Error(), err)
	case errors.As(err, &evalErr):
		return apperrors.Wrap(apperrors.CodeExpressionEvaluation, err.Error(), err).
			WithMetadata("Position", strconv.Itoa(evalErr.Pos)).
			WithMetadata("Detail", evalErr.Reason)
	case errors.Is(err, stats.ErrUnknownKind):
		return apperrors.Wrap(apperrors.CodeStatisticKindInvalid, err.Error(), err)
	case errors.Is(err, dice.ErrMissingDice):
		return apperrors.Wrap(apperrors.CodeDiceMissing, err.Error(), err)
	case errors.Is(err, dice.ErrInvalidDiceSpec):
		return apperrors.Wrap(apperrors.CodeDiceInvalidSpec, err.Error(), err)
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
}
