package statistics

import (
	"context"
	"testing"

	"github.com/louisbranch/dicestats/internal/core/stats"
	apperrors "github.com/louisbranch/dicestats/internal/platform/errors"
	platformgrpc "github.com/louisbranch/dicestats/internal/platform/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestStatusErrorLocalizes(t *testing.T) {
	_, engineErr := stats.CalculateStatistic("2#3", stats.ExpectedValue)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(platformgrpc.LocaleHeader, "de-DE"))
	err := statusError(ctx, engineErr)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("status code = %s, want InvalidArgument", status.Code(err))
	}
	code, meta, localized := apperrors.FromStatus(err)
	if code != apperrors.CodeExpressionLexError {
		t.Fatalf("code = %s, want %s", code, apperrors.CodeExpressionLexError)
	}
	if meta["Position"] != "1" {
		t.Fatalf("position = %q, want 1", meta["Position"])
	}
	if localized != "Unerwartetes Zeichen '#' an Position 1." {
		t.Fatalf("localized = %q", localized)
	}

	err = statusError(context.Background(), engineErr)
	if _, _, localized := apperrors.FromStatus(err); localized != "Unexpected character '#' at position 1." {
		t.Fatalf("default localized = %q", localized)
	}
}
