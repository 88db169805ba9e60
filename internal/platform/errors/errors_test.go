package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsByCode(t *testing.T) {
	err := fmt.Errorf("calculate: %w", New(CodeExpressionSyntaxError, "missing )"))
	if !stderrors.Is(err, New(CodeExpressionSyntaxError, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeExpressionLexError, "")) {
		t.Fatal("different codes should not match")
	}
}

func TestWrapAndAs(t *testing.T) {
	cause := stderrors.New("boom")
	err := fmt.Errorf("outer: %w", Wrap(CodeUnknown, "wrapped", cause).WithMetadata("position", "3"))

	domainErr, ok := As(err)
	if !ok {
		t.Fatal("expected domain error in chain")
	}
	if domainErr.Metadata["position"] != "3" {
		t.Fatalf("metadata = %v", domainErr.Metadata)
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if _, ok := As(cause); ok {
		t.Fatal("plain error should not convert")
	}
}

func TestGRPCCode(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeExpressionSyntaxError, codes.InvalidArgument},
		{CodeExpressionEvaluation, codes.InvalidArgument},
		{CodeStatisticKindInvalid, codes.InvalidArgument},
		{CodeExpressionUnsupported, codes.Unimplemented},
		{CodeExpressionTooLarge, codes.ResourceExhausted},
		{CodeNotFound, codes.NotFound},
		{CodeUnknown, codes.Internal},
		{Code("SOMETHING_ELSE"), codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Errorf("%s.GRPCCode() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestToGRPCStatusRoundTrip(t *testing.T) {
	domainErr := New(CodeExpressionLexError, "unexpected character '#'").
		WithMetadata("Position", "1")

	err := domainErr.ToGRPCStatus("en-US", "Unexpected character at position 1.")

	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected gRPC status")
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v", st.Code())
	}
	if st.Message() != "unexpected character '#'" {
		t.Fatalf("message = %q", st.Message())
	}

	code, metadata, localized := FromStatus(err)
	if code != CodeExpressionLexError {
		t.Fatalf("code = %s", code)
	}
	if metadata["Position"] != "1" {
		t.Fatalf("metadata = %v", metadata)
	}
	if localized != "Unexpected character at position 1." {
		t.Fatalf("localized = %q", localized)
	}
}

func TestFromStatusWithoutDetails(t *testing.T) {
	code, metadata, localized := FromStatus(status.Error(codes.Unavailable, "down"))
	if code != CodeUnknown || metadata != nil || localized != "" {
		t.Fatalf("FromStatus = %s, %v, %q", code, metadata, localized)
	}
	if code, _, _ := FromStatus(stderrors.New("plain")); code != CodeUnknown {
		t.Fatalf("plain error code = %s", code)
	}
}
