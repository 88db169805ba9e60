package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialWithHealthSuccess(t *testing.T) {
	addr, _, stop := startHealthServer(t, grpc_health_v1.HealthCheckResponse_SERVING)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var logged []string
	conn, err := DialWithHealth(ctx, nil, DialConfig{
		Addr:    addr,
		Timeout: time.Second,
		Logf:    func(format string, args ...any) { logged = append(logged, fmt.Sprintf(format, args...)) },
		Options: DefaultClientDialOptions(),
	})
	if err != nil {
		t.Fatalf("dial with health: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close conn: %v", err)
	}
	if len(logged) == 0 || !strings.Contains(logged[len(logged)-1], "SERVING") {
		t.Fatalf("expected SERVING log, got %v", logged)
	}
}

func TestDialWithHealthWaitsForNamedService(t *testing.T) {
	addr, _, stop := startHealthServer(t, grpc_health_v1.HealthCheckResponse_SERVING, "dicestats.v1.StatisticsService")
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := DialWithHealth(ctx, nil, DialConfig{
		Addr:    addr,
		Service: "dicestats.v1.StatisticsService",
		Options: DefaultClientDialOptions(),
	})
	if err != nil {
		t.Fatalf("dial with health: %v", err)
	}
	_ = conn.Close()
}

func TestDialWithHealthUsesTimeoutForHealth(t *testing.T) {
	addr, _, stop := startHealthServer(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	conn, err := DialWithHealth(ctx, nil, DialConfig{
		Addr:    addr,
		Timeout: 150 * time.Millisecond,
		Options: DefaultClientDialOptions(),
	})
	if err == nil {
		_ = conn.Close()
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected timeout to bound health check, took %v", elapsed)
	}
	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageHealth {
		t.Fatalf("expected health stage DialError, got %v", err)
	}
}

func TestDialWithHealthConnectFailure(t *testing.T) {
	dialer := DialerFunc(func(_ context.Context, _ string, _ ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
		return nil, fmt.Errorf("dial failure")
	})

	_, err := DialWithHealth(context.Background(), dialer, DialConfig{Addr: "unused"})
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %T", err)
	}
	if dialErr.Stage != DialStageConnect || dialErr.Addr != "unused" {
		t.Fatalf("unexpected dial error: %+v", dialErr)
	}
}

func TestDialErrorFormatting(t *testing.T) {
	wrapped := &DialError{Addr: "localhost:8095", Stage: DialStageConnect, Err: fmt.Errorf("boom")}
	if !strings.Contains(wrapped.Error(), "gRPC connect error for localhost:8095") {
		t.Fatalf("unexpected error: %s", wrapped.Error())
	}
	if wrapped.Unwrap() == nil {
		t.Fatal("expected wrapped error")
	}

	var nilErr *DialError
	if nilErr.Error() == "" {
		t.Fatal("expected fallback error message")
	}
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil unwrap for nil error")
	}
}
