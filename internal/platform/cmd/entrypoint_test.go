package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8095"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"stdio"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("DICESTATS_CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("DICESTATS_CMD_TEST_MODE", "http")

	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "addr", cfg.Address, "address")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")

	if err := ParseArgs(fs, []string{"-addr", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Address != "flag:9001" {
		t.Fatalf("expected flag value for address, got %q", cfg.Address)
	}
	if cfg.Mode != "http" {
		t.Fatalf("expected env value for mode, got %q", cfg.Mode)
	}
}

func TestParseConfigRejectsNil(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil config error")
	}
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestLogPrefix(t *testing.T) {
	if got := LogPrefix(ServiceMCP); got != "[DICESTATS-MCP] " {
		t.Fatalf("LogPrefix() = %q", got)
	}
}

func TestRunWithTelemetry(t *testing.T) {
	t.Setenv("DICESTATS_OTEL_ENDPOINT", "")

	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceStatistics, nil); err == nil {
		t.Fatal("expected missing run function error")
	}

	boom := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceStatistics, func(ctx context.Context) error {
		if ctx == nil {
			t.Fatal("expected context")
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected run error, got %v", err)
	}
}
