// Package server parses statistics server flags and starts the gRPC runtime.
package server

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/dicestats/internal/platform/cmd"
	statsapp "github.com/louisbranch/dicestats/internal/services/dicestats/app"
)

// Config holds statistics server command configuration.
type Config struct {
	Port int    `env:"PORT" envDefault:"8095"`
	Addr string `env:"LISTEN_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The statistics server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The statistics server listen address (overrides -port)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the statistics gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStatistics, func(ctx context.Context) error {
		if cfg.Addr != "" {
			return statsapp.RunWithAddr(ctx, cfg.Addr)
		}
		return statsapp.Run(ctx, cfg.Port)
	})
}
