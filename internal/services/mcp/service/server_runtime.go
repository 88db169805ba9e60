package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/dicestats/internal/platform/discovery"
	"github.com/louisbranch/dicestats/internal/services/dicestats/api/grpc/statistics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// healthInterval is how often the HTTP transport re-checks the statistics
// connection.
const healthInterval = 30 * time.Second

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg.GRPCAddr, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, grpcAddr string, transport mcp.Transport) error {
	server, err := New(ctx, grpcAddr)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	httpAddr := discovery.OrDefaultHTTPAddr(cfg.HTTPAddr, discovery.ServiceMCP)

	server, err := New(ctx, cfg.GRPCAddr)
	if err != nil {
		return err
	}
	defer server.Close()

	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	go server.monitorHealth(healthCtx, healthInterval)

	return NewHTTPTransport(httpAddr, server.mcpServer).Start(ctx)
}

// monitorHealth periodically checks the statistics connection. Failures are
// logged; individual tool calls surface their own gRPC errors.
func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn == nil {
				log.Printf("gRPC connection is nil, health check skipped")
				continue
			}

			healthClient := grpc_health_v1.NewHealthClient(s.conn)
			callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: statistics.ServiceName})
			cancel()

			if err != nil {
				log.Printf("gRPC health check failed: %v", err)
			} else if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				log.Printf("gRPC health check status: %s", response.GetStatus().String())
			}
		}
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP server on transport and closes the gRPC
// connection when it stops.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// grpcAddress resolves the gRPC address from the explicit value, then env,
// then the service default.
func grpcAddress(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return discovery.OrDefaultGRPCAddr(os.Getenv("DICESTATS_ADDR"), discovery.ServiceStatistics)
}
