// Package timeouts defines the durations shared by the dicestats binaries.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the statistics service.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single statistics call made on behalf of an MCP tool.
// Distributions of large expressions take longer than plain lookups.
const GRPCRequest = 10 * time.Second

// HealthPoll is the initial delay between health probes while waiting for
// the statistics service to report SERVING.
const HealthPoll = 200 * time.Millisecond

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits graceful shutdown of servers and telemetry exporters.
const Shutdown = 5 * time.Second
