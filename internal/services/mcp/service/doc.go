// Package service wires MCP transports to the dice statistics tools.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates tool
// behavior to the domain handlers, which call the statistics gRPC service.
package service
