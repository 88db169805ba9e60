// Package domain translates MCP tool calls into statistics service requests.
//
// Each tool has a schema constructor (XTool) and a handler constructor
// (XHandler) bound to a StatisticsClient, so handlers can be tested against
// fakes without a running gRPC server.
package domain
