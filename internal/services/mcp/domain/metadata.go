package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	platformgrpc "github.com/louisbranch/dicestats/internal/platform/grpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	InvocationID string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// NewOutgoingContext attaches the invocation ID and an optional locale to
// outgoing gRPC metadata.
func NewOutgoingContext(ctx context.Context, invocationID, locale string) (context.Context, ToolCallMetadata) {
	ctx = platformgrpc.WithInvocationID(ctx, invocationID)
	ctx = platformgrpc.WithLocale(ctx, locale)
	return ctx, ToolCallMetadata{InvocationID: invocationID}
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{Meta: map[string]any{}}
	if meta.InvocationID != "" {
		result.Meta[platformgrpc.InvocationIDHeader] = meta.InvocationID
	}
	return result
}
