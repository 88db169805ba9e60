package statistics

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls StatisticsService over a gRPC connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CalculateStatistic computes statistics for req.Expression.
func (c *Client) CalculateStatistic(ctx context.Context, req CalculateRequest, opts ...grpc.CallOption) (CalculateResponse, error) {
	out, err := c.invoke(ctx, CalculateStatisticMethod, req.toStruct, opts)
	if err != nil {
		return CalculateResponse{}, err
	}
	return decodeCalculateResponse(out)
}

// RollExpression rolls req.Expression once.
func (c *Client) RollExpression(ctx context.Context, req RollRequest, opts ...grpc.CallOption) (Roll, error) {
	out, err := c.invoke(ctx, RollExpressionMethod, req.toStruct, opts)
	if err != nil {
		return Roll{}, err
	}
	return decodeRoll(out)
}

// GetRoll fetches a logged roll by ID.
func (c *Client) GetRoll(ctx context.Context, id string, opts ...grpc.CallOption) (Roll, error) {
	encode := func() (*structpb.Struct, error) {
		return structpb.NewStruct(map[string]any{"roll_id": id})
	}
	out, err := c.invoke(ctx, GetRollMethod, encode, opts)
	if err != nil {
		return Roll{}, err
	}
	return decodeRoll(out)
}

func (c *Client) invoke(ctx context.Context, method string, encode func() (*structpb.Struct, error), opts []grpc.CallOption) (*structpb.Struct, error) {
	if c == nil || c.cc == nil {
		return nil, fmt.Errorf("statistics client is not configured")
	}
	in, err := encode()
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
