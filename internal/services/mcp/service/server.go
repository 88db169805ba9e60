package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	platformgrpc "github.com/louisbranch/dicestats/internal/platform/grpc"
	"github.com/louisbranch/dicestats/internal/services/dicestats/api/grpc/statistics"
	"github.com/louisbranch/dicestats/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "dicestats MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	GRPCAddr  string
	Transport TransportKind
	HTTPAddr  string // defaults to localhost:8096 for HTTP transport
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// New dials the statistics service at grpcAddr, waits for it to report
// healthy and registers the dice tools against it.
func New(ctx context.Context, grpcAddr string) (*Server, error) {
	conn, err := dialStatistics(ctx, grpcAddress(grpcAddr))
	if err != nil {
		return nil, err
	}
	server := NewWithClient(statistics.NewClient(conn))
	server.conn = conn
	return server, nil
}

// NewWithClient registers the dice tools against an existing statistics
// client. The returned server owns no connection.
func NewWithClient(client domain.StatisticsClient) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, client)
	return &Server{mcpServer: mcpServer}
}

func registerTools(server *mcp.Server, client domain.StatisticsClient) {
	mcp.AddTool(server, domain.DiceStatisticsTool(), domain.DiceStatisticsHandler(client))
	mcp.AddTool(server, domain.DiceRollTool(), domain.DiceRollHandler(client))
	mcp.AddTool(server, domain.DiceRollGetTool(), domain.DiceRollGetHandler(client))
}

func dialStatistics(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	logf := func(format string, args ...any) {
		log.Printf("statistics %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, platformgrpc.DialConfig{
		Addr:    addr,
		Service: statistics.ServiceName,
		Logf:    logf,
		Options: platformgrpc.DefaultClientDialOptions(),
	})
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) {
			if dialErr.Stage == platformgrpc.DialStageConnect {
				return nil, fmt.Errorf("connect to statistics server at %s: %w", addr, dialErr.Err)
			}
			return nil, dialErr.Err
		}
		return nil, err
	}
	return conn, nil
}
