// Package discovery centralizes the default addresses of dicestats services.
package discovery

import (
	"net"
	"strconv"
	"strings"
)

const (
	// ServiceStatistics is the statistics gRPC service identity.
	ServiceStatistics = "dicestats"
	// ServiceMCP is the MCP HTTP service identity.
	ServiceMCP = "mcp"
	// ServiceJaeger is the jaeger HTTP service identity.
	ServiceJaeger = "jaeger"
)

// DefaultHost is the host every default address binds to.
const DefaultHost = "localhost"

var grpcPorts = map[string]int{
	ServiceStatistics: 8095,
}

var httpPorts = map[string]int{
	ServiceMCP:    8096,
	ServiceJaeger: 16686,
}

// DefaultGRPCAddr returns the default gRPC address for a service, or "" for
// unknown services.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the default HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service default.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrDefaultHTTPAddr returns value when set, otherwise the service default.
func OrDefaultHTTPAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultHTTPAddr(service)
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return net.JoinHostPort(DefaultHost, strconv.Itoa(port))
}
