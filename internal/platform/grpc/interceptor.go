package grpc

import (
	"context"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// InvocationIDHeader carries the caller's invocation ID in request metadata.
const InvocationIDHeader = "x-invocation-id"

// LocaleHeader carries the caller's preferred languages.
const LocaleHeader = "accept-language"

// WithInvocationID attaches id to outgoing request metadata.
func WithInvocationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, InvocationIDHeader, id)
}

// WithLocale attaches a locale to outgoing request metadata.
func WithLocale(ctx context.Context, locale string) context.Context {
	if locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, LocaleHeader, locale)
}

// IncomingValue returns the first value of key in incoming metadata.
func IncomingValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// LoggingUnaryInterceptor logs the method, status code, duration and
// invocation ID of every unary call.
func LoggingUnaryInterceptor(logf func(string, ...any)) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if logf != nil {
			invocation := IncomingValue(ctx, InvocationIDHeader)
			if invocation == "" {
				invocation = "-"
			}
			logf("%s %s invocation=%s duration=%s", info.FullMethod, status.Code(err), invocation, time.Since(start).Round(time.Microsecond))
		}
		return resp, err
	}
}
