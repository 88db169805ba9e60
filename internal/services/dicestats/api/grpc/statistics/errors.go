package statistics

import (
	"context"

	"github.com/louisbranch/dicestats/internal/platform/errors/i18n"
	platformgrpc "github.com/louisbranch/dicestats/internal/platform/grpc"
	"github.com/louisbranch/dicestats/internal/services/dicestats/domainerr"
)

// statusError converts err to a gRPC status localized for the caller's
// accept-language metadata.
func statusError(ctx context.Context, err error) error {
	domainErr := domainerr.FromEngineError(err)
	catalog := i18n.GetCatalog(platformgrpc.IncomingValue(ctx, platformgrpc.LocaleHeader))
	return domainErr.ToGRPCStatus(catalog.Locale(), catalog.Format(string(domainErr.Code), domainErr.Metadata))
}
