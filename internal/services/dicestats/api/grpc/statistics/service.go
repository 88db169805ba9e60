package statistics

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/dicestats/internal/core/expr"
	"github.com/louisbranch/dicestats/internal/core/stats"
	apperrors "github.com/louisbranch/dicestats/internal/platform/errors"
	"github.com/louisbranch/dicestats/internal/random"
	"github.com/louisbranch/dicestats/internal/services/dicestats/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const tracerName = "github.com/louisbranch/dicestats/internal/services/dicestats/api/grpc/statistics"

// Service exposes dicestats.v1 statistics operations.
type Service struct {
	UnimplementedStatisticsServer
	store    storage.Store
	clock    func() time.Time
	seedFunc func() (int64, error)
	newID    func() string
	logf     func(string, ...any)
	tracer   trace.Tracer
}

// NewService creates a statistics service. A nil store disables the cache
// and the roll log.
func NewService(store storage.Store) *Service {
	return &Service{
		store:    store,
		clock:    time.Now,
		seedFunc: random.NewSeed,
		newID:    uuid.NewString,
		logf:     log.Printf,
		tracer:   otel.Tracer(tracerName),
	}
}

// CalculateStatistic computes the requested statistics of one expression.
func (s *Service) CalculateStatistic(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "calculate statistic request is required")
	}
	wire, err := decodeCalculateRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp, err := s.calculate(ctx, wire)
	if err != nil {
		return nil, statusError(ctx, err)
	}
	out, err := resp.toStruct()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func (s *Service) calculate(ctx context.Context, wire calculateRequestWire) (CalculateResponse, error) {
	expression := strings.TrimSpace(wire.Expression)
	if expression == "" {
		return CalculateResponse{}, apperrors.New(apperrors.CodeExpressionEmpty, "expression is required")
	}
	list := make([]stats.Kind, 0, len(wire.Statistics))
	for _, name := range wire.Statistics {
		kind, err := stats.ParseKind(name)
		if err != nil {
			return CalculateResponse{}, apperrors.Wrap(apperrors.CodeStatisticKindInvalid, err.Error(), err).
				WithMetadata("Kind", name)
		}
		list = append(list, kind)
	}
	if len(list) == 0 {
		list = stats.AllKinds()
	}
	kinds, err := stats.NewKinds(list...)
	if err != nil {
		return CalculateResponse{}, err
	}
	resp := CalculateResponse{Expression: expression, Statistics: kinds.List()}

	names := make([]string, 0, len(resp.Statistics))
	for _, kind := range resp.Statistics {
		names = append(names, kind.String())
	}
	ctx, span := s.tracer.Start(ctx, "statistics.Calculate", trace.WithAttributes(
		attribute.String("dicestats.expression", expression),
		attribute.StringSlice("dicestats.statistics", names),
	))
	defer span.End()

	key := storage.CacheKey(expression, kinds)
	if s.store != nil {
		record, err := s.store.GetStatistic(ctx, key)
		switch {
		case err == nil:
			span.SetAttributes(attribute.Bool("dicestats.cached", true))
			resp.Result = record.Result
			resp.Cached = true
			return resp, nil
		case !errors.Is(err, storage.ErrNotFound):
			s.logf("statistics cache get %q: %v", key, err)
		}
	}

	node, err := expr.Parse(expression)
	if err == nil {
		resp.Result, err = stats.Calculate(node, kinds)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "calculate")
		return CalculateResponse{}, err
	}
	span.SetAttributes(attribute.Bool("dicestats.cached", false))

	if s.store != nil {
		record := storage.StatisticRecord{
			Key:        key,
			Expression: expression,
			Kinds:      kinds,
			Result:     resp.Result,
			CreatedAt:  s.now(),
		}
		if err := s.store.PutStatistic(ctx, record); err != nil {
			s.logf("statistics cache put %q: %v", key, err)
		}
	}
	return resp, nil
}

// RollExpression draws one seeded outcome of an expression and logs it.
func (s *Service) RollExpression(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "roll expression request is required")
	}
	wire, err := decodeRollRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	roll, err := s.roll(ctx, wire)
	if err != nil {
		return nil, statusError(ctx, err)
	}
	out, err := roll.toStruct()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func (s *Service) roll(ctx context.Context, wire rollRequestWire) (Roll, error) {
	expression := strings.TrimSpace(wire.Expression)
	if expression == "" {
		return Roll{}, apperrors.New(apperrors.CodeExpressionEmpty, "expression is required")
	}
	var requested *int64
	if wire.HasSeed {
		seed, err := parseSeed(wire.Seed)
		if err != nil {
			return Roll{}, apperrors.Wrap(apperrors.CodeSeedInvalid, "invalid seed", err).
				WithMetadata("Seed", wire.Seed)
		}
		requested = &seed
	}
	seed, source, err := random.ResolveSeed(requested, s.seedFunc)
	if err != nil {
		return Roll{}, err
	}

	ctx, span := s.tracer.Start(ctx, "statistics.Roll", trace.WithAttributes(
		attribute.String("dicestats.expression", expression),
		attribute.String("dicestats.seed_source", string(source)),
	))
	defer span.End()

	sample, err := stats.Roll(expression, seed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "roll")
		return Roll{}, err
	}

	record := storage.RollRecord{
		ID:         s.newID(),
		Expression: expression,
		Seed:       seed,
		SeedSource: source,
		Value:      sample.Value,
		CreatedAt:  s.now(),
	}
	for _, roll := range sample.Rolls {
		record.Rolls = append(record.Rolls, storage.RollOutcome{
			Dice:    roll.Spec.String(),
			Results: roll.Results,
			Total:   roll.Total,
		})
	}
	if s.store != nil {
		if err := s.store.PutRoll(ctx, record); err != nil {
			s.logf("roll log put %s: %v", record.ID, err)
		}
	}
	return rollFromRecord(record), nil
}

// GetRoll returns a previously logged roll.
func (s *Service) GetRoll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get roll request is required")
	}
	id, err := decodeGetRollRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "roll id is required")
	}
	if s.store == nil {
		return nil, statusError(ctx, notFound(id))
	}

	record, err := s.store.GetRoll(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, statusError(ctx, notFound(id))
		}
		return nil, status.Errorf(codes.Internal, "get roll: %v", err)
	}
	out, err := rollFromRecord(record).toStruct()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func notFound(id string) *apperrors.Error {
	return apperrors.New(apperrors.CodeNotFound, "roll not found").
		WithMetadata("Resource", "roll").
		WithMetadata("RollID", id)
}

func (s *Service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func rollFromRecord(record storage.RollRecord) Roll {
	roll := Roll{
		ID:         record.ID,
		Expression: record.Expression,
		Total:      record.Value,
		Seed:       record.Seed,
		SeedSource: string(record.SeedSource),
		CreatedAt:  record.CreatedAt,
	}
	for _, outcome := range record.Rolls {
		roll.Dice = append(roll.Dice, DiceRoll{Dice: outcome.Dice, Results: outcome.Results, Total: outcome.Total})
	}
	return roll
}
