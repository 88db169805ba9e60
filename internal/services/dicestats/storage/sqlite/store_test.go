package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/dicestats/internal/core/stats"
	"github.com/louisbranch/dicestats/internal/random"
	"github.com/louisbranch/dicestats/internal/services/dicestats/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dicestats.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	_ = second.Close()
}

func TestPutGetStatisticRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	result, err := stats.CalculateStatistic("2d6 + 1", stats.AllKinds()...)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	kinds, _ := stats.NewKinds(stats.AllKinds()...)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	input := storage.StatisticRecord{
		Key:        storage.CacheKey("2d6 + 1", kinds),
		Expression: "2d6 + 1",
		Kinds:      kinds,
		Result:     result,
		CreatedAt:  now,
	}
	if err := store.PutStatistic(context.Background(), input); err != nil {
		t.Fatalf("put statistic: %v", err)
	}

	got, err := store.GetStatistic(context.Background(), input.Key)
	if err != nil {
		t.Fatalf("get statistic: %v", err)
	}
	if got.Expression != input.Expression {
		t.Fatalf("expression = %q, want %q", got.Expression, input.Expression)
	}
	if got.Kinds != kinds {
		t.Fatalf("kinds = %v, want %v", got.Kinds.List(), kinds.List())
	}
	if got.Result.ExpectedValue != result.ExpectedValue {
		t.Fatalf("expected value = %v, want %v", got.Result.ExpectedValue, result.ExpectedValue)
	}
	if got.Result.Variance != result.Variance {
		t.Fatalf("variance = %v, want %v", got.Result.Variance, result.Variance)
	}
	if len(got.Result.Distribution) != len(result.Distribution) {
		t.Fatalf("distribution size = %d, want %d", len(got.Result.Distribution), len(result.Distribution))
	}
	if got.Result.Distribution.Probability(8) != result.Distribution.Probability(8) {
		t.Fatalf("P(8) = %v, want %v", got.Result.Distribution.Probability(8), result.Distribution.Probability(8))
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestPutStatisticReplacesExisting(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	kinds, _ := stats.NewKinds(stats.ExpectedValue)
	record := storage.StatisticRecord{
		Key:        storage.CacheKey("1d6", kinds),
		Expression: "1d6",
		Kinds:      kinds,
		Result:     stats.Result{ExpectedValue: 1},
	}
	if err := store.PutStatistic(context.Background(), record); err != nil {
		t.Fatalf("put statistic: %v", err)
	}
	record.Result.ExpectedValue = 3.5
	if err := store.PutStatistic(context.Background(), record); err != nil {
		t.Fatalf("replace statistic: %v", err)
	}

	got, err := store.GetStatistic(context.Background(), record.Key)
	if err != nil {
		t.Fatalf("get statistic: %v", err)
	}
	if got.Result.ExpectedValue != 3.5 {
		t.Fatalf("expected value = %v, want 3.5", got.Result.ExpectedValue)
	}
	if got.Result.Distribution != nil {
		t.Fatalf("distribution = %v, want nil", got.Result.Distribution)
	}
}

func TestGetStatisticNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetStatistic(context.Background(), "missing|EXPECTED_VALUE")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing statistic error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPutGetRollRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 11, 0, 0, 0, time.UTC)
	input := storage.RollRecord{
		ID:         "roll-1",
		Expression: "2d6 + 1",
		Seed:       42,
		SeedSource: random.SourceClient,
		Value:      9,
		Rolls:      []storage.RollOutcome{{Dice: "2d6", Results: []int{3, 5}, Total: 8}},
		CreatedAt:  now,
	}
	if err := store.PutRoll(context.Background(), input); err != nil {
		t.Fatalf("put roll: %v", err)
	}

	got, err := store.GetRoll(context.Background(), "roll-1")
	if err != nil {
		t.Fatalf("get roll: %v", err)
	}
	if got.Seed != 42 || got.SeedSource != random.SourceClient {
		t.Fatalf("seed = %d (%s), want 42 (CLIENT)", got.Seed, got.SeedSource)
	}
	if got.Value != 9 {
		t.Fatalf("value = %v, want 9", got.Value)
	}
	if len(got.Rolls) != 1 || got.Rolls[0].Dice != "2d6" || got.Rolls[0].Total != 8 {
		t.Fatalf("rolls = %+v", got.Rolls)
	}
	if len(got.Rolls[0].Results) != 2 || got.Rolls[0].Results[1] != 5 {
		t.Fatalf("results = %v, want [3 5]", got.Rolls[0].Results)
	}
}

func TestPutRollReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := storage.RollRecord{ID: "roll-dup", Expression: "1d4", SeedSource: random.SourceServer, Value: 2}
	if err := store.PutRoll(context.Background(), input); err != nil {
		t.Fatalf("put initial roll: %v", err)
	}
	err := store.PutRoll(context.Background(), input)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate put error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetRollNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetRoll(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing roll error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestStoreRejectsCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetStatistic(ctx, "key"); !errors.Is(err, context.Canceled) {
		t.Fatalf("get statistic error = %v, want context.Canceled", err)
	}
	if err := store.PutRoll(ctx, storage.RollRecord{ID: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("put roll error = %v, want context.Canceled", err)
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	t.Parallel()

	var store *Store
	if _, err := store.GetStatistic(context.Background(), "key"); err == nil {
		t.Fatal("expected not configured error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "dicestats.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
