// Package sqlite provides a SQLite-backed statistics cache and roll log.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/dicestats/internal/core/stats"
	sqlitemigrate "github.com/louisbranch/dicestats/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/dicestats/internal/random"
	"github.com/louisbranch/dicestats/internal/services/dicestats/storage"
	"github.com/louisbranch/dicestats/internal/services/dicestats/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists statistics and rolls in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

type statisticPayload struct {
	ExpectedValue float64      `json:"expected_value"`
	Variance      float64      `json:"variance"`
	Distribution  [][2]float64 `json:"distribution,omitempty"`
}

func encodeResult(result stats.Result) (string, error) {
	payload := statisticPayload{
		ExpectedValue: result.ExpectedValue,
		Variance:      result.Variance,
	}
	for _, outcome := range result.Distribution.Outcomes() {
		payload.Distribution = append(payload.Distribution, [2]float64{outcome.Value, outcome.Probability})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode statistic payload: %w", err)
	}
	return string(data), nil
}

func decodeResult(data string) (stats.Result, error) {
	var payload statisticPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return stats.Result{}, fmt.Errorf("decode statistic payload: %w", err)
	}
	result := stats.Result{
		ExpectedValue: payload.ExpectedValue,
		Variance:      payload.Variance,
	}
	if payload.Distribution != nil {
		outcomes := make([]stats.Outcome, 0, len(payload.Distribution))
		for _, pair := range payload.Distribution {
			outcomes = append(outcomes, stats.Outcome{Value: pair[0], Probability: pair[1]})
		}
		result.Distribution = stats.FromOutcomes(outcomes)
	}
	return result, nil
}

func encodeKinds(kinds stats.Kinds) string {
	names := make([]string, 0, 3)
	for _, kind := range kinds.List() {
		names = append(names, kind.String())
	}
	return strings.Join(names, ",")
}

func decodeKinds(value string) (stats.Kinds, error) {
	var list []stats.Kind
	for _, name := range strings.Split(value, ",") {
		if name == "" {
			continue
		}
		kind, err := stats.ParseKind(name)
		if err != nil {
			return 0, err
		}
		list = append(list, kind)
	}
	return stats.NewKinds(list...)
}

// GetStatistic returns a cached calculation by key.
func (s *Store) GetStatistic(ctx context.Context, key string) (storage.StatisticRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.StatisticRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.StatisticRecord{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return storage.StatisticRecord{}, fmt.Errorf("cache key is required")
	}

	var (
		record    = storage.StatisticRecord{Key: key}
		kinds     string
		payload   string
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT expression, kinds, payload, created_at FROM statistics WHERE cache_key = ?`,
		key,
	).Scan(&record.Expression, &kinds, &payload, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.StatisticRecord{}, storage.ErrNotFound
		}
		return storage.StatisticRecord{}, fmt.Errorf("get statistic: %w", err)
	}
	if record.Kinds, err = decodeKinds(kinds); err != nil {
		return storage.StatisticRecord{}, fmt.Errorf("decode statistic kinds: %w", err)
	}
	if record.Result, err = decodeResult(payload); err != nil {
		return storage.StatisticRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

// PutStatistic stores a calculation, replacing any record with the same key.
func (s *Store) PutStatistic(ctx context.Context, record storage.StatisticRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.Key) == "" {
		return fmt.Errorf("cache key is required")
	}
	payload, err := encodeResult(record.Result)
	if err != nil {
		return err
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO statistics (cache_key, expression, kinds, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   expression = excluded.expression,
		   kinds = excluded.kinds,
		   payload = excluded.payload,
		   created_at = excluded.created_at`,
		record.Key,
		record.Expression,
		encodeKinds(record.Kinds),
		payload,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("put statistic: %w", err)
	}
	return nil
}

// PutRoll appends one roll to the log.
func (s *Store) PutRoll(ctx context.Context, record storage.RollRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return fmt.Errorf("roll id is required")
	}
	if record.SeedSource == "" {
		return fmt.Errorf("seed source is required")
	}
	rolls, err := json.Marshal(record.Rolls)
	if err != nil {
		return fmt.Errorf("encode rolls: %w", err)
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO rolls (id, expression, seed, seed_source, value, rolls, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		record.Expression,
		record.Seed,
		string(record.SeedSource),
		record.Value,
		string(rolls),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put roll: %w", err)
	}
	return nil
}

// GetRoll returns one logged roll by ID.
func (s *Store) GetRoll(ctx context.Context, id string) (storage.RollRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RollRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RollRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.RollRecord{}, fmt.Errorf("roll id is required")
	}

	var (
		record    = storage.RollRecord{ID: id}
		source    string
		rolls     string
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT expression, seed, seed_source, value, rolls, created_at FROM rolls WHERE id = ?`,
		id,
	).Scan(&record.Expression, &record.Seed, &source, &record.Value, &rolls, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RollRecord{}, storage.ErrNotFound
		}
		return storage.RollRecord{}, fmt.Errorf("get roll: %w", err)
	}
	if err := json.Unmarshal([]byte(rolls), &record.Rolls); err != nil {
		return storage.RollRecord{}, fmt.Errorf("decode rolls: %w", err)
	}
	record.SeedSource = random.Source(source)
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
