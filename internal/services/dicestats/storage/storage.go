// Package storage defines persistence contracts for the statistics service:
// a cache of computed statistics and a log of seeded rolls.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/louisbranch/dicestats/internal/core/stats"
	"github.com/louisbranch/dicestats/internal/random"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a record with the same ID already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// StatisticRecord is one cached calculation.
type StatisticRecord struct {
	Key        string
	Expression string
	Kinds      stats.Kinds
	Result     stats.Result
	CreatedAt  time.Time
}

// RollOutcome is the faces rolled for one dice term.
type RollOutcome struct {
	Dice    string
	Results []int
	Total   int
}

// RollRecord is one seeded roll of an expression. Replaying Expression with
// Seed reproduces Value.
type RollRecord struct {
	ID         string
	Expression string
	Seed       int64
	SeedSource random.Source
	Value      float64
	Rolls      []RollOutcome
	CreatedAt  time.Time
}

// StatisticStore caches statistics by key.
type StatisticStore interface {
	GetStatistic(ctx context.Context, key string) (StatisticRecord, error)
	PutStatistic(ctx context.Context, record StatisticRecord) error
}

// RollStore keeps a log of rolls.
type RollStore interface {
	PutRoll(ctx context.Context, record RollRecord) error
	GetRoll(ctx context.Context, id string) (RollRecord, error)
}

// Store combines every contract the statistics service persists through.
type Store interface {
	StatisticStore
	RollStore
}

// CacheKey identifies a calculation independent of whitespace in the
// expression, e.g. "1d6+2|EXPECTED_VALUE,VARIANCE".
func CacheKey(expression string, kinds stats.Kinds) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expression)

	names := make([]string, 0, 3)
	for _, kind := range kinds.List() {
		names = append(names, kind.String())
	}
	return compact + "|" + strings.Join(names, ",")
}
