package storage

import (
	"testing"

	"github.com/louisbranch/dicestats/internal/core/stats"
)

func TestCacheKey(t *testing.T) {
	kinds, err := stats.NewKinds(stats.Variance, stats.ExpectedValue)
	if err != nil {
		t.Fatalf("NewKinds() error = %v", err)
	}
	if got := CacheKey(" 1d6 +\t2 ", kinds); got != "1d6+2|EXPECTED_VALUE,VARIANCE" {
		t.Fatalf("CacheKey() = %q", got)
	}
	if CacheKey("1d6+2", kinds) != CacheKey("1d6 + 2", kinds) {
		t.Fatal("whitespace should not change the key")
	}

	distribution, _ := stats.NewKinds(stats.ProbabilityDistribution)
	if CacheKey("1d6", kinds) == CacheKey("1d6", distribution) {
		t.Fatal("different kinds should produce different keys")
	}
}
