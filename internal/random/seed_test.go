package random

import (
	"errors"
	"testing"
)

func TestNewSeedVaries(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 8; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("NewSeed() error = %v", err)
		}
		seen[seed] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected distinct seeds, got %v", seen)
	}
}

func TestResolveSeed(t *testing.T) {
	requested := int64(42)
	seed, source, err := ResolveSeed(&requested, func() (int64, error) {
		t.Fatal("seed func should not be called for client seeds")
		return 0, nil
	})
	if err != nil || seed != 42 || source != SourceClient {
		t.Fatalf("ResolveSeed(client) = %d, %s, %v", seed, source, err)
	}

	seed, source, err = ResolveSeed(nil, func() (int64, error) { return 7, nil })
	if err != nil || seed != 7 || source != SourceServer {
		t.Fatalf("ResolveSeed(server) = %d, %s, %v", seed, source, err)
	}

	boom := errors.New("entropy exhausted")
	if _, _, err := ResolveSeed(nil, func() (int64, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("ResolveSeed(error) = %v", err)
	}

	if _, source, err := ResolveSeed(nil, nil); err != nil || source != SourceServer {
		t.Fatalf("ResolveSeed(nil func) = %s, %v", source, err)
	}
}
