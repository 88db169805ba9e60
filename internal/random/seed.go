// Package random provides seed generation for reproducible dice rolls.
//
// Seeds come from crypto/rand so that server-chosen rolls are unpredictable,
// while the seed itself is returned to callers so a roll can be replayed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// Source identifies who chose a roll's seed.
type Source string

const (
	// SourceClient means the caller supplied the seed.
	SourceClient Source = "CLIENT"
	// SourceServer means the seed was generated for the call.
	SourceServer Source = "SERVER"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns requested when set, otherwise a seed from seedFunc.
// A nil seedFunc uses NewSeed.
func ResolveSeed(requested *int64, seedFunc func() (int64, error)) (int64, Source, error) {
	if requested != nil {
		return *requested, SourceClient, nil
	}
	if seedFunc == nil {
		seedFunc = NewSeed
	}
	seed, err := seedFunc()
	if err != nil {
		return 0, "", err
	}
	return seed, SourceServer, nil
}
