// Package util holds small helpers shared across the battle and ML packages.
package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// New returns a deterministic RNG for the given seed. Seed 0 is reserved
// for "pick one for me" at the CLI, so it maps to a fixed non-zero seed.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// NewSeed draws a fresh seed from crypto/rand. Used when the caller wants
// a random run but still needs the seed recorded for replay.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
