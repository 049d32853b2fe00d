// Package dice provides seeded random streams for reproducible resolution.
//
// # Determinism
//
// A stream created by New with the same seed yields the same draws. Streams
// for independent subjects (a duel, one NPC's turn sequence) are derived from
// a world seed with DeriveSeed, so recomputing a population in parallel
// gives the same results as recomputing it serially.
package dice

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// pcgIncrement is the second PCG word; any odd constant works.
const pcgIncrement = 0x9e3779b97f4a7c15

// New returns a PCG-backed generator for seed.
// The generator is not safe for concurrent use.
func New(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, pcgIncrement))
}

// DeriveSeed hashes a world seed and a subject path into a new seed.
// Parts are length-prefixed so ("ab","c") and ("a","bc") differ.
func DeriveSeed(world uint64, parts ...string) uint64 {
	h, _ := blake2b.New256(nil)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], world)
	h.Write(buf[:])

	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(p)))
		h.Write(buf[:])
		h.Write([]byte(p))
	}

	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// NewFor returns the stream of one subject under a world seed.
func NewFor(world uint64, parts ...string) *mrand.Rand {
	return New(DeriveSeed(world, parts...))
}

// NewSeed generates a random world seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
