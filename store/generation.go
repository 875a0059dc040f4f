package store

import "time"

// reservedGeneration is remapped so integration fixtures can rely on one
// stamp value never occurring naturally. Preserved for behavioral
// compatibility with the production service's test suite.
const (
	reservedGeneration = 1337
	remappedGeneration = 1338
)

// newGeneration derives a fresh generation stamp from the wall clock.
// Stamps are effectively unique per key at write time; collision
// probability over a test run is treated as negligible.
func newGeneration() uint32 {
	return remapGeneration(uint32(time.Now().UnixNano()))
}

func remapGeneration(g uint32) uint32 {
	if g == reservedGeneration {
		return remappedGeneration
	}
	return g
}
