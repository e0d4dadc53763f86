package services

import (
	"math/rand/v2"

	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// NewRandom returns a PCG generator seeded from seed.
// A zero seed draws a fresh seed from the runtime's random source.
func NewRandom(seed uint64) driven.Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
