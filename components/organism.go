package components

import (
	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/traits"
)

// Organism bundles identity, archetype and classification.
type Organism struct {
	ID      uint32
	Letter  byte  // archetype letter
	Variant uint8 // index into genetics.Permutations
	Gender  uint8 // 0 or 1
	ColorID uint8
	Job     traits.JobClass // fixed at creation
	Tier    environment.Tier

	// Environment cache, refreshed every tick from position.
	Biome environment.BiomeID
	Layer int

	// Display-only gene strings derived from the variant.
	StructGene   string
	InteractGene string
}

// Energy tracks an entity's metabolic state.
type Energy struct {
	Value  float64
	Age    int
	MaxAge int
	Dead   bool // marked for removal this tick
}

// Exhausted reports whether the entity has run out of energy or time.
func (e *Energy) Exhausted() bool {
	return e.Value <= 0 || e.Age > e.MaxAge
}
