// Package environment classifies world positions into biomes and vertical
// layers, and tracks the global era cycle and growth-tier table.
// Everything here except EventCycle is immutable after package init.
package environment

import "math"

// BiomeID identifies one of the four biomes.
type BiomeID uint8

const (
	Volcanic BiomeID = iota
	Abyssal
	Radiant
	Crystalline
)

// NumBiomes is the number of biomes.
const NumBiomes = 4

// Effects are the multipliers a biome applies to agents standing in it.
type Effects struct {
	MetaCost   float64 // energy burn
	ReproSpeed float64 // sexual reproduction chance
	AggroMod   float64 // effective aggression
}

// Biome describes a biome and its effects.
type Biome struct {
	ID      BiomeID
	Name    string
	Color   uint32
	Favored [3]uint8 // colour ids this biome buffs
	Effects Effects
}

var biomes = [NumBiomes]Biome{
	Volcanic: {
		ID: Volcanic, Name: "Volcanic Rift", Color: 0xFF4500, Favored: [3]uint8{1, 4, 7},
		Effects: Effects{MetaCost: 1.5, ReproSpeed: 1.5, AggroMod: 1.2},
	},
	Abyssal: {
		ID: Abyssal, Name: "Abyssal Trench", Color: 0x00008B, Favored: [3]uint8{2, 6, 9},
		Effects: Effects{MetaCost: 0.7, ReproSpeed: 0.8, AggroMod: 0.8},
	},
	Radiant: {
		ID: Radiant, Name: "Radiant Forest", Color: 0x32CD32, Favored: [3]uint8{3, 5, 0},
		Effects: Effects{MetaCost: 1.0, ReproSpeed: 1.2, AggroMod: 0.5},
	},
	Crystalline: {
		ID: Crystalline, Name: "Crystal Peaks", Color: 0xAADDFF, Favored: [3]uint8{0, 8, 2},
		Effects: Effects{MetaCost: 1.2, ReproSpeed: 0.6, AggroMod: 1.0},
	},
}

// neutralEffects applies to out-of-range biome ids.
var neutralEffects = Effects{MetaCost: 1, ReproSpeed: 1, AggroMod: 1}

// Info returns the biome definition. Unknown ids yield a nameless biome with
// neutral effects.
func (id BiomeID) Info() Biome {
	if int(id) >= NumBiomes {
		return Biome{ID: id, Effects: neutralEffects}
	}
	return biomes[id]
}

// Effects returns the biome's multipliers.
func (id BiomeID) Effects() Effects {
	return id.Info().Effects
}

// String returns the biome name.
func (id BiomeID) String() string {
	if int(id) >= NumBiomes {
		return "Unknown"
	}
	return biomes[id].Name
}

// Favors reports whether the biome buffs the given colour id.
func (id BiomeID) Favors(colorID uint8) bool {
	for _, c := range id.Info().Favored {
		if c == colorID {
			return true
		}
	}
	return false
}

// BiomeAt classifies a horizontal position. The constants are part of the
// balance and must not change.
func BiomeAt(x, z float64) BiomeID {
	noise := math.Sin(x*0.02) + math.Cos(z*0.02) + math.Sin(x*0.05+z*0.05)
	switch {
	case noise < -1:
		return Abyssal
	case noise < 0:
		return Crystalline
	case noise > 1.0:
		return Volcanic
	default:
		return Radiant
	}
}
