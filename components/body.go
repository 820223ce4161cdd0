package components

import (
	"github.com/pthm-cable/gaia/genetics"
	"github.com/pthm-cable/gaia/neural"
)

// Genome holds the agent's genetic structure and its cached fitness.
type Genome struct {
	Structure *genetics.Structure
	Fitness   float64
}

// Refresh recomputes the cached fitness from the structure.
func (g *Genome) Refresh() {
	g.Fitness = genetics.Fitness(g.Structure)
}

// Brain holds the agent's controller and its last output.
type Brain struct {
	Net        *neural.FFNN
	LastOutput [neural.NumOutputs]float64
}
