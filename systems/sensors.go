package systems

import (
	"github.com/pthm-cable/gaia/components"
	"github.com/pthm-cable/gaia/config"
	"github.com/pthm-cable/gaia/neural"
)

// Relation is how a sensed agent relates to the one sensing it.
type Relation uint8

const (
	Ignored Relation = iota
	Prey
	Mate
	Rival
)

func (r Relation) String() string {
	switch r {
	case Prey:
		return "prey"
	case Mate:
		return "mate"
	case Rival:
		return "rival"
	default:
		return "ignored"
	}
}

// Classify decides what other is to self. Lower tiers are prey; an agent
// whose aggression exceeds the frenzy threshold also preys on equal tiers
// within frenzy range. Otherwise equal tiers are mates when the genders
// differ and rivals when they match. Higher tiers are ignored.
func Classify(self, other *components.Organism, aggression, dist float64, sc config.SensingConfig) Relation {
	switch {
	case other.Tier < self.Tier:
		return Prey
	case aggression > sc.FrenzyAggression && other.Tier == self.Tier && dist < sc.FrenzyRange:
		return Prey
	case other.Tier == self.Tier && other.Gender != self.Gender:
		return Mate
	case other.Tier == self.Tier:
		return Rival
	}
	return Ignored
}

// BuildInputs assembles the brain inputs: energy relative to the starting
// energy, age relative to the lifespan, and the three nearest distances
// capped at the sensing range and normalised by it.
func BuildInputs(energy *components.Energy, initialEnergy, preyDist, mateDist, rivalDist, sensingRange float64) [neural.NumInputs]float64 {
	r := sensingRange
	return [neural.NumInputs]float64{
		energy.Value / initialEnergy,
		float64(energy.Age) / float64(energy.MaxAge),
		min(preyDist, r) / r,
		min(mateDist, r) / r,
		min(rivalDist, r) / r,
	}
}
