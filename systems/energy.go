package systems

import (
	"github.com/pthm-cable/gaia/components"
	"github.com/pthm-cable/gaia/config"
	"github.com/pthm-cable/gaia/environment"
)

// MetabolicBurn returns the energy spent in one tick by an agent with the
// given metabolism trait, standing in biome at growth tier.
func MetabolicBurn(cfg config.MetabolismConfig, metabolism float64, biome environment.BiomeID, tier environment.Tier) float64 {
	return cfg.BaseBurn * metabolism * biome.Effects().MetaCost *
		(1 + float64(tier)*cfg.TierFactor)
}

// UpdateEnergy ages the agent by one tick and applies burn.
// Returns true if the agent is exhausted and must die.
func UpdateEnergy(energy *components.Energy, burn float64) bool {
	energy.Age++
	energy.Value -= burn
	return energy.Exhausted()
}
