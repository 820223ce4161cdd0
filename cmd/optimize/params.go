// Package main provides CMA-ES optimization for gaia simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/gaia/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Metabolism
			{Name: "base_burn", Path: "metabolism.base_burn", Min: 0.05, Max: 0.2, Default: 0.1},
			{Name: "tier_factor", Path: "metabolism.tier_factor", Min: 0.2, Max: 1.0, Default: 0.5},
			// Predation
			{Name: "aggression_threshold", Path: "predation.aggression_threshold", Min: 0.4, Max: 0.8, Default: 0.6},
			{Name: "hunger_threshold", Path: "predation.hunger_threshold", Min: 100, Max: 200, Default: 150},
			{Name: "energy_share", Path: "predation.energy_share", Min: 0.3, Max: 0.8, Default: 0.5},
			// Mating
			{Name: "desire_threshold", Path: "mating.desire_threshold", Min: 0.4, Max: 0.8, Default: 0.6},
			{Name: "mating_chance", Path: "mating.base_chance", Min: 0.01, Max: 0.15, Default: 0.05},
			// Reproduction
			{Name: "repro_cost", Path: "reproduction.cost", Min: 20, Max: 80, Default: 40},
			{Name: "asexual_min_energy", Path: "reproduction.asexual_min_energy", Min: 150, Max: 250, Default: 180},
			// Population
			{Name: "rain_count", Path: "population.rain_count", Min: 1, Max: 10, Default: 4},
			// Genetics
			{Name: "growth_chance", Path: "genetics.growth_chance", Min: 0.005, Max: 0.05, Default: 0.02},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Metabolism.BaseBurn = c[0]
	cfg.Metabolism.TierFactor = c[1]

	cfg.Predation.AggressionThreshold = c[2]
	cfg.Predation.HungerThreshold = c[3]
	cfg.Predation.EnergyShare = c[4]

	cfg.Mating.DesireThreshold = c[5]
	cfg.Mating.BaseChance = c[6]

	cfg.Reproduction.Cost = c[7]
	cfg.Reproduction.AsexualMinEnergy = c[8]

	cfg.Population.RainCount = int(math.Round(c[9]))

	cfg.Genetics.GrowthChance = c[10]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Metabolism.BaseBurn,
		cfg.Metabolism.TierFactor,
		cfg.Predation.AggressionThreshold,
		cfg.Predation.HungerThreshold,
		cfg.Predation.EnergyShare,
		cfg.Mating.DesireThreshold,
		cfg.Mating.BaseChance,
		cfg.Reproduction.Cost,
		cfg.Reproduction.AsexualMinEnergy,
		float64(cfg.Population.RainCount),
		cfg.Genetics.GrowthChance,
	}
}
