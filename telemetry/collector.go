package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/traits"
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int

	// Event counters for current window
	births  [len(birthKindNames)]int
	deaths  [len(deathCauseNames)]int
	kills   int
	growths int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth records an agent entering the population.
func (c *Collector) RecordBirth(kind BirthKind) {
	if int(kind) < len(c.births) {
		c.births[kind]++
	}
}

// RecordDeath records a pruned agent.
func (c *Collector) RecordDeath(cause DeathCause) {
	if int(cause) < len(c.deaths) {
		c.deaths[cause]++
	}
}

// RecordKill records a successful predation.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordGrowth records one base appended to a genetic sequence.
func (c *Collector) RecordGrowth() {
	c.growths++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

// PopulationSample is the state of the live population at flush time.
type PopulationSample struct {
	Energies    []float64
	Fitnesses   []float64
	SequenceLen []float64
	Jobs        [traits.NumJobs]int
	Tiers       [environment.NumTiers]int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, sample PopulationSample, era environment.EventID) WindowStats {
	energyMean, p10, p50, p90 := ComputeEnergyStats(sample.Energies)
	fitMean, fitStd, fitMax := ComputeFitnessStats(sample.Fitnesses)

	var seqMean float64
	if len(sample.SequenceLen) > 0 {
		seqMean = stat.Mean(sample.SequenceLen, nil)
	}

	maxTier := 0
	for t, n := range sample.Tiers {
		if n > 0 {
			maxTier = t
		}
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population: len(sample.Energies),
		Gatherers:  sample.Jobs[traits.Gatherer],
		Hunters:    sample.Jobs[traits.Hunter],
		Builders:   sample.Jobs[traits.Builder],
		Guardians:  sample.Jobs[traits.Guardian],
		MaxTier:    maxTier,

		Spawns:         c.births[BirthSpawn],
		SexualBirths:   c.births[BirthSexual],
		AsexualBirths:  c.births[BirthAsexual],
		Injected:       c.births[BirthInjected],
		Kills:          c.kills,
		Starvations:    c.deaths[DeathStarvation],
		OldAgeDeaths:   c.deaths[DeathOldAge],
		SequenceGrowth: c.growths,

		EnergyMean: energyMean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		FitnessMean: fitMean,
		FitnessStd:  fitStd,
		FitnessMax:  fitMax,

		MeanSequenceLen: seqMean,
		Era:             era.String(),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [len(birthKindNames)]int{}
	c.deaths = [len(deathCauseNames)]int{}
	c.kills = 0
	c.growths = 0

	return stats
}
