package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gaia/catalog"
	"github.com/pthm-cable/gaia/config"
	"github.com/pthm-cable/gaia/sim"
	"github.com/pthm-cable/gaia/telemetry"
	"github.com/pthm-cable/gaia/traits"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestSpecies []catalog.Species
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 300,
		bestFitness: math.Inf(1),
	}
}

// BestSpecies returns the fittest agents of the best evaluation.
func (fe *FitnessEvaluator) BestSpecies() []catalog.Species {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSpecies
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A run is functionally extinct once the population stays below
// minViablePop for extinctionGraceTicks consecutive ticks.
const (
	minViablePop         = 10
	extinctionGraceTicks = 600
	warmupTicks          = 300
	topSpecies           = 10
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via OnStats each window
	species       []catalog.Species
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	species []catalog.Species
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer survival = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Each seed gets its own simulation, so they run in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: fe.computeQuality(result.windowStats),
				species: result.species,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedSpecies []catalog.Species

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedSpecies = r.species
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestSpecies = bestSeedSpecies
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	s, err := sim.New(cfg, sim.Options{
		Seed: seed,
		OnStats: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer s.Close()

	s.SpawnInitialPopulation(0)

	belowTicks := 0
	for s.Tick() < fe.maxTicks {
		s.Step()

		tick := s.Tick()
		if tick < warmupTicks {
			continue
		}

		pop := s.PopulationCount()
		if pop < minViablePop {
			belowTicks++
		} else {
			belowTicks = 0
		}

		if pop == 0 || belowTicks >= extinctionGraceTicks {
			result.survivalTicks = tick
			result.species = s.TopSpecies(topSpecies)
			return result
		}
	}

	// Survived the full run
	result.survivalTicks = fe.maxTicks
	result.species = s.TopSpecies(topSpecies)
	return result
}

// copyConfig returns a private copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Telemetry.StatsWindow = fe.statsWindow
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightStability = 0.30
	qualityWeightEnergy    = 0.25
	qualityWeightHunting   = 0.25
	qualityWeightDiversity = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	initialEnergy := fe.baseConfig.Agent.InitialEnergy

	var energySum, huntSum, diversitySum float64
	var count int
	counts := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Population < minViablePop {
			continue
		}
		counts = append(counts, float64(w.Population))

		// Median energy near half the starting energy
		energySum += math.Exp(-math.Pow((w.EnergyP50/initialEnergy-0.5)/0.25, 2))

		// Some predation, measured as kills per agent per window
		killsPerAgent := float64(w.Kills) / float64(w.Population)
		huntSum += 1.0 - math.Exp(-killsPerAgent/0.05)

		diversitySum += jobEntropy(w)
		count++
	}

	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(counts) >= 2 {
		mean, std := stat.PopMeanStdDev(counts, nil)
		if mean > 0 {
			cv := std / mean
			stabilityScore = math.Exp(-cv * cv)
		}
	}

	n := float64(count)
	quality := qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightHunting*huntSum/n +
		qualityWeightDiversity*diversitySum/n

	return min(max(quality, 0), 1)
}

// jobEntropy is the normalised Shannon entropy of the job mix, 1 when every
// job class is equally common.
func jobEntropy(w telemetry.WindowStats) float64 {
	jobs := []float64{float64(w.Gatherers), float64(w.Hunters), float64(w.Builders), float64(w.Guardians)}
	var total float64
	for _, j := range jobs {
		total += j
	}
	if total == 0 {
		return 0
	}
	for i := range jobs {
		jobs[i] /= total
	}
	return stat.Entropy(jobs) / math.Log(traits.NumJobs)
}
