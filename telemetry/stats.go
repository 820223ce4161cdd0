package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population at window end
	Population int `csv:"population"`
	Gatherers  int `csv:"gatherers"`
	Hunters    int `csv:"hunters"`
	Builders   int `csv:"builders"`
	Guardians  int `csv:"guardians"`
	MaxTier    int `csv:"max_tier"`

	// Events during window
	Spawns         int `csv:"spawns"`
	SexualBirths   int `csv:"sexual_births"`
	AsexualBirths  int `csv:"asexual_births"`
	Injected       int `csv:"injected"`
	Kills          int `csv:"kills"`
	Starvations    int `csv:"starvations"`
	OldAgeDeaths   int `csv:"old_age_deaths"`
	SequenceGrowth int `csv:"sequence_growth"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Genetic fitness distribution
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessMax  float64 `csv:"fitness_max"`

	MeanSequenceLen float64 `csv:"mean_sequence_len"`

	Era string `csv:"era"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// ComputeFitnessStats calculates population mean, standard deviation and
// maximum of fitness values.
func ComputeFitnessStats(values []float64) (mean, std, maxVal float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)
	maxVal = values[0]
	for _, v := range values[1:] {
		maxVal = max(maxVal, v)
	}
	return mean, std, maxVal
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("population", s.Population),
		slog.Int("gatherers", s.Gatherers),
		slog.Int("hunters", s.Hunters),
		slog.Int("builders", s.Builders),
		slog.Int("guardians", s.Guardians),
		slog.Int("spawns", s.Spawns),
		slog.Int("sexual_births", s.SexualBirths),
		slog.Int("asexual_births", s.AsexualBirths),
		slog.Int("kills", s.Kills),
		slog.Int("starvations", s.Starvations),
		slog.Int("old_age_deaths", s.OldAgeDeaths),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("mean_sequence_len", s.MeanSequenceLen),
		slog.String("era", s.Era),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
