package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/traits"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{100, 20, 30, 40, 50, 60, 70, 80, 90, 10}
	mean, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if math.Abs(p10-19) > 0.01 {
		t.Errorf("p10 = %v, want 19", p10)
	}
	if math.Abs(p50-55) > 0.01 {
		t.Errorf("p50 = %v, want 55", p50)
	}
	if math.Abs(p90-91) > 0.01 {
		t.Errorf("p90 = %v, want 91", p90)
	}

	// Input is not sorted in place
	if values[0] != 100 {
		t.Error("ComputeEnergyStats reordered its input")
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeEnergyStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("empty energy stats: %v %v %v %v", mean, p10, p50, p90)
	}
	fm, fs, fx := ComputeFitnessStats(nil)
	if fm != 0 || fs != 0 || fx != 0 {
		t.Errorf("empty fitness stats: %v %v %v", fm, fs, fx)
	}
}

func TestComputeFitnessStats(t *testing.T) {
	mean, std, maxVal := ComputeFitnessStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	// Population standard deviation
	if math.Abs(std-2) > 1e-9 {
		t.Errorf("std = %v, want 2", std)
	}
	if maxVal != 9 {
		t.Errorf("max = %v, want 9", maxVal)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(10) {
		t.Error("no flush at window end")
	}

	c.RecordBirth(BirthSpawn)
	c.RecordBirth(BirthSpawn)
	c.RecordBirth(BirthSexual)
	c.RecordBirth(BirthAsexual)
	c.RecordBirth(BirthInjected)
	c.RecordDeath(DeathStarvation)
	c.RecordDeath(DeathOldAge)
	c.RecordDeath(DeathPredation)
	c.RecordKill()
	c.RecordGrowth()
	c.RecordGrowth()

	sample := PopulationSample{
		Energies:    []float64{100, 200},
		Fitnesses:   []float64{2, 4},
		SequenceLen: []float64{1, 3},
	}
	sample.Jobs[traits.Hunter] = 1
	sample.Jobs[traits.Gatherer] = 1
	sample.Tiers[0] = 1
	sample.Tiers[3] = 1

	stats := c.Flush(10, sample, environment.IceAge)

	checks := []struct {
		name      string
		got, want int
	}{
		{"population", stats.Population, 2},
		{"hunters", stats.Hunters, 1},
		{"gatherers", stats.Gatherers, 1},
		{"max tier", stats.MaxTier, 3},
		{"spawns", stats.Spawns, 2},
		{"sexual", stats.SexualBirths, 1},
		{"asexual", stats.AsexualBirths, 1},
		{"injected", stats.Injected, 1},
		{"kills", stats.Kills, 1},
		{"starvations", stats.Starvations, 1},
		{"old age", stats.OldAgeDeaths, 1},
		{"growth", stats.SequenceGrowth, 2},
	}
	for _, ck := range checks {
		if ck.got != ck.want {
			t.Errorf("%s = %d, want %d", ck.name, ck.got, ck.want)
		}
	}
	if stats.EnergyMean != 150 || stats.FitnessMean != 3 || stats.MeanSequenceLen != 2 {
		t.Errorf("means: energy %v fitness %v seq %v", stats.EnergyMean, stats.FitnessMean, stats.MeanSequenceLen)
	}
	if stats.Era != "Ice Age" {
		t.Errorf("era = %q", stats.Era)
	}

	// Counters reset
	next := c.Flush(20, PopulationSample{}, environment.EventNone)
	if next.Spawns != 0 || next.Kills != 0 || next.SequenceGrowth != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.MeanSequenceLen != 0 {
		t.Errorf("empty sample sequence mean = %v, want 0", next.MeanSequenceLen)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("window start = %d, want 10", next.WindowStartTick)
	}
	if next.Era != environment.StableEra {
		t.Errorf("era = %q, want %q", next.Era, environment.StableEra)
	}
	if c.ShouldFlush(25) {
		t.Error("flush mid-window")
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0, 'A', BirthSpawn, 0)
	lt.Register(2, 5, 'A', BirthSexual, 1)
	lt.Register(3, 5, 'G', BirthInjected, 0)

	lt.RecordKill(1)
	lt.RecordChild(1)
	lt.UpdateEnergy(1, 150)
	lt.UpdateEnergy(1, 120)
	lt.RecordKill(99) // unknown ids are ignored

	s := lt.Get(1)
	if s.Kills != 1 || s.Children != 1 || s.PeakEnergy != 150 {
		t.Errorf("stats = %+v", s)
	}
	if s.Age(30) != 30 {
		t.Errorf("age = %d, want 30", s.Age(30))
	}
	if lt.Count() != 3 || lt.LetterCount() != 2 {
		t.Errorf("count %d letters %d", lt.Count(), lt.LetterCount())
	}

	removed := lt.Remove(2)
	if removed == nil || removed.ParentID != 1 {
		t.Errorf("removed = %+v", removed)
	}
	if lt.Get(2) != nil || lt.Count() != 2 {
		t.Error("agent not removed")
	}

	j := removed.ToJSON()
	if j.Origin != "sexual" || j.BirthTick != 5 {
		t.Errorf("json = %+v", j)
	}
	var nilStats *LifetimeStats
	if nilStats.ToJSON() != nil {
		t.Error("nil stats should convert to nil")
	}
}
