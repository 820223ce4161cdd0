package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/gaia/config"
	"github.com/pthm-cable/gaia/telemetry"
)

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	defaults := pv.DefaultVector()
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-defaults[i]) > 1e-9 {
			t.Errorf("%s: config default %v, param default %v", spec.Path, got[i], defaults[i])
		}
		if defaults[i] < spec.Min || defaults[i] > spec.Max {
			t.Errorf("%s: default %v outside [%v, %v]", spec.Name, defaults[i], spec.Min, spec.Max)
		}
	}
}

func TestApplyExtractConsistent(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	// Mid-range values for every parameter
	values := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		values[i] = (spec.Min + spec.Max) / 2
	}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		want := values[i]
		if spec.Name == "rain_count" {
			want = math.Round(want)
		}
		if math.Abs(got[i]-want) > 1e-9 {
			t.Errorf("%s: applied %v, extracted %v", spec.Name, want, got[i])
		}
	}
}

func TestApplyClampsOutOfRange(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = -1e6
	}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] < spec.Min-1e-9 {
			t.Errorf("%s = %v below minimum %v", spec.Name, got[i], spec.Min)
		}
	}
}

func TestComputeQuality(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 1000, []int64{1}, config.Default())

	if q := fe.computeQuality(nil); q != 0 {
		t.Errorf("quality of no windows = %v, want 0", q)
	}

	healthy := telemetry.WindowStats{
		Population: 400,
		Gatherers:  100,
		Hunters:    100,
		Builders:   100,
		Guardians:  100,
		Kills:      40,
		EnergyP50:  100,
	}
	windows := make([]telemetry.WindowStats, 10)
	for i := range windows {
		windows[i] = healthy
	}

	q := fe.computeQuality(windows)
	if q < 0.95 || q > 1 {
		t.Errorf("steady balanced population quality = %v, want close to 1", q)
	}

	collapsed := make([]telemetry.WindowStats, 10)
	for i := range collapsed {
		collapsed[i] = telemetry.WindowStats{Population: 5}
	}
	if q := fe.computeQuality(collapsed); q != 0 {
		t.Errorf("collapsed population quality = %v, want 0", q)
	}
}

func TestComputeFitnessRewardsSurvival(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 1000, []int64{1}, config.Default())

	short := fe.computeFitness(&runResult{survivalTicks: 100})
	long := fe.computeFitness(&runResult{survivalTicks: 1000})
	if long >= short {
		t.Errorf("longer survival should score lower: %v vs %v", long, short)
	}
}
