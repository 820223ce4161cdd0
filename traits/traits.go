// Package traits defines agent behaviour traits, job classes and the
// letter-keyed archetype registry.
package traits

import "github.com/pthm-cable/gaia/environment"

// JobClass is a behavioural role derived once from an agent's traits.
type JobClass uint8

const (
	Gatherer JobClass = iota
	Hunter
	Builder
	Guardian
)

// NumJobs is the number of job classes.
const NumJobs = 4

var jobNames = [NumJobs]string{"Gatherer", "Hunter", "Builder", "Guardian"}

// String returns the job name.
func (j JobClass) String() string {
	if j >= NumJobs {
		return "Unknown"
	}
	return jobNames[j]
}

// Classification thresholds, checked in priority order.
const (
	HunterAggression = 0.7
	GuardianDefense  = 0.7
	BuilderRepro     = 0.04
)

// Traits is an agent's trait vector.
type Traits struct {
	Aggression   float64             `json:"aggression"`
	Defense      float64             `json:"defense"`
	Metabolism   float64             `json:"metabolism"`
	ReproRate    float64             `json:"repro_rate"`
	Asexual      bool                `json:"asexual"`
	FavoredBiome environment.BiomeID `json:"favored_biome"`
}

// Job derives the job class. The first matching rule wins, so ties resolve
// toward Hunter, then Guardian, then Builder.
func (t Traits) Job() JobClass {
	switch {
	case t.Aggression > HunterAggression:
		return Hunter
	case t.Defense > GuardianDefense:
		return Guardian
	case t.ReproRate > BuilderRepro:
		return Builder
	default:
		return Gatherer
	}
}

// Patch is a partial trait update. Nil fields are left unchanged.
type Patch struct {
	Aggression   *float64
	Defense      *float64
	Metabolism   *float64
	ReproRate    *float64
	Asexual      *bool
	FavoredBiome *environment.BiomeID
}

// Apply returns t with every non-nil field of p overwritten.
func (t Traits) Apply(p Patch) Traits {
	if p.Aggression != nil {
		t.Aggression = *p.Aggression
	}
	if p.Defense != nil {
		t.Defense = *p.Defense
	}
	if p.Metabolism != nil {
		t.Metabolism = *p.Metabolism
	}
	if p.ReproRate != nil {
		t.ReproRate = *p.ReproRate
	}
	if p.Asexual != nil {
		t.Asexual = *p.Asexual
	}
	if p.FavoredBiome != nil {
		t.FavoredBiome = *p.FavoredBiome
	}
	return t
}
