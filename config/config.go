// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Agent        AgentConfig        `yaml:"agent"`
	Metabolism   MetabolismConfig   `yaml:"metabolism"`
	Genetics     GeneticsConfig     `yaml:"genetics"`
	Sensing      SensingConfig      `yaml:"sensing"`
	Movement     MovementConfig     `yaml:"movement"`
	Predation    PredationConfig    `yaml:"predation"`
	Mating       MatingConfig       `yaml:"mating"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Events       EventsConfig       `yaml:"events"`
	Editing      EditingConfig      `yaml:"editing"`
	Simulation   SimulationConfig   `yaml:"simulation"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the geometry of the spherical world.
type WorldConfig struct {
	Size        float64 `yaml:"size"`         // Spawn area edge length (agents spawn within ±size/2)
	FloorY      float64 `yaml:"floor_y"`      // Height of the walkable floor
	SphereDepth float64 `yaml:"sphere_depth"` // Sphere centre sits this far below the floor
	SpawnHeight float64 `yaml:"spawn_height"` // Minimum spawn height above the floor
	SpawnSpread float64 `yaml:"spawn_spread"` // Random extra spawn height
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial      int `yaml:"initial"`
	Capacity     int `yaml:"capacity"`
	RainInterval int `yaml:"rain_interval"` // Ticks between resource rain spawns
	RainCount    int `yaml:"rain_count"`    // Agents spawned per rain
	Colors       int `yaml:"colors"`        // Number of display colour ids
}

// AgentConfig holds per-agent starting values.
type AgentConfig struct {
	InitialEnergy float64 `yaml:"initial_energy"`
	MaxAge        int     `yaml:"max_age"`
	SpinSpeed     float64 `yaml:"spin_speed"` // Upper bound of initial rotational velocity
}

// MetabolismConfig holds energy burn parameters.
// Burn per tick = base_burn × metabolism × biome.meta_cost × (1 + tier × tier_factor).
type MetabolismConfig struct {
	BaseBurn   float64 `yaml:"base_burn"`
	TierFactor float64 `yaml:"tier_factor"`
}

// GeneticsConfig holds genetic sequence growth parameters.
type GeneticsConfig struct {
	GrowthChance float64 `yaml:"growth_chance"` // Per-tick probability of appending a base
}

// SensingConfig holds neighbour sampling parameters.
type SensingConfig struct {
	Samples          int     `yaml:"samples"`           // Random agents drawn per tick
	Range            float64 `yaml:"range"`             // Distances are capped and normalised by this
	FrenzyAggression float64 `yaml:"frenzy_aggression"` // Aggression above which equal tiers become prey
	FrenzyRange      float64 `yaml:"frenzy_range"`      // Max distance for frenzy prey
}

// MovementConfig holds force and integration parameters.
type MovementConfig struct {
	MoveScale        float64 `yaml:"move_scale"`
	CenterPull       float64 `yaml:"center_pull"`
	Damping          float64 `yaml:"damping"`
	FloorBounce      float64 `yaml:"floor_bounce"`
	HunterSpeed      float64 `yaml:"hunter_speed"`
	HunterAggression float64 `yaml:"hunter_aggression"`
	GathererSpeed    float64 `yaml:"gatherer_speed"`
}

// PredationConfig holds hunting parameters.
type PredationConfig struct {
	AggressionThreshold float64 `yaml:"aggression_threshold"`
	HungerThreshold     float64 `yaml:"hunger_threshold"` // Only hunt below this energy
	SteerGain           float64 `yaml:"steer_gain"`
	ContactRange        float64 `yaml:"contact_range"`
	EnergyShare         float64 `yaml:"energy_share"`   // Fraction of prey energy gained
	FitnessBonus        float64 `yaml:"fitness_bonus"`  // Added to cached fitness per kill
	CarcassEnergy       float64 `yaml:"carcass_energy"` // Energy assigned to killed prey
}

// MatingConfig holds sexual reproduction parameters.
type MatingConfig struct {
	DesireThreshold float64 `yaml:"desire_threshold"`
	MinEnergy       float64 `yaml:"min_energy"`
	SteerGain       float64 `yaml:"steer_gain"`
	ContactRange    float64 `yaml:"contact_range"`
	BaseChance      float64 `yaml:"base_chance"` // Scaled by biome.repro_speed
}

// ReproductionConfig holds offspring creation parameters.
type ReproductionConfig struct {
	Cost                  float64 `yaml:"cost"` // Charged to the first parent only
	AsexualMinEnergy      float64 `yaml:"asexual_min_energy"`
	TraitMutationChance   float64 `yaml:"trait_mutation_chance"`
	TraitMutationDelta    float64 `yaml:"trait_mutation_delta"`
	BrainMutationRate     float64 `yaml:"brain_mutation_rate"`
	BrainMutationStrength float64 `yaml:"brain_mutation_strength"`
	BirthLift             float64 `yaml:"birth_lift"` // Child spawns this far above the parent
}

// EventsConfig holds the global era cycle parameters.
type EventsConfig struct {
	EraDuration int     `yaml:"era_duration"`
	BlendStep   float64 `yaml:"blend_step"`
	AutoCycle   bool    `yaml:"auto_cycle"`
}

// EditingConfig holds parameters of external inspection tools.
type EditingConfig struct {
	GeneEditRate     float64 `yaml:"gene_edit_rate"`
	GeneEditStrength float64 `yaml:"gene_edit_strength"`
	InjectCount      int     `yaml:"inject_count"`
	InjectSpread     float64 `yaml:"inject_spread"`
	InjectHeight     float64 `yaml:"inject_height"`
}

// SimulationConfig holds tick orchestration switches.
type SimulationConfig struct {
	// LiveGrowth lets agents born during a tick act within that same tick.
	// When false the per-agent pass covers only the population present at
	// the start of the tick.
	LiveGrowth bool `yaml:"live_growth"`

	// MaxBirthsPerTick caps births from the per-agent pass in one tick, so
	// a pass over a growing population always ends.
	MaxBirthsPerTick int `yaml:"max_births_per_tick"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
	BookmarkHistory     int `yaml:"bookmark_history"` // Windows kept for bookmark detection
	HallOfFameSize      int `yaml:"hall_of_fame_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpawnRange   float64 // World.Size / 2
	SphereCenter float64 // Y coordinate of the sphere centre
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the tick cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Population.Capacity <= 0:
		return fmt.Errorf("population.capacity must be positive, got %d", c.Population.Capacity)
	case c.Population.RainInterval <= 0:
		return fmt.Errorf("population.rain_interval must be positive, got %d", c.Population.RainInterval)
	case c.Population.Colors <= 0:
		return fmt.Errorf("population.colors must be positive, got %d", c.Population.Colors)
	case c.Agent.InitialEnergy <= 0:
		return fmt.Errorf("agent.initial_energy must be positive, got %v", c.Agent.InitialEnergy)
	case c.Agent.MaxAge <= 0:
		return fmt.Errorf("agent.max_age must be positive, got %d", c.Agent.MaxAge)
	case c.Sensing.Range <= 0:
		return fmt.Errorf("sensing.range must be positive, got %v", c.Sensing.Range)
	case c.Events.EraDuration <= 0:
		return fmt.Errorf("events.era_duration must be positive, got %d", c.Events.EraDuration)
	case c.Simulation.MaxBirthsPerTick <= 0:
		return fmt.Errorf("simulation.max_births_per_tick must be positive, got %d", c.Simulation.MaxBirthsPerTick)
	case c.Telemetry.StatsWindow <= 0:
		return fmt.Errorf("telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpawnRange = c.World.Size / 2
	c.Derived.SphereCenter = c.World.FloorY - c.World.SphereDepth
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
