// Package sim runs the agent population: spawning, the per-tick
// sense/decide/act pass, reproduction, predation and death pruning.
//
// A Simulation owns all of its state. Nothing is shared between instances,
// so several simulations may run side by side (one per goroutine).
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/components"
	"github.com/pthm-cable/gaia/config"
	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/telemetry"
	"github.com/pthm-cable/gaia/traits"
)

// Observer is notified whenever pruning changes the population size.
type Observer interface {
	PopulationChanged(n int)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(n int)

// PopulationChanged calls f(n).
func (f ObserverFunc) PopulationChanged(n int) { f(n) }

// Options configures a Simulation.
type Options struct {
	Seed        int64
	Observer    Observer
	LogStats    bool   // log window and perf stats via slog
	OutputDir   string // CSV logs and config snapshot (empty = disabled)
	SnapshotDir string // population snapshots on bookmarks (empty = disabled)

	// OnStats, if set, receives every flushed stats window.
	OnStats func(telemetry.WindowStats)
}

// Simulation holds the complete simulation state.
type Simulation struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	world *ecs.World

	agentMap *ecs.Map8[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Organism,
		traits.Traits,
		components.Energy,
		components.Genome,
		components.Brain,
	]
	agentFilter *ecs.Filter8[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Organism,
		traits.Traits,
		components.Energy,
		components.Genome,
		components.Brain,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	orgMap    *ecs.Map[components.Organism]
	traitsMap *ecs.Map[traits.Traits]
	energyMap *ecs.Map[components.Energy]
	genomeMap *ecs.Map[components.Genome]
	brainMap  *ecs.Map[components.Brain]

	// Live population in creation order, and lookup by agent id.
	order []ecs.Entity
	index map[uint32]ecs.Entity
	maxID uint32

	events       *environment.EventCycle
	sphereCenter r3.Vec

	// Per-tick scratch: indices into order.
	dead   []int
	killed []int
	births int

	tick     int
	observer Observer

	// Telemetry
	collector  *telemetry.Collector
	perf       *telemetry.PerfCollector
	lifetime   *telemetry.LifetimeTracker
	bookmarks  *telemetry.BookmarkDetector
	hallOfFame *telemetry.HallOfFame
	output     *telemetry.OutputManager

	logStats    bool
	snapshotDir string
	onStats     func(telemetry.WindowStats)
}

// New creates an empty simulation. Call SpawnInitialPopulation to seed it.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	world := ecs.NewWorld()

	s := &Simulation{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		seed:  opts.Seed,
		world: world,
		agentMap: ecs.NewMap8[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Organism,
			traits.Traits,
			components.Energy,
			components.Genome,
			components.Brain,
		](world),
		agentFilter: ecs.NewFilter8[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Organism,
			traits.Traits,
			components.Energy,
			components.Genome,
			components.Brain,
		](world),
		posMap:    ecs.NewMap[components.Position](world),
		velMap:    ecs.NewMap[components.Velocity](world),
		orgMap:    ecs.NewMap[components.Organism](world),
		traitsMap: ecs.NewMap[traits.Traits](world),
		energyMap: ecs.NewMap[components.Energy](world),
		genomeMap: ecs.NewMap[components.Genome](world),
		brainMap:  ecs.NewMap[components.Brain](world),

		index: make(map[uint32]ecs.Entity),

		events:       environment.NewEventCycle(cfg.Events.EraDuration, cfg.Events.BlendStep, cfg.Events.AutoCycle),
		sphereCenter: r3.Vec{Y: cfg.Derived.SphereCenter},

		observer: opts.Observer,

		collector:  telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetime:   telemetry.NewLifetimeTracker(),
		bookmarks:  telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		hallOfFame: telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),

		logStats:    opts.LogStats,
		snapshotDir: opts.SnapshotDir,
		onStats:     opts.OnStats,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	s.output = output

	return s, nil
}

// Close writes the hall of fame and closes output files.
func (s *Simulation) Close() error {
	if err := s.output.WriteHallOfFame(s.hallOfFame); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	return s.output.Close()
}

// Config returns the configuration the simulation runs with.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Tick returns the number of ticks run so far.
func (s *Simulation) Tick() int {
	return s.tick
}

// Seed returns the seed of the simulation's random source.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// PopulationCount returns the number of live agents.
func (s *Simulation) PopulationCount() int {
	return len(s.order)
}

// TriggerEvent starts blending into evt, or back to a stable era for
// EventNone. Automatic cycling is left as is; callers that want the era to
// stick should also call SetAutoCycle(false).
func (s *Simulation) TriggerEvent(evt environment.EventID) {
	if evt != environment.EventNone && !evt.Valid() {
		return
	}
	s.events.Trigger(evt)
	slog.Info("era_triggered", "tick", s.tick, "era", evt.String())
}

// SetAutoCycle enables or disables automatic era rotation.
func (s *Simulation) SetAutoCycle(enabled bool) {
	s.events.SetAutoCycle(enabled)
}

// Events exposes the era cycle for read-only inspection.
func (s *Simulation) Events() *environment.EventCycle {
	return s.events
}

func (s *Simulation) notifyPopulation() {
	if s.observer != nil {
		s.observer.PopulationChanged(len(s.order))
	}
}
