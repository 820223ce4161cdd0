package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/gaia/catalog"
	"github.com/pthm-cable/gaia/config"
	"github.com/pthm-cable/gaia/sim"
)

type runOptions struct {
	maxTicks    int
	initial     int
	catalogKind string
	catalogPath string
	exportTop   int
	seedSpecies string
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = until interrupted)")
	initial := flag.Int("initial", 0, "Initial population (0 = use config)")
	autoCycle := flag.Bool("auto-cycle", false, "Rotate environmental eras automatically (unset = use config)")
	catalogKind := flag.String("catalog-kind", "", "Species catalog backend: memory or sqlite (empty = sqlite when -catalog is set)")
	catalogPath := flag.String("catalog", "", "Species catalog database path (sqlite backend)")
	exportTop := flag.Int("export-top", 0, "Save the N fittest agents to the catalog at the end of the run")
	seedSpecies := flag.String("seed-species", "", "Inject the catalogued species with this id before the first tick")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// CLI overrides
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if flagWasSet(flag.CommandLine, "auto-cycle") {
		cfg.Events.AutoCycle = *autoCycle
	}

	s, err := sim.New(cfg, sim.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, s, runOptions{
		maxTicks:    *maxTicks,
		initial:     *initial,
		catalogKind: catalogBackend(*catalogKind, *catalogPath),
		catalogPath: *catalogPath,
		exportTop:   *exportTop,
		seedSpecies: *seedSpecies,
	})
	if cerr := s.Close(); cerr != nil {
		slog.Error("failed to close output", "error", cerr)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// flagWasSet reports whether name was given on the command line, so an
// explicit false can override the config.
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// catalogBackend resolves an empty backend kind from the database path.
func catalogBackend(kind, path string) string {
	if kind != "" {
		return kind
	}
	if path != "" {
		return "sqlite"
	}
	return "memory"
}

func run(ctx context.Context, s *sim.Simulation, opts runOptions) error {
	if opts.catalogKind == "memory" {
		if opts.seedSpecies != "" {
			return fmt.Errorf("seeding species %s: memory catalog is empty, set -catalog", opts.seedSpecies)
		}
		if opts.exportTop > 0 {
			slog.Warn("memory catalog is discarded at exit, set -catalog to keep exported species",
				"export_top", opts.exportTop)
		}
	}

	store, err := catalog.NewStore(ctx, opts.catalogKind, opts.catalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close()

	s.SpawnInitialPopulation(opts.initial)

	if opts.seedSpecies != "" {
		sp, err := store.Get(ctx, opts.seedSpecies)
		if err != nil {
			return fmt.Errorf("loading species %s: %w", opts.seedSpecies, err)
		}
		ids := s.InjectArchetype(sim.SpeciesDescriptor(sp), 0)
		slog.Info("species_seeded", "species", sp.Name, "agents", len(ids))
	}

	slog.Info("simulation_started",
		"seed", s.Seed(),
		"population", s.PopulationCount(),
		"max_ticks", opts.maxTicks,
		"live_growth", s.Config().Simulation.LiveGrowth,
		"auto_cycle", s.Events().AutoCycle(),
		"catalog", opts.catalogKind,
	)

	for ctx.Err() == nil {
		s.Step()

		if opts.maxTicks > 0 && s.Tick() >= opts.maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			break
		}
	}

	slog.Info("simulation_finished", "tick", s.Tick(), "population", s.PopulationCount())

	if opts.exportTop <= 0 {
		return nil
	}

	// Signal cancellation must not abort the final export.
	saveCtx := context.WithoutCancel(ctx)
	for _, sp := range s.TopSpecies(opts.exportTop) {
		if err := store.Save(saveCtx, sp); err != nil {
			return fmt.Errorf("saving species %s: %w", sp.ID, err)
		}
		slog.Info("species_saved", "id", sp.ID, "name", sp.Name, "fitness", sp.Fitness)
	}
	return nil
}
