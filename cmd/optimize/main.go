// Command optimize searches simulation parameters with CMA-ES for settings
// that keep a mixed, self-sustaining population alive.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/gaia/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 20000, "Tick cap per simulation run")
	seeds := flag.Int("seeds", 3, "Seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	fromDefaults := flag.Bool("from-defaults", false, "Start the search from the parameter table defaults instead of the base config")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Per-run simulation logging would drown the progress lines.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg)

	start := params.ExtractFromConfig(baseCfg)
	if *fromDefaults {
		start = params.DefaultVector()
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	elog := newEvalLog(logFile, params, *maxEvals)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			used := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(used)
			elog.record(used, fitness, evaluator.LastQuality())
			return fitness
		},
	}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}
	// Seeds already run in parallel inside Evaluate.
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}

	fmt.Printf("CMA-ES over %d parameters, population=%d, max_evals=%d, seeds=%d, ticks=%d\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, params.Normalize(start), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := elog.bestParams
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		log.Fatal("no evaluations completed")
	}
	elog.summary(os.Stdout, best)

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, best)
	if err := writeResults(*outputDir, &bestCfg, evaluator); err != nil {
		log.Fatal(err)
	}
}

// writeResults saves the best config and the fittest species of the best run.
func writeResults(dir string, cfg *config.Config, fe *FitnessEvaluator) error {
	configPath := filepath.Join(dir, "best_config.yaml")
	if err := cfg.WriteYAML(configPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("Best config saved to: %s\n", configPath)

	species := fe.BestSpecies()
	if len(species) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(species, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding species: %w", err)
	}
	speciesPath := filepath.Join(dir, "best_species.json")
	if err := os.WriteFile(speciesPath, data, 0644); err != nil {
		return fmt.Errorf("writing species: %w", err)
	}
	fmt.Printf("Best species saved to: %s\n", speciesPath)
	return nil
}
