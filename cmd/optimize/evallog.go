package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// evalLog writes one CSV row per evaluation and tracks the best parameters
// seen so far.
type evalLog struct {
	w        *csv.Writer
	params   *ParamVector
	maxEvals int
	start    time.Time

	count       int
	bestFitness float64
	bestParams  []float64
}

func newEvalLog(out io.Writer, params *ParamVector, maxEvals int) *evalLog {
	l := &evalLog{
		w:           csv.NewWriter(out),
		params:      params,
		maxEvals:    maxEvals,
		start:       time.Now(),
		bestFitness: 1e9,
	}
	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	l.w.Write(header)
	l.w.Flush()
	return l
}

// record logs one evaluation of the clamped parameter values.
func (l *evalLog) record(values []float64, fitness, quality float64) {
	l.count++
	if fitness < l.bestFitness {
		l.bestFitness = fitness
		l.bestParams = values
	}

	row := []string{strconv.Itoa(l.count), fmt.Sprintf("%.6f", fitness), fmt.Sprintf("%.4f", quality)}
	for _, v := range values {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	l.w.Write(row)
	l.w.Flush()

	elapsed := time.Since(l.start)
	eta := time.Duration(l.maxEvals-l.count) * (elapsed / time.Duration(l.count))
	// fitness = -(survival * (1 + 0.2*quality))
	survival := -fitness / (1 + 0.2*quality)
	fmt.Printf("Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
		l.count, l.maxEvals, survival, quality, l.bestFitness,
		elapsed.Round(time.Second), eta.Round(time.Second))
}

// summary prints the final result table.
func (l *evalLog) summary(w io.Writer, best []float64) {
	fmt.Fprintf(w, "\nOptimization complete after %d evaluations in %s\n",
		l.count, time.Since(l.start).Round(time.Second))
	fmt.Fprintf(w, "Best fitness: %.0f\n\nBest parameters:\n", l.bestFitness)
	for i, spec := range l.params.Specs {
		fmt.Fprintf(w, "  %s (%s): %.6f\n", spec.Name, spec.Path, best[i])
	}
}
