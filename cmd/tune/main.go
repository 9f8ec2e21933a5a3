// Package main fits an archetype's traction and drag constants to a target
// top speed and sprint time using CMA-ES over headless straight-line runs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/drive/config"
)

// LogRow is one evaluation in tune_log.csv.
type LogRow struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	TractionForce float64 `csv:"traction_force"`
	AirResistance float64 `csv:"air_resistance"`
	TopSpeed      float64 `csv:"top_speed"`
	SprintTime    float64 `csv:"sprint_time"`
}

// tuneLog appends LogRows to a CSV stream, writing the header once.
type tuneLog struct {
	w      io.Writer
	header bool
}

func (l *tuneLog) Write(row LogRow) error {
	rows := []LogRow{row}
	if l.header {
		return gocsv.MarshalWithoutHeaders(rows, l.w)
	}
	l.header = true
	return gocsv.Marshal(rows, l.w)
}

// tuner records every evaluation and remembers the best one seen.
type tuner struct {
	params    *ParamVector
	evaluator *FitnessEvaluator
	log       *tuneLog
	maxEvals  int

	evals   int
	best    float64
	bestRaw []float64
	started time.Time
}

// objective is the function handed to optimize.Minimize. x is in
// normalized [0, 1] space.
func (t *tuner) objective(x []float64) float64 {
	raw := t.params.Clamp(t.params.Denormalize(x))
	fitness := t.evaluator.Evaluate(raw)
	t.evals++
	if t.bestRaw == nil || fitness < t.best {
		t.best, t.bestRaw = fitness, raw
	}

	perf := t.evaluator.LastPerformance()
	err := t.log.Write(LogRow{
		Eval:          t.evals,
		Fitness:       fitness,
		TractionForce: raw[0],
		AirResistance: raw[1],
		TopSpeed:      perf.TopSpeed,
		SprintTime:    perf.SprintTime,
	})
	if err != nil {
		log.Printf("writing log row: %v", err)
	}

	elapsed := time.Since(t.started)
	eta := time.Duration(t.maxEvals-t.evals) * (elapsed / time.Duration(t.evals))
	fmt.Printf("eval %d/%d  top=%.1fm/s sprint=%.2fs  fitness=%.5f best=%.5f  [%s, eta %s]\n",
		t.evals, t.maxEvals, perf.TopSpeed, perf.SprintTime, fitness, t.best,
		shortDuration(elapsed), shortDuration(eta))
	return fitness
}

// shortDuration renders d rounded to seconds, e.g. "4m05s" or "1h02m00s".
func shortDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Base config YAML (empty = embedded defaults)")
	archetype := flag.String("archetype", "car", "Archetype to tune")
	topSpeed := flag.Float64("top-speed", 50, "Target top speed (m/s)")
	sprintTo := flag.Float64("sprint-to", 27.78, "Sprint target speed (m/s)")
	sprintTime := flag.Float64("sprint-time", 5, "Target seconds from rest to -sprint-to")
	duration := flag.Float64("duration", 90, "Sim seconds per straight-line run")
	maxEvals := flag.Int("max-evals", 200, "Evaluation budget")
	population := flag.Int("population", 0, "CMA-ES population (0 = 4 + 3*dim/2)")
	outputDir := flag.String("output", "", "Directory for tune_log.csv and best_config.yaml")
	flag.Parse()

	if *outputDir == "" {
		return errors.New("-output is required")
	}
	if *topSpeed <= 0 || *sprintTo <= 0 || *sprintTime <= 0 {
		return errors.New("targets must be positive")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	idx, ok := cfg.Derived.ArchetypeIndex[*archetype]
	if !ok {
		return fmt.Errorf("unknown archetype %q", *archetype)
	}
	base := cfg.Archetypes[idx].Vehicle

	f, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer f.Close()

	params := NewParamVector()
	target := Target{TopSpeed: *topSpeed, SprintTo: *sprintTo, SprintTime: *sprintTime}
	t := &tuner{
		params:    params,
		evaluator: NewFitnessEvaluator(params, base, target, cfg.Sim.DT, *duration),
		log:       &tuneLog{w: f},
		maxEvals:  *maxEvals,
		started:   time.Now(),
	}

	pop := *population
	if pop <= 0 {
		pop = 4 + 3*params.Dim()/2
	}

	fmt.Printf("tuning %q: top=%.1fm/s, 0-%.1fm/s in %.2fs, %d evals\n",
		*archetype, *topSpeed, *sprintTo, *sprintTime, *maxEvals)

	_, err = optimize.Minimize(
		optimize.Problem{Func: t.objective},
		params.Normalize(params.Clamp(params.Extract(base))),
		&optimize.Settings{FuncEvaluations: *maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: pop},
	)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if t.bestRaw == nil {
		return errors.New("no evaluations completed")
	}

	fmt.Printf("\ndone: %d evals in %s, best fitness %.6f\n", t.evals, shortDuration(time.Since(t.started)), t.best)
	for i, p := range params.Specs {
		fmt.Printf("  %s: %.4f\n", p.Name, t.bestRaw[i])
	}

	cfg.Archetypes[idx].Vehicle = params.Apply(base, t.bestRaw)
	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		return err
	}
	fmt.Printf("best config written to %s\n", out)
	return nil
}
