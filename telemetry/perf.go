package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame, in execution order.
const (
	PhaseInput     = "input"
	PhaseDynamics  = "dynamics"
	PhaseCamera    = "camera"
	PhaseTelemetry = "telemetry"
)

// Phases lists all frame phases in execution order.
var Phases = []string{PhaseInput, PhaseDynamics, PhaseCamera, PhaseTelemetry}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector times frame phases and keeps the last windowSize samples.
type PerfCollector struct {
	ring []PerfSample
	next int
	full bool

	// In-flight frame
	open      PerfSample
	started   time.Time
	phase     string
	phaseFrom time.Time

	// Host frame pacing (graphics mode)
	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
// Non-positive sizes fall back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]PerfSample, windowSize)}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.started = time.Now()
	p.open = PerfSample{Phases: make(map[string]time.Duration, len(Phases))}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.phaseFrom = phase, now
}

// EndTick closes the running phase and stores the frame in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.open.TickDuration = now.Sub(p.started)
	p.push(p.open)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.open.Phases[p.phase] += now.Sub(p.phaseFrom)
	}
}

func (p *PerfCollector) push(s PerfSample) {
	p.ring[p.next] = s
	p.next++
	if p.next == len(p.ring) {
		p.next, p.full = 0, true
	}
}

// window returns the stored samples in no particular order.
func (p *PerfCollector) window() []PerfSample {
	if p.full {
		return p.ring
	}
	return p.ring[:p.next]
}

// RecordFrame marks the start of a host frame for FPS reporting.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame step timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Average duration per phase, keyed by phase name
	PhaseAvg map[string]time.Duration

	// Phase share of the average step, in percent
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Host frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}

	samples := p.window()
	if len(samples) == 0 {
		return stats
	}

	ticks := make([]float64, len(samples))
	phaseSum := make(map[string]time.Duration)
	for i, s := range samples {
		ticks[i] = float64(s.TickDuration)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}
	sort.Float64s(ticks)

	stats.AvgTickDuration = time.Duration(stat.Mean(ticks, nil))
	stats.MinTickDuration = time.Duration(ticks[0])
	stats.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	stats.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))

	n := time.Duration(len(samples))
	for phase, sum := range phaseSum {
		stats.PhaseAvg[phase] = sum / n
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[phase] = 100 * float64(sum/n) / float64(stats.AvgTickDuration)
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats writes one "perf" log line with phase shares rounded to 0.1%.
func (s PerfStats) LogStats() {
	args := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		args = append(args, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			args = append(args, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", args...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 6+len(Phases))
	attrs = append(attrs,
		slog.Duration("avg_tick", s.AvgTickDuration),
		slog.Duration("min_tick", s.MinTickDuration),
		slog.Duration("max_tick", s.MaxTickDuration),
		slog.Duration("p95_tick", s.P95TickDuration),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	)
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	DynamicsPct  float64 `csv:"dynamics_pct"`
	CameraPct    float64 `csv:"camera_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row ending at tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	us := func(d time.Duration) int64 { return d.Microseconds() }
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    us(s.AvgTickDuration),
		MinTickUS:    us(s.MinTickDuration),
		MaxTickUS:    us(s.MaxTickDuration),
		P95TickUS:    us(s.P95TickDuration),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		DynamicsPct:  s.PhasePct[PhaseDynamics],
		CameraPct:    s.PhasePct[PhaseCamera],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
