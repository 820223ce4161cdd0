package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of the simulation tick.
type Phase uint8

const (
	PhaseRain Phase = iota
	PhaseEvents
	PhaseAgents
	PhasePrune
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"rain", "events", "agents", "prune", "telemetry"}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// tickTiming is the wall time of one tick and of each of its phases.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps tick timings over a rolling window. Phases are timed
// back to back: starting a phase ends the previous one.
type PerfCollector struct {
	ring  []tickTiming
	next  int
	count int

	cur        tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]tickTiming, windowSize)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickTiming{}
	p.inPhase = false
}

// StartPhase closes the running phase and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats summarises the timings in the window.
type PerfStats struct {
	AvgTick, MinTick, MaxTick time.Duration
	TicksPerSecond            float64

	// Per-phase mean duration and share of the mean tick, in percent.
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64
}

// Stats aggregates the current window. An empty window yields zero stats.
func (p *PerfCollector) Stats() PerfStats {
	var st PerfStats
	if p.count == 0 {
		return st
	}

	var total time.Duration
	var phaseTotal [numPhases]time.Duration
	for i, tt := range p.ring[:p.count] {
		total += tt.total
		if i == 0 || tt.total < st.MinTick {
			st.MinTick = tt.total
		}
		st.MaxTick = max(st.MaxTick, tt.total)
		for ph, d := range tt.phases {
			phaseTotal[ph] += d
		}
	}

	n := time.Duration(p.count)
	st.AvgTick = total / n
	for ph := range phaseTotal {
		st.PhaseAvg[ph] = phaseTotal[ph] / n
		if st.AvgTick > 0 {
			st.PhasePct[ph] = 100 * float64(st.PhaseAvg[ph]) / float64(st.AvgTick)
		}
	}
	if st.AvgTick > 0 {
		st.TicksPerSecond = float64(time.Second) / float64(st.AvgTick)
	}
	return st
}

// LogStats logs the summary. Phases under 0.1% of the tick are omitted.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"min_tick_us", s.MinTick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	for ph := range numPhases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	RainPct      float64 `csv:"rain_pct"`
	EventsPct    float64 `csv:"events_pct"`
	AgentsPct    float64 `csv:"agents_pct"`
	PrunePct     float64 `csv:"prune_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MinTickUS:    s.MinTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		RainPct:      s.PhasePct[PhaseRain],
		EventsPct:    s.PhasePct[PhaseEvents],
		AgentsPct:    s.PhasePct[PhaseAgents],
		PrunePct:     s.PhasePct[PhasePrune],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
