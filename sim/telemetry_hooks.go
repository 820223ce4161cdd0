package sim

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gaia/catalog"
	"github.com/pthm-cable/gaia/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.samplePopulation(), s.events.Era())
	perfStats := s.perf.Stats()

	if s.onStats != nil {
		s.onStats(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if s.snapshotDir != "" {
			s.saveSnapshot(&bm)
		}
	}
}

// samplePopulation collects the distributions reported in a stats window.
func (s *Simulation) samplePopulation() telemetry.PopulationSample {
	n := len(s.order)
	sample := telemetry.PopulationSample{
		Energies:    make([]float64, 0, n),
		Fitnesses:   make([]float64, 0, n),
		SequenceLen: make([]float64, 0, n),
	}

	query := s.agentFilter.Query()
	for query.Next() {
		_, _, _, org, _, energy, genome, _ := query.Get()

		sample.Energies = append(sample.Energies, energy.Value)
		sample.Fitnesses = append(sample.Fitnesses, genome.Fitness)
		sample.SequenceLen = append(sample.SequenceLen, float64(genome.Structure.Len()))
		if int(org.Job) < len(sample.Jobs) {
			sample.Jobs[org.Job]++
		}
		if org.Tier.Valid() {
			sample.Tiers[org.Tier]++
		}

		s.lifetime.UpdateEnergy(org.ID, energy.Value)
	}

	return sample
}

// considerForHall offers a dying or surviving agent to the hall of fame.
func (s *Simulation) considerForHall(e ecs.Entity) {
	org := s.orgMap.Get(e)
	fitness := s.genomeMap.Get(e).Fitness
	if !s.hallOfFame.Qualifies(string(org.Letter), fitness) {
		return
	}

	entry := telemetry.HallEntry{Species: s.species(e, "")}
	entry.Species.DiscoveredBy = catalog.DiscoveredBySimulation
	if ls := s.lifetime.Get(org.ID); ls != nil {
		entry.Kills = ls.Kills
		entry.Children = ls.Children
		entry.Age = ls.Age(s.tick)
	}
	s.hallOfFame.Consider(entry)
}

// TopSpecies offers every live agent to the hall of fame and returns up to
// n of the fittest agents seen during the run as species records.
func (s *Simulation) TopSpecies(n int) []catalog.Species {
	for _, e := range s.order {
		s.considerForHall(e)
	}

	top := s.hallOfFame.Top(n)
	out := make([]catalog.Species, len(top))
	for i, entry := range top {
		out[i] = entry.Species
	}
	return out
}

// saveSnapshot writes the current population to the snapshot directory.
func (s *Simulation) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(s.Snapshot(bookmark), s.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot_saved", "path", path, "tick", s.tick)
}

// Snapshot captures the current population. bookmark may be nil.
func (s *Simulation) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  s.seed,
		Tick:     s.tick,
		Era:      s.events.Era().String(),
		Agents:   make([]telemetry.AgentState, 0, len(s.order)),
		Bookmark: bookmark,
	}

	for _, e := range s.order {
		pos, vel, _, org, tr, energy, genome, brain := s.agentMap.Get(e)

		var lifetime *telemetry.LifetimeStatsJSON
		if ls := s.lifetime.Get(org.ID); ls != nil {
			lifetime = ls.ToJSON()
		}

		snapshot.Agents = append(snapshot.Agents, telemetry.AgentState{
			ID:       org.ID,
			Letter:   string(org.Letter),
			Variant:  int(org.Variant),
			Gender:   int(org.Gender),
			ColorID:  int(org.ColorID),
			Job:      org.Job.String(),
			Tier:     int(org.Tier),
			X:        pos.X,
			Y:        pos.Y,
			Z:        pos.Z,
			VX:       vel.X,
			VY:       vel.Y,
			VZ:       vel.Z,
			Energy:   energy.Value,
			Age:      energy.Age,
			Traits:   *tr,
			Sequence: genome.Structure.String(),
			Fitness:  genome.Fitness,
			Brain:    brain.Net.MarshalWeights(),
			Lifetime: lifetime,
		})
	}

	return snapshot
}
