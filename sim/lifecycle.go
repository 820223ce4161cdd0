package sim

import "log/slog"

// SpawnInitialPopulation spawns count random agents. A count of zero or
// less uses the configured initial population.
func (s *Simulation) SpawnInitialPopulation(count int) {
	if count <= 0 {
		count = s.cfg.Population.Initial
	}
	for i := 0; i < count; i++ {
		s.spawn(RandomSpawn)
	}

	slog.Info("population_seeded", "count", count, "population", len(s.order))
	s.notifyPopulation()
}

// rain spawns a small batch of random agents while below capacity.
func (s *Simulation) rain() {
	if len(s.order) >= s.cfg.Population.Capacity {
		return
	}
	for i := 0; i < s.cfg.Population.RainCount; i++ {
		s.spawn(RandomSpawn)
	}
}
