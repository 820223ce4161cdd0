package sim

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/components"
	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/systems"
	"github.com/pthm-cable/gaia/telemetry"
)

// noCandidate is the distance reported when sensing found nothing.
const noCandidate = 999.0

// Step advances the simulation by one tick.
func (s *Simulation) Step() {
	s.perf.StartTick()
	s.tick++

	s.perf.StartPhase(telemetry.PhaseRain)
	if s.tick%s.cfg.Population.RainInterval == 0 {
		s.rain()
	}

	s.perf.StartPhase(telemetry.PhaseEvents)
	if s.events.Advance() {
		slog.Info("era_changed", "tick", s.tick, "era", s.events.Next().String())
	}

	s.perf.StartPhase(telemetry.PhaseAgents)
	s.dead = s.dead[:0]
	s.killed = s.killed[:0]
	s.births = 0

	// With live growth, agents born during the pass are visited too.
	limit := len(s.order)
	for i := 0; i < limit; i++ {
		s.updateAgent(i)
		if s.cfg.Simulation.LiveGrowth {
			limit = len(s.order)
		}
	}

	s.perf.StartPhase(telemetry.PhasePrune)
	s.prune()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
}

// Run advances the simulation by n ticks.
func (s *Simulation) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// senses is the result of one agent's neighbour sampling.
type senses struct {
	prey, mate         int // index into order, -1 if none
	preyDist, mateDist float64
	rivalDist          float64
}

// updateAgent runs the sense/decide/act cycle of the agent at index i.
func (s *Simulation) updateAgent(i int) {
	cfg := s.cfg
	e := s.order[i]

	_, _, rot, org, trp, energy, genome, brain := s.agentMap.Get(e)
	tr := *trp
	pos := s.posMap.Get(e).Vec()

	org.Biome = environment.BiomeAt(pos.X, pos.Z)
	org.Layer = environment.LayerAt(pos.Y)
	effects := org.Biome.Effects()
	rot.Spin()

	if s.rng.Float64() < cfg.Genetics.GrowthChance && genome.Structure.Grow(s.rng) {
		genome.Refresh()
		s.collector.RecordGrowth()
	}

	burn := systems.MetabolicBurn(cfg.Metabolism, tr.Metabolism, org.Biome, org.Tier)
	if systems.UpdateEnergy(energy, burn) {
		energy.Dead = true
		s.dead = append(s.dead, i)
		return
	}

	sn := s.sense(i, pos, org, tr.Aggression)

	inputs := systems.BuildInputs(energy, cfg.Agent.InitialEnergy,
		sn.preyDist, sn.mateDist, sn.rivalDist, cfg.Sensing.Range)
	out := brain.Net.Activate(inputs[:])
	brain.LastOutput = out

	drive := systems.DecodeOutputs(out, tr.Aggression, effects, org.Job, cfg.Movement)
	force := r3.Add(drive.Force, systems.CenterPull(pos, s.sphereCenter, cfg.Movement.CenterPull))

	// Predation
	pc := cfg.Predation
	if sn.prey >= 0 && drive.Aggression > pc.AggressionThreshold && energy.Value < pc.HungerThreshold {
		prey := s.order[sn.prey]
		steer, dist := systems.Steer(pos, s.posMap.Get(prey).Vec(), pc.SteerGain)
		force = r3.Add(force, steer)

		if dist < pc.ContactRange {
			preyEnergy := s.energyMap.Get(prey)
			energy.Value += preyEnergy.Value * pc.EnergyShare
			genome.Fitness += pc.FitnessBonus
			preyEnergy.Value = pc.CarcassEnergy
			s.killed = append(s.killed, sn.prey)
			s.collector.RecordKill()
			s.lifetime.RecordKill(org.ID)
		}
	}

	// Mating. Reproduction adds entities, so component pointers are
	// refetched afterwards.
	mc := cfg.Mating
	if sn.mate >= 0 && drive.Desire > mc.DesireThreshold && energy.Value > mc.MinEnergy {
		mate := s.order[sn.mate]
		steer, dist := systems.Steer(pos, s.posMap.Get(mate).Vec(), mc.SteerGain)
		force = r3.Add(force, steer)

		if dist < mc.ContactRange && s.canBreed() &&
			len(s.order) < cfg.Population.Capacity &&
			s.rng.Float64() < mc.BaseChance*effects.ReproSpeed {
			s.reproduce(e, mate, telemetry.BirthSexual)
			s.births++
		}
	}

	// Asexual reproduction ignores the capacity limit.
	if tr.Asexual && s.canBreed() && s.energyMap.Get(e).Value > cfg.Reproduction.AsexualMinEnergy &&
		s.rng.Float64() < tr.ReproRate {
		s.reproduce(e, e, telemetry.BirthAsexual)
		s.births++
	}

	mv := cfg.Movement
	systems.Integrate(s.posMap.Get(e), s.velMap.Get(e), force, mv.Damping, cfg.World.FloorY, mv.FloorBounce)
}

// canBreed reports whether the per-tick birth cap still has room.
func (s *Simulation) canBreed() bool {
	return s.births < s.cfg.Simulation.MaxBirthsPerTick
}

// sense samples random other agents and reports the nearest prey, mate and
// rival. Agents already dead this tick are skipped.
func (s *Simulation) sense(i int, pos r3.Vec, self *components.Organism, aggression float64) senses {
	sc := s.cfg.Sensing
	sn := senses{
		prey:      -1,
		mate:      -1,
		preyDist:  noCandidate,
		mateDist:  noCandidate,
		rivalDist: noCandidate,
	}

	n := len(s.order)
	if n < 2 {
		return sn
	}

	for k := 0; k < sc.Samples; k++ {
		j := s.rng.Intn(n - 1)
		if j >= i {
			j++
		}
		other := s.order[j]

		if oe := s.energyMap.Get(other); oe.Dead || oe.Value <= 0 {
			continue
		}
		oo := s.orgMap.Get(other)
		d := r3.Norm(r3.Sub(s.posMap.Get(other).Vec(), pos))

		switch systems.Classify(self, oo, aggression, d, sc) {
		case systems.Prey:
			if d < sn.preyDist {
				sn.preyDist = d
				sn.prey = j
			}
		case systems.Mate:
			if d < sn.mateDist {
				sn.mateDist = d
				sn.mate = j
			}
		case systems.Rival:
			sn.rivalDist = min(sn.rivalDist, d)
		}
	}
	return sn
}

// prune removes agents that died or were killed during the pass.
func (s *Simulation) prune() {
	if len(s.dead) == 0 && len(s.killed) == 0 {
		return
	}

	killed := make(map[int]bool, len(s.killed))
	for _, i := range s.killed {
		killed[i] = true
	}

	indices := append(s.dead, s.killed...)
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if seen[i] {
			continue
		}
		seen[i] = true

		e := s.order[i]
		energy := s.energyMap.Get(e)
		cause := telemetry.DeathOldAge
		switch {
		case killed[i]:
			cause = telemetry.DeathPredation
		case energy.Value <= 0:
			cause = telemetry.DeathStarvation
		}
		s.collector.RecordDeath(cause)
		s.considerForHall(e)
	}

	s.remove(indices)
	s.dead = indices[:0]
	s.notifyPopulation()

	if len(s.order) == 0 {
		slog.Info("population_extinct", "tick", s.tick)
	}
}
