package sim

import (
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/components"
	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/genetics"
	"github.com/pthm-cable/gaia/neural"
	"github.com/pthm-cable/gaia/telemetry"
	"github.com/pthm-cable/gaia/traits"
)

// SpawnParams selects the archetype of a spawned agent. Zero or out-of-range
// values are chosen at random.
type SpawnParams struct {
	Letter  byte // 0 = random
	Variant int  // -1 = random
	ColorID int  // -1 = random
}

// RandomSpawn leaves every choice to the random source.
var RandomSpawn = SpawnParams{Variant: -1, ColorID: -1}

// Spawn creates one agent at a random position and returns its id.
func (s *Simulation) Spawn(p SpawnParams) uint32 {
	e := s.spawn(p)
	return s.orgMap.Get(e).ID
}

// spawn places a new agent within the spawn range, in the quadrant of its
// favoured biome, at a random height above the floor.
func (s *Simulation) spawn(p SpawnParams) ecs.Entity {
	cfg := s.cfg

	letter := p.Letter
	if !traits.IsArchetype(letter) {
		letter = traits.LetterAt(s.rng.Intn(traits.NumArchetypes()))
	}
	variant := p.Variant
	if variant < 0 || variant >= genetics.NumPermutations {
		variant = s.rng.Intn(genetics.NumPermutations)
	}
	colorID := p.ColorID
	if colorID < 0 || colorID >= cfg.Population.Colors {
		colorID = s.rng.Intn(cfg.Population.Colors)
	}

	tr, _ := traits.Lookup(letter)

	spawnRange := cfg.Derived.SpawnRange
	x := (s.rng.Float64() - 0.5) * spawnRange * 2
	z := (s.rng.Float64() - 0.5) * spawnRange * 2
	x, z = quadrant(tr.FavoredBiome, x, z)
	y := cfg.World.FloorY + cfg.World.SpawnHeight + s.rng.Float64()*cfg.World.SpawnSpread

	e := s.createAgent(r3.Vec{X: x, Y: y, Z: z}, letter, variant, colorID, tr, nil)
	s.registerBirth(e, telemetry.BirthSpawn, 0)
	return e
}

// quadrant folds (x, z) into the quadrant associated with a favoured biome.
func quadrant(b environment.BiomeID, x, z float64) (float64, float64) {
	ax, az := abs(x), abs(z)
	switch b {
	case 0:
		return ax, az
	case 1:
		return ax, -az
	case 2:
		return -ax, az
	case 3:
		return -ax, -az
	}
	return x, z
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// createAgent builds an agent with the given archetype and traits. A nil
// brain gets a fresh random network. Component pointers held by the caller
// are invalid after this returns.
func (s *Simulation) createAgent(pos r3.Vec, letter byte, variant, colorID int, tr traits.Traits, brain *neural.FFNN) ecs.Entity {
	cfg := s.cfg

	id := s.nextID()

	var gender uint8
	if s.rng.Float64() > 0.5 {
		gender = 1
	}

	structure := genetics.RandomStructure(s.rng)
	structure.Grow(s.rng)
	genome := components.Genome{Structure: structure}
	genome.Refresh()

	if brain == nil {
		brain = neural.NewFFNN(s.rng)
	}

	structGene, interactGene := genetics.Genes(variant)

	p := components.Position{}
	p.Set(pos)
	vel := components.Velocity{}
	rot := components.Rotation{
		VX: s.rng.Float64() * cfg.Agent.SpinSpeed,
		VY: s.rng.Float64() * cfg.Agent.SpinSpeed,
		VZ: s.rng.Float64() * cfg.Agent.SpinSpeed,
	}
	org := components.Organism{
		ID:           id,
		Letter:       letter,
		Variant:      uint8(variant),
		Gender:       gender,
		ColorID:      uint8(colorID),
		Job:          tr.Job(),
		Tier:         environment.Raw,
		Biome:        environment.BiomeAt(pos.X, pos.Z),
		Layer:        environment.LayerAt(pos.Y),
		StructGene:   structGene,
		InteractGene: interactGene,
	}
	energy := components.Energy{
		Value:  cfg.Agent.InitialEnergy,
		MaxAge: cfg.Agent.MaxAge,
	}
	b := components.Brain{Net: brain}

	e := s.agentMap.NewEntity(&p, &vel, &rot, &org, &tr, &energy, &genome, &b)
	s.order = append(s.order, e)
	s.index[id] = e
	s.maxID = id
	return e
}

// nextID returns max(live ids)+1, or 0 for an empty population.
func (s *Simulation) nextID() uint32 {
	if len(s.order) == 0 {
		return 0
	}
	return s.maxID + 1
}

func (s *Simulation) registerBirth(e ecs.Entity, kind telemetry.BirthKind, parentID uint32) {
	org := s.orgMap.Get(e)
	s.collector.RecordBirth(kind)
	s.lifetime.Register(org.ID, s.tick, org.Letter, kind, parentID)
}

// Reproduce breeds a child from two live agents and returns its id. Passing
// the same id twice clones a single parent. Returns false if either parent
// is unknown.
func (s *Simulation) Reproduce(parentA, parentB uint32) (uint32, bool) {
	a, okA := s.index[parentA]
	b, okB := s.index[parentB]
	if !okA || !okB {
		return 0, false
	}
	kind := telemetry.BirthSexual
	if a == b {
		kind = telemetry.BirthAsexual
	}
	child := s.reproduce(a, b, kind)
	return s.orgMap.Get(child).ID, true
}

// reproduce creates a child at parent a's position. The child inherits a's
// archetype and traits, with occasional perturbation of aggression and
// metabolism, and a mutated crossover of both brains. Only a pays the cost.
func (s *Simulation) reproduce(a, b ecs.Entity, kind telemetry.BirthKind) ecs.Entity {
	cfg := s.cfg.Reproduction

	orgA := *s.orgMap.Get(a)
	tr := *s.traitsMap.Get(a)
	pos := s.posMap.Get(a).Vec()
	pos.Y += cfg.BirthLift

	if s.rng.Float64() < cfg.TraitMutationChance {
		tr.Aggression += (s.rng.Float64()*2 - 1) * cfg.TraitMutationDelta
	}
	if s.rng.Float64() < cfg.TraitMutationChance {
		tr.Metabolism += (s.rng.Float64()*2 - 1) * cfg.TraitMutationDelta
	}

	brain := neural.Crossover(s.rng, s.brainMap.Get(a).Net, s.brainMap.Get(b).Net)
	brain.Mutate(s.rng, cfg.BrainMutationRate, cfg.BrainMutationStrength)

	child := s.createAgent(pos, orgA.Letter, int(orgA.Variant), int(orgA.ColorID), tr, brain)

	s.energyMap.Get(a).Value -= cfg.Cost
	s.registerBirth(child, kind, orgA.ID)
	s.lifetime.RecordChild(orgA.ID)
	if a != b {
		s.lifetime.RecordChild(s.orgMap.Get(b).ID)
	}
	return child
}

// Remove deletes the agents with the given ids. Unknown ids are ignored.
// Returns the number of agents removed.
func (s *Simulation) Remove(ids ...uint32) int {
	indices := make([]int, 0, len(ids))
	for i, e := range s.order {
		if slices.Contains(ids, s.orgMap.Get(e).ID) {
			indices = append(indices, i)
		}
	}
	s.remove(indices)
	if len(indices) > 0 {
		s.notifyPopulation()
	}
	return len(indices)
}

// remove deletes the agents at the given positions of the live order.
// Indices may repeat and come in any order. Surviving agents keep their
// relative order.
func (s *Simulation) remove(indices []int) {
	if len(indices) == 0 {
		return
	}
	slices.Sort(indices)
	indices = slices.Compact(indices)

	recomputeMax := false
	for _, i := range indices {
		e := s.order[i]
		id := s.orgMap.Get(e).ID
		delete(s.index, id)
		s.lifetime.Remove(id)
		if id == s.maxID {
			recomputeMax = true
		}
		s.world.RemoveEntity(e)
	}

	// Compact the order in one pass, skipping removed positions
	kept := s.order[:0]
	next := 0
	for i, e := range s.order {
		if next < len(indices) && indices[next] == i {
			next++
			continue
		}
		kept = append(kept, e)
	}
	clear(s.order[len(kept):])
	s.order = kept

	if recomputeMax {
		s.maxID = 0
		for id := range s.index {
			s.maxID = max(s.maxID, id)
		}
	}
}
