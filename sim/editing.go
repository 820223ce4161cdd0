package sim

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/catalog"
	"github.com/pthm-cable/gaia/genetics"
	"github.com/pthm-cable/gaia/neural"
	"github.com/pthm-cable/gaia/telemetry"
	"github.com/pthm-cable/gaia/traits"
)

// SetTraits merges patch into the agent's traits and, if job is non-nil,
// overrides its job class. Returns false if the agent does not exist.
func (s *Simulation) SetTraits(id uint32, patch traits.Patch, job *traits.JobClass) bool {
	e, ok := s.index[id]
	if !ok {
		return false
	}
	tr := s.traitsMap.Get(e)
	*tr = tr.Apply(patch)
	if job != nil {
		s.orgMap.Get(e).Job = *job
	}
	slog.Info("traits_edited", "agent", id)
	return true
}

// SetGenes replaces the agent's display genes and applies a large mutation
// to its brain. Returns false if the agent does not exist.
func (s *Simulation) SetGenes(id uint32, structGene, interactGene string) bool {
	e, ok := s.index[id]
	if !ok {
		return false
	}
	org := s.orgMap.Get(e)
	org.StructGene = structGene
	org.InteractGene = interactGene
	s.brainMap.Get(e).Net.Mutate(s.rng, s.cfg.Editing.GeneEditRate, s.cfg.Editing.GeneEditStrength)
	slog.Info("genes_edited", "agent", id, "struct_gene", structGene, "interact_gene", interactGene)
	return true
}

// Descriptor describes the agents to inject: an archetype letter with
// optional variant and traits overriding the registry.
type Descriptor struct {
	Letter  byte
	Variant []int          // permutation of 0..3; nil picks one at random
	Traits  *traits.Traits // nil uses the registry entry
	Brain   *neural.BrainWeights
}

// LetterDescriptor describes a plain archetype.
func LetterDescriptor(letter byte) Descriptor {
	return Descriptor{Letter: letter}
}

// SpeciesDescriptor describes a catalogued species.
func SpeciesDescriptor(sp catalog.Species) Descriptor {
	d := Descriptor{Variant: sp.Variant, Brain: sp.Brain}
	if sp.Letter != "" {
		d.Letter = sp.Letter[0]
	}
	// Non-nil even when empty, so an unrecognised variant resolves to 0
	if d.Variant == nil {
		d.Variant = []int{}
	}
	tr := sp.Traits
	d.Traits = &tr
	return d
}

// variantIndex resolves the descriptor variant: random when unset, 0 when
// it is not a known permutation.
func (d Descriptor) variantIndex(rng *rand.Rand) int {
	if d.Variant == nil {
		return rng.Intn(genetics.NumPermutations)
	}
	if len(d.Variant) != genetics.NumBases {
		return 0
	}
	var p [genetics.NumBases]uint8
	for i, v := range d.Variant {
		if v < 0 || v >= genetics.NumBases {
			return 0
		}
		p[i] = uint8(v)
	}
	return max(genetics.PermutationIndex(p), 0)
}

// InjectArchetype spawns count agents near the origin cloned from d. A
// count of zero or less uses the configured injection count. Returns the
// new agent ids, or nil if d names no usable archetype.
func (s *Simulation) InjectArchetype(d Descriptor, count int) []uint32 {
	cfg := s.cfg.Editing

	tr, ok := traits.Lookup(d.Letter)
	if d.Traits != nil {
		tr, ok = *d.Traits, d.Letter != 0
	}
	if !ok {
		return nil
	}
	if count <= 0 {
		count = cfg.InjectCount
	}

	ids := make([]uint32, 0, count)
	for i := 0; i < count; i++ {
		pos := r3.Vec{
			X: (s.rng.Float64() - 0.5) * cfg.InjectSpread,
			Y: s.cfg.World.FloorY + cfg.InjectHeight,
			Z: (s.rng.Float64() - 0.5) * cfg.InjectSpread,
		}

		var brain *neural.FFNN
		if d.Brain != nil {
			brain = &neural.FFNN{}
			brain.UnmarshalWeights(*d.Brain)
		}

		e := s.createAgent(pos, d.Letter, d.variantIndex(s.rng), 0, tr, brain)
		s.registerBirth(e, telemetry.BirthInjected, 0)
		ids = append(ids, s.orgMap.Get(e).ID)
	}

	slog.Info("archetype_injected", "letter", string(d.Letter), "count", count)
	s.notifyPopulation()
	return ids
}

// ExportSpecies captures the agent as a species record. An empty name
// gets a default one. Returns false if the agent does not exist.
func (s *Simulation) ExportSpecies(id uint32, name string) (catalog.Species, bool) {
	e, ok := s.index[id]
	if !ok {
		return catalog.Species{}, false
	}
	sp := s.species(e, name)
	sp.DiscoveredBy = catalog.DiscoveredByUser
	return sp, true
}

// species builds a species record from a live agent.
func (s *Simulation) species(e ecs.Entity, name string) catalog.Species {
	org := s.orgMap.Get(e)
	genome := s.genomeMap.Get(e)
	weights := s.brainMap.Get(e).Net.MarshalWeights()

	if name == "" {
		name = catalog.DefaultName(org.Letter, org.ID)
	}

	perm := genetics.Permutations[int(org.Variant)%genetics.NumPermutations]
	variant := make([]int, len(perm))
	for i, v := range perm {
		variant[i] = int(v)
	}

	return catalog.Species{
		ID:           catalog.NewID(),
		Name:         name,
		Letter:       string(org.Letter),
		Variant:      variant,
		StructGene:   org.StructGene,
		InteractGene: org.InteractGene,
		Traits:       *s.traitsMap.Get(e),
		Tier:         int(org.Tier),
		Sequence:     genome.Structure.String(),
		Fitness:      genome.Fitness,
		Brain:        &weights,
		Environment:  s.events.Era().String(),
		Timestamp:    time.Now(),
	}
}
