package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/environment"
	"github.com/pthm-cable/gaia/neural"
	"github.com/pthm-cable/gaia/traits"
)

// AgentView is a read-only copy of one agent's render and inspection state.
type AgentView struct {
	ID      uint32
	Letter  byte
	Variant int
	Gender  int
	ColorID int
	Job     traits.JobClass
	Tier    environment.Tier

	Position r3.Vec
	Velocity r3.Vec
	Rotation r3.Vec

	Traits     traits.Traits
	LastOutput [neural.NumOutputs]float64

	Sequence    string
	SequenceLen int
	Fitness     float64

	Energy float64
	Age    int
	MaxAge int

	Biome     environment.BiomeID
	Layer     int
	LayerName string

	StructGene   string
	InteractGene string
}

func (s *Simulation) view(e ecs.Entity) AgentView {
	pos, vel, rot, org, tr, energy, genome, brain := s.agentMap.Get(e)
	return AgentView{
		ID:           org.ID,
		Letter:       org.Letter,
		Variant:      int(org.Variant),
		Gender:       int(org.Gender),
		ColorID:      int(org.ColorID),
		Job:          org.Job,
		Tier:         org.Tier,
		Position:     pos.Vec(),
		Velocity:     vel.Vec(),
		Rotation:     r3.Vec{X: rot.X, Y: rot.Y, Z: rot.Z},
		Traits:       *tr,
		LastOutput:   brain.LastOutput,
		Sequence:     genome.Structure.String(),
		SequenceLen:  genome.Structure.Len(),
		Fitness:      genome.Fitness,
		Energy:       energy.Value,
		Age:          energy.Age,
		MaxAge:       energy.MaxAge,
		Biome:        org.Biome,
		Layer:        org.Layer,
		LayerName:    environment.LayerInfo(org.Layer).Name,
		StructGene:   org.StructGene,
		InteractGene: org.InteractGene,
	}
}

// Agent returns the view of one agent, or false if it does not exist.
func (s *Simulation) Agent(id uint32) (AgentView, bool) {
	e, ok := s.index[id]
	if !ok {
		return AgentView{}, false
	}
	return s.view(e), true
}

// Agents returns views of the live agents accepted by keep, in creation
// order. A nil keep accepts every agent.
func (s *Simulation) Agents(keep func(AgentView) bool) []AgentView {
	views := make([]AgentView, 0, len(s.order))
	for _, e := range s.order {
		v := s.view(e)
		if keep == nil || keep(v) {
			views = append(views, v)
		}
	}
	return views
}

// ByGender selects agents of one gender.
func ByGender(gender int) func(AgentView) bool {
	return func(v AgentView) bool { return v.Gender == gender }
}

// ByJob selects agents of one job class.
func ByJob(job traits.JobClass) func(AgentView) bool {
	return func(v AgentView) bool { return v.Job == job }
}

// TierHistogram counts live agents per growth tier.
func (s *Simulation) TierHistogram() [environment.NumTiers]int {
	var hist [environment.NumTiers]int
	query := s.agentFilter.Query()
	for query.Next() {
		_, _, _, org, _, _, _, _ := query.Get()
		if org.Tier.Valid() {
			hist[org.Tier]++
		}
	}
	return hist
}
