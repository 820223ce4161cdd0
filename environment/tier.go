package environment

// Tier is an agent's growth stage, from Raw (0) to Gaia (9).
type Tier uint8

const (
	Raw Tier = iota
	Voxeloid
	Organelle
	Cell
	Tissue
	Organ
	System
	Organism
	SuperOrganism
	Gaia
)

// NumTiers is the number of growth tiers.
const NumTiers = 10

// TierProps holds the size and lifespan scale of a tier.
type TierProps struct {
	Scale     float64
	Mass      float64
	Threshold int // bond size needed to advance; 999 means never
	MaxAge    int
}

var tierNames = [NumTiers]string{
	"Raw DNA", "Voxeloid", "Organelle", "Cell", "Tissue",
	"Organ", "System", "Organism", "Super Organism", "Gaia",
}

var tierProps = [NumTiers]TierProps{
	Raw:           {Scale: 1, Mass: 1, Threshold: 3, MaxAge: 2000},
	Voxeloid:      {Scale: 2.2, Mass: 4, Threshold: 3, MaxAge: 4000},
	Organelle:     {Scale: 4.5, Mass: 12, Threshold: 3, MaxAge: 6000},
	Cell:          {Scale: 9.0, Mass: 40, Threshold: 999, MaxAge: 8000},
	Tissue:        {Scale: 15, Mass: 100, Threshold: 999, MaxAge: 10000},
	Organ:         {Scale: 25, Mass: 200, Threshold: 999, MaxAge: 12000},
	System:        {Scale: 40, Mass: 500, Threshold: 999, MaxAge: 15000},
	Organism:      {Scale: 60, Mass: 1000, Threshold: 999, MaxAge: 20000},
	SuperOrganism: {Scale: 100, Mass: 5000, Threshold: 999, MaxAge: 30000},
	Gaia:          {Scale: 200, Mass: 10000, Threshold: 999, MaxAge: 50000},
}

// Valid reports whether t is within Raw..Gaia.
func (t Tier) Valid() bool {
	return t < NumTiers
}

// Props returns the tier's scale properties. Invalid tiers read as Raw.
func (t Tier) Props() TierProps {
	if !t.Valid() {
		return tierProps[Raw]
	}
	return tierProps[t]
}

// String returns the tier's display name.
func (t Tier) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return tierNames[t]
}
