// Package catalog stores discovered species records.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/gaia/neural"
	"github.com/pthm-cable/gaia/traits"
)

// ErrNotFound is returned by Get when no species has the requested id.
var ErrNotFound = errors.New("catalog: species not found")

// Discovery sources.
const (
	DiscoveredByUser       = "User"       // saved through the inspection tools
	DiscoveredBySimulation = "Simulation" // promoted from the hall of fame at the end of a run
)

// Species is an immutable record of one agent's heritable makeup at the
// moment it was catalogued.
type Species struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Letter       string               `json:"letter"`
	Variant      []int                `json:"variant"`
	StructGene   string               `json:"struct_gene"`
	InteractGene string               `json:"interact_gene"`
	Traits       traits.Traits        `json:"traits"`
	Tier         int                  `json:"tier"`
	Sequence     string               `json:"sequence,omitempty"`
	Fitness      float64              `json:"fitness"`
	Brain        *neural.BrainWeights `json:"brain,omitempty"`
	DiscoveredBy string               `json:"discovered_by"`
	Environment  string               `json:"environment"`
	Timestamp    time.Time            `json:"timestamp"`
}

// NewID returns a fresh random species id.
func NewID() string {
	return uuid.NewString()
}

// DefaultName is the name given to a species saved without one.
func DefaultName(letter byte, agentID uint32) string {
	return fmt.Sprintf("Specimen %c-%d", letter, agentID)
}

// Store persists species records.
type Store interface {
	Save(ctx context.Context, s Species) error
	Get(ctx context.Context, id string) (Species, error)
	List(ctx context.Context) ([]Species, error)
	Close() error
}

// NewStore opens a store of the given kind. Kind "" or "memory" needs no
// path; "sqlite" opens or creates the database at path.
func NewStore(ctx context.Context, kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported catalog backend: %s", kind)
	}
}

func encode(s Species) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode species %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(data []byte) (Species, error) {
	var s Species
	if err := json.Unmarshal(data, &s); err != nil {
		return Species{}, fmt.Errorf("decode species: %w", err)
	}
	return s, nil
}
