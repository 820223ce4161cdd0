package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/gaia/neural"
	"github.com/pthm-cable/gaia/traits"
)

func sampleSpecies(name string, at time.Time) Species {
	tr, _ := traits.Lookup('G')
	return Species{
		ID:           NewID(),
		Name:         name,
		Letter:       "G",
		Variant:      []int{0, 1, 2, 3},
		StructGene:   "0123",
		InteractGene: "0132",
		Traits:       tr,
		Sequence:     "ATCG",
		Fitness:      2.5,
		Brain:        &neural.BrainWeights{W1: []float64{0.5}, B1: []float64{-0.25}},
		DiscoveredBy: DiscoveredByUser,
		Environment:  "Stable Era",
		Timestamp:    at,
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := sampleSpecies("first", base)
	second := sampleSpecies("second", base.Add(time.Minute))

	// Save out of order; List sorts by timestamp
	for _, sp := range []Species{second, first} {
		if err := store.Save(ctx, sp); err != nil {
			t.Fatalf("save %s: %v", sp.Name, err)
		}
	}

	got, err := store.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "first" || got.Traits != first.Traits || got.Brain == nil || got.Brain.W1[0] != 0.5 {
		t.Errorf("unexpected species loaded: %+v", got)
	}
	if !got.Timestamp.Equal(first.Timestamp) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, first.Timestamp)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: got %v, want ErrNotFound", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "first" || list[1].Name != "second" {
		t.Fatalf("list order wrong: %+v", list)
	}

	// Upsert on id
	renamed := first
	renamed.Name = "renamed"
	if err := store.Save(ctx, renamed); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = store.Get(ctx, first.ID)
	if err != nil || got.Name != "renamed" {
		t.Errorf("upsert not applied: %+v, %v", got, err)
	}
	if list, _ := store.List(ctx); len(list) != 2 {
		t.Errorf("upsert duplicated the record: %d entries", len(list))
	}

	if err := store.Save(ctx, Species{}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)

	// Records are copies
	ctx := context.Background()
	sp := sampleSpecies("x", time.Now())
	if err := store.Save(ctx, sp); err != nil {
		t.Fatal(err)
	}
	sp.Variant[0] = 9
	got, _ := store.Get(ctx, sp.ID)
	if got.Variant[0] != 0 {
		t.Error("stored record shares caller's slice")
	}

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, sp); err == nil {
		t.Error("save after close should fail")
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := NewStore(ctx, "sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := OpenSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sp := sampleSpecies("kept", time.Now().UTC())
	if err := store.Save(ctx, sp); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, sp.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Name != "kept" {
		t.Errorf("name = %q, want kept", got.Name)
	}
}

func TestNewStoreKinds(t *testing.T) {
	ctx := context.Background()
	if s, err := NewStore(ctx, "", ""); err != nil || s == nil {
		t.Errorf("default kind: %v", err)
	}
	if _, err := NewStore(ctx, "sqlite", ""); err == nil {
		t.Error("sqlite without path should fail")
	}
	if _, err := NewStore(ctx, "postgres", "x"); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestDefaultName(t *testing.T) {
	if got := DefaultName('Q', 17); got != "Specimen Q-17" {
		t.Errorf("DefaultName = %q", got)
	}
}
