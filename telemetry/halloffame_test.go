package telemetry

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pthm-cable/gaia/catalog"
)

func entry(letter string, fitness float64) HallEntry {
	return HallEntry{Species: catalog.Species{
		ID:      fmt.Sprintf("%s-%.2f", letter, fitness),
		Letter:  letter,
		Fitness: fitness,
	}}
}

func TestHallOfFameKeepsFittest(t *testing.T) {
	hof := NewHallOfFame(3)

	for _, f := range []float64{1, 5, 3, 2, 4} {
		hof.Consider(entry("A", f))
	}

	if hof.Size("A") != 3 {
		t.Fatalf("size = %d, want 3", hof.Size("A"))
	}
	top := hof.Top(-1)
	want := []float64{5, 4, 3}
	for i, e := range top {
		if e.Fitness() != want[i] {
			t.Errorf("top[%d] = %v, want %v", i, e.Fitness(), want[i])
		}
	}

	if hof.Qualifies("A", 3) {
		t.Error("fitness equal to the weakest entry should not qualify")
	}
	if !hof.Qualifies("A", 3.5) || !hof.Qualifies("G", 0) {
		t.Error("expected entries to qualify")
	}
	if hof.Consider(entry("A", 0.5)) {
		t.Error("weak entry admitted to a full hall")
	}
}

func TestHallOfFamePerLetter(t *testing.T) {
	hof := NewHallOfFame(2)
	hof.Consider(entry("A", 1))
	hof.Consider(entry("A", 2))
	hof.Consider(entry("G", 0.5))

	if hof.Len() != 3 {
		t.Errorf("len = %d, want 3", hof.Len())
	}

	top := hof.Top(2)
	if len(top) != 2 || top[0].Fitness() != 2 || top[1].Fitness() != 1 {
		t.Errorf("top(2) = %+v", top)
	}
	if len(hof.Top(10)) != 3 {
		t.Error("top(n) larger than the hall should return every entry")
	}
}

func TestHallOfFameJSON(t *testing.T) {
	hof := NewHallOfFame(2)
	e := entry("V", 2.5)
	e.Kills = 3
	hof.Consider(e)

	data, err := hof.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var decoded map[string][]struct {
		Kills   int             `json:"kills"`
		Species catalog.Species `json:"species"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded["V"]) != 1 || decoded["V"][0].Kills != 3 || decoded["V"][0].Species.Fitness != 2.5 {
		t.Errorf("decoded = %+v", decoded)
	}
}
