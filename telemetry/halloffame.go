package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/pthm-cable/gaia/catalog"
)

// HallEntry is a notable agent recorded as a species candidate.
type HallEntry struct {
	Species  catalog.Species
	Kills    int
	Children int
	Age      int
}

// Fitness returns the ranking key of the entry.
func (e HallEntry) Fitness() float64 {
	return e.Species.Fitness
}

// HallOfFame keeps the fittest agents seen during a run, one hall per
// archetype letter. Entries are sorted by descending fitness.
type HallOfFame struct {
	halls   map[string][]HallEntry
	maxSize int
}

// NewHallOfFame creates a hall of fame holding maxSize entries per letter.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		halls:   make(map[string][]HallEntry),
		maxSize: maxSize,
	}
}

// Qualifies reports whether an agent of the given letter and fitness would
// be admitted. Callers use it to skip building entries that would be
// dropped.
func (hof *HallOfFame) Qualifies(letter string, fitness float64) bool {
	hall := hof.halls[letter]
	return len(hall) < hof.maxSize || fitness > hall[len(hall)-1].Fitness()
}

// Consider inserts the entry if it qualifies. Returns true if it was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	letter := entry.Species.Letter
	if !hof.Qualifies(letter, entry.Fitness()) {
		return false
	}
	hof.halls[letter] = hof.insertEntry(hof.halls[letter], entry)
	return true
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness() < entry.Fitness()
	})

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall
}

// Top returns up to n entries across all letters, fittest first.
func (hof *HallOfFame) Top(n int) []HallEntry {
	var all []HallEntry
	for _, hall := range hof.halls {
		all = append(all, hall...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Fitness() != all[j].Fitness() {
			return all[i].Fitness() > all[j].Fitness()
		}
		return all[i].Species.ID < all[j].Species.ID
	})
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all
}

// Len returns the total number of entries.
func (hof *HallOfFame) Len() int {
	n := 0
	for _, hall := range hof.halls {
		n += len(hall)
	}
	return n
}

// Size returns the number of entries for a letter.
func (hof *HallOfFame) Size(letter string) int {
	return len(hof.halls[letter])
}

type hallEntryJSON struct {
	Kills    int             `json:"kills"`
	Children int             `json:"children"`
	Age      int             `json:"age"`
	Species  catalog.Species `json:"species"`
}

// MarshalJSON serializes the hall of fame keyed by archetype letter.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	export := make(map[string][]hallEntryJSON, len(hof.halls))
	for letter, hall := range hof.halls {
		entries := make([]hallEntryJSON, len(hall))
		for i, e := range hall {
			entries[i] = hallEntryJSON{
				Kills:    e.Kills,
				Children: e.Children,
				Age:      e.Age,
				Species:  e.Species,
			}
		}
		export[letter] = entries
	}
	return json.MarshalIndent(export, "", "  ")
}
