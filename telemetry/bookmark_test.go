package telemetry

import "testing"

func countType(bookmarks []Bookmark, typ BookmarkType) int {
	n := 0
	for _, b := range bookmarks {
		if b.Type == typ {
			n++
		}
	}
	return n
}

func TestBookmarkDetector_HuntSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 100, Population: 100, Kills: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, Population: 100, Kills: 8})
	if countType(bookmarks, BookmarkHuntSurge) != 1 {
		t.Errorf("expected hunt_surge bookmark, got %+v", bookmarks)
	}
}

func TestBookmarkDetector_HuntSurgeNeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{Population: 100, Kills: 1})

	bookmarks := bd.Check(WindowStats{Population: 100, Kills: 50})
	if countType(bookmarks, BookmarkHuntSurge) != 0 {
		t.Error("hunt_surge fired without enough history")
	}
}

func TestBookmarkDetector_BirthBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{Population: 100, SexualBirths: 3, AsexualBirths: 2})
	}

	bookmarks := bd.Check(WindowStats{Population: 100, SexualBirths: 15, AsexualBirths: 5})
	if countType(bookmarks, BookmarkBirthBoom) != 1 {
		t.Errorf("expected birth_boom bookmark, got %+v", bookmarks)
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 100, Population: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, Population: 50})
	if countType(bookmarks, BookmarkPopulationCrash) != 1 {
		t.Fatalf("expected population_crash bookmark, got %+v", bookmarks)
	}

	// Peak resets after a crash; a further small drop does not fire.
	bookmarks = bd.Check(WindowStats{WindowEndTick: 600, Population: 45})
	if countType(bookmarks, BookmarkPopulationCrash) != 0 {
		t.Error("population_crash fired again without a new peak")
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if countType(bd.Check(WindowStats{Population: 0}), BookmarkExtinction) != 1 {
		t.Error("expected extinction bookmark")
	}
	if countType(bd.Check(WindowStats{Population: 0}), BookmarkExtinction) != 0 {
		t.Error("extinction fired twice in a row")
	}
	bd.Check(WindowStats{Population: 5})
	if countType(bd.Check(WindowStats{Population: 0}), BookmarkExtinction) != 1 {
		t.Error("expected extinction after recovery")
	}
}

func TestBookmarkDetector_StablePopulation(t *testing.T) {
	bd := NewBookmarkDetector(20)

	fired := 0
	for i := 0; i < 12; i++ {
		fired += countType(bd.Check(WindowStats{WindowEndTick: i * 100, Population: 100 + i%2}), BookmarkStablePopulation)
	}
	if fired != 1 {
		t.Errorf("stable_population fired %d times, want 1", fired)
	}
}
