package telemetry

import (
	"testing"
)

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_OrderTransitions(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{WindowEndTick: 300, Boids: 50, Polarization: 0.3}); len(bms) != 0 {
		t.Fatalf("unexpected bookmarks for a disordered start: %v", bms)
	}

	bms := bd.Check(WindowStats{WindowEndTick: 600, Boids: 50, Polarization: 0.95})
	if !hasBookmark(bms, BookmarkOrdered) {
		t.Error("expected ordered bookmark")
	}

	// Dipping between the thresholds does not re-trigger.
	bms = bd.Check(WindowStats{WindowEndTick: 900, Boids: 50, Polarization: 0.7})
	if hasBookmark(bms, BookmarkOrdered) || hasBookmark(bms, BookmarkDisordered) {
		t.Errorf("unexpected transition inside the hysteresis band: %v", bms)
	}
	bms = bd.Check(WindowStats{WindowEndTick: 1200, Boids: 50, Polarization: 0.92})
	if hasBookmark(bms, BookmarkOrdered) {
		t.Error("ordered should not re-trigger without a disordered phase")
	}

	bms = bd.Check(WindowStats{WindowEndTick: 1500, Boids: 50, Polarization: 0.2})
	if !hasBookmark(bms, BookmarkDisordered) {
		t.Error("expected disordered bookmark")
	}
}

func TestBookmarkDetector_SingleBoidIgnored(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// A lone boid is trivially polarized.
	bms := bd.Check(WindowStats{WindowEndTick: 300, Boids: 1, Polarization: 1})
	if hasBookmark(bms, BookmarkOrdered) {
		t.Error("single boid should not trigger ordered")
	}
}

func TestBookmarkDetector_Fragmented(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), Boids: 50, Polarization: 0.3, IsolatedFrac: 0.05})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 1500, Boids: 50, Polarization: 0.3, IsolatedFrac: 0.4})
	if !hasBookmark(bms, BookmarkFragmented) {
		t.Error("expected fragmented bookmark")
	}
}

func TestBookmarkDetector_SteadyOncePerStreak(t *testing.T) {
	bd := NewBookmarkDetector(10)

	count := 0
	for i := 0; i < 8; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: int32(i * 300), Boids: 50, Polarization: 0.6})
		if hasBookmark(bms, BookmarkSteady) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("steady bookmarks = %d, want 1", count)
	}

	// Break the streak, then settle again.
	bd.Check(WindowStats{WindowEndTick: 3000, Boids: 50, Polarization: 0.1})
	count = 0
	for i := 0; i < 6; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: int32(3300 + i*300), Boids: 50, Polarization: 0.4})
		if hasBookmark(bms, BookmarkSteady) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("steady bookmarks after reset = %d, want 1", count)
	}
}

func TestBookmarkDetector_HistoryOrder(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := 1; i <= 7; i++ {
		bd.addToHistory(WindowStats{WindowEndTick: int32(i)})
	}

	history := bd.getHistory()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	for i, h := range history {
		if want := int32(i + 3); h.WindowEndTick != want {
			t.Errorf("history[%d] = %d, want %d", i, h.WindowEndTick, want)
		}
	}
}
