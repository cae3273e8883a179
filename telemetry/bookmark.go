package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkOrdered    BookmarkType = "ordered"      // polarization rose above the order threshold
	BookmarkDisordered BookmarkType = "disordered"   // polarization fell below the disorder threshold
	BookmarkFragmented BookmarkType = "fragmented"   // isolated fraction jumped above its rolling average
	BookmarkSteady     BookmarkType = "steady_state" // polarization flat over several windows
)

// Order transitions need a full swing from one threshold to the other.
const (
	orderedThreshold    = 0.9
	disorderedThreshold = 0.5
	steadyWindows       = 5
	steadyMaxStd        = 0.02
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the flock's history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	ordered       bool // last transition seen was into the ordered regime
	steadyReached bool // steady bookmark already emitted for the current streak
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < steadyWindows {
		historySize = steadyWindows
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkOrderTransition(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFragmented(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if b := bd.checkSteady(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the stored windows oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkOrderTransition(stats WindowStats) *Bookmark {
	if stats.Boids < 2 {
		return nil
	}

	switch {
	case !bd.ordered && stats.Polarization >= orderedThreshold:
		bd.ordered = true
		return &Bookmark{
			Type:        BookmarkOrdered,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Polarization reached %.2f with %d boids", stats.Polarization, stats.Boids),
		}
	case bd.ordered && stats.Polarization < disorderedThreshold:
		bd.ordered = false
		return &Bookmark{
			Type:        BookmarkDisordered,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Polarization dropped to %.2f", stats.Polarization),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkFragmented(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.IsolatedFrac
	}
	avg := sum / float64(len(history))

	// Needs a real jump, not noise around a near-zero average.
	if stats.IsolatedFrac >= 0.2 && stats.IsolatedFrac > avg*2 {
		return &Bookmark{
			Type:        BookmarkFragmented,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Isolated fraction %.2f vs average %.2f", stats.IsolatedFrac, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSteady(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < steadyWindows {
		return nil
	}

	recent := history[len(history)-steadyWindows:]
	pol := make([]float64, len(recent))
	for i, h := range recent {
		pol[i] = h.Polarization
	}
	_, std := stat.PopMeanStdDev(pol, nil)

	if std >= steadyMaxStd {
		bd.steadyReached = false
		return nil
	}
	if bd.steadyReached {
		return nil
	}
	bd.steadyReached = true
	return &Bookmark{
		Type:        BookmarkSteady,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Polarization steady at %.2f over %d windows", stats.Polarization, steadyWindows),
	}
}
