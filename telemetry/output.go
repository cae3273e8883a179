package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/boids/config"
)

// CSVLog appends rows of T to a CSV file, writing the header once.
type CSVLog[T any] struct {
	file   *os.File
	header bool
}

// CreateCSVLog creates (or truncates) the file at path.
func CreateCSVLog[T any](path string) (*CSVLog[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &CSVLog[T]{file: f}, nil
}

// Append writes one row.
func (l *CSVLog[T]) Append(row T) error {
	rows := []T{row}
	var err error
	if l.header {
		err = gocsv.MarshalWithoutHeaders(rows, l.file)
	} else {
		err = gocsv.Marshal(rows, l.file)
		l.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(l.file.Name()), err)
	}
	return nil
}

// Close closes the file.
func (l *CSVLog[T]) Close() error {
	return l.file.Close()
}

// OutputManager writes the run directory: telemetry.csv, perf.csv,
// bookmarks.csv, the effective config.yaml and snapshots/.
// A nil manager discards everything.
type OutputManager struct {
	dir       string
	telemetry *CSVLog[WindowStats]
	perf      *CSVLog[PerfStatsCSV]
	bookmarks *CSVLog[Bookmark]
}

// NewOutputManager creates dir and the CSV logs in it.
// Returns nil if dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = CreateCSVLog[WindowStats](filepath.Join(dir, "telemetry.csv")); err != nil {
		return nil, err
	}
	if om.perf, err = CreateCSVLog[PerfStatsCSV](filepath.Join(dir, "perf.csv")); err != nil {
		om.Close()
		return nil, err
	}
	if om.bookmarks, err = CreateCSVLog[Bookmark](filepath.Join(dir, "bookmarks.csv")); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a stats window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.Append(stats)
}

// WritePerf appends the perf summary of the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32, boids int) error {
	if om == nil {
		return nil
	}
	return om.perf.Append(stats.ToCSV(windowEnd, boids))
}

// WriteBookmark appends a bookmark.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.Append(b)
}

// WriteSnapshot dumps a snapshot into snapshots/ and returns its path.
func (om *OutputManager) WriteSnapshot(snapshot *Snapshot) (string, error) {
	if om == nil || snapshot == nil {
		return "", nil
	}
	return SaveSnapshot(snapshot, filepath.Join(om.dir, "snapshots"))
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open log.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	if om.telemetry != nil {
		errs = append(errs, om.telemetry.Close())
	}
	if om.perf != nil {
		errs = append(errs, om.perf.Close())
	}
	if om.bookmarks != nil {
		errs = append(errs, om.bookmarks.Close())
	}
	return errors.Join(errs...)
}
