package telemetry

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/boids/flock"
)

func TestSnapshotSave(t *testing.T) {
	tmpDir := t.TempDir()

	p := flock.Wrapped()
	f := flock.NewFlock(&p, flock.WithConsistency(flock.Snapshot))
	f.Populate(5, rand.New(rand.NewSource(42)))
	for i := 0; i < 10; i++ {
		f.Step(16)
	}

	snapshot := CaptureSnapshot(f, 42, 10, 160)
	snapshot.Bookmark = &Bookmark{Type: BookmarkOrdered, Tick: 10, Description: "Test bookmark"}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}

	if loaded.Version != SnapshotVersion {
		t.Errorf("version = %d, want %d", loaded.Version, SnapshotVersion)
	}
	if loaded.RNGSeed != 42 || loaded.Tick != 10 || loaded.SimTime != 160 {
		t.Errorf("header mismatch: seed=%d tick=%d time=%v", loaded.RNGSeed, loaded.Tick, loaded.SimTime)
	}
	if loaded.Params != p {
		t.Errorf("params mismatch: got %+v, want %+v", loaded.Params, p)
	}
	if loaded.Consistency != "snapshot" {
		t.Errorf("consistency = %q, want snapshot", loaded.Consistency)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkOrdered {
		t.Errorf("bookmark not recorded: %+v", loaded.Bookmark)
	}

	if len(loaded.Boids) != f.Len() {
		t.Fatalf("recorded %d boids, want %d", len(loaded.Boids), f.Len())
	}
	for i, b := range f.Boids() {
		st := loaded.Boids[i]
		if b.X != float64(st.X) || b.Y != float64(st.Y) || b.Angle != float64(st.Angle) || b.Speed != float64(st.Speed) {
			t.Errorf("boid %d: recorded %+v, have %+v", i, st, b)
		}
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Params:   flock.Wrapped(),
		Bookmark: &Bookmark{Type: BookmarkSteady, Tick: 5000},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "snapshot_5000_steady_state.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	snapshotNoBookmark := &Snapshot{
		Version: SnapshotVersion,
		Tick:    3000,
		Params:  flock.Wrapped(),
	}

	path, err = SaveSnapshot(snapshotNoBookmark, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected = filepath.Join(tmpDir, "snapshot_3000.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestSnapshotNonFiniteParams(t *testing.T) {
	p := flock.Wrapped()
	p.MaxSpeed = math.Inf(1)
	f := flock.NewFlock(&p)
	f.Populate(3, rand.New(rand.NewSource(1)))

	path, err := SaveSnapshot(CaptureSnapshot(f, 1, 0, 0), t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot with infinite max speed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if !math.IsInf(loaded.Params.MaxSpeed, 1) {
		t.Errorf("max speed = %v, want +Inf", loaded.Params.MaxSpeed)
	}
	if loaded.Params.SightRadius != p.SightRadius || !loaded.Params.Wrap {
		t.Errorf("params = %+v, want %+v", loaded.Params, p)
	}
	if len(loaded.Boids) != 3 {
		t.Fatalf("boids = %d, want 3", len(loaded.Boids))
	}
	for i, b := range f.Boids() {
		if got := float64(loaded.Boids[i].Speed); got != b.Speed {
			t.Errorf("boid %d speed = %v, want %v", i, got, b.Speed)
		}
	}
}

func TestFloatJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
		{math.NaN(), `"NaN"`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(Float(tt.in))
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tt.in, err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, data, tt.want)
		}

		var back Float
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got := float64(back); got != tt.in && !(math.IsNaN(got) && math.IsNaN(tt.in)) {
			t.Errorf("Unmarshal(%s) = %v, want %v", data, got, tt.in)
		}
	}

	var bad Float
	if err := json.Unmarshal([]byte(`"fast"`), &bad); err == nil {
		t.Error("expected an error for a non-numeric string")
	}
}
