package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pthm-cable/boids/flock"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 2

// Snapshot records the flock state at one tick for offline inspection.
// Snapshots are write-only; runs never resume from them.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick    int32   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Params      flock.Params `json:"params"`
	Consistency string       `json:"consistency"`

	Boids []BoidState `json:"boids"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// BoidState holds one boid's complete state.
type BoidState struct {
	X     Float `json:"x"`
	Y     Float `json:"y"`
	Angle Float `json:"angle"`
	Speed Float `json:"speed"`
}

// Float is a float64 that encodes non-finite values as the JSON strings
// "+Inf", "-Inf" and "NaN" instead of failing.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "+Inf":
			*f = Float(math.Inf(1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("invalid float %q", s)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// paramsJSON is the on-disk form of flock.Params.
type paramsJSON struct {
	SightRadius      Float `json:"sight_radius"`
	SightAngle       Float `json:"sight_angle"`
	RepelRadius      Float `json:"repel_radius"`
	MaxSpeed         Float `json:"max_speed"`
	MinSpeed         Float `json:"min_speed"`
	AreaWidth        Float `json:"area_width"`
	AreaHeight       Float `json:"area_height"`
	CenterWeight     Float `json:"center_weight"`
	AlignmentWeight  Float `json:"alignment_weight"`
	SeparationWeight Float `json:"separation_weight"`
	FieldOfView      bool  `json:"field_of_view"`
	Wrap             bool  `json:"wrap"`
	SpeedFloor       bool  `json:"speed_floor"`
}

func newParamsJSON(p flock.Params) paramsJSON {
	return paramsJSON{
		SightRadius:      Float(p.SightRadius),
		SightAngle:       Float(p.SightAngle),
		RepelRadius:      Float(p.RepelRadius),
		MaxSpeed:         Float(p.MaxSpeed),
		MinSpeed:         Float(p.MinSpeed),
		AreaWidth:        Float(p.AreaWidth),
		AreaHeight:       Float(p.AreaHeight),
		CenterWeight:     Float(p.CenterWeight),
		AlignmentWeight:  Float(p.AlignmentWeight),
		SeparationWeight: Float(p.SeparationWeight),
		FieldOfView:      p.FieldOfView,
		Wrap:             p.Wrap,
		SpeedFloor:       p.SpeedFloor,
	}
}

func (pj paramsJSON) params() flock.Params {
	return flock.Params{
		SightRadius:      float64(pj.SightRadius),
		SightAngle:       float64(pj.SightAngle),
		RepelRadius:      float64(pj.RepelRadius),
		MaxSpeed:         float64(pj.MaxSpeed),
		MinSpeed:         float64(pj.MinSpeed),
		AreaWidth:        float64(pj.AreaWidth),
		AreaHeight:       float64(pj.AreaHeight),
		CenterWeight:     float64(pj.CenterWeight),
		AlignmentWeight:  float64(pj.AlignmentWeight),
		SeparationWeight: float64(pj.SeparationWeight),
		FieldOfView:      pj.FieldOfView,
		Wrap:             pj.Wrap,
		SpeedFloor:       pj.SpeedFloor,
	}
}

// snapshotFields has Snapshot's fields without its methods.
type snapshotFields Snapshot

// MarshalJSON implements json.Marshaler. Params may hold an infinite
// MaxSpeed, which plain float64 encoding rejects.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		*snapshotFields
		Params paramsJSON `json:"params"`
	}{(*snapshotFields)(&s), newParamsJSON(s.Params)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	aux := struct {
		*snapshotFields
		Params paramsJSON `json:"params"`
	}{snapshotFields: (*snapshotFields)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Params = aux.Params.params()
	return nil
}

// CaptureSnapshot records the flock's current state.
func CaptureSnapshot(f *flock.Flock, seed int64, tick int32, simTime float64) *Snapshot {
	boids := f.Boids()
	states := make([]BoidState, len(boids))
	for i, b := range boids {
		states[i] = BoidState{X: Float(b.X), Y: Float(b.Y), Angle: Float(b.Angle), Speed: Float(b.Speed)}
	}
	return &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     seed,
		Tick:        tick,
		SimTime:     simTime,
		Params:      *f.Params(),
		Consistency: f.Consistency().String(),
		Boids:       states,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, snapshot.Bookmark.Type)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}
