package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func vecNear(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestNew(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})

	if cam.Center != (r2.Vec{X: 1280, Y: 720}) {
		t.Errorf("expected camera at (1280, 720), got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})

	s := cam.WorldToScreen(r2.Vec{X: 1280, Y: 720})
	if !vecNear(s, r2.Vec{X: 640, Y: 360}) {
		t.Errorf("expected screen center (640, 360), got %v", s)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.Center = r2.Vec{X: 50, Y: 1400} // view straddles two edges
	cam.SetZoom(2)

	for _, s := range []r2.Vec{{X: 640, Y: 360}, {X: 100, Y: 100}, {X: 1200, Y: 600}} {
		w := cam.ScreenToWorld(s)
		if w.X < 0 || w.X >= 2560 || w.Y < 0 || w.Y >= 1440 {
			t.Errorf("ScreenToWorld(%v) = %v, outside the area", s, w)
		}
		if back := cam.WorldToScreen(w); !vecNear(back, s) {
			t.Errorf("roundtrip failed: %v -> %v -> %v", s, w, back)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.Center.X = 100

	// The right edge is closer through the wrap, so it shows left of center.
	s := cam.WorldToScreen(r2.Vec{X: 2500, Y: 720})
	if !vecNear(s, r2.Vec{X: 640 - 160, Y: 360}) {
		t.Errorf("expected (480, 360), got %v", s)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.Center.X = 100

	cam.Pan(r2.Vec{X: -200})

	if cam.Center.X != 2460 {
		t.Errorf("expected X to wrap to 2460, got %f", cam.Center.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})

	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0)
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestMinZoomPreventsDeadSpace(t *testing.T) {
	cam := New(r2.Vec{X: 800, Y: 600}, r2.Vec{X: 1600, Y: 800})

	// max(800/1600, 600/800) = 0.75
	if math.Abs(cam.MinZoom-0.75) > 1e-9 {
		t.Errorf("expected MinZoom 0.75, got %f", cam.MinZoom)
	}

	cam.SetZoom(cam.MinZoom)
	if visibleH := cam.Viewport.Y / cam.Zoom; math.Abs(visibleH-cam.World.Y) > 1e-9 {
		t.Errorf("at min zoom, visible height %f should equal world height %f", visibleH, cam.World.Y)
	}
}

func TestSmallWorldForcesZoomIn(t *testing.T) {
	// Area smaller than the window: 1:1 would show it twice.
	cam := New(r2.Vec{X: 800, Y: 600}, r2.Vec{X: 400, Y: 300})
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})

	if !cam.IsVisible(r2.Vec{X: 1280, Y: 720}, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(r2.Vec{X: 2400, Y: 1300}, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(r2.Vec{X: 600, Y: 720}, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestGhosts(t *testing.T) {
	// World exactly fills the view, as in the default window.
	cam := New(r2.Vec{X: 800, Y: 600}, r2.Vec{X: 800, Y: 600})

	tests := []struct {
		name string
		p    r2.Vec
		want int
	}{
		{"interior", r2.Vec{X: 400, Y: 300}, 0},
		{"left edge", r2.Vec{X: 3, Y: 300}, 1},
		{"bottom edge", r2.Vec{X: 400, Y: 598}, 1},
		{"corner", r2.Vec{X: 2, Y: 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ghosts := cam.Ghosts(tt.p, 10)
			if len(ghosts) != tt.want {
				t.Errorf("got %d ghosts %v, want %d", len(ghosts), ghosts, tt.want)
			}
		})
	}

	g := cam.Ghosts(r2.Vec{X: 3, Y: 300}, 10)
	if len(g) == 1 && !vecNear(g[0], r2.Vec{X: 803, Y: 300}) {
		t.Errorf("left-edge ghost at %v, want (803, 300)", g[0])
	}
}

func TestReset(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.Center = r2.Vec{X: 500, Y: 500}
	cam.Zoom = 2.5

	cam.Reset()

	if cam.Center != (r2.Vec{X: 1280, Y: 720}) {
		t.Errorf("expected position (1280, 720), got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
