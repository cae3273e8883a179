package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boids/flock"
)

// ControlsPanel lists the overlay toggles and their keys.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32 // as last drawn
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the overlay list and returns the Y below the panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight

	c.height = panelHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return c.y + panelHeight
}

// Contains reports whether a screen point lies on the visible panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return c.visible && inRect(x, y, c.x, c.y, c.width, c.height)
}

func inRect(x, y float32, rx, ry, rw, rh int32) bool {
	return x >= float32(rx) && x < float32(rx+rw) && y >= float32(ry) && y < float32(ry+rh)
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "perception":
		return "Perception"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// ParamSlider binds one numeric flock parameter to a slider.
// Min, Max and Get are in stored units; the slider shows them times Scale.
type ParamSlider struct {
	Label  string
	Format string
	Min    float64
	Max    func(p *flock.Params) float64
	Scale  float64
	Get    func(p *flock.Params) float64
	Set    func(p *flock.Params, v float64)
}

func fixed(v float64) func(*flock.Params) float64 {
	return func(*flock.Params) float64 { return v }
}

// DefaultParamSliders returns the sliders shown in the parameter panel.
func DefaultParamSliders() []ParamSlider {
	return []ParamSlider{
		{
			Label: "Sight radius", Format: "%.0f", Max: fixed(200), Scale: 1,
			Get: func(p *flock.Params) float64 { return p.SightRadius },
			Set: func(p *flock.Params, v float64) { p.SightRadius = v },
		},
		{
			Label: "Sight angle", Format: "%.0f deg", Max: fixed(2 * math.Pi), Scale: 180 / math.Pi,
			Get: func(p *flock.Params) float64 { return p.SightAngle },
			Set: func(p *flock.Params, v float64) { p.SightAngle = v },
		},
		{
			Label: "Repel radius", Format: "%.0f", Max: fixed(100), Scale: 1,
			Get: func(p *flock.Params) float64 { return p.RepelRadius },
			Set: func(p *flock.Params, v float64) { p.RepelRadius = v },
		},
		{
			Label: "Max speed", Format: "%.3f", Max: fixed(1), Scale: 1,
			Get: func(p *flock.Params) float64 { return p.MaxSpeed },
			Set: func(p *flock.Params, v float64) {
				p.MaxSpeed = v
				p.MinSpeed = min(p.MinSpeed, v)
			},
		},
		{
			Label: "Min speed", Format: "%.3f", Scale: 1,
			Max: func(p *flock.Params) float64 { return p.MaxSpeed },
			Get: func(p *flock.Params) float64 { return p.MinSpeed },
			Set: func(p *flock.Params, v float64) { p.MinSpeed = v },
		},
		{
			Label: "Cohesion", Format: "%.4f", Max: fixed(0.01), Scale: 1,
			Get: func(p *flock.Params) float64 { return p.CenterWeight },
			Set: func(p *flock.Params, v float64) { p.CenterWeight = v },
		},
		{
			Label: "Alignment", Format: "%.3f", Max: fixed(0.1), Scale: 1,
			Get: func(p *flock.Params) float64 { return p.AlignmentWeight },
			Set: func(p *flock.Params, v float64) { p.AlignmentWeight = v },
		},
		{
			Label: "Separation", Format: "%.3f", Max: fixed(0.2), Scale: 1,
			Get: func(p *flock.Params) float64 { return p.SeparationWeight },
			Set: func(p *flock.Params, v float64) { p.SeparationWeight = v },
		},
	}
}

// ParamToggle binds one boolean flock parameter to a checkbox.
type ParamToggle struct {
	Label string
	Get   func(p *flock.Params) bool
	Set   func(p *flock.Params, v bool)
}

// DefaultParamToggles returns the checkboxes shown in the parameter panel.
func DefaultParamToggles() []ParamToggle {
	return []ParamToggle{
		{
			Label: "Field of view",
			Get:   func(p *flock.Params) bool { return p.FieldOfView },
			Set:   func(p *flock.Params, v bool) { p.FieldOfView = v },
		},
		{
			Label: "Wrap distances",
			Get:   func(p *flock.Params) bool { return p.Wrap },
			Set:   func(p *flock.Params, v bool) { p.Wrap = v },
		},
		{
			Label: "Speed floor",
			Get:   func(p *flock.Params) bool { return p.SpeedFloor },
			Set:   func(p *flock.Params, v bool) { p.SpeedFloor = v },
		},
	}
}

// ApplyPreset replaces p with the named preset, keeping the area size.
func ApplyPreset(p *flock.Params, name string) bool {
	preset, ok := flock.Preset(name)
	if !ok {
		return false
	}
	preset.AreaWidth = p.AreaWidth
	preset.AreaHeight = p.AreaHeight
	*p = preset
	return true
}

// ParamsAction reports what the user did in the parameter panel this frame.
type ParamsAction struct {
	Changed     bool   // a parameter was edited
	Preset      string // preset applied, if any
	TogglePause bool
	Reset       bool
}

// ParamsPanel edits the live flock parameters with raygui controls.
type ParamsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	sliders  []ParamSlider
	toggles  []ParamToggle
}

// NewParamsPanel creates a parameter panel with the default controls.
func NewParamsPanel(x, y, width int32) *ParamsPanel {
	return &ParamsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		sliders:  DefaultParamSliders(),
		toggles:  DefaultParamToggles(),
	}
}

// SetPosition updates the panel position.
func (pp *ParamsPanel) SetPosition(x, y int32) {
	pp.x = x
	pp.y = y
}

// IsVisible returns whether the panel is shown.
func (pp *ParamsPanel) IsVisible() bool {
	return pp.visible
}

// Toggle switches panel visibility.
func (pp *ParamsPanel) Toggle() bool {
	pp.visible = !pp.visible
	return pp.visible
}

// Contains reports whether a screen point lies on the visible panel.
func (pp *ParamsPanel) Contains(x, y float32) bool {
	return pp.visible && inRect(x, y, pp.x, pp.y, pp.width, pp.Height())
}

// Height returns the panel height for the current control set.
func (pp *ParamsPanel) Height() int32 {
	t := pp.renderer.Theme
	sliderH := t.FontSize + 2 + t.ControlHeight + 6
	toggleH := t.ControlHeight + 6
	buttonH := t.ControlHeight + 12
	return t.Padding*2 + t.LineHeight + 4 +
		int32(len(pp.sliders))*sliderH +
		int32(len(pp.toggles))*toggleH +
		2*buttonH
}

// Draw renders the panel, writes edits into p and returns the user action.
func (pp *ParamsPanel) Draw(p *flock.Params, paused bool) ParamsAction {
	var act ParamsAction
	if !pp.visible {
		return act
	}

	r := pp.renderer
	padding := r.Theme.Padding
	inner := pp.width - padding*2
	x := pp.x + padding

	r.DrawPanel(pp.x, pp.y, pp.width, pp.Height())
	y := pp.y + padding
	rl.DrawText("Flock", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, s := range pp.sliders {
		shown := s.Get(p) * s.Scale
		hi := s.Max(p) * s.Scale
		v, changed, next := r.Slider(x, y, inner, s.Label, s.Format, shown, s.Min*s.Scale, hi)
		if changed {
			s.Set(p, v/s.Scale)
			act.Changed = true
		}
		y = next
	}

	for _, t := range pp.toggles {
		old := t.Get(p)
		v, next := r.Checkbox(x, y, t.Label, old)
		if v != old {
			t.Set(p, v)
			act.Changed = true
		}
		y = next
	}

	names := flock.PresetNames()
	bw := (inner - int32(len(names)-1)*6) / int32(len(names))
	for i, name := range names {
		if r.Button(x+int32(i)*(bw+6), y, bw, name) && ApplyPreset(p, name) {
			act.Preset = name
			act.Changed = true
		}
	}
	y += r.Theme.ControlHeight + 12

	half := (inner - 6) / 2
	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	act.TogglePause = r.Button(x, y, half, pauseLabel)
	act.Reset = r.Button(x+half+6, y, half, "Reset")

	return act
}
