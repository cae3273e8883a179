package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boids/flock"
	"github.com/pthm-cable/boids/geom"
)

// InspectorData holds the selected boid and what it currently senses.
type InspectorData struct {
	Index   int
	Boid    *flock.Boid
	Visible []*flock.Boid
}

// NearestVisible returns the distance to the closest visible peer, or -1.
func (d *InspectorData) NearestVisible() float64 {
	nearest := -1.0
	for _, v := range d.Visible {
		dist := d.Boid.DistanceTo(v)
		if nearest < 0 || dist < nearest {
			nearest = dist
		}
	}
	return nearest
}

func inspected(data any) *InspectorData {
	return data.(*InspectorData)
}

// InspectorSections describes the inspector layout.
func InspectorSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "state",
			Title: "State",
			Fields: []FieldDescriptor{
				{ID: "index", Label: "Index", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float64 { return float64(inspected(d).Index) }},
				{ID: "position", Label: "Position", Widget: WidgetText,
					Text: func(d any) string {
						b := inspected(d).Boid
						return fmt.Sprintf("%.1f, %.1f", b.X, b.Y)
					}},
				{ID: "heading", Label: "Heading", Widget: WidgetText, Format: "%.0f deg",
					Getter: func(d any) float64 {
						return geom.NormalizeAngle(inspected(d).Boid.Heading()) * 180 / math.Pi
					}},
				{ID: "speed", Label: "Speed", Widget: WidgetBar,
					Getter: func(d any) float64 { return inspected(d).Boid.Speed },
					Range:  FieldRange{Min: 0, Max: 1}},
			},
		},
		{
			ID:    "sensing",
			Title: "Sensing",
			Fields: []FieldDescriptor{
				{ID: "visible", Label: "Visible", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float64 { return float64(len(inspected(d).Visible)) }},
				{ID: "nearest", Label: "Nearest", Widget: WidgetText,
					Text: func(d any) string {
						n := inspected(d).NearestVisible()
						if n < 0 {
							return "-"
						}
						return fmt.Sprintf("%.1f", n)
					}},
			},
		},
	}
}

// Inspector renders the selected boid panel.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: InspectorSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data *InspectorData) {
	if data == nil || data.Boid == nil {
		return
	}
	r := ins.renderer
	padding := r.Theme.Padding

	// Speed bar tops out at the current max speed.
	ins.sections[0].Fields[3].Range.Max = max(data.Boid.Params().MaxSpeed, 1e-9)

	lines := 0
	for _, s := range ins.sections {
		lines += len(s.Fields) + 1
	}
	height := int32(lines)*(r.Theme.LineHeight+2) + padding*2 + r.Theme.LineHeight
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	rl.DrawText("Boid", ins.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, s := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, s, data, ins.width-padding*2)
	}
}
