// Package ui provides a descriptor-driven UI for the flock viewer.
// Panels are declared as lists of field and control descriptors so the
// layout follows the parameter set instead of hard-coded draw calls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar over Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float64
	Max float64
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display a single piece of read-only data.
type FieldDescriptor struct {
	ID     string            // Unique identifier for the field
	Label  string            // Display label
	Widget WidgetType        // How to render
	Format string            // Printf format for text (e.g., "%.2f")
	Range  FieldRange        // Value range for bars
	Getter func(any) float64 // Value extractor (for numeric fields)
	Text   func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID     string            // Unique identifier
	Title  string            // Section header text
	Fields []FieldDescriptor // Fields in this section
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	ControlHeight  int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 0, G: 200, B: 200, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		ControlHeight:  16,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Anchor returns the top-left corner of a width x height panel placed at
// the given anchor with margin from the screen edges.
func Anchor(a PanelAnchor, width, height, screenW, screenH, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - width - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - height - margin
	case AnchorBottomRight:
		return screenW - width - margin, screenH - height - margin
	default:
		return margin, margin
	}
}
