package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for value within rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float64, rng FieldRange, width int32) int32 {
	ratio := 0.0
	if rng.Max > rng.Min {
		ratio = (value - rng.Min) / (rng.Max - rng.Min)
	}
	ratio = min(max(ratio, 0), 1)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*ratio), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawField renders one field descriptor and returns the new Y position.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		var text string
		switch {
		case fd.Text != nil:
			text = fd.Text(data)
		case fd.Getter != nil:
			text = fmt.Sprintf(fd.Format, fd.Getter(data))
		}
		return r.DrawLabelValue(x, y, fd.Label, text)

	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, fd.Getter(data), fd.Range, width)

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return y + 6
	}

	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		y = r.DrawField(x, y, fd, data, width)
	}
	return y + 4
}

// Slider draws a labeled raygui slider and returns the (possibly edited)
// value and the next Y position. changed is true only when the user moved
// the slider, so values that do not survive a float32 round trip are kept.
func (r *Renderer) Slider(x, y, width int32, label, format string, value, lo, hi float64) (out float64, changed bool, next int32) {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	valueText := fmt.Sprintf(format, value)
	rl.DrawText(valueText, x+width-rl.MeasureText(valueText, r.Theme.FontSize), y, r.Theme.FontSize, r.Theme.ValueColor)
	y += r.Theme.FontSize + 2

	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.ControlHeight)}
	old := float32(value)
	v := gui.SliderBar(bounds, "", "", old, float32(lo), float32(hi))
	y += r.Theme.ControlHeight + 6

	if v != old {
		return float64(v), true, y
	}
	return value, false, y
}

// Checkbox draws a raygui checkbox and returns the new state and next Y.
func (r *Renderer) Checkbox(x, y int32, label string, checked bool) (bool, int32) {
	size := float32(r.Theme.ControlHeight)
	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: size, Height: size}
	checked = gui.CheckBox(bounds, label, checked)
	return checked, y + r.Theme.ControlHeight + 6
}

// Button draws a raygui button and reports whether it was pressed.
func (r *Renderer) Button(x, y, width int32, label string) bool {
	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.ControlHeight + 6)}
	return gui.Button(bounds, label)
}
