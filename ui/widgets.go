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
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, labelWidth int32) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+labelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawSlider draws a labelled slider with a value readout and returns the
// slider's value and the new Y position.
func (r *Renderer) DrawSlider(x, y, width int32, d SliderDescriptor, value float32) (float32, int32) {
	rl.DrawText(d.Label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight - 2

	sliderW := width - r.Theme.ValueWidth
	out := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(sliderW), Height: float32(r.Theme.SliderHeight)},
		"", "",
		value, d.Min, d.Max,
	)
	rl.DrawText(fmt.Sprintf(d.Format, value), x+sliderW+6, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	return out, y + r.Theme.SliderHeight + 6
}

// DrawToggle draws an on/off button and reports whether it was clicked.
func (r *Renderer) DrawToggle(x, y, width int32, label string, on bool) (bool, int32) {
	text := "[ ] " + label
	if on {
		text = "[x] " + label
	}
	clicked := gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.SliderHeight + 4)}, text)
	return clicked, y + r.Theme.SliderHeight + 8
}

// DrawButton draws a push button and reports whether it was clicked.
func (r *Renderer) DrawButton(x, y, width int32, label string) bool {
	return gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.SliderHeight + 8)}, label)
}
