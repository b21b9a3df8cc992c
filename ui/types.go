// Package ui provides the viewer's parameter panel and heads-up display.
// Panel rows are defined through descriptors so the layout lives next to
// the values it edits.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// SliderDescriptor defines one slider row of the parameter panel.
type SliderDescriptor struct {
	ID      string
	Label   string
	Format  string // Printf format for the value readout
	Min     float32
	Max     float32
	Integer bool // values are rounded to whole numbers
	Change  ParamChange

	Get func(*ParamValues) float32
	Set func(*ParamValues, float32)
}

// Apply clamps x to the slider range, rounds it for integer sliders and
// stores it. It reports whether the stored value changed.
func (d SliderDescriptor) Apply(v *ParamValues, x float32) bool {
	if x < d.Min {
		x = d.Min
	}
	if x > d.Max {
		x = d.Max
	}
	if d.Integer {
		x = float32(int(x + 0.5))
	}
	if x == d.Get(v) {
		return false
	}
	d.Set(v, x)
	return true
}

// ToggleDescriptor defines one on/off row of the parameter panel.
type ToggleDescriptor struct {
	ID     string
	Label  string
	Change ParamChange

	Get func(*ParamValues) bool
	Set func(*ParamValues, bool)
}

// SectionDescriptor groups rows under a header.
type SectionDescriptor struct {
	Title   string
	Sliders []SliderDescriptor
	Toggles []ToggleDescriptor
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	WarnColor      rl.Color
	Padding        int32
	LineHeight     int32
	SliderHeight   int32
	ValueWidth     int32
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
		ValueColor:     rl.White,
		WarnColor:      rl.Orange,
		Padding:        10,
		LineHeight:     16,
		SliderHeight:   16,
		ValueWidth:     60,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
