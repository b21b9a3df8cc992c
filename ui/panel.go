package ui

// PanelResult reports what the user did in one frame of the panel.
type PanelResult struct {
	Changes   ParamChange
	Rearrange bool // reset particles to the rest lattice
	Defaults  bool // restore the loaded configuration
}

// ParamPanel renders the parameter sliders on the right side of the screen.
type ParamPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
	visible  bool
}

// NewParamPanel creates a panel with the default sections.
func NewParamPanel(x, y, width int32, capacity int) *ParamPanel {
	return &ParamPanel{
		renderer: NewRenderer(),
		sections: DefaultSections(capacity),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (p *ParamPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// SetVisible shows or hides the panel.
func (p *ParamPanel) SetVisible(visible bool) { p.visible = visible }

// IsVisible returns whether the panel is shown.
func (p *ParamPanel) IsVisible() bool { return p.visible }

// Toggle switches panel visibility.
func (p *ParamPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Width returns the panel width in pixels.
func (p *ParamPanel) Width() int32 { return p.width }

// Height returns the panel height for the current sections.
func (p *ParamPanel) Height() int32 {
	t := p.renderer.Theme
	h := t.Padding*2 + t.LineHeight + 4
	for _, s := range p.sections {
		h += t.LineHeight + 2
		h += int32(len(s.Sliders)) * (t.LineHeight - 2 + t.SliderHeight + 6)
		h += int32(len(s.Toggles)) * (t.SliderHeight + 8)
		h += 4
	}
	return h + t.SliderHeight + 8
}

// Contains reports whether a screen point lies over the visible panel.
func (p *ParamPanel) Contains(sx, sy float32) bool {
	if !p.visible {
		return false
	}
	return sx >= float32(p.x) && sx <= float32(p.x+p.width) &&
		sy >= float32(p.y) && sy <= float32(p.y+p.Height())
}

// Draw renders the panel and applies slider edits to values.
func (p *ParamPanel) Draw(values *ParamValues) PanelResult {
	var res PanelResult
	if !p.visible {
		return res
	}

	r := p.renderer
	padding := r.Theme.Padding
	inner := p.width - padding*2
	x := p.x + padding

	r.DrawPanel(p.x, p.y, p.width, p.Height())
	y := r.DrawSectionHeader(x, p.y+padding, "Parameters") + 4

	for _, s := range p.sections {
		y = r.DrawSectionHeader(x, y, s.Title)
		for _, d := range s.Sliders {
			var out float32
			out, y = r.DrawSlider(x, y, inner, d, d.Get(values))
			if d.Apply(values, out) {
				res.Changes |= d.Change
			}
		}
		for _, d := range s.Toggles {
			var clicked bool
			clicked, y = r.DrawToggle(x, y, inner, d.Label, d.Get(values))
			if clicked {
				d.Set(values, !d.Get(values))
				res.Changes |= d.Change
			}
		}
		y += 4
	}

	half := (inner - padding) / 2
	res.Rearrange = r.DrawButton(x, y, half, "Rearrange")
	res.Defaults = r.DrawButton(x+half+padding, y, half, "Defaults")
	return res
}
