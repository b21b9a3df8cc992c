// Package camera maps the simulation's y-up world space onto y-down screen
// pixels with pan and zoom.
package camera

import "github.com/pthm-cable/sph/components"

// Camera controls the viewport into the simulation world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Scale is pixels per world unit at zoom 1, set by Fit.
	Scale float32

	// Zoom level (1.0 = box fits the viewport)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	fitted components.BoundingBox
}

// New creates a camera with the given viewport that frames box.
func New(viewportW, viewportH float32, box components.BoundingBox) *Camera {
	c := &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.25,
		MaxZoom:   8.0,
	}
	c.Fit(box)
	return c
}

// Fit centres the camera on box and chooses the scale at which the whole box
// is visible at zoom 1.
func (c *Camera) Fit(box components.BoundingBox) {
	c.fitted = box
	center := box.Center()
	c.X, c.Y = center.X, center.Y
	sx := c.ViewportW / box.Width()
	sy := c.ViewportH / box.Height()
	c.Scale = sx
	if sy < sx {
		c.Scale = sy
	}
}

// pixelsPerUnit is the effective scale including zoom.
func (c *Camera) pixelsPerUnit() float32 { return c.Scale * c.Zoom }

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	k := c.pixelsPerUnit()
	sx = c.ViewportW/2 + (wx-c.X)*k
	sy = c.ViewportH/2 - (wy-c.Y)*k
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	k := c.pixelsPerUnit()
	wx = c.X + (sx-c.ViewportW/2)/k
	wy = c.Y - (sy-c.ViewportH/2)/k
	return wx, wy
}

// WorldLength converts a world distance to pixels.
func (c *Camera) WorldLength(d float32) float32 { return d * c.pixelsPerUnit() }

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	v := c.VisibleWorldBounds()
	return wx+radius >= v.Left && wx-radius <= v.Right &&
		wy+radius >= v.Bottom && wy-radius <= v.Top
}

// Resize updates viewport dimensions, keeping the last fitted box in frame.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	x, y := c.X, c.Y
	c.Fit(c.fitted)
	c.X, c.Y = x, y
}

// Pan moves the view by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	k := c.pixelsPerUnit()
	c.X -= dx / k
	c.Y += dy / k
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset re-centres on the fitted box at zoom 1.
func (c *Camera) Reset() {
	c.Zoom = 1.0
	c.Fit(c.fitted)
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() components.BoundingBox {
	k := c.pixelsPerUnit()
	halfW := c.ViewportW / (2 * k)
	halfH := c.ViewportH / (2 * k)
	return components.BoundingBox{
		Left:   c.X - halfW,
		Right:  c.X + halfW,
		Bottom: c.Y - halfH,
		Top:    c.Y + halfH,
	}
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
