package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/sph/components"
)

var box = components.BoundingBox{Left: -16, Right: 16, Bottom: -9, Top: 9}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 0.01 }

func TestNewFitsBox(t *testing.T) {
	cam := New(1280, 720, box)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Scale != 40 {
		t.Errorf("expected 40 px/unit, got %f", cam.Scale)
	}
}

func TestWorldToScreenIsYUp(t *testing.T) {
	cam := New(1280, 720, box)

	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	// Top-left world corner maps to the top-left pixel.
	sx, sy = cam.WorldToScreen(box.Left, box.Top)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("expected (0, 0), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, box)
	cam.SetZoom(2)
	cam.Pan(37, -12)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}
	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanMovesOppositeToDrag(t *testing.T) {
	cam := New(1280, 720, box)

	// Dragging right by one world unit reveals content further left.
	cam.Pan(40, 40)
	if !near(cam.X, -1) || !near(cam.Y, 1) {
		t.Errorf("expected camera at (-1, 1), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, box)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.ZoomBy(0.0001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
	cam.Reset()
	if cam.Zoom != 1 {
		t.Errorf("expected zoom reset to 1, got %f", cam.Zoom)
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 720, box)
	if v := cam.VisibleWorldBounds(); v != box {
		t.Errorf("expected visible bounds %+v, got %+v", box, v)
	}

	cam.SetZoom(2)
	v := cam.VisibleWorldBounds()
	if !near(v.Width(), 16) || !near(v.Height(), 9) {
		t.Errorf("expected 16x9 at zoom 2, got %fx%f", v.Width(), v.Height())
	}
	if !cam.IsVisible(0, 0, 0) || cam.IsVisible(12, 0, 1) {
		t.Error("unexpected visibility at zoom 2")
	}
}

func TestResizeKeepsBoxInFrame(t *testing.T) {
	cam := New(1280, 720, box)
	cam.Resize(640, 720)
	if !near(cam.Scale, 20) {
		t.Errorf("expected 20 px/unit after resize, got %f", cam.Scale)
	}
}
