package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/components"
	"github.com/pthm-cable/sph/simulation"
)

// InputState is the subset of one frame's device state the simulation cares
// about.
type InputState struct {
	PushPressed  bool
	PushReleased bool
	PullPressed  bool
	PullReleased bool
	PausePressed bool
	StepPressed  bool
}

// Events translates the frame's input into simulation events, appended to
// dst. Releases come before presses so a button swapped within one frame ends
// in the new action.
func (in InputState) Events(dst []simulation.Event) []simulation.Event {
	if in.PushReleased {
		dst = append(dst, simulation.EventPushEnd)
	}
	if in.PullReleased {
		dst = append(dst, simulation.EventPullEnd)
	}
	if in.PushPressed {
		dst = append(dst, simulation.EventPushStart)
	}
	if in.PullPressed {
		dst = append(dst, simulation.EventPullStart)
	}
	if in.PausePressed {
		dst = append(dst, simulation.EventTogglePause)
	}
	if in.StepPressed {
		dst = append(dst, simulation.EventStep)
	}
	return dst
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.showBounds = !g.showBounds
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.sim.ArrangeParticles()
	}

	mouse := rl.GetMousePosition()
	overPanel := g.panel.Contains(mouse.X, mouse.Y)

	in := InputState{
		PushPressed:  !overPanel && rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		PushReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		PullPressed:  !overPanel && rl.IsMouseButtonPressed(rl.MouseButtonRight),
		PullReleased: rl.IsMouseButtonReleased(rl.MouseButtonRight),
		PausePressed: rl.IsKeyPressed(rl.KeySpace),
		StepPressed:  rl.IsKeyPressed(rl.KeyS) || rl.IsKeyPressed(rl.KeyPeriod),
	}
	for _, e := range in.Events(nil) {
		g.sim.HandleEvent(e)
	}

	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.sim.SetHandPosition(components.Vec2{X: wx, Y: wy})

	// Camera controls
	g.handleCameraInput(overPanel)
}

// handleResize checks for window resize and propagates new dimensions. The
// bounding box follows the window's aspect ratio.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.resize(w, h)
}

func (g *Game) resize(w, h float32) {
	g.screenWidth = w
	g.screenHeight = h

	aspect := float32(1)
	if h > 0 {
		aspect = w / h
	}
	box := g.cfg.BoundingBox(aspect)
	if err := g.sim.SetBoundingBox(box); err != nil {
		g.logger.Warn("ignoring resize", "width", w, "height", h, "error", err)
		return
	}

	if g.camera != nil {
		g.camera.Resize(w, h)
		g.camera.Fit(box)
	}
	if g.panel != nil {
		g.panel.SetPosition(int32(w)-g.panel.Width()-10, 10)
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput(overPanel bool) {
	if g.camera == nil {
		return
	}

	// Middle-drag moves the content with the cursor
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.camera.Pan(d.X, d.Y)
	}

	// Arrow key panning
	const panSpeed = float32(8.0)
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 && !overPanel {
		g.camera.ZoomBy(1.0 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
