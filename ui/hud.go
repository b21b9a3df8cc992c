package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sph/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Particles    int
	Capacity     int
	FPS          int32
	State        string
	StepPending  bool
	HandAction   string
	BoundaryHits int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d / %d | FPS: %d | Wall hits: %d", data.Particles, data.Capacity, data.FPS, data.BoundaryHits),
		10, 35, 16, rl.LightGray,
	)

	status := data.State
	if data.StepPending {
		status += " (step)"
	}
	color := h.renderer.Theme.SectionHeader
	if data.State != "paused" {
		color = rl.LightGray
	}
	rl.DrawText(fmt.Sprintf("%s | hand: %s", status, data.HandAction), 10, 55, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase Update timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Update Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s (max %s)",
		stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 14, p.renderer.Theme.SectionHeader)
	y += 16

	for _, phase := range telemetry.Phases {
		avg, ok := stats.PhaseAvg[phase]
		if !ok {
			continue
		}
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = p.renderer.Theme.WarnColor
		}
		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
