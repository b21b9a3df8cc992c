package telemetry

import "github.com/pthm-cable/sph/components"

// Collector accumulates per-frame counters over fixed windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec    float64
	windowDurationFrames int32
	dt                   float32

	windowStartFrame int32

	frames       int
	pausedFrames int
	handFrames   int
	boundaryHits int
}

// NewCollector creates a collector with windows of windowDurationSec
// simulated seconds at dt seconds per frame.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	frames := int32(1)
	if dt > 0 {
		frames = int32(windowDurationSec / float64(dt))
	}
	if frames < 1 {
		frames = 1
	}
	return &Collector{
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: frames,
		dt:                   dt,
	}
}

// RecordFrame adds one frame to the current window.
func (c *Collector) RecordFrame(paused, handActive bool, boundaryHits int) {
	c.frames++
	if paused {
		c.pausedFrames++
	}
	if handActive {
		c.handFrames++
	}
	c.boundaryHits += boundaryHits
}

// ShouldFlush reports whether the window ending at frame is complete.
func (c *Collector) ShouldFlush(frame int32) bool {
	return frame-c.windowStartFrame >= c.windowDurationFrames
}

// Flush closes the window at frame, samples the particle state and starts a
// new window.
func (c *Collector) Flush(frame int32, particles []components.Particle, densities []float32, restDensity float32) WindowStats {
	ws := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		SimTimeSec:       float64(frame) * float64(c.dt),
		Frames:           c.frames,
		PausedFrames:     c.pausedFrames,
		HandFrames:       c.handFrames,
		BoundaryHits:     c.boundaryHits,
		FluidStats:       ComputeFluidStats(particles, densities, restDensity),
	}

	c.windowStartFrame = frame
	c.frames = 0
	c.pausedFrames = 0
	c.handFrames = 0
	c.boundaryHits = 0
	return ws
}

// WindowDurationFrames returns the window length in frames.
func (c *Collector) WindowDurationFrames() int32 { return c.windowDurationFrames }
