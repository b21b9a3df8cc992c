package telemetry

import "time"

// fpsSmoothing is the weight kept from the previous FPS estimate each frame.
const fpsSmoothing = 0.9

// FrameTimer measures wall-clock time between frames. The simulation never
// reads a clock; the viewer passes Tick's result to Update.
type FrameTimer struct {
	last     time.Time
	raw      time.Duration
	fps      float64
	maxDelta time.Duration

	now func() time.Time
}

// NewFrameTimer creates a timer that clamps deltas to maxDelta. A
// non-positive maxDelta disables clamping.
func NewFrameTimer(maxDelta time.Duration) *FrameTimer {
	return &FrameTimer{maxDelta: maxDelta, now: time.Now}
}

// Tick marks the start of a frame and returns the clamped time since the
// previous Tick in seconds. The first Tick returns 0.
func (t *FrameTimer) Tick() float32 {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	t.raw = now.Sub(t.last)
	t.last = now

	if t.raw > 0 {
		instant := float64(time.Second) / float64(t.raw)
		t.fps = t.fps*fpsSmoothing + instant*(1-fpsSmoothing)
	}

	d := t.raw
	if t.maxDelta > 0 && d > t.maxDelta {
		d = t.maxDelta
	}
	return float32(d.Seconds())
}

// Reset forgets the previous frame so the next Tick returns 0. Call it after
// a stall such as a minimised window.
func (t *FrameTimer) Reset() { t.last = time.Time{} }

// FrameTime returns the unclamped duration of the previous frame.
func (t *FrameTimer) FrameTime() time.Duration { return t.raw }

// FPS returns the exponentially smoothed frame rate.
func (t *FrameTimer) FPS() float64 { return t.fps }
