package simulation

import "github.com/pthm-cable/sph/components"

// RunState is the simulation run state.
type RunState uint8

const (
	Running RunState = iota
	Paused
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Event is a discrete input notification. The caller owns input polling and
// translates device state into events.
type Event uint8

const (
	EventNone        Event = iota
	EventPushStart         // primary button pressed
	EventPushEnd           // primary button released
	EventPullStart         // secondary button pressed
	EventPullEnd           // secondary button released
	EventTogglePause       // pause key
	EventStep              // single-step key
)

var eventNames = [...]string{
	EventNone:        "none",
	EventPushStart:   "push_start",
	EventPushEnd:     "push_end",
	EventPullStart:   "pull_start",
	EventPullEnd:     "pull_end",
	EventTogglePause: "toggle_pause",
	EventStep:        "step",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// HandleEvent applies an input event. Hand events are ignored when no hand is
// attached.
func (s *ParticleSystem) HandleEvent(e Event) {
	switch e {
	case EventPushStart:
		s.setHandAction(components.HandPushing)
	case EventPullStart:
		s.setHandAction(components.HandPulling)
	case EventPushEnd, EventPullEnd:
		s.setHandAction(components.HandIdle)
	case EventTogglePause:
		s.TogglePause()
	case EventStep:
		s.RequestStep()
	case EventNone:
	default:
		s.logger.Warn("unknown input event", "event", uint8(e))
	}
}

func (s *ParticleSystem) setHandAction(a components.HandAction) {
	if s.hand == nil {
		return
	}
	s.hand.Action = a
}

// Pause stops Update from advancing the simulation.
func (s *ParticleSystem) Pause() {
	s.state = Paused
	s.logger.Debug("simulation paused")
}

// Resume clears a pause and any pending step.
func (s *ParticleSystem) Resume() {
	s.state = Running
	s.stepRequested = false
	s.logger.Debug("simulation resumed")
}

// TogglePause flips between Running and Paused.
func (s *ParticleSystem) TogglePause() {
	if s.state == Paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// RequestStep makes the next Update run once while paused. It has no effect
// while running.
func (s *ParticleSystem) RequestStep() {
	if s.state != Paused {
		return
	}
	s.stepRequested = true
}

// State returns the current run state.
func (s *ParticleSystem) State() RunState { return s.state }

// StepPending reports whether a step has been requested but not yet run.
func (s *ParticleSystem) StepPending() bool { return s.stepRequested }
