package components

// HandAction is what the interaction actuator is doing this frame.
type HandAction uint8

const (
	HandIdle HandAction = iota
	HandPushing
	HandPulling
)

func (a HandAction) String() string {
	switch a {
	case HandPushing:
		return "pushing"
	case HandPulling:
		return "pulling"
	default:
		return "idle"
	}
}

// Hand is the cursor-driven actuator that pushes or pulls nearby particles.
// It is owned by the application; the simulation only reads it, apart from
// setting Action when it handles input events.
type Hand struct {
	Radius            float32
	StrengthFactor    float32
	CoordinateScaling float32 // applied by SetPosition; 0 is treated as 1

	position Vec2
	Action   HandAction
}

// NewHand creates an idle hand.
func NewHand(radius, strength, scaling float32) *Hand {
	return &Hand{Radius: radius, StrengthFactor: strength, CoordinateScaling: scaling}
}

// SetPosition stores the cursor position multiplied by the coordinate scaling.
func (h *Hand) SetPosition(p Vec2) {
	s := h.CoordinateScaling
	if s == 0 {
		s = 1
	}
	h.position = p.Scale(s)
}

// Position returns the scaled cursor position.
func (h *Hand) Position() Vec2 { return h.position }

// Interacting reports whether the hand is pushing or pulling.
func (h *Hand) Interacting() bool {
	return h.Action == HandPushing || h.Action == HandPulling
}

// State returns a value snapshot for use by the force model.
func (h *Hand) State() HandState {
	return HandState{Position: h.position, Radius: h.Radius, Strength: h.StrengthFactor, Action: h.Action}
}

// HandState is an immutable view of a hand for one substep. The zero value is
// an idle hand, which is also what "no hand attached" means to the force model.
type HandState struct {
	Position Vec2
	Radius   float32
	Strength float32
	Action   HandAction
}

// Active reports whether the state contributes an interaction force.
func (s HandState) Active() bool {
	return (s.Action == HandPushing || s.Action == HandPulling) && s.Radius > 0
}

// SignedStrength is +Strength when pulling and -Strength when pushing.
func (s HandState) SignedStrength() float32 {
	switch s.Action {
	case HandPulling:
		return s.Strength
	case HandPushing:
		return -s.Strength
	default:
		return 0
	}
}
