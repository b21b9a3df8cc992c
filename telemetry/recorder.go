package telemetry

// PhaseRecorder is the set of timing marks emitted by the particle system.
type PhaseRecorder interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// MultiRecorder fans timing marks out to several recorders in order.
type MultiRecorder []PhaseRecorder

// NewMultiRecorder drops nil entries.
func NewMultiRecorder(recs ...PhaseRecorder) MultiRecorder {
	out := make(MultiRecorder, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m MultiRecorder) StartTick() {
	for _, r := range m {
		r.StartTick()
	}
}

func (m MultiRecorder) StartPhase(phase string) {
	for _, r := range m {
		r.StartPhase(phase)
	}
}

func (m MultiRecorder) EndTick() {
	for _, r := range m {
		r.EndTick()
	}
}
