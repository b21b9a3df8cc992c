package simulation

// Recorder receives phase timing marks from Update. telemetry.PerfCollector
// and telemetry.Metrics implement it. Marks are issued from the goroutine
// calling Update only.
type Recorder interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

type nopRecorder struct{}

func (nopRecorder) StartTick()        {}
func (nopRecorder) StartPhase(string) {}
func (nopRecorder) EndTick()          {}
