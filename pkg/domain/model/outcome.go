package model

import "time"

type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseRunning     Phase = "running"
	PhaseCompleted   Phase = "completed"
	PhaseInterrupted Phase = "interrupted"
)

// Terminal reports whether the phase is a final state of a run.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseInterrupted
}

// Outcome summarizes one finished run of a chain.
type Outcome struct {
	Interrupted bool
	StepsRun    int
	Elapsed     time.Duration
}
