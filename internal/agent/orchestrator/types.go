package orchestrator

import "resume-optimizer/internal/agent"

// RunOptions tunes a single run. A zero MaxIterations or nil Temperature
// falls back to the orchestrator config.
type RunOptions struct {
	MaxIterations int
	Temperature   *float64
}

// RunOutput is the result of a successful run.
type RunOutput struct {
	Session    *agent.Session
	FinalText  string
	NewTurns   []agent.Turn
	Steps      int
	StopReason string
}

// RunObserver is notified once per finished run.
type RunObserver interface {
	ObserveRun(outcome string, steps int)
}
