package orchestrator

// Log prefixes
const (
	LogPrefixRun = "internal.agent.orchestrator.Run"
)

// Log messages
const (
	LogMsgAgentStep        = "%s: agent step %d/%d"
	LogMsgAgentFinished    = "%s: agent finished at step %d (%s)"
	LogMsgAgentCallingTool = "%s: agent calling tool %s (id=%s)"
	LogMsgToolRefused      = "%s: tool %s refused: %s"
	LogMsgAgentMaxSteps    = "%s: agent exceeded max steps (%d)"
	LogMsgInvalidHistory   = "%s: stored transcript is inconsistent: %v"
)

// Run outcomes reported to the observer.
const (
	OutcomeCompleted     = "completed"
	OutcomeMaxIterations = "max_iterations"
	OutcomeModelError    = "model_error"
)

// Configuration
const (
	DefaultMaxIterations = 8
	DefaultTemperature   = 0.1
	DefaultFinalText     = "Your optimized resume is ready."
	callIDPrefix         = "call_"
)
