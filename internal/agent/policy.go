package agent

import "fmt"

// Stop reasons reported by Evaluate and by the orchestrator.
const (
	StopArtifactReady     = "artifact_ready"
	StopContextRepeated   = "context_repeated"
	StopSearchExhausted   = "search_budget_exhausted"
	StopOptimizeAttempted = "optimize_attempted"
	StopModelFinished     = "model_finished"
)

const (
	DefaultMaxContextResults = 1
	DefaultMaxWebSearchCalls = 5
	DefaultMaxOptimizeCalls  = 1
)

// TerminationPolicy holds the per-tool caps that end a run.
type TerminationPolicy struct {
	MaxContextResults int
	MaxWebSearchCalls int
	MaxOptimizeCalls  int
}

// Decision is the result of Evaluate.
type Decision struct {
	Stop   bool
	Reason string
}

func DefaultTerminationPolicy() TerminationPolicy {
	return TerminationPolicy{
		MaxContextResults: DefaultMaxContextResults,
		MaxWebSearchCalls: DefaultMaxWebSearchCalls,
		MaxOptimizeCalls:  DefaultMaxOptimizeCalls,
	}
}

func (p TerminationPolicy) normalized() TerminationPolicy {
	if p.MaxContextResults <= 0 {
		p.MaxContextResults = DefaultMaxContextResults
	}
	if p.MaxWebSearchCalls <= 0 {
		p.MaxWebSearchCalls = DefaultMaxWebSearchCalls
	}
	if p.MaxOptimizeCalls <= 0 {
		p.MaxOptimizeCalls = DefaultMaxOptimizeCalls
	}
	return p
}

func isContextTool(name string) bool {
	return name == ToolGetResumeText || name == ToolGetJobDescription
}

func clampFrom(contextFrom, n int) int {
	if contextFrom < 0 {
		return 0
	}
	if contextFrom > n {
		return n
	}
	return contextFrom
}

// Evaluate inspects the whole session transcript after a batch of tool
// results. Context results only count from contextFrom on; every other limit
// covers all turns. Rules apply in order; the first that fires wins.
func (p TerminationPolicy) Evaluate(turns []Turn, contextFrom int) Decision {
	p = p.normalized()
	contextFrom = clampFrom(contextFrom, len(turns))

	contextResults := map[string]int{}
	searchCalls, optimizeCalls := 0, 0
	artifact := false

	for i, t := range turns {
		switch t.Kind {
		case TurnAssistant:
			for _, c := range t.ToolCalls {
				switch c.Name {
				case ToolWebSearch:
					searchCalls++
				case ToolOptimizeResumeSections:
					optimizeCalls++
				}
			}
		case TurnToolResult:
			if t.Result == nil {
				continue
			}
			if t.Result.Name == ToolOptimizeResumeSections && OutputPath(t.Result.Payload) != "" {
				artifact = true
			}
			if isContextTool(t.Result.Name) && i >= contextFrom {
				contextResults[t.Result.Name]++
			}
		}
	}

	switch {
	case artifact:
		return Decision{Stop: true, Reason: StopArtifactReady}
	case contextResults[ToolGetResumeText] > p.MaxContextResults,
		contextResults[ToolGetJobDescription] > p.MaxContextResults:
		return Decision{Stop: true, Reason: StopContextRepeated}
	case searchCalls > p.MaxWebSearchCalls:
		return Decision{Stop: true, Reason: StopSearchExhausted}
	case optimizeCalls >= p.MaxOptimizeCalls:
		return Decision{Stop: true, Reason: StopOptimizeAttempted}
	}
	return Decision{}
}

// Screen runs before dispatch with the same transcript and contextFrom as
// Evaluate. It returns one refusal message per call, empty when the call may
// run. Refused calls are never executed, so executed searches and successful
// context fetches stay within their caps.
func (p TerminationPolicy) Screen(turns []Turn, contextFrom int, calls []ToolCall) []string {
	p = p.normalized()
	contextFrom = clampFrom(contextFrom, len(turns))

	contextOK := map[string]int{}
	searches, optimizes := 0, 0
	for i, t := range turns {
		if t.Kind != TurnToolResult || t.Result == nil || isRefusal(t.Result.Payload) {
			continue
		}
		switch {
		case isContextTool(t.Result.Name):
			if i >= contextFrom && !IsErrorPayload(t.Result.Payload) {
				contextOK[t.Result.Name]++
			}
		case t.Result.Name == ToolWebSearch:
			searches++
		case t.Result.Name == ToolOptimizeResumeSections:
			optimizes++
		}
	}

	refusals := make([]string, len(calls))
	for i, c := range calls {
		switch {
		case isContextTool(c.Name):
			if contextOK[c.Name] >= p.MaxContextResults {
				refusals[i] = fmt.Sprintf("%s was already answered in this session; reuse the earlier result", c.Name)
				continue
			}
			contextOK[c.Name]++
		case c.Name == ToolWebSearch:
			if searches >= p.MaxWebSearchCalls {
				refusals[i] = fmt.Sprintf("web_search limit of %d calls reached", p.MaxWebSearchCalls)
				continue
			}
			searches++
		case c.Name == ToolOptimizeResumeSections:
			if optimizes >= p.MaxOptimizeCalls {
				refusals[i] = fmt.Sprintf("optimize_resume_sections may be called at most %d time(s)", p.MaxOptimizeCalls)
				continue
			}
			optimizes++
		}
	}
	return refusals
}

// RefusalPayload is the error payload recorded for a screened-out call.
func RefusalPayload(reason string) map[string]interface{} {
	p := ErrorPayload(reason)
	p[PayloadKeyRefused] = true
	return p
}

func isRefusal(payload interface{}) bool {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return false
	}
	v, _ := m[PayloadKeyRefused].(bool)
	return v
}
