package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-optimizer/internal/agent"
	"resume-optimizer/pkg/llmprovider"
)

// Run drives one user request to completion: ask the model, execute the
// requested tools, repeat until the model stops calling tools or the
// termination policy fires. The caller's session is never mutated; on
// success the updated copy is returned in RunOutput.Session.
func (o *Orchestrator) Run(ctx context.Context, s *agent.Session, userMessage string, opts RunOptions) (RunOutput, error) {
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = o.cfg.MaxIterations
	}
	temperature := *o.cfg.Temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	work := s.Clone()
	if err := agent.ValidateTranscript(work.Turns); err != nil {
		o.l.Warnf(ctx, LogMsgInvalidHistory, LogPrefixRun, err)
	}
	start := len(work.Turns)

	msg := strings.TrimSpace(userMessage)
	if msg == "" {
		msg = agent.SynthesizeUserPrompt(work, userMessage)
	}
	work.Append(agent.UserTurn(msg))

	seen := issuedCallIDs(work.Turns)
	tools := o.registry.ToFunctionDefinitions()

	steps := 0
	for {
		if steps >= maxIter {
			o.l.Warnf(ctx, LogMsgAgentMaxSteps, LogPrefixRun, maxIter)
			o.observe(OutcomeMaxIterations, steps)
			return RunOutput{}, fmt.Errorf("%w: %d model calls", ErrMaxIterations, maxIter)
		}
		steps++
		o.l.Infof(ctx, LogMsgAgentStep, LogPrefixRun, steps, maxIter)

		resp, err := o.generate(ctx, work, tools, temperature, false)
		if err != nil {
			o.l.Errorf(ctx, "%s: step %d: %v", LogPrefixRun, steps, err)
			o.observe(OutcomeModelError, steps)
			return RunOutput{}, fmt.Errorf("%w at step %d: %v", ErrModelInvocation, steps, err)
		}

		turn := assistantTurn(resp, seen)
		work.Append(turn)

		if !turn.HasToolCalls() {
			return o.finish(ctx, work, start, steps, turn.Text, agent.StopModelFinished), nil
		}

		o.dispatch(ctx, work, turn.ToolCalls)

		decision := o.cfg.Policy.Evaluate(work.Turns, work.ContextFrom)
		if !decision.Stop {
			continue
		}

		work.Append(agent.UserTurn(agent.FinalConfirmation(decision.Reason)))
		resp, err = o.generate(ctx, work, tools, temperature, true)
		if err != nil {
			o.l.Errorf(ctx, "%s: final confirmation: %v", LogPrefixRun, err)
			o.observe(OutcomeModelError, steps)
			return RunOutput{}, fmt.Errorf("%w at final confirmation: %v", ErrModelInvocation, err)
		}
		// Tools were disabled for this call; any calls the model still emits are dropped.
		final := agent.AssistantTurn(strings.TrimSpace(resp.Content.Text()), nil)
		work.Append(final)
		return o.finish(ctx, work, start, steps, final.Text, decision.Reason), nil
	}
}

// dispatch screens the calls against the whole session, executes the
// admitted ones and appends one result turn per call in call order.
func (o *Orchestrator) dispatch(ctx context.Context, work *agent.Session, calls []agent.ToolCall) {
	refusals := o.cfg.Policy.Screen(work.Turns, work.ContextFrom, calls)

	results := make([]agent.ToolResult, len(calls))
	var admitted []agent.ToolCall
	var positions []int
	for i, c := range calls {
		if refusals[i] != "" {
			o.l.Warnf(ctx, LogMsgToolRefused, LogPrefixRun, c.Name, refusals[i])
			results[i] = agent.ToolResult{CallID: c.ID, Name: c.Name, Payload: agent.RefusalPayload(refusals[i])}
			continue
		}
		o.l.Infof(ctx, LogMsgAgentCallingTool, LogPrefixRun, c.Name, c.ID)
		admitted = append(admitted, c)
		positions = append(positions, i)
	}

	if len(admitted) > 0 {
		for j, r := range o.executor.ExecuteBatch(ctx, admitted, work) {
			results[positions[j]] = r
		}
	}

	turns := make([]agent.Turn, len(results))
	for i, r := range results {
		turns[i] = agent.ToolResultTurn(r)
	}
	work.Append(turns...)
}

func (o *Orchestrator) generate(ctx context.Context, work *agent.Session, tools []llmprovider.Tool, temperature float64, disableTools bool) (*llmprovider.Response, error) {
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  llmprovider.RoleUser,
			Parts: []llmprovider.Part{{Text: o.prompts.Build(work)}},
		},
		Messages:         agent.ToLLMMessages(work.Turns),
		Tools:            tools,
		Temperature:      &temperature,
		DisableToolCalls: disableTools,
	}
	return o.llm.GenerateContent(ctx, req)
}

func (o *Orchestrator) finish(ctx context.Context, work *agent.Session, start, steps int, text, reason string) RunOutput {
	newTurns := work.Turns[start:]
	if strings.TrimSpace(text) == "" {
		text = lastAssistantText(newTurns)
	}
	o.l.Infof(ctx, LogMsgAgentFinished, LogPrefixRun, steps, reason)
	o.observe(OutcomeCompleted, steps)
	return RunOutput{
		Session:    work,
		FinalText:  text,
		NewTurns:   newTurns,
		Steps:      steps,
		StopReason: reason,
	}
}

func (o *Orchestrator) observe(outcome string, steps int) {
	if o.cfg.RunObserver != nil {
		o.cfg.RunObserver.ObserveRun(outcome, steps)
	}
}

// assistantTurn converts a model reply, giving every call an id that is
// unique within the session.
func assistantTurn(resp *llmprovider.Response, seen map[string]struct{}) agent.Turn {
	var calls []agent.ToolCall
	for _, fc := range resp.Content.FunctionCalls() {
		id := fc.ID
		if _, dup := seen[id]; id == "" || dup {
			id = newCallID()
		}
		seen[id] = struct{}{}
		calls = append(calls, agent.ToolCall{ID: id, Name: fc.Name, Args: fc.Args})
	}
	return agent.AssistantTurn(strings.TrimSpace(resp.Content.Text()), calls)
}

func issuedCallIDs(turns []agent.Turn) map[string]struct{} {
	seen := make(map[string]struct{})
	for _, t := range turns {
		for _, c := range t.ToolCalls {
			seen[c.ID] = struct{}{}
		}
	}
	return seen
}

func lastAssistantText(turns []agent.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Kind == agent.TurnAssistant && strings.TrimSpace(turns[i].Text) != "" {
			return turns[i].Text
		}
	}
	return DefaultFinalText
}

func newCallID() string {
	return callIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
