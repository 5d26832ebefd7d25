package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	pkgLog "resume-optimizer/pkg/log"
)

// ToolObserver is notified once per executed tool call.
type ToolObserver interface {
	ObserveToolCall(tool string, ok bool, latency time.Duration)
}

// Executor runs tool calls against the registry. It never returns an error:
// every failure becomes an {ok:false, error} payload for the model to read.
type Executor struct {
	registry *ToolRegistry
	l        pkgLog.Logger
	observer ToolObserver
}

func NewExecutor(registry *ToolRegistry, l pkgLog.Logger, observer ToolObserver) *Executor {
	return &Executor{registry: registry, l: l, observer: observer}
}

// ErrorPayload builds the structured failure payload.
func ErrorPayload(msg string) map[string]interface{} {
	return map[string]interface{}{PayloadKeyOK: false, PayloadKeyError: msg}
}

// IsErrorPayload reports whether payload is an {ok:false} map.
func IsErrorPayload(payload interface{}) bool {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return false
	}
	v, present := m[PayloadKeyOK]
	return present && v == false
}

// OutputPath returns the non-empty output_path of a successful payload.
func OutputPath(payload interface{}) string {
	m, ok := payload.(map[string]interface{})
	if !ok || IsErrorPayload(payload) {
		return ""
	}
	p, _ := m[PayloadKeyOutputPath].(string)
	return strings.TrimSpace(p)
}

// ResumeTextPayload wraps the session resume for the model.
func ResumeTextPayload(s *Session) string {
	if s == nil || strings.TrimSpace(s.Resume) == "" {
		return "No resume provided."
	}
	return fmt.Sprintf("RESUME TEXT:\n\n%s\n\n(End of resume - %d characters)",
		s.Resume, utf8.RuneCountInString(s.Resume))
}

// JobDescriptionPayload wraps the session job description for the model.
func JobDescriptionPayload(s *Session) string {
	if s == nil || strings.TrimSpace(s.JobDescription) == "" {
		return "No job description provided."
	}
	return fmt.Sprintf("JOB DESCRIPTION:\n\n%s\n\n(End of job description - %d characters)",
		s.JobDescription, utf8.RuneCountInString(s.JobDescription))
}

// Execute runs a single call.
func (e *Executor) Execute(ctx context.Context, call ToolCall, s *Session) (result ToolResult) {
	start := time.Now()
	result = ToolResult{CallID: call.ID, Name: call.Name}

	defer func() {
		if r := recover(); r != nil {
			e.l.Errorf(ctx, "%s: tool %s panicked: %v", LogPrefixExecute, call.Name, r)
			result.Payload = ErrorPayload(fmt.Sprintf("tool '%s' crashed: %v", call.Name, r))
		}
		if e.observer != nil {
			e.observer.ObserveToolCall(call.Name, !IsErrorPayload(result.Payload), time.Since(start))
		}
	}()

	tool, ok := e.registry.Get(call.Name)
	if !ok {
		e.l.Warnf(ctx, "%s: unknown tool %q", LogPrefixExecute, call.Name)
		result.Payload = ErrorPayload(fmt.Sprintf("Unknown tool '%s'", call.Name))
		return result
	}

	args := call.Args
	if args == nil {
		args = map[string]interface{}{}
	}
	if err := e.registry.Validate(call.Name, args); err != nil {
		detail := err.Error()
		if errors.Is(err, ErrInvalidArguments) {
			detail = strings.TrimPrefix(detail, ErrInvalidArguments.Error()+": ")
		}
		e.l.Warnf(ctx, "%s: invalid arguments for %s: %s", LogPrefixExecute, call.Name, detail)
		result.Payload = ErrorPayload(fmt.Sprintf("invalid arguments for '%s': %s", call.Name, detail))
		return result
	}

	// Context accessors are answered from session state.
	if ct, ok := tool.(ContextTool); ok {
		result.Payload = ct.FromSession(s)
		return result
	}

	out, err := tool.Execute(WithSession(ctx, s), args)
	if err != nil {
		e.l.Errorf(ctx, "%s: tool %s failed: %v", LogPrefixExecute, call.Name, err)
		result.Payload = ErrorPayload(err.Error())
		return result
	}
	result.Payload = out
	return result
}

// ExecuteBatch runs the calls of one assistant turn concurrently. Results keep
// call order.
func (e *Executor) ExecuteBatch(ctx context.Context, calls []ToolCall, s *Session) []ToolResult {
	results := make([]ToolResult, len(calls))
	if len(calls) == 1 {
		results[0] = e.Execute(ctx, calls[0], s)
		return results
	}

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call ToolCall) {
			defer wg.Done()
			results[i] = e.Execute(ctx, call, s)
		}(i, call)
	}
	wg.Wait()
	return results
}
