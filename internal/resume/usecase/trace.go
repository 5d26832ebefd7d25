package usecase

import (
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/resume"
)

const (
	omittedText     = "[[omitted large text]]"
	longArgRunes    = 800
	shortArgRunes   = 400
	previewRunes    = 700
	ellipsis        = "…"
	traceTypeCall   = "call"
	traceTypeResult = "result"
	traceTypeNote   = "note"
	traceTypeFile   = "file"
)

// redactedArgs never reach the timeline; they hold whole documents.
var redactedArgs = map[string]struct{}{
	"optimized_markdown": {},
	"raw_html":           {},
	"page_html":          {},
	"content_blob":       {},
	"raw_text":           {},
	"html":               {},
	"markdown":           {},
}

var optimizedFileRe = regexp.MustCompile(`(?i)([^\s/]+_optimi[sz]ed_[^\s/]+\.pdf)`)

// buildTrace walks the turns of one run and produces the client timeline.
func (uc *implUseCase) buildTrace(turns []agent.Turn) []resume.TraceEntry {
	var trace []resume.TraceEntry
	for _, t := range turns {
		at := uc.timestamp(t.CreatedAt)
		switch t.Kind {
		case agent.TurnAssistant:
			for _, c := range t.ToolCalls {
				trace = append(trace, resume.TraceEntry{
					"type": traceTypeCall,
					"at":   at,
					"tool": c.Name,
					"args": sanitizeArgs(c.Args),
				})
			}
		case agent.TurnToolResult:
			if t.Result == nil {
				continue
			}
			for _, e := range expandResult(t.Result.Payload, at) {
				entry := resume.TraceEntry{"type": traceTypeResult, "at": at, "tool": t.Result.Name}
				for k, v := range e {
					entry[k] = v
				}
				trace = append(trace, entry)
			}
		}
	}
	return trace
}

func (uc *implUseCase) timestamp(t time.Time) string {
	if t.IsZero() {
		t = uc.now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// expandResult turns a tool payload into timeline entries. Payloads with a
// _trace list are expanded item by item; anything else becomes one preview note.
func expandResult(payload interface{}, at string) []map[string]interface{} {
	parsed := payload
	if s, ok := payload.(string); ok {
		var v interface{}
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			parsed = v
		}
	}
	m := toMap(parsed)

	var entries []map[string]interface{}
	items, hasTrace := m[agent.PayloadKeyTrace].([]interface{})
	if !hasTrace {
		entries = append(entries, map[string]interface{}{
			"type": traceTypeNote,
			"at":   at,
			"text": preview(payload, previewRunes),
		})
	}
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		e := map[string]interface{}{"type": traceTypeNote, "at": at}
		for k, v := range item {
			if v == nil || v == "" {
				continue
			}
			e[k] = v
		}
		entries = append(entries, e)
	}
	if hasTrace {
		if results, ok := m[agent.PayloadKeyResults].([]interface{}); ok {
			entries = append(entries, map[string]interface{}{
				"type": traceTypeNote,
				"at":   at,
				"text": fmt.Sprintf("%d search results gathered.", len(results)),
			})
		}
	}
	if p, ok := m[agent.PayloadKeyOutputPath].(string); ok && p != "" {
		entries = append(entries, map[string]interface{}{"type": traceTypeFile, "at": at, "file": p})
	}
	return entries
}

// toMap normalizes typed payloads into a generic map via JSON.
func toMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

// sanitizeArgs hides document-sized arguments and shortens long strings.
func sanitizeArgs(args map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(args))
	for k, v := range args {
		if _, redact := redactedArgs[k]; redact {
			out[k] = omittedText
			continue
		}
		if s, ok := v.(string); ok && len([]rune(s)) > longArgRunes {
			out[k] = preview(s, shortArgRunes)
			continue
		}
		out[k] = v
	}
	return out
}

// preview renders v as text cut to max runes.
func preview(v interface{}, max int) string {
	s, ok := v.(string)
	if !ok {
		b, err := json.Marshal(v)
		if err != nil {
			s = fmt.Sprintf("%v", v)
		} else {
			s = string(b)
		}
	}
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + ellipsis
	}
	return s
}

func toolUsed(turns []agent.Turn) bool {
	for _, t := range turns {
		if t.HasToolCalls() || t.Kind == agent.TurnToolResult {
			return true
		}
	}
	return false
}

// thinkingNote lists the called tools in first-seen order.
func thinkingNote(trace []resume.TraceEntry) string {
	var names []string
	seen := make(map[string]struct{})
	for _, e := range trace {
		if e["type"] != traceTypeCall {
			continue
		}
		name, _ := e["tool"].(string)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	return "Used tools: " + strings.Join(names, ", ")
}

// optimizedFileName prefers the last successful generator output and falls
// back to a file name mentioned in the final text.
func optimizedFileName(turns []agent.Turn, finalText string) string {
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		if t.Kind != agent.TurnToolResult || t.Result == nil || t.Result.Name != agent.ToolOptimizeResumeSections {
			continue
		}
		if p := agent.OutputPath(t.Result.Payload); p != "" {
			return path.Base(strings.ReplaceAll(p, `\`, "/"))
		}
	}
	if m := optimizedFileRe.FindStringSubmatch(finalText); m != nil {
		return m[1]
	}
	return ""
}
