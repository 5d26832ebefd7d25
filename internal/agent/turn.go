package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"resume-optimizer/pkg/llmprovider"
)

// TurnKind tags the Turn union.
type TurnKind string

const (
	TurnUser       TurnKind = "user"
	TurnAssistant  TurnKind = "assistant"
	TurnToolResult TurnKind = "tool_result"
)

// ToolCall is one tool request issued by an assistant turn.
type ToolCall struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// ToolResult answers exactly one ToolCall.
type ToolResult struct {
	CallID  string      `json:"call_id"`
	Name    string      `json:"name"`
	Payload interface{} `json:"payload"`
}

// Turn is one transcript entry. Kind decides which fields are meaningful:
// user turns carry Text; assistant turns carry Text and/or ToolCalls;
// tool-result turns carry Result.
type Turn struct {
	Kind      TurnKind    `json:"kind"`
	Text      string      `json:"text,omitempty"`
	ToolCalls []ToolCall  `json:"tool_calls,omitempty"`
	Result    *ToolResult `json:"result,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func UserTurn(text string) Turn {
	return Turn{Kind: TurnUser, Text: text, CreatedAt: time.Now().UTC()}
}

func AssistantTurn(text string, calls []ToolCall) Turn {
	return Turn{Kind: TurnAssistant, Text: text, ToolCalls: calls, CreatedAt: time.Now().UTC()}
}

func ToolResultTurn(r ToolResult) Turn {
	return Turn{Kind: TurnToolResult, Result: &r, CreatedAt: time.Now().UTC()}
}

// HasToolCalls reports whether the turn requests any tool.
func (t Turn) HasToolCalls() bool {
	return t.Kind == TurnAssistant && len(t.ToolCalls) > 0
}

func (t Turn) clone() Turn {
	out := t
	if t.ToolCalls != nil {
		out.ToolCalls = make([]ToolCall, len(t.ToolCalls))
		for i, c := range t.ToolCalls {
			out.ToolCalls[i] = ToolCall{ID: c.ID, Name: c.Name, Args: cloneMap(c.Args)}
		}
	}
	if t.Result != nil {
		r := *t.Result
		if m, ok := r.Payload.(map[string]interface{}); ok {
			r.Payload = cloneMap(m)
		}
		out.Result = &r
	}
	return out
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = cloneMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// ValidateTranscript checks causal order: every tool result references a call
// issued by an earlier assistant turn, and call ids are unique.
func ValidateTranscript(turns []Turn) error {
	issued := make(map[string]struct{})
	for i, t := range turns {
		switch t.Kind {
		case TurnAssistant:
			for _, c := range t.ToolCalls {
				if _, dup := issued[c.ID]; dup {
					return fmt.Errorf("%w: %q at turn %d", ErrDuplicateCallID, c.ID, i)
				}
				issued[c.ID] = struct{}{}
			}
		case TurnToolResult:
			if t.Result == nil {
				return fmt.Errorf("%w: empty result at turn %d", ErrOrphanToolResult, i)
			}
			if _, ok := issued[t.Result.CallID]; !ok {
				return fmt.Errorf("%w: %q at turn %d", ErrOrphanToolResult, t.Result.CallID, i)
			}
		}
	}
	return nil
}

// RawMessage is the loose external representation of a transcript entry,
// as persisted or sent by clients.
type RawMessage struct {
	Role       string        `json:"role"`
	Content    interface{}   `json:"content,omitempty"`
	ToolCalls  []RawToolCall `json:"tool_calls,omitempty"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
	Name       string        `json:"name,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty"`
}

// RawToolCall accepts both {name, args} and OpenAI-style {function:{name, arguments}}.
type RawToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name,omitempty"`
	Args      map[string]interface{} `json:"args,omitempty"`
	Arguments string                 `json:"arguments,omitempty"`
	Function  *struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function,omitempty"`
}

// NormalizeTurns converts raw messages into the Turn union. Unknown roles
// become user turns.
func NormalizeTurns(raw []RawMessage) []Turn {
	turns := make([]Turn, 0, len(raw))
	for _, m := range raw {
		var t Turn
		switch strings.ToLower(strings.TrimSpace(m.Role)) {
		case "assistant", "ai", "model":
			t = Turn{Kind: TurnAssistant, Text: contentText(m.Content)}
			for _, rc := range m.ToolCalls {
				t.ToolCalls = append(t.ToolCalls, normalizeCall(rc))
			}
		case "tool", "function", "tool_result":
			t = Turn{Kind: TurnToolResult, Result: &ToolResult{
				CallID:  m.ToolCallID,
				Name:    m.Name,
				Payload: m.Content,
			}}
		default:
			t = Turn{Kind: TurnUser, Text: contentText(m.Content)}
		}
		if m.CreatedAt != nil {
			t.CreatedAt = *m.CreatedAt
		}
		turns = append(turns, t)
	}
	return turns
}

func normalizeCall(rc RawToolCall) ToolCall {
	call := ToolCall{ID: rc.ID, Name: rc.Name, Args: rc.Args}
	arguments := rc.Arguments
	if rc.Function != nil {
		if call.Name == "" {
			call.Name = rc.Function.Name
		}
		if arguments == "" {
			arguments = rc.Function.Arguments
		}
	}
	if call.Args == nil && arguments != "" {
		_ = json.Unmarshal([]byte(arguments), &call.Args)
	}
	return call
}

// contentText flattens string, list-of-parts, or arbitrary content into text.
func contentText(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case []interface{}:
		var parts []string
		for _, p := range c {
			if m, ok := p.(map[string]interface{}); ok {
				if s, ok := m["text"].(string); ok {
					parts = append(parts, s)
				}
				continue
			}
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Sprintf("%v", c)
		}
		return string(b)
	}
}

// ToRawMessages is the inverse of NormalizeTurns.
func ToRawMessages(turns []Turn) []RawMessage {
	out := make([]RawMessage, 0, len(turns))
	for _, t := range turns {
		created := t.CreatedAt
		m := RawMessage{CreatedAt: &created}
		switch t.Kind {
		case TurnAssistant:
			m.Role = "assistant"
			m.Content = t.Text
			for _, c := range t.ToolCalls {
				m.ToolCalls = append(m.ToolCalls, RawToolCall{ID: c.ID, Name: c.Name, Args: c.Args})
			}
		case TurnToolResult:
			m.Role = "tool"
			if t.Result != nil {
				m.ToolCallID = t.Result.CallID
				m.Name = t.Result.Name
				m.Content = t.Result.Payload
			}
		default:
			m.Role = "user"
			m.Content = t.Text
		}
		out = append(out, m)
	}
	return out
}

// ToLLMMessages maps the transcript onto provider messages. Consecutive tool
// results are grouped into one tool message so they answer the preceding
// assistant turn together.
func ToLLMMessages(turns []Turn) []llmprovider.Message {
	var msgs []llmprovider.Message
	for _, t := range turns {
		switch t.Kind {
		case TurnAssistant:
			msg := llmprovider.Message{Role: llmprovider.RoleAssistant}
			if t.Text != "" {
				msg.Parts = append(msg.Parts, llmprovider.Part{Text: t.Text})
			}
			for _, c := range t.ToolCalls {
				msg.Parts = append(msg.Parts, llmprovider.Part{FunctionCall: &llmprovider.FunctionCall{
					ID: c.ID, Name: c.Name, Args: c.Args,
				}})
			}
			if len(msg.Parts) == 0 {
				msg.Parts = []llmprovider.Part{{Text: ""}}
			}
			msgs = append(msgs, msg)

		case TurnToolResult:
			if t.Result == nil {
				continue
			}
			part := llmprovider.Part{FunctionResponse: &llmprovider.FunctionResponse{
				ID: t.Result.CallID, Name: t.Result.Name, Response: t.Result.Payload,
			}}
			if n := len(msgs); n > 0 && msgs[n-1].Role == llmprovider.RoleTool {
				msgs[n-1].Parts = append(msgs[n-1].Parts, part)
				continue
			}
			msgs = append(msgs, llmprovider.Message{Role: llmprovider.RoleTool, Parts: []llmprovider.Part{part}})

		default:
			msgs = append(msgs, llmprovider.Message{
				Role:  llmprovider.RoleUser,
				Parts: []llmprovider.Part{{Text: t.Text}},
			})
		}
	}
	return msgs
}
