package llmprovider

import (
	"context"
	"encoding/json"
	"testing"

	"resume-optimizer/pkg/gemini"
	"resume-optimizer/pkg/openai"
)

type fakeGemini struct {
	got  *gemini.Request
	resp *gemini.Response
}

func (f *fakeGemini) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	f.got = req
	return f.resp, nil
}

func (f *fakeGemini) Model() string { return "gemini-test" }

type fakeOpenAI struct {
	got  *openai.Request
	resp *openai.Response
}

func (f *fakeOpenAI) GenerateContent(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	f.got = req
	return f.resp, nil
}

func (f *fakeOpenAI) Model() string { return "gpt-test" }

func conversation() *Request {
	return &Request{
		SystemInstruction: &Message{Parts: []Part{{Text: "be an ATS agent"}}},
		Messages: []Message{
			{Role: RoleUser, Parts: []Part{{Text: "optimize"}}},
			{Role: RoleAssistant, Parts: []Part{
				{FunctionCall: &FunctionCall{ID: "c1", Name: "get_resume_text", Args: map[string]interface{}{}}},
				{FunctionCall: &FunctionCall{ID: "c2", Name: "web_search", Args: map[string]interface{}{"query": "nlp"}}},
			}},
			{Role: RoleTool, Parts: []Part{
				{FunctionResponse: &FunctionResponse{ID: "c1", Name: "get_resume_text", Response: "Jane Doe"}},
				{FunctionResponse: &FunctionResponse{ID: "c2", Name: "web_search", Response: map[string]interface{}{"ok": true}}},
			}},
		},
		Tools:            []Tool{{Name: "web_search", Description: "search"}},
		DisableToolCalls: true,
	}
}

func TestGeminiAdapter_RolesAndCalls(t *testing.T) {
	fake := &fakeGemini{resp: &gemini.Response{
		Content: gemini.Content{Role: "model", Parts: []gemini.Part{
			{Text: "done"},
			{FunctionCall: &gemini.FunctionCall{Name: "optimize_resume_sections", Args: map[string]interface{}{"optimized_markdown": "# Jane"}}},
			{},
		}},
		Usage: &gemini.Usage{InputTokens: 3, OutputTokens: 2, TotalTokens: 5},
	}}

	resp, err := NewGeminiAdapter(fake).GenerateContent(context.Background(), conversation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	roles := []string{fake.got.Messages[0].Role, fake.got.Messages[1].Role, fake.got.Messages[2].Role}
	if roles[0] != "user" || roles[1] != "model" || roles[2] != "user" {
		t.Errorf("unexpected wire roles: %v", roles)
	}
	if !fake.got.DisableToolCalls {
		t.Error("DisableToolCalls not forwarded")
	}
	if fake.got.Messages[2].Parts[1].FunctionResponse.ID != "c2" {
		t.Error("function response id not forwarded")
	}

	if resp.Content.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %s", resp.Content.Role)
	}
	if len(resp.Content.Parts) != 2 {
		t.Fatalf("empty parts should be dropped, got %d parts", len(resp.Content.Parts))
	}
	if resp.Usage.TotalTokens != 5 || resp.ProviderName != "gemini" {
		t.Errorf("unexpected response metadata: %+v", resp)
	}
}

func TestOpenAIAdapter_Conversation(t *testing.T) {
	fake := &fakeOpenAI{resp: &openai.Response{
		Model: "gpt-4o-mini-2024",
		Choices: []openai.Choice{{Message: openai.Message{
			Role:    "assistant",
			Content: "thinking",
			ToolCalls: []openai.ToolCall{
				{ID: "x1", Type: "function", Function: openai.FunctionCall{Name: "web_search", Arguments: `{"query":"llm"}`}},
				{ID: "x2", Type: "function", Function: openai.FunctionCall{Name: "web_search", Arguments: `not json`}},
			},
		}}},
		Usage: openai.Usage{PromptTokens: 9, CompletionTokens: 1, TotalTokens: 10},
	}}

	resp, err := NewOpenAIAdapter("deepseek", fake).GenerateContent(context.Background(), conversation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := fake.got.Messages
	// system + user + assistant + two tool messages
	if len(msgs) != 5 {
		t.Fatalf("expected 5 wire messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != "be an ATS agent" {
		t.Errorf("unexpected system message: %+v", msgs[0])
	}
	if len(msgs[2].ToolCalls) != 2 || msgs[2].ToolCalls[1].ID != "c2" {
		t.Errorf("assistant tool calls not preserved: %+v", msgs[2].ToolCalls)
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(msgs[2].ToolCalls[1].Function.Arguments), &args); err != nil || args["query"] != "nlp" {
		t.Errorf("arguments not encoded as JSON: %q", msgs[2].ToolCalls[1].Function.Arguments)
	}
	if msgs[3].Role != "tool" || msgs[3].ToolCallID != "c1" || msgs[3].Content != "Jane Doe" {
		t.Errorf("unexpected first tool message: %+v", msgs[3])
	}
	if msgs[4].Content != `{"ok":true}` {
		t.Errorf("object result should be JSON encoded, got %q", msgs[4].Content)
	}
	if fake.got.ToolChoice != "none" {
		t.Errorf("expected tool_choice none, got %q", fake.got.ToolChoice)
	}

	if resp.ProviderName != "deepseek" || resp.ModelName != "gpt-4o-mini-2024" {
		t.Errorf("unexpected provider metadata: %s/%s", resp.ProviderName, resp.ModelName)
	}
	calls := resp.Content.FunctionCalls()
	if len(calls) != 2 || calls[0].Args["query"] != "llm" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if calls[1].Args != nil {
		t.Errorf("malformed arguments should leave Args nil, got %v", calls[1].Args)
	}
	if resp.Content.Text() != "thinking" {
		t.Errorf("unexpected text: %q", resp.Content.Text())
	}
}
