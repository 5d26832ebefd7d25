package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-optimizer/pkg/gemini"
	"resume-optimizer/pkg/openai"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Tools:             convertToGeminiTools(req.Tools),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		DisableToolCalls:  req.DisableToolCalls,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	usage := &Usage{}
	if resp.Usage != nil {
		usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	return &Response{
		Content:      convertFromGeminiContent(resp.Content),
		ProviderName: "gemini",
		ModelName:    a.client.Model(),
		Usage:        usage,
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers for Gemini
func geminiRole(role string) string {
	if role == RoleAssistant {
		return gemini.RoleModel
	}
	// Function responses travel in user-role contents.
	return gemini.RoleUser
}

func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &gemini.FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &gemini.FunctionResponse{
				ID:       p.FunctionResponse.ID,
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return &gemini.Content{Role: geminiRole(msg.Role), Parts: parts}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToGeminiContent(&msgs[i])
	}
	return contents
}

func convertToGeminiTools(tools []Tool) []gemini.Tool {
	geminiTools := make([]gemini.Tool, len(tools))
	for i, t := range tools {
		geminiTools[i] = gemini.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return geminiTools
}

func convertFromGeminiContent(content gemini.Content) Message {
	parts := make([]Part, 0, len(content.Parts))
	for _, p := range content.Parts {
		part := Part{Text: p.Text}
		if p.FunctionCall != nil {
			part.FunctionCall = &FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if part.Text == "" && part.FunctionCall == nil {
			continue
		}
		parts = append(parts, part)
	}
	return Message{Role: RoleAssistant, Parts: parts}
}

// OpenAIAdapter adapts pkg/openai to llmprovider.Provider interface.
// The same adapter serves every OpenAI-compatible backend (openai, deepseek, qwen).
type OpenAIAdapter struct {
	name   string
	client openai.IOpenAI
}

// NewOpenAIAdapter creates a new adapter reporting the given provider name
func NewOpenAIAdapter(name string, client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	oaReq := &openai.Request{
		Messages:    convertToOpenAIMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	// Add system instruction as first message if present
	if req.SystemInstruction != nil {
		if text := req.SystemInstruction.Text(); text != "" {
			systemMsg := openai.Message{Role: openai.RoleSystem, Content: text}
			oaReq.Messages = append([]openai.Message{systemMsg}, oaReq.Messages...)
		}
	}

	if len(req.Tools) > 0 {
		oaReq.Tools = convertToOpenAITools(req.Tools)
		if req.DisableToolCalls {
			oaReq.ToolChoice = openai.ToolChoiceNone
		}
	}

	resp, err := a.client.GenerateContent(ctx, oaReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}

	return a.convertFromOpenAIResponse(resp), nil
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns the model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers for OpenAI-compatible APIs
func convertToOpenAIMessages(msgs []Message) []openai.Message {
	var out []openai.Message
	for _, msg := range msgs {
		switch msg.Role {
		case RoleTool:
			// One tool message per function response.
			for _, p := range msg.Parts {
				if p.FunctionResponse == nil {
					continue
				}
				out = append(out, openai.Message{
					Role:       openai.RoleTool,
					ToolCallID: p.FunctionResponse.ID,
					Name:       p.FunctionResponse.Name,
					Content:    stringifyResponse(p.FunctionResponse.Response),
				})
			}

		case RoleAssistant:
			m := openai.Message{Role: openai.RoleAssistant, Content: msg.Text()}
			for _, call := range msg.FunctionCalls() {
				args, _ := json.Marshal(call.Args)
				if call.Args == nil {
					args = []byte("{}")
				}
				m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: string(args),
					},
				})
			}
			out = append(out, m)

		default:
			out = append(out, openai.Message{Role: openai.RoleUser, Content: msg.Text()})
		}
	}
	return out
}

func stringifyResponse(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func convertToOpenAITools(tools []Tool) []openai.Tool {
	oaTools := make([]openai.Tool, len(tools))
	for i, t := range tools {
		oaTools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionDef{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return oaTools
}

func (a *OpenAIAdapter) convertFromOpenAIResponse(resp *openai.Response) *Response {
	result := &Response{
		Content:      Message{Role: RoleAssistant},
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if resp.Model != "" {
		result.ModelName = resp.Model
	}

	if len(resp.Choices) == 0 {
		return result
	}

	msg := resp.Choices[0].Message
	if msg.Content != "" {
		result.Content.Parts = append(result.Content.Parts, Part{Text: msg.Content})
	}
	for _, tc := range msg.ToolCalls {
		var args map[string]interface{}
		if tc.Function.Arguments != "" {
			// Malformed arguments leave Args nil; schema validation reports it downstream.
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		result.Content.Parts = append(result.Content.Parts, Part{
			FunctionCall: &FunctionCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	return result
}
