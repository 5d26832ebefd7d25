package tools

import (
	"context"

	"resume-optimizer/internal/agent"
)

// GetResumeTextTool hands the uploaded resume to the model.
type GetResumeTextTool struct{}

func NewGetResumeTextTool() agent.Tool {
	return &GetResumeTextTool{}
}

func (t *GetResumeTextTool) Name() string {
	return agent.ToolGetResumeText
}

func (t *GetResumeTextTool) Description() string {
	return "Retrieve the full resume text that was uploaded. Call at most once."
}

func (t *GetResumeTextTool) Parameters() map[string]interface{} {
	return emptyObject()
}

func (t *GetResumeTextTool) FromSession(s *agent.Session) interface{} {
	return agent.ResumeTextPayload(s)
}

func (t *GetResumeTextTool) Execute(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	s, _ := agent.SessionFromContext(ctx)
	return t.FromSession(s), nil
}

func emptyObject() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"properties":           map[string]interface{}{},
		"additionalProperties": false,
	}
}
