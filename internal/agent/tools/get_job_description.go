package tools

import (
	"context"

	"resume-optimizer/internal/agent"
)

// GetJobDescriptionTool hands the target job description to the model.
type GetJobDescriptionTool struct{}

func NewGetJobDescriptionTool() agent.Tool {
	return &GetJobDescriptionTool{}
}

func (t *GetJobDescriptionTool) Name() string {
	return agent.ToolGetJobDescription
}

func (t *GetJobDescriptionTool) Description() string {
	return "Retrieve the job description provided by the user. Call at most once."
}

func (t *GetJobDescriptionTool) Parameters() map[string]interface{} {
	return emptyObject()
}

func (t *GetJobDescriptionTool) FromSession(s *agent.Session) interface{} {
	return agent.JobDescriptionPayload(s)
}

func (t *GetJobDescriptionTool) Execute(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	s, _ := agent.SessionFromContext(ctx)
	return t.FromSession(s), nil
}
