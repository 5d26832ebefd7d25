package http

import (
	"mime/multipart"
	"strings"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/resume"
)

// --- Request DTOs ---

type optimizeReq struct {
	File           *multipart.FileHeader `form:"file"            binding:"required"`
	JobDescription string                `form:"job_description" binding:"required"`
	UserMessage    string                `form:"user_message"    binding:"required"`
	SessionID      string                `form:"session_id"`
	ThreadID       string                `form:"thread_id"`
	LinkedInURL    string                `form:"linkedin_url"`
	GitHubURL      string                `form:"github_url"`
	LeetCodeURL    string                `form:"leetcode_url"`

	content []byte
}

func (r optimizeReq) sessionID() string {
	if id := strings.TrimSpace(r.SessionID); id != "" {
		return id
	}
	return strings.TrimSpace(r.ThreadID)
}

func (r optimizeReq) toInput() resume.OptimizeInput {
	return resume.OptimizeInput{
		SessionID:      r.sessionID(),
		FileName:       r.File.Filename,
		File:           r.content,
		JobDescription: r.JobDescription,
		UserMessage:    r.UserMessage,
		Profile: agent.ProfileURLs{
			LinkedIn: r.LinkedInURL,
			GitHub:   r.GitHubURL,
			LeetCode: r.LeetCodeURL,
		},
	}
}

// --- Response DTOs ---

type optimizeResp struct {
	SessionID           string              `json:"session_id"`
	ThreadID            string              `json:"thread_id"`
	AIResponse          string              `json:"ai_response"`
	ToolUsed            bool                `json:"tool_used"`
	ToolTrace           []resume.TraceEntry `json:"tool_trace"`
	ThinkingNote        *string             `json:"thinking_note"`
	OptimizedFileName   *string             `json:"optimized_file_name"`
	OptimizedFileExists bool                `json:"optimized_file_exists"`
}

func (h *handler) newOptimizeResp(out resume.OptimizeOutput) optimizeResp {
	trace := out.ToolTrace
	if trace == nil {
		trace = []resume.TraceEntry{}
	}
	return optimizeResp{
		SessionID:           out.SessionID,
		ThreadID:            out.SessionID,
		AIResponse:          out.AIResponse,
		ToolUsed:            out.ToolUsed,
		ToolTrace:           trace,
		ThinkingNote:        optional(out.ThinkingNote),
		OptimizedFileName:   optional(out.OptimizedFileName),
		OptimizedFileExists: out.OptimizedFileExists,
	}
}

// optional maps "" to JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
