package resume

import (
	"time"

	"resume-optimizer/internal/agent"
)

// --- Resume Domain Model ---

// Resume is the stored metadata of an uploaded file.
type Resume struct {
	ID          int64
	FileName    string
	FileURL     string
	LinkedInURL string
	GitHubURL   string
	LeetCodeURL string
	CreatedAt   time.Time
}

// --- UseCase Inputs ---

type OptimizeInput struct {
	SessionID      string
	FileName       string
	File           []byte
	JobDescription string
	UserMessage    string
	Profile        agent.ProfileURLs
}

// --- UseCase Outputs ---

// TraceEntry is one item of the tool timeline returned to clients.
type TraceEntry map[string]interface{}

type OptimizeOutput struct {
	SessionID           string
	AIResponse          string
	ToolUsed            bool
	ToolTrace           []TraceEntry
	ThinkingNote        string
	OptimizedFileName   string
	OptimizedFileExists bool
	Steps               int
	StopReason          string
}

type DownloadOutput struct {
	Path     string
	FileName string
}
