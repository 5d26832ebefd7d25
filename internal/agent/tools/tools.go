package tools

import "resume-optimizer/internal/agent"

// NewAll returns the full resume-optimization tool set.
func NewAll(searcher Searcher, generator Generator) []agent.Tool {
	return []agent.Tool{
		NewGetResumeTextTool(),
		NewGetJobDescriptionTool(),
		NewWebSearchTool(searcher),
		NewOptimizeResumeSectionsTool(generator),
	}
}
