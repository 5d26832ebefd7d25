package usecase

import (
	"strings"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/resume"
)

func agentContext(input resume.OptimizeInput, text string) agent.SessionContext {
	return agent.SessionContext{
		Resume:         text,
		JobDescription: strings.TrimSpace(input.JobDescription),
		ResumeFileName: input.FileName,
		Profile: agent.ProfileURLs{
			LinkedIn: strings.TrimSpace(input.Profile.LinkedIn),
			GitHub:   strings.TrimSpace(input.Profile.GitHub),
			LeetCode: strings.TrimSpace(input.Profile.LeetCode),
		},
	}
}
