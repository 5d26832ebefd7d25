package agent

import (
	"fmt"
	"strings"
)

// FinalConfirmationPrompt is appended as a user turn once the artifact exists.
const FinalConfirmationPrompt = "The optimized resume file has been generated. " +
	"Conclude with a short final confirmation of what you changed and do not call any more tools."

const stopConfirmationPrompt = "Tool budget for this request is used up. " +
	"Give a short final confirmation based on the work so far without calling any more tools."

// FinalConfirmation picks the closing instruction for a stop reason.
func FinalConfirmation(reason string) string {
	if reason == StopArtifactReady {
		return FinalConfirmationPrompt
	}
	return stopConfirmationPrompt
}

const defaultUserRequest = "Optimize my resume for the target role and explain the changes briefly."

const promptPreamble = `You are an expert AI agent specializing in ATS-optimized resume writing and career consulting.
Your task: rewrite and optimize the user's resume for the provided job description.`

const promptRules = `WORKFLOW:
- Call get_resume_text and get_job_description once each to read the inputs. Do not call them again.
- Use web_search sparingly for current industry keywords and phrasing.
- Call optimize_resume_sections exactly once with the complete rewritten resume.

When writing optimized_markdown:
- Use markdown headings (#, ##) for sections
- Bold skills, metrics, and key terms (**Python**, **90%**, **AWS**)
- Use bullet points for achievements
- Keep format ATS-friendly (no tables/images)
- Separate roles/projects with 2 blank lines
- Never invent fake experience`

const promptClosing = "Output only one clean Markdown resume via optimize_resume_sections."

// PromptBuilder assembles the system instruction for a session.
type PromptBuilder struct {
	registry *ToolRegistry
}

func NewPromptBuilder(registry *ToolRegistry) *PromptBuilder {
	return &PromptBuilder{registry: registry}
}

// Build returns the system instruction. Resume and job description are not
// inlined; the model reads them through the context tools.
func (b *PromptBuilder) Build(s *Session) string {
	var sb strings.Builder
	sb.WriteString(promptPreamble)
	sb.WriteString("\n\nTOOLS AVAILABLE:\n")
	for i, t := range b.registry.List() {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, t.Name(), t.Description())
	}
	sb.WriteString("\n")
	sb.WriteString(promptRules)
	sb.WriteString("\n\n")

	fileName := "Unknown file name."
	if s != nil && s.ResumeFileName != "" {
		fileName = s.ResumeFileName
	}
	fmt.Fprintf(&sb, "Resume file: %s\n", fileName)

	if s != nil {
		links := []struct{ label, url string }{
			{"LinkedIn", s.Profile.LinkedIn},
			{"GitHub", s.Profile.GitHub},
			{"LeetCode", s.Profile.LeetCode},
		}
		for _, l := range links {
			if l.url != "" {
				fmt.Fprintf(&sb, "%s: %s\n", l.label, l.url)
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString(promptClosing)
	return sb.String()
}

// SynthesizeUserPrompt builds a user message when the transcript has no
// usable user input.
func SynthesizeUserPrompt(s *Session, userMessage string) string {
	var parts []string
	if msg := strings.TrimSpace(userMessage); msg != "" {
		parts = append(parts, "User request: "+msg)
	}
	if s != nil {
		if strings.TrimSpace(s.JobDescription) != "" {
			parts = append(parts, "Job description has been provided.")
		}
		if s.ResumeFileName != "" {
			parts = append(parts, "Resume file: "+s.ResumeFileName)
		}
		if strings.TrimSpace(s.Resume) != "" {
			parts = append(parts, "Resume text is attached in the conversation context.")
		}
	}
	if len(parts) == 0 {
		return defaultUserRequest
	}
	return strings.Join(parts, " ")
}
