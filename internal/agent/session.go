package agent

import (
	"strings"
	"time"
)

// ProfileURLs are optional links the candidate supplied with the upload.
type ProfileURLs struct {
	LinkedIn string `json:"linkedin_url,omitempty"`
	GitHub   string `json:"github_url,omitempty"`
	LeetCode string `json:"leetcode_url,omitempty"`
}

// Session is the per-conversation state carried across runs.
type Session struct {
	ID             string
	Turns          []Turn
	Resume         string
	JobDescription string
	ResumeFileName string
	Profile        ProfileURLs
	// ContextFrom is the index of the first turn recorded against the current
	// resume and job description. Context-tool limits count from here.
	ContextFrom int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionContext is the per-request context a run may install on a session.
type SessionContext struct {
	Resume         string
	JobDescription string
	ResumeFileName string
	Profile        ProfileURLs
}

func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{ID: id, CreatedAt: now, UpdatedAt: now}
}

// Clone returns a deep copy; the transcript of the copy can be appended to
// without affecting the original.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Turns = make([]Turn, len(s.Turns))
	for i, t := range s.Turns {
		out.Turns[i] = t.clone()
	}
	return &out
}

// SetContext installs request context. Empty fields keep the current value,
// so resume and job description only change when a request replaces them.
// Installing a different resume or job description moves ContextFrom to the
// end of the transcript, so the context tools may answer again.
func (s *Session) SetContext(c SessionContext) {
	changed := false
	if strings.TrimSpace(c.Resume) != "" {
		changed = changed || c.Resume != s.Resume
		s.Resume = c.Resume
	}
	if strings.TrimSpace(c.JobDescription) != "" {
		changed = changed || c.JobDescription != s.JobDescription
		s.JobDescription = c.JobDescription
	}
	if changed {
		s.ContextFrom = len(s.Turns)
	}
	if c.ResumeFileName != "" {
		s.ResumeFileName = c.ResumeFileName
	}
	if c.Profile.LinkedIn != "" {
		s.Profile.LinkedIn = c.Profile.LinkedIn
	}
	if c.Profile.GitHub != "" {
		s.Profile.GitHub = c.Profile.GitHub
	}
	if c.Profile.LeetCode != "" {
		s.Profile.LeetCode = c.Profile.LeetCode
	}
}

// Append adds turns to the transcript and bumps UpdatedAt.
func (s *Session) Append(turns ...Turn) {
	s.Turns = append(s.Turns, turns...)
	s.UpdatedAt = time.Now().UTC()
}

// HasUserInput reports whether any user turn carries non-blank text.
func (s *Session) HasUserInput() bool {
	for _, t := range s.Turns {
		if t.Kind == TurnUser && strings.TrimSpace(t.Text) != "" {
			return true
		}
	}
	return false
}
