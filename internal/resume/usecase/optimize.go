package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-optimizer/internal/agent/orchestrator"
	"resume-optimizer/internal/resume"
	repo "resume-optimizer/internal/resume/repository"
	"resume-optimizer/internal/session"
	"resume-optimizer/pkg/log"
)

// Optimize extracts the upload, runs the agent on the caller's session and
// reports the transcript delta as a tool timeline.
func (uc *implUseCase) Optimize(ctx context.Context, input resume.OptimizeInput) (resume.OptimizeOutput, error) {
	if !strings.HasSuffix(strings.ToLower(input.FileName), ".pdf") {
		return resume.OptimizeOutput{}, resume.ErrNotPDF
	}

	sessionID := session.ResolveID(input.SessionID)
	ctx = log.WithFields(ctx, "session_id", sessionID)
	uc.l.Infof(ctx, "resume.usecase.Optimize: request received file=%s bytes=%d new_session=%v",
		input.FileName, len(input.File), strings.TrimSpace(input.SessionID) == "")

	text, pages, err := uc.cfg.Extract(input.File)
	if err != nil {
		uc.l.Errorf(ctx, "resume.usecase.Optimize: extract: %v", err)
		return resume.OptimizeOutput{}, fmt.Errorf("%w: %v", resume.ErrExtraction, err)
	}
	text = strings.TrimSpace(text)
	uc.l.Infof(ctx, "resume.usecase.Optimize: extracted pages=%d text_len=%d", pages, len(text))

	uc.saveUpload(ctx, input)

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.RunTimeout)
	defer cancel()

	unlock, err := uc.cfg.Locker.Lock(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionBusy) {
			uc.l.Warnf(ctx, "resume.usecase.Optimize: lock: %v", err)
			return resume.OptimizeOutput{}, fmt.Errorf("%w: %v", resume.ErrSessionBusy, err)
		}
		uc.l.Errorf(ctx, "resume.usecase.Optimize: lock: %v", err)
		return resume.OptimizeOutput{}, err
	}
	defer unlock()

	sess, created, err := uc.cfg.Store.GetOrCreate(ctx, sessionID)
	if err != nil {
		uc.l.Errorf(ctx, "resume.usecase.Optimize: load session: %v", err)
		return resume.OptimizeOutput{}, err
	}
	sess.SetContext(agentContext(input, text))

	uc.l.Infof(ctx, "resume.usecase.Optimize: run start created=%v history=%d user_message_len=%d jd_len=%d",
		created, len(sess.Turns), len(input.UserMessage), len(input.JobDescription))

	out, err := uc.cfg.Runner.Run(ctx, sess, input.UserMessage, orchestrator.RunOptions{MaxIterations: uc.cfg.MaxIterations})
	if err != nil {
		uc.l.Errorf(ctx, "resume.usecase.Optimize: run: %v", err)
		if errors.Is(err, orchestrator.ErrMaxIterations) {
			return resume.OptimizeOutput{}, fmt.Errorf("%w: %v", resume.ErrStepLimit, err)
		}
		return resume.OptimizeOutput{}, fmt.Errorf("%w: %v", resume.ErrModel, err)
	}

	if err := uc.cfg.Store.Save(ctx, out.Session); err != nil {
		uc.l.Errorf(ctx, "resume.usecase.Optimize: save session: %v", err)
		return resume.OptimizeOutput{}, err
	}

	output := uc.buildOutput(sessionID, out)
	uc.l.Infof(ctx, "resume.usecase.Optimize: run complete steps=%d stop=%s ai_response_len=%d tool_used=%v file=%q",
		out.Steps, out.StopReason, len(output.AIResponse), output.ToolUsed, output.OptimizedFileName)
	return output, nil
}

func (uc *implUseCase) buildOutput(sessionID string, out orchestrator.RunOutput) resume.OptimizeOutput {
	trace := uc.buildTrace(out.NewTurns)
	output := resume.OptimizeOutput{
		SessionID:    sessionID,
		AIResponse:   out.FinalText,
		ToolUsed:     toolUsed(out.NewTurns),
		ToolTrace:    trace,
		ThinkingNote: thinkingNote(trace),
		Steps:        out.Steps,
		StopReason:   out.StopReason,
	}
	output.OptimizedFileName = optimizedFileName(out.NewTurns, out.FinalText)
	if output.OptimizedFileName != "" {
		info, err := os.Stat(filepath.Join(uc.cfg.OutputDir, output.OptimizedFileName))
		output.OptimizedFileExists = err == nil && !info.IsDir()
	}
	return output
}

// saveUpload records upload metadata. Failures are logged and otherwise ignored.
func (uc *implUseCase) saveUpload(ctx context.Context, input resume.OptimizeInput) {
	if uc.cfg.Repo == nil {
		return
	}
	res, err := uc.cfg.Repo.CreateResume(ctx, repo.CreateResumeOptions{
		FileName:    input.FileName,
		FileURL:     input.FileName,
		LinkedInURL: input.Profile.LinkedIn,
		GitHubURL:   input.Profile.GitHub,
		LeetCodeURL: input.Profile.LeetCode,
	})
	if err != nil {
		uc.l.Warnf(ctx, "resume.usecase.saveUpload: %v", err)
		return
	}
	uc.l.Debugf(ctx, "resume.usecase.saveUpload: stored resume id=%d", res.ID)
}
