package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/agent/orchestrator"
	"resume-optimizer/internal/resume"
	repo "resume-optimizer/internal/resume/repository"
	"resume-optimizer/internal/session"
	"resume-optimizer/internal/session/memory"
	"resume-optimizer/pkg/log"
)

type fakeRunner struct {
	out     orchestrator.RunOutput
	err     error
	gotMsg  string
	gotSess *agent.Session
}

func (f *fakeRunner) Run(ctx context.Context, s *agent.Session, msg string, _ orchestrator.RunOptions) (orchestrator.RunOutput, error) {
	f.gotMsg = msg
	f.gotSess = s
	if f.err != nil {
		return orchestrator.RunOutput{}, f.err
	}
	out := f.out
	work := s.Clone()
	work.Append(out.NewTurns...)
	out.Session = work
	return out, nil
}

type fakeRepo struct {
	created []repo.CreateResumeOptions
	err     error
}

func (f *fakeRepo) CreateResume(_ context.Context, opt repo.CreateResumeOptions) (resume.Resume, error) {
	if f.err != nil {
		return resume.Resume{}, f.err
	}
	f.created = append(f.created, opt)
	return resume.Resume{ID: int64(len(f.created)), FileName: opt.FileName}, nil
}

func (f *fakeRepo) GetResume(_ context.Context, id int64) (resume.Resume, error) {
	return resume.Resume{}, nil
}

type failingLocker struct{ err error }

func (f failingLocker) Lock(ctx context.Context, _ string) (func(), error) {
	return nil, f.err
}

func extractOK(data []byte) (string, int, error) { return "  Jane Doe\nGo engineer  ", 1, nil }

func newTestUseCase(t *testing.T, runner Runner, store session.Store, r repo.Repository) *implUseCase {
	t.Helper()
	return New(log.NewNop(), Config{
		Runner:    runner,
		Store:     store,
		Repo:      r,
		Extract:   extractOK,
		OutputDir: t.TempDir(),
	})
}

func successTurns(outputPath string) []agent.Turn {
	return []agent.Turn{
		agent.UserTurn("make it better"),
		agent.AssistantTurn("", []agent.ToolCall{
			{ID: "c1", Name: agent.ToolGetResumeText},
			{ID: "c2", Name: agent.ToolWebSearch, Args: map[string]interface{}{"query": "go resume keywords"}},
		}),
		agent.ToolResultTurn(agent.ToolResult{CallID: "c1", Name: agent.ToolGetResumeText, Payload: "Jane Doe"}),
		agent.ToolResultTurn(agent.ToolResult{CallID: "c2", Name: agent.ToolWebSearch, Payload: map[string]interface{}{
			"_trace": []interface{}{
				map[string]interface{}{"type": "search", "at": "2026-01-01T00:00:00Z", "query": "go resume keywords"},
				map[string]interface{}{"type": "evidence", "provider": "duckduckgo", "items": []interface{}{}},
			},
			"results":  []interface{}{map[string]interface{}{"title": "a", "url": "https://a"}},
			"provider": "duckduckgo",
		}}),
		agent.AssistantTurn("", []agent.ToolCall{
			{ID: "c3", Name: agent.ToolOptimizeResumeSections, Args: map[string]interface{}{"optimized_markdown": "# Jane", "name": "Jane"}},
		}),
		agent.ToolResultTurn(agent.ToolResult{CallID: "c3", Name: agent.ToolOptimizeResumeSections, Payload: map[string]interface{}{
			"ok": true, "output_path": outputPath,
		}}),
		agent.AssistantTurn("Your resume is ready.", nil),
	}
}

func TestOptimize_Success(t *testing.T) {
	store := memory.New(10, time.Hour)
	r := &fakeRepo{}
	runner := &fakeRunner{}
	uc := newTestUseCase(t, runner, store, r)

	fileName := "cv_optimised_0123.pdf"
	if err := os.WriteFile(filepath.Join(uc.cfg.OutputDir, fileName), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner.out = orchestrator.RunOutput{
		FinalText:  "Your resume is ready.",
		NewTurns:   successTurns(filepath.Join(uc.cfg.OutputDir, fileName)),
		Steps:      3,
		StopReason: agent.StopArtifactReady,
	}

	out, err := uc.Optimize(context.Background(), resume.OptimizeInput{
		SessionID:      "s-1",
		FileName:       "cv.PDF",
		File:           []byte("%PDF-1.4"),
		JobDescription: " Go developer ",
		UserMessage:    "make it better",
		Profile:        agent.ProfileURLs{GitHub: "https://github.com/jane"},
	})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	if out.SessionID != "s-1" || out.AIResponse != "Your resume is ready." || !out.ToolUsed {
		t.Errorf("unexpected output: %+v", out)
	}
	if out.OptimizedFileName != fileName || !out.OptimizedFileExists {
		t.Errorf("file = %q exists=%v", out.OptimizedFileName, out.OptimizedFileExists)
	}
	want := "Used tools: get_resume_text, web_search, optimize_resume_sections"
	if out.ThinkingNote != want {
		t.Errorf("thinking note = %q, want %q", out.ThinkingNote, want)
	}

	if runner.gotMsg != "make it better" {
		t.Errorf("runner got message %q", runner.gotMsg)
	}
	if runner.gotSess.Resume != "Jane Doe\nGo engineer" || runner.gotSess.JobDescription != "Go developer" {
		t.Errorf("session context not installed: %+v", runner.gotSess)
	}
	if runner.gotSess.ResumeFileName != "cv.PDF" || runner.gotSess.Profile.GitHub != "https://github.com/jane" {
		t.Errorf("unexpected session context: %+v", runner.gotSess)
	}

	saved, created, err := store.GetOrCreate(context.Background(), "s-1")
	if err != nil || created {
		t.Fatalf("session was not saved: created=%v err=%v", created, err)
	}
	if len(saved.Turns) != len(runner.out.NewTurns) {
		t.Errorf("saved %d turns, want %d", len(saved.Turns), len(runner.out.NewTurns))
	}

	if len(r.created) != 1 || r.created[0].GitHubURL != "https://github.com/jane" {
		t.Errorf("upload metadata not stored: %+v", r.created)
	}
}

func TestOptimize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   resume.OptimizeInput
		extract Extractor
		runErr  error
		locker  session.Locker
		wantErr error
	}{
		{
			name:    "not a pdf",
			input:   resume.OptimizeInput{FileName: "cv.docx"},
			wantErr: resume.ErrNotPDF,
		},
		{
			name:    "extraction failure",
			input:   resume.OptimizeInput{FileName: "cv.pdf"},
			extract: func([]byte) (string, int, error) { return "", 0, errors.New("malformed xref") },
			wantErr: resume.ErrExtraction,
		},
		{
			name:    "model failure",
			input:   resume.OptimizeInput{FileName: "cv.pdf"},
			runErr:  fmt.Errorf("%w at step 1: boom", orchestrator.ErrModelInvocation),
			wantErr: resume.ErrModel,
		},
		{
			name:    "step limit",
			input:   resume.OptimizeInput{FileName: "cv.pdf"},
			runErr:  fmt.Errorf("%w: 8 model calls", orchestrator.ErrMaxIterations),
			wantErr: resume.ErrStepLimit,
		},
		{
			name:    "session busy",
			input:   resume.OptimizeInput{FileName: "cv.pdf"},
			locker:  failingLocker{err: fmt.Errorf("%w: context deadline exceeded", session.ErrSessionBusy)},
			wantErr: resume.ErrSessionBusy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New(10, time.Hour)
			uc := newTestUseCase(t, &fakeRunner{err: tt.runErr}, store, nil)
			if tt.extract != nil {
				uc.cfg.Extract = tt.extract
			}
			if tt.locker != nil {
				uc.cfg.Locker = tt.locker
			}
			tt.input.SessionID = "s-err"

			_, err := uc.Optimize(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if store.Len() != 0 {
				t.Error("failed runs must not persist the session")
			}
		})
	}
}

func TestOptimize_LockBackendFailureIsNotBusy(t *testing.T) {
	backendErr := errors.New("failed to acquire session lock: dial tcp 127.0.0.1:6379: connection refused")
	store := memory.New(10, time.Hour)
	runner := &fakeRunner{}
	uc := newTestUseCase(t, runner, store, nil)
	uc.cfg.Locker = failingLocker{err: backendErr}

	_, err := uc.Optimize(context.Background(), resume.OptimizeInput{FileName: "cv.pdf", SessionID: "s-lock"})
	if !errors.Is(err, backendErr) {
		t.Fatalf("err = %v, want the backend error", err)
	}
	if errors.Is(err, resume.ErrSessionBusy) {
		t.Error("a lock backend failure must not be reported as a busy session")
	}
	if runner.gotSess != nil || store.Len() != 0 {
		t.Error("nothing should run without the lock")
	}
}

func TestOptimize_RepoFailureIsNotFatal(t *testing.T) {
	runner := &fakeRunner{out: orchestrator.RunOutput{FinalText: "done"}}
	uc := newTestUseCase(t, runner, memory.New(10, time.Hour), &fakeRepo{err: repo.ErrFailedToInsert})

	out, err := uc.Optimize(context.Background(), resume.OptimizeInput{FileName: "cv.pdf", UserMessage: "hi"})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if out.SessionID == "" {
		t.Error("a session id should be generated")
	}
	if out.ToolUsed || out.ThinkingNote != "" || len(out.ToolTrace) != 0 {
		t.Errorf("no tools ran, got %+v", out)
	}
}

func TestDownload(t *testing.T) {
	uc := newTestUseCase(t, &fakeRunner{}, memory.New(1, time.Hour), nil)
	name := "cv_optimised_abc.pdf"
	if err := os.WriteFile(filepath.Join(uc.cfg.OutputDir, name), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(uc.cfg.OutputDir, "dir.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := uc.Download(context.Background(), name)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if out.FileName != name || out.Path != filepath.Join(uc.cfg.OutputDir, name) {
		t.Errorf("unexpected output %+v", out)
	}

	for _, bad := range []string{"", "..", "../secret.pdf", `..\secret.pdf`, "a/b.pdf"} {
		if _, err := uc.Download(context.Background(), bad); !errors.Is(err, resume.ErrInvalidFilename) {
			t.Errorf("Download(%q) err = %v, want ErrInvalidFilename", bad, err)
		}
	}
	for _, missing := range []string{"missing.pdf", "dir.pdf"} {
		if _, err := uc.Download(context.Background(), missing); !errors.Is(err, resume.ErrFileNotFound) {
			t.Errorf("Download(%q) err = %v, want ErrFileNotFound", missing, err)
		}
	}
}

func TestBuildTrace(t *testing.T) {
	uc := newTestUseCase(t, &fakeRunner{}, memory.New(1, time.Hour), nil)
	trace := uc.buildTrace(successTurns("optimized_resumes/cv_optimised_1.pdf"))

	var types []string
	for _, e := range trace {
		types = append(types, fmt.Sprint(e["type"]))
	}
	want := []string{"call", "call", "note", "search", "evidence", "note", "call", "note", "file"}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Fatalf("types = %v, want %v", types, want)
	}

	if trace[3]["at"] != "2026-01-01T00:00:00Z" || trace[3]["tool"] != agent.ToolWebSearch {
		t.Errorf("expanded item should keep its own timestamp: %+v", trace[3])
	}
	if trace[5]["text"] != "1 search results gathered." {
		t.Errorf("summary note = %v", trace[5]["text"])
	}
	args := trace[6]["args"].(map[string]interface{})
	if args["optimized_markdown"] != omittedText || args["name"] != "Jane" {
		t.Errorf("args not sanitized: %+v", args)
	}
	if trace[8]["file"] != "optimized_resumes/cv_optimised_1.pdf" {
		t.Errorf("file entry = %+v", trace[8])
	}
}

func TestSanitizeArgsAndPreview(t *testing.T) {
	long := strings.Repeat("é", 900)
	got := sanitizeArgs(map[string]interface{}{"query": long, "html": "<p>", "top_k": 3})
	q := got["query"].(string)
	if len([]rune(q)) != shortArgRunes+1 || !strings.HasSuffix(q, ellipsis) {
		t.Errorf("long arg not shortened: %d runes", len([]rune(q)))
	}
	if got["html"] != omittedText || got["top_k"] != 3 {
		t.Errorf("unexpected sanitized args: %+v", got)
	}

	if p := preview(map[string]interface{}{"a": 1}, 700); p != `{"a":1}` {
		t.Errorf("preview = %q", p)
	}
	if p := preview(strings.Repeat("x", 701), 700); len(p) != 700+len(ellipsis) {
		t.Errorf("preview not truncated: %d", len(p))
	}
}

func TestOptimizedFileName(t *testing.T) {
	tests := []struct {
		name  string
		turns []agent.Turn
		text  string
		want  string
	}{
		{
			name:  "tool output wins",
			turns: successTurns(`C:\out\cv_optimised_9.pdf`),
			text:  "see other_optimized_1.pdf",
			want:  "cv_optimised_9.pdf",
		},
		{
			name: "failed tool falls back to text",
			turns: []agent.Turn{agent.ToolResultTurn(agent.ToolResult{
				CallID: "x", Name: agent.ToolOptimizeResumeSections, Payload: agent.ErrorPayload("render failed"),
			})},
			text: "Saved to optimized_resumes/Jane_OPTIMIZED_2.pdf.",
			want: "Jane_OPTIMIZED_2.pdf",
		},
		{
			name: "nothing",
			text: "no file here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := optimizedFileName(tt.turns, tt.text); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
