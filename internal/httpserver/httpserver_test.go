package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-optimizer/internal/resume"
	"resume-optimizer/pkg/log"
	"resume-optimizer/pkg/response"
)

type stubUseCase struct{}

func (stubUseCase) Optimize(context.Context, resume.OptimizeInput) (resume.OptimizeOutput, error) {
	return resume.OptimizeOutput{}, nil
}

func (stubUseCase) Download(context.Context, string) (resume.DownloadOutput, error) {
	return resume.DownloadOutput{}, resume.ErrFileNotFound
}

func newTestServer(t *testing.T, readiness map[string]ReadinessCheck) *HTTPServer {
	t.Helper()
	srv, err := New(log.NewNop(), Config{
		Port:          8080,
		Mode:          "test",
		Environment:   "development",
		ResumeUseCase: stubUseCase{},
		Readiness:     readiness,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func get(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing mode", Config{Port: 1, ResumeUseCase: stubUseCase{}}},
		{"missing port", Config{Mode: "test", ResumeUseCase: stubUseCase{}}},
		{"missing use case", Config{Port: 1, Mode: "test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(log.NewNop(), tt.cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/", "/health", "/live", "/ready", "/metrics"} {
		if w := get(srv, path); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}

	if w := get(srv, "/download_optimized/missing.pdf"); w.Code != http.StatusNotFound {
		t.Errorf("download route not wired: %d", w.Code)
	}
}

func TestReadyCheck_DependencyDown(t *testing.T) {
	srv := newTestServer(t, map[string]ReadinessCheck{
		"redis":    func(context.Context) error { return errors.New("connection refused") },
		"postgres": func(context.Context) error { return nil },
	})

	w := get(srv, "/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	deps := resp.Data.(map[string]interface{})["dependencies"].(map[string]interface{})
	if deps["redis"] != "connection refused" || deps["postgres"] != "ok" {
		t.Errorf("unexpected dependencies: %v", deps)
	}
}
