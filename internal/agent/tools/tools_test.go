package tools_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-optimizer/internal/agent"
	"resume-optimizer/internal/agent/tools"
	"resume-optimizer/pkg/pdfrender"
	"resume-optimizer/pkg/websearch"
)

// mockSearcher
type mockSearcher struct {
	query string
	topK  int
}

func (m *mockSearcher) Search(ctx context.Context, query string, topK int) websearch.Response {
	m.query, m.topK = query, topK
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	results := []websearch.Result{{Title: "AI Engineer keywords", URL: "https://example.com/k"}}
	return websearch.Response{
		Trace: []websearch.TraceItem{
			{Type: websearch.TraceSearch, At: at, Query: query},
			{Type: websearch.TraceEvidence, At: at, Items: results, Provider: "stub"},
		},
		Results:  results,
		Provider: "stub",
		Summary:  "Search completed using stub. Found 1 results.",
	}
}

// mockGenerator
type mockGenerator struct {
	doc  pdfrender.Document
	opts pdfrender.OutputOptions
	err  error
}

func (m *mockGenerator) Generate(ctx context.Context, doc pdfrender.Document, opts pdfrender.OutputOptions) (string, error) {
	m.doc, m.opts = doc, opts
	if m.err != nil {
		return "", m.err
	}
	return "optimized_resumes/cv_optimised_abc.pdf", nil
}

func TestAgentTools(t *testing.T) {
	ctx := context.Background()

	s := agent.NewSession("s1")
	s.SetContext(agent.SessionContext{
		Resume:         "Experienced Engineer",
		JobDescription: "Looking for a Senior Backend Engineer",
		ResumeFileName: "cv.pdf",
	})
	sctx := agent.WithSession(ctx, s)

	t.Run("GetResumeTextTool", func(t *testing.T) {
		tool := tools.NewGetResumeTextTool()
		if tool.Name() != "get_resume_text" {
			t.Errorf("unexpected name: %s", tool.Name())
		}
		if tool.Description() == "" || len(tool.Parameters()) == 0 {
			t.Errorf("missing desc or params")
		}

		res, err := tool.Execute(sctx, nil)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		want := "RESUME TEXT:\n\nExperienced Engineer\n\n(End of resume - 20 characters)"
		if res != want {
			t.Errorf("got %q", res)
		}

		// no session
		res, _ = tool.Execute(ctx, nil)
		if res != "No resume provided." {
			t.Errorf("got %q", res)
		}

		if _, ok := tool.(agent.ContextTool); !ok {
			t.Error("resume tool should answer from session state")
		}
	})

	t.Run("GetJobDescriptionTool", func(t *testing.T) {
		tool := tools.NewGetJobDescriptionTool()
		if tool.Name() != "get_job_description" {
			t.Errorf("unexpected name: %s", tool.Name())
		}

		ct, ok := tool.(agent.ContextTool)
		if !ok {
			t.Fatal("job description tool should answer from session state")
		}
		want := "JOB DESCRIPTION:\n\nLooking for a Senior Backend Engineer\n\n(End of job description - 37 characters)"
		if got := ct.FromSession(s); got != want {
			t.Errorf("got %q", got)
		}
		if got := ct.FromSession(agent.NewSession("empty")); got != "No job description provided." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("WebSearchTool", func(t *testing.T) {
		searcher := &mockSearcher{}
		tool := tools.NewWebSearchTool(searcher)
		if tool.Name() != "web_search" {
			t.Errorf("unexpected name: %s", tool.Name())
		}

		res, err := tool.Execute(ctx, map[string]interface{}{"query": "ai engineer keywords", "top_k": float64(3)})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if searcher.query != "ai engineer keywords" || searcher.topK != 3 {
			t.Errorf("searcher got %q/%d", searcher.query, searcher.topK)
		}

		payload, ok := res.(map[string]interface{})
		if !ok {
			t.Fatalf("unexpected result type %T", res)
		}
		if payload["provider"] != "stub" {
			t.Errorf("provider = %v", payload["provider"])
		}
		trace, ok := payload["_trace"].([]interface{})
		if !ok || len(trace) != 2 {
			t.Fatalf("unexpected trace %v", payload["_trace"])
		}
		first := trace[0].(map[string]interface{})
		if first["type"] != "search" || first["at"] != "2026-01-02T03:04:05Z" {
			t.Errorf("trace[0] = %v", first)
		}
		results, ok := payload["results"].([]interface{})
		if !ok || len(results) != 1 {
			t.Errorf("results = %v", payload["results"])
		}

		// default top_k
		_, _ = tool.Execute(ctx, map[string]interface{}{"query": "nlp"})
		if searcher.topK != websearch.DefaultTopK {
			t.Errorf("top_k = %d", searcher.topK)
		}

		if _, err := tool.Execute(ctx, map[string]interface{}{}); err == nil {
			t.Error("expected error for missing query")
		}
	})

	t.Run("OptimizeResumeSectionsTool", func(t *testing.T) {
		gen := &mockGenerator{}
		tool := tools.NewOptimizeResumeSectionsTool(gen)
		if tool.Name() != "optimize_resume_sections" {
			t.Errorf("unexpected name: %s", tool.Name())
		}

		res, err := tool.Execute(sctx, map[string]interface{}{
			"optimized_markdown": "# Jane Doe\n## Summary\nBackend engineer\n## Experience\n- Built APIs",
			"name":               "Jane Doe",
			"contact_line":       " jane@example.com ",
			"output_path":        "final.pdf",
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		out := res.(map[string]interface{})
		if out["ok"] != true || out["output_path"] != "optimized_resumes/cv_optimised_abc.pdf" {
			t.Errorf("unexpected result: %v", out)
		}
		if gen.doc.Name != "Jane Doe" || gen.doc.Contact != "jane@example.com" || len(gen.doc.Sections) != 2 {
			t.Errorf("unexpected document: %+v", gen.doc)
		}
		if gen.opts.OriginalFileName != "cv.pdf" || gen.opts.OutputPath != "final.pdf" {
			t.Errorf("unexpected options: %+v", gen.opts)
		}

		// default name, no session
		_, _ = tool.Execute(ctx, map[string]interface{}{"optimized_markdown": "## A\nx"})
		if gen.doc.Name != "Candidate" || gen.opts.OriginalFileName != "" {
			t.Errorf("unexpected defaults: %+v %+v", gen.doc, gen.opts)
		}

		// blank markdown
		res, err = tool.Execute(ctx, map[string]interface{}{"optimized_markdown": "  "})
		if err != nil || !agent.IsErrorPayload(res) {
			t.Errorf("expected error payload, got %v, %v", res, err)
		}

		// renderer failure
		gen.err = errors.New("chrome missing")
		if _, err := tool.Execute(ctx, map[string]interface{}{"optimized_markdown": "## A\nx"}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestNewAll_RegistersCleanly(t *testing.T) {
	registry := agent.NewToolRegistry()
	for _, tool := range tools.NewAll(&mockSearcher{}, &mockGenerator{}) {
		if err := registry.Register(tool); err != nil {
			t.Fatalf("register %s: %v", tool.Name(), err)
		}
	}

	want := []string{"get_job_description", "get_resume_text", "optimize_resume_sections", "web_search"}
	got := registry.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names = %v, want %v", got, want)
		}
	}

	tests := []struct {
		tool string
		args map[string]interface{}
		ok   bool
	}{
		{"web_search", map[string]interface{}{"query": "go"}, true},
		{"web_search", map[string]interface{}{"query": "go", "top_k": float64(11)}, false},
		{"web_search", map[string]interface{}{"top_k": float64(3)}, false},
		{"optimize_resume_sections", map[string]interface{}{"optimized_markdown": "## A"}, true},
		{"optimize_resume_sections", map[string]interface{}{"name": "x"}, false},
		{"get_resume_text", map[string]interface{}{}, true},
	}
	for _, tt := range tests {
		err := registry.Validate(tt.tool, tt.args)
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%s, %v) = %v", tt.tool, tt.args, err)
		}
	}
}
