package tools

import (
	"context"
	"strings"

	"resume-optimizer/internal/agent"
	"resume-optimizer/pkg/pdfrender"
)

// Generator is satisfied by *pdfrender.Generator.
type Generator interface {
	Generate(ctx context.Context, doc pdfrender.Document, opts pdfrender.OutputOptions) (string, error)
}

// OptimizeResumeSectionsTool renders the final markdown resume to PDF.
type OptimizeResumeSectionsTool struct {
	generator Generator
}

func NewOptimizeResumeSectionsTool(generator Generator) agent.Tool {
	return &OptimizeResumeSectionsTool{generator: generator}
}

func (t *OptimizeResumeSectionsTool) Name() string {
	return agent.ToolOptimizeResumeSections
}

func (t *OptimizeResumeSectionsTool) Description() string {
	return "Generate a styled PDF from the final optimized Markdown resume. Call exactly once with the complete resume."
}

func (t *OptimizeResumeSectionsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"optimized_markdown": map[string]interface{}{
				"type":        "string",
				"description": "The complete optimized resume in Markdown, one ## heading per section",
			},
			"output_path": map[string]interface{}{
				"type":        "string",
				"description": "Optional output file name",
			},
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Candidate full name for the header",
			},
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Professional title shown under the name",
			},
			"contact_line": map[string]interface{}{
				"type":        "string",
				"description": "Contact details on one line, e.g. email | phone | links",
			},
		},
		"required": []string{"optimized_markdown"},
	}
}

func (t *OptimizeResumeSectionsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	markdown := stringArg(params, "optimized_markdown")
	if strings.TrimSpace(markdown) == "" {
		return agent.ErrorPayload("optimized_markdown is required"), nil
	}

	name := strings.TrimSpace(stringArg(params, "name"))
	if name == "" {
		name = pdfrender.DefaultName
	}

	opts := pdfrender.OutputOptions{OutputPath: stringArg(params, "output_path")}
	if s, ok := agent.SessionFromContext(ctx); ok {
		opts.OriginalFileName = s.ResumeFileName
	}

	path, err := t.generator.Generate(ctx, pdfrender.Document{
		Name:     name,
		Title:    strings.TrimSpace(stringArg(params, "title")),
		Contact:  strings.TrimSpace(stringArg(params, "contact_line")),
		Sections: pdfrender.ParseSectionsFlex(markdown),
	}, opts)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		agent.PayloadKeyOK:         true,
		agent.PayloadKeyOutputPath: path,
	}, nil
}

func stringArg(params map[string]interface{}, key string) string {
	s, _ := params[key].(string)
	return s
}
