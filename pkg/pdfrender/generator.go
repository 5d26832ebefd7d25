package pdfrender

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	pkgLog "resume-optimizer/pkg/log"
)

var ErrEmptyDocument = errors.New("document has no content")

// Generator turns a Document into a PDF file inside outputDir.
type Generator struct {
	renderer  Renderer
	outputDir string
	pageSize  string
	l         pkgLog.Logger
}

func NewGenerator(l pkgLog.Logger, renderer Renderer, outputDir, pageSize string) *Generator {
	return &Generator{renderer: renderer, outputDir: outputDir, pageSize: pageSize, l: l}
}

// OutputDir is where generated files are written.
func (g *Generator) OutputDir() string { return g.outputDir }

// Generate renders doc and returns the path of the written file.
func (g *Generator) Generate(ctx context.Context, doc Document, opts OutputOptions) (string, error) {
	if len(doc.Sections) == 0 {
		return "", ErrEmptyDocument
	}

	html, err := BuildHTML(doc, g.pageSize)
	if err != nil {
		return "", err
	}

	pdf, err := g.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		g.l.Errorf(ctx, "pkg.pdfrender.Generate: render: %v", err)
		return "", err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(g.outputDir, OutputFileName(opts))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	g.l.Infof(ctx, "pkg.pdfrender.Generate: wrote %s (%d bytes, %d sections)", path, len(pdf), len(doc.Sections))
	return path, nil
}

// OutputFileName picks the file name for a generated PDF:
// "<original>_optimised_<hex>.pdf" when the upload name is known, otherwise
// the base name of OutputPath.
func OutputFileName(opts OutputOptions) string {
	if orig := cleanBase(opts.OriginalFileName); orig != "" {
		base := strings.TrimSuffix(orig, filepath.Ext(orig))
		if base == "" {
			base = "resume"
		}
		return base + optimisedInfix + strings.ReplaceAll(uuid.NewString(), "-", "") + ".pdf"
	}
	name := cleanBase(opts.OutputPath)
	if name == "" {
		return DefaultOutputName
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// cleanBase strips directories (both separators) and replaces whitespace so
// the name is safe in a download URL.
func cleanBase(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	base := filepath.Base(p)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return strings.Join(strings.Fields(base), "_")
}
