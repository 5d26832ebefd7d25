package pdfrender

import "context"

const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"

	DefaultName       = "Candidate"
	DefaultOutputName = "optimized_resume.pdf"

	sectionSummary = "Summary"
	sectionDefault = "Section"
	sectionContent = "Content"

	optimisedInfix = "_optimised_"
)

// Section is one titled block of the resume body. Lines keep their
// original text; blank lines are preserved as "".
type Section struct {
	Title string
	Lines []string
}

// Document is everything that ends up on the page.
type Document struct {
	Name     string
	Title    string
	Contact  string
	Sections []Section
}

// OutputOptions controls the file name of a generated PDF.
// OriginalFileName wins over OutputPath when both are set.
type OutputOptions struct {
	OriginalFileName string
	OutputPath       string
}

// Renderer turns a complete HTML page into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}
