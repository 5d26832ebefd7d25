package resume

import "errors"

var (
	ErrNotPDF          = errors.New("only PDF files are allowed")
	ErrExtraction      = errors.New("text extraction failed")
	ErrModel           = errors.New("AI processing failed")
	ErrStepLimit       = errors.New("AI processing exceeded the step limit")
	ErrSessionBusy     = errors.New("session is busy")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrFileNotFound    = errors.New("file not found")
)
