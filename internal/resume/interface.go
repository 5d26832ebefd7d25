package resume

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Optimize runs one agent turn for an uploaded resume.
	Optimize(ctx context.Context, input OptimizeInput) (OptimizeOutput, error)
	// Download resolves a generated PDF inside the output directory.
	Download(ctx context.Context, filename string) (DownloadOutput, error)
}
