package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"resume-optimizer/internal/resume"
)

// Download resolves filename inside the output directory. Names carrying a
// path component are rejected.
func (uc *implUseCase) Download(ctx context.Context, filename string) (resume.DownloadOutput, error) {
	name := strings.TrimSpace(filename)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		uc.l.Warnf(ctx, "resume.usecase.Download: rejected filename %q", filename)
		return resume.DownloadOutput{}, resume.ErrInvalidFilename
	}

	path := filepath.Join(uc.cfg.OutputDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return resume.DownloadOutput{}, resume.ErrFileNotFound
	}
	return resume.DownloadOutput{Path: path, FileName: name}, nil
}
