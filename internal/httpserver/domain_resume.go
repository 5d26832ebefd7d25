package httpserver

import (
	"context"

	resumeHTTP "resume-optimizer/internal/resume/delivery/http"
)

// setupResumeDomain registers the resume optimizer routes at the root.
func (srv HTTPServer) setupResumeDomain(ctx context.Context) error {
	h := resumeHTTP.New(srv.l, srv.resumeUC)
	resumeHTTP.RegisterRoutes(srv.gin, h, srv.mw, srv.maxUploadBytes)

	srv.l.Infof(ctx, "Resume domain registered (max upload %d bytes)", srv.maxUploadBytes)
	return nil
}
