package vendors

import (
	"log/slog"

	"github.com/odyssey-erp/catalog/internal/resource"
)

const (
	Kind     = "vendors"
	BasePath = "/api/v1/vendors"
)

type Handler = resource.Handler[Vendor, Patch]

func NewService(repo resource.Repository[Vendor], recorder resource.Recorder) *resource.Service[Vendor, Patch] {
	return resource.NewService(Kind, repo, Merge, recorder)
}

func NewHandler(logger *slog.Logger, repo resource.Repository[Vendor], recorder resource.Recorder, cfg resource.HandlerConfig) *Handler {
	return resource.NewHandler(logger.With(slog.String("component", Kind)), NewService(repo, recorder), cfg)
}
