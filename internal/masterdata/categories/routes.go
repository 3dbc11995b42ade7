package categories

import (
	"log/slog"

	"github.com/odyssey-erp/catalog/internal/resource"
)

const (
	// Kind names the collection in storage, logs and metrics.
	Kind = "categories"
	// BasePath is where the collection is mounted.
	BasePath = "/api/v1/categories"
)

// Handler serves the category endpoints.
type Handler = resource.Handler[Category, Patch]

func NewService(repo resource.Repository[Category], recorder resource.Recorder) *resource.Service[Category, Patch] {
	return resource.NewService(Kind, repo, Merge, recorder)
}

func NewHandler(logger *slog.Logger, repo resource.Repository[Category], recorder resource.Recorder, cfg resource.HandlerConfig) *Handler {
	return resource.NewHandler(logger.With(slog.String("component", Kind)), NewService(repo, recorder), cfg)
}
