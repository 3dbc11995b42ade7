package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/catalog/internal/platform/httpx"
)

// HandlerConfig tunes the HTTP surface of a collection.
type HandlerConfig struct {
	// MaxBodyBytes limits PUT and PATCH bodies. Zero disables the limit.
	MaxBodyBytes int64
	// RequestTimeout bounds every route except the streaming POST. Zero
	// disables it.
	RequestTimeout time.Duration
}

// Handler exposes list/get/create/replace/patch for one entity kind.
type Handler[T Entity[T], P any] struct {
	logger  *slog.Logger
	service *Service[T, P]
	cfg     HandlerConfig
}

func NewHandler[T Entity[T], P any](logger *slog.Logger, service *Service[T, P], cfg HandlerConfig) *Handler[T, P] {
	return &Handler[T, P]{logger: logger, service: service, cfg: cfg}
}

// MountRoutes attaches the collection routes.
func (h *Handler[T, P]) MountRoutes(r chi.Router) {
	// POST streams for as long as the client keeps sending, so it is kept
	// out of the timeout group.
	r.Post("/", h.Create)
	r.Group(func(r chi.Router) {
		if h.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.cfg.RequestTimeout))
		}
		r.Get("/", h.List)
		r.Get("/{id}", h.Show)
		r.Group(func(r chi.Router) {
			if h.cfg.MaxBodyBytes > 0 {
				r.Use(RequestSizeLimit(h.cfg.MaxBodyBytes))
			}
			r.Put("/{id}", h.Replace)
			r.Patch("/{id}", h.Patch)
		})
	})
}

func (h *Handler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	if items == nil {
		items = []T{}
	}
	httpx.JSON(w, http.StatusOK, items)
}

// Show answers 200 with an empty body when the id is unknown.
func (h *Handler[T, P]) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, found, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get", err, slog.String("id", id))
		return
	}
	if !found {
		w.WriteHeader(http.StatusOK)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Create reads a stream of new entities from the body and streams back each
// stored entity as soon as it is persisted. The response is committed as 201
// before the first item; later failures end the stream early.
func (h *Handler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The body is read while the response is being written.
	if err := http.NewResponseController(w).EnableFullDuplex(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Warn("enable full duplex", slog.String("kind", h.service.Kind()), slog.Any("error", err))
	}

	items, decodeErrs := decodeStream(ctx, r.Body, func(item T) T {
		return item.WithID("")
	})
	results := h.service.Create(ctx, items)

	enc := newStreamEncoder(w, wantsNDJSON(r))
	if err := enc.begin(http.StatusCreated); err != nil {
		h.logger.Warn("begin create stream", slog.String("kind", h.service.Kind()), slog.Any("error", err))
		return
	}

	created := 0
	for res := range results {
		if res.Err != nil {
			h.logger.Error("create stream aborted",
				slog.String("kind", h.service.Kind()),
				slog.Int("created", created),
				slog.Any("error", res.Err))
			break
		}
		if err := enc.write(res.Item); err != nil {
			h.logger.Warn("write create stream", slog.String("kind", h.service.Kind()), slog.Any("error", err))
			return
		}
		created++
	}
	cancel()

	select {
	case err := <-decodeErrs:
		h.logger.Warn("decode create stream",
			slog.String("kind", h.service.Kind()),
			slog.Int("created", created),
			slog.Any("error", err))
	default:
	}

	if err := enc.end(); err != nil {
		h.logger.Warn("end create stream", slog.String("kind", h.service.Kind()), slog.Any("error", err))
	}
}

// Replace overwrites the entity under the path id. Any id in the body is
// ignored.
func (h *Handler[T, P]) Replace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var entity T
	if err := httpx.DecodeJSON(r, &entity); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %w", httpx.ErrValidation, err))
		return
	}
	saved, err := h.service.Replace(r.Context(), id, entity)
	if err != nil {
		h.fail(w, r, "replace", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Patch merges the supplied fields into the entity under the path id. An
// unknown id is a 404 problem.
func (h *Handler[T, P]) Patch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var partial P
	if err := httpx.DecodeJSON(r, &partial); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %w", httpx.ErrValidation, err))
		return
	}
	merged, err := h.service.Patch(r.Context(), id, partial)
	if err != nil {
		h.fail(w, r, "patch", err, slog.String("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, merged)
}

func (h *Handler[T, P]) fail(w http.ResponseWriter, r *http.Request, op string, err error, attrs ...any) {
	attrs = append(attrs,
		slog.String("kind", h.service.Kind()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("error", err))
	if errors.Is(err, ErrNotFound) {
		h.logger.Info(op+" target missing", attrs...)
	} else {
		h.logger.Error(op+" failed", attrs...)
	}
	httpx.RespondError(w, err)
}

// RequestSizeLimit caps the request body at maxSize bytes.
func RequestSizeLimit(maxSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			next.ServeHTTP(w, r)
		})
	}
}
