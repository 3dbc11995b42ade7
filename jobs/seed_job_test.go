package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/odyssey-erp/catalog/internal/jobs"
	"github.com/odyssey-erp/catalog/internal/masterdata/categories"
	"github.com/odyssey-erp/catalog/internal/masterdata/vendors"
	"github.com/odyssey-erp/catalog/internal/seed"
)

type stubStore[T any] struct {
	count int64
	saves int
}

func (s *stubStore[T]) Count(ctx context.Context) (int64, error) { return s.count, nil }

func (s *stubStore[T]) Save(ctx context.Context, entity T) (T, error) {
	s.saves++
	s.count++
	return entity, nil
}

func newTestSeedJob() (*SeedJob, *stubStore[categories.Category], *stubStore[vendors.Vendor]) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cats := &stubStore[categories.Category]{}
	vends := &stubStore[vendors.Vendor]{}
	metrics := jobmetrics.NewMetrics(prometheus.NewRegistry())
	targets := []seed.Target{
		seed.Collection[categories.Category](categories.Kind, cats, categories.Defaults(), logger, metrics),
		seed.Collection[vendors.Vendor](vendors.Kind, vends, vendors.Defaults(), logger, metrics),
	}
	return NewSeedJob(targets, logger, metrics), cats, vends
}

func TestSeedJobSeedsAllCollections(t *testing.T) {
	job, cats, vends := newTestSeedJob()
	task, err := NewSeedTask(SeedPayload{})
	require.NoError(t, err)
	assert.Equal(t, TaskCatalogSeed, task.Type())

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 5, cats.saves)
	assert.Equal(t, 5, vends.saves)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 5, cats.saves)
	assert.Equal(t, 5, vends.saves)
}

func TestSeedJobSelectsKinds(t *testing.T) {
	job, cats, vends := newTestSeedJob()
	task, err := NewSeedTask(SeedPayload{Kinds: []string{vendors.Kind}})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Zero(t, cats.saves)
	assert.Equal(t, 5, vends.saves)
}

func TestSeedJobRejectsUnknownKind(t *testing.T) {
	job, _, _ := newTestSeedJob()
	task, err := NewSeedTask(SeedPayload{Kinds: []string{"warehouses"}})
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestSeedJobRejectsMalformedPayload(t *testing.T) {
	job, _, _ := newTestSeedJob()

	err := job.Handle(context.Background(), asynq.NewTask(TaskCatalogSeed, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(queue string) (*asynq.QueueInfo, error) {
	return s.info, s.err
}

func serveHealth(h *Handler) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	return rr
}

func TestHealthWithoutInspector(t *testing.T) {
	rr := serveHealth(NewHandler(nil, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0,"active":0,"failed":0}`, rr.Body.String())
}

func TestHealthReportsQueueInfo(t *testing.T) {
	rr := serveHealth(NewHandler(stubInspector{info: &asynq.QueueInfo{Queue: "default", Pending: 3, Active: 1, Retry: 1, Archived: 1}}, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"default","pending":3,"active":1,"failed":2}`, rr.Body.String())
}

func TestHealthInspectorFailure(t *testing.T) {
	rr := serveHealth(NewHandler(stubInspector{err: errors.New("redis down")}, slog.New(slog.NewTextHandler(io.Discard, nil))))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestNewWorkerRequiresHandlers(t *testing.T) {
	_, err := NewWorker(WorkerConfig{RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"}})
	assert.Error(t, err)
}
