package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/catalog/internal/masterdata/categories"
	"github.com/odyssey-erp/catalog/internal/masterdata/vendors"
)

type memStore[T any] struct {
	mu       sync.Mutex
	items    []T
	saves    int
	failAt   int
	saveErr  error
	countErr error
}

func (m *memStore[T]) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.items)), nil
}

func (m *memStore[T]) Save(ctx context.Context, entity T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil && m.saves == m.failAt {
		var zero T
		return zero, m.saveErr
	}
	m.items = append(m.items, entity)
	return entity, nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) AddSeeded(kind string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[kind] += n
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunSeedsEmptyCollections(t *testing.T) {
	cats := &memStore[categories.Category]{}
	vends := &memStore[vendors.Vendor]{}
	rec := &countingRecorder{}
	logger := quietLogger()

	catTarget := Collection[categories.Category](categories.Kind, cats, categories.Defaults(), logger, rec)
	vendTarget := Collection[vendors.Vendor](vendors.Kind, vends, vendors.Defaults(), logger, rec)
	assert.Equal(t, Unchecked, catTarget.State())

	require.NoError(t, Run(context.Background(), logger, catTarget, vendTarget))

	assert.Len(t, cats.items, 5)
	assert.Len(t, vends.items, 5)
	assert.Equal(t, "Fruits", cats.items[0].Description)
	assert.Equal(t, "Eggs", cats.items[4].Description)
	assert.Equal(t, "Joe", vends.items[0].FirstName)
	assert.Equal(t, "Buffett", vends.items[4].LastName)
	assert.Equal(t, Populated, catTarget.State())
	assert.Equal(t, Populated, vendTarget.State())
	assert.Equal(t, 5, rec.counts[categories.Kind])
	assert.Equal(t, 5, rec.counts[vendors.Kind])
}

func TestRunTwiceSavesNothingTheSecondTime(t *testing.T) {
	cats := &memStore[categories.Category]{}
	logger := quietLogger()
	ctx := context.Background()

	require.NoError(t, Run(ctx, logger, Collection[categories.Category](categories.Kind, cats, categories.Defaults(), logger, nil)))
	require.Equal(t, 5, cats.saves)

	again := Collection[categories.Category](categories.Kind, cats, categories.Defaults(), logger, nil)
	require.NoError(t, Run(ctx, logger, again))
	assert.Equal(t, 5, cats.saves)
	assert.Equal(t, Populated, again.State())
}

func TestSeedSkipsPopulatedCollection(t *testing.T) {
	cats := &memStore[categories.Category]{items: []categories.Category{{ID: "c1", Description: "Custom"}}}
	target := Collection[categories.Category](categories.Kind, cats, categories.Defaults(), quietLogger(), nil)

	n, err := target.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, cats.saves)
	assert.Equal(t, Populated, target.State())
}

func TestSeedSaveFailureAbortsRemainingItems(t *testing.T) {
	boom := errors.New("disk full")
	cats := &memStore[categories.Category]{saveErr: boom, failAt: 3}
	target := Collection[categories.Category](categories.Kind, cats, categories.Defaults(), quietLogger(), nil)

	n, err := target.Seed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, cats.saves)
	assert.Len(t, cats.items, 2)
	assert.Equal(t, Seeding, target.State())
}

func TestRunFailureDoesNotStopOtherCollections(t *testing.T) {
	boom := errors.New("unreachable")
	cats := &memStore[categories.Category]{countErr: boom}
	vends := &memStore[vendors.Vendor]{}
	logger := quietLogger()

	err := Run(context.Background(), logger,
		Collection[categories.Category](categories.Kind, cats, categories.Defaults(), logger, nil),
		Collection[vendors.Vendor](vendors.Kind, vends, vendors.Defaults(), logger, nil),
	)
	require.ErrorIs(t, err, boom)
	assert.Len(t, vends.items, 5)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unchecked", Unchecked.String())
	assert.Equal(t, "seeding", Seeding.String())
	assert.Equal(t, "populated", Populated.String())
}
