package resource_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/odyssey-erp/catalog/internal/resource"
)

// mockRepository keeps entities in memory and counts writes.
type mockRepository[T resource.Entity[T]] struct {
	mu     sync.Mutex
	items  map[string]T
	order  []string
	nextID int

	saveCalls int

	// Error injection
	findErr    error
	listErr    error
	saveErr    error
	failOnSave int
}

func newMockRepository[T resource.Entity[T]](seed ...T) *mockRepository[T] {
	m := &mockRepository[T]{items: make(map[string]T)}
	for _, item := range seed {
		m.put(item)
	}
	return m
}

func (m *mockRepository[T]) put(item T) {
	if _, ok := m.items[item.GetID()]; !ok {
		m.order = append(m.order, item.GetID())
	}
	m.items[item.GetID()] = item
}

func (m *mockRepository[T]) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *mockRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *mockRepository[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		var zero T
		return zero, false, m.findErr
	}
	item, ok := m.items[id]
	return item, ok, nil
}

func (m *mockRepository[T]) Save(ctx context.Context, entity T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil && (m.failOnSave == 0 || m.saveCalls == m.failOnSave) {
		var zero T
		return zero, m.saveErr
	}
	if entity.GetID() == "" {
		m.nextID++
		entity = entity.WithID("gen-" + strconv.Itoa(m.nextID))
	}
	m.put(entity)
	return entity, nil
}

func (m *mockRepository[T]) SaveAll(ctx context.Context, in <-chan T) <-chan resource.Result[T] {
	return resource.SaveEach(ctx, in, m.Save)
}

func (m *mockRepository[T]) saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

type patchRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *patchRecorder) ObservePatch(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, kind+":"+outcome)
}

func strPtr(s string) *string { return &s }
