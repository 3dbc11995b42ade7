package resource

import "context"

// Patch outcomes reported to a Recorder.
const (
	PatchWritten   = "written"
	PatchUnchanged = "unchanged"
	PatchNotFound  = "not_found"
)

// Recorder receives patch outcomes for instrumentation.
type Recorder interface {
	ObservePatch(kind, outcome string)
}

// Service implements the update semantics for one entity kind on top of its
// repository. It holds no state between calls.
type Service[T Entity[T], P any] struct {
	kind     string
	repo     Repository[T]
	merge    Merge[T, P]
	recorder Recorder
}

// NewService wires a Service. recorder may be nil.
func NewService[T Entity[T], P any](kind string, repo Repository[T], merge Merge[T, P], recorder Recorder) *Service[T, P] {
	return &Service[T, P]{kind: kind, repo: repo, merge: merge, recorder: recorder}
}

// Kind returns the collection name the service manages.
func (s *Service[T, P]) Kind() string {
	return s.kind
}

func (s *Service[T, P]) List(ctx context.Context) ([]T, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service[T, P]) Get(ctx context.Context, id string) (T, bool, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists every entity read from in and streams back the stored
// forms in input order.
func (s *Service[T, P]) Create(ctx context.Context, in <-chan T) <-chan Result[T] {
	return s.repo.SaveAll(ctx, in)
}

// Replace overwrites the entity stored under id. It always writes.
func (s *Service[T, P]) Replace(ctx context.Context, id string, entity T) (T, error) {
	return s.repo.Save(ctx, entity.WithID(id))
}

// Patch merges partial onto the entity stored under id. Nothing is written
// when no supplied field differs from the stored value. A missing target
// yields a *NotFoundError.
func (s *Service[T, P]) Patch(ctx context.Context, id string, partial P) (T, error) {
	var zero T
	current, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !found {
		s.observe(PatchNotFound)
		return zero, &NotFoundError{ID: id}
	}

	merged, changed := s.merge(current, partial)
	if !changed {
		s.observe(PatchUnchanged)
		return current, nil
	}

	saved, err := s.repo.Save(ctx, merged.WithID(current.GetID()))
	if err != nil {
		return zero, err
	}
	s.observe(PatchWritten)
	return saved, nil
}

func (s *Service[T, P]) observe(outcome string) {
	if s.recorder == nil {
		return
	}
	s.recorder.ObservePatch(s.kind, outcome)
}
