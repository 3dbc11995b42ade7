package resource

import "context"

// Repository is the persistence port for one entity kind.
type Repository[T any] interface {
	Count(ctx context.Context) (int64, error)
	// FindAll returns every stored entity. Callers must not rely on order.
	FindAll(ctx context.Context) ([]T, error)
	// FindByID reports found=false when no entity has id.
	FindByID(ctx context.Context, id string) (T, bool, error)
	// Save assigns an id when the entity has none, persists it and returns
	// the stored form.
	Save(ctx context.Context, entity T) (T, error)
	// SaveAll persists each item read from in, in order, and emits the stored
	// form of each as soon as it is written.
	SaveAll(ctx context.Context, in <-chan T) <-chan Result[T]
}

// Result is one element of a save stream: either a stored item or the error
// that terminated the stream.
type Result[T any] struct {
	Item T
	Err  error
}

// SaveEach drives save over every item of in and forwards the results. The
// first failure is emitted as a Result with Err set and ends the stream; items
// emitted before it stay persisted. Cancelling ctx stops reading and writing.
// The returned channel is always closed.
func SaveEach[T any](ctx context.Context, in <-chan T, save func(context.Context, T) (T, error)) <-chan Result[T] {
	out := make(chan Result[T])
	go func() {
		defer close(out)
		for {
			var item T
			var ok bool
			select {
			case <-ctx.Done():
				return
			case item, ok = <-in:
			}
			if !ok || ctx.Err() != nil {
				return
			}
			stored, err := save(ctx, item)
			if err != nil {
				emit(ctx, out, Result[T]{Err: err})
				return
			}
			if !emit(ctx, out, Result[T]{Item: stored}) {
				return
			}
		}
	}()
	return out
}

func emit[T any](ctx context.Context, out chan<- Result[T], res Result[T]) bool {
	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
