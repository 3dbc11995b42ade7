// Package seed loads the default catalog data into empty collections.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// State tracks where a collection is in the load sequence.
type State int32

const (
	Unchecked State = iota
	Seeding
	Populated
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Seeding:
		return "seeding"
	case Populated:
		return "populated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Store is the subset of a repository the loader needs.
type Store[T any] interface {
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, entity T) (T, error)
}

// Recorder receives the number of items inserted per collection.
type Recorder interface {
	AddSeeded(kind string, n int)
}

// Target is one collection the loader can populate.
type Target interface {
	Name() string
	// Seed fills the collection when it is empty and returns how many items
	// were inserted.
	Seed(ctx context.Context) (int, error)
	State() State
}

type collection[T any] struct {
	name     string
	store    Store[T]
	defaults []T
	logger   *slog.Logger
	recorder Recorder
	state    atomic.Int32
}

// Collection returns a Target that inserts defaults, in order, into store when
// store holds nothing. A nil recorder is allowed.
func Collection[T any](name string, store Store[T], defaults []T, logger *slog.Logger, recorder Recorder) Target {
	if logger == nil {
		logger = slog.Default()
	}
	return &collection[T]{
		name:     name,
		store:    store,
		defaults: defaults,
		logger:   logger.With(slog.String("kind", name)),
		recorder: recorder,
	}
}

func (c *collection[T]) Name() string { return c.name }

func (c *collection[T]) State() State { return State(c.state.Load()) }

func (c *collection[T]) Seed(ctx context.Context) (int, error) {
	count, err := c.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed %s: count: %w", c.name, err)
	}
	if count > 0 {
		c.state.Store(int32(Populated))
		c.logger.Debug("collection already populated", slog.Int64("count", count))
		return 0, nil
	}

	c.state.Store(int32(Seeding))
	inserted := 0
	for i, item := range c.defaults {
		if _, err := c.store.Save(ctx, item); err != nil {
			c.record(inserted)
			return inserted, fmt.Errorf("seed %s: item %d: %w", c.name, i, err)
		}
		inserted++
	}
	c.record(inserted)
	c.state.Store(int32(Populated))

	total, err := c.store.Count(ctx)
	if err != nil {
		return inserted, fmt.Errorf("seed %s: recount: %w", c.name, err)
	}
	c.logger.Info("loaded "+c.name, slog.Int64("count", total))
	return inserted, nil
}

func (c *collection[T]) record(n int) {
	if c.recorder != nil && n > 0 {
		c.recorder.AddSeeded(c.name, n)
	}
}

// Run seeds every target concurrently. Targets do not share cancellation, so a
// failing collection never interrupts another; the first error is returned.
func Run(ctx context.Context, logger *slog.Logger, targets ...Target) error {
	if logger == nil {
		logger = slog.Default()
	}
	var g errgroup.Group
	for _, target := range targets {
		target := target
		g.Go(func() error {
			n, err := target.Seed(ctx)
			if err != nil {
				logger.Error("seed failed", slog.String("kind", target.Name()), slog.Int("inserted", n), slog.Any("error", err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
