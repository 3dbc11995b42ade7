package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/catalog/internal/jobs"
	"github.com/odyssey-erp/catalog/internal/seed"
)

// SeedJob runs the seed loader from the queue. Seeding is idempotent, so
// retries and duplicate deliveries are harmless.
type SeedJob struct {
	Targets []seed.Target
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewSeedJob wires dependencies for the seed handler.
func NewSeedJob(targets []seed.Target, logger *slog.Logger, metrics *jobmetrics.Metrics) *SeedJob {
	return &SeedJob{Targets: targets, Logger: logger, Metrics: metrics}
}

// Handle processes TaskCatalogSeed tasks.
func (j *SeedJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("catalog seed: handler not configured")
	}
	var payload SeedPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("catalog seed: decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	targets, err := j.selectTargets(payload.Kinds)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskCatalogSeed)
	logger := j.logger()
	logger.Info("starting catalog seed", slog.Int("collections", len(targets)))
	if err := seed.Run(ctx, logger, targets...); err != nil {
		return tracker.End(err)
	}
	logger.Info("catalog seed finished")
	return tracker.End(nil)
}

func (j *SeedJob) selectTargets(kinds []string) ([]seed.Target, error) {
	if len(kinds) == 0 {
		return j.Targets, nil
	}
	byName := make(map[string]seed.Target, len(j.Targets))
	for _, target := range j.Targets {
		byName[target.Name()] = target
	}
	selected := make([]seed.Target, 0, len(kinds))
	for _, kind := range kinds {
		target, ok := byName[kind]
		if !ok {
			return nil, fmt.Errorf("catalog seed: unknown collection %q", kind)
		}
		selected = append(selected, target)
	}
	return selected, nil
}

func (j *SeedJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskCatalogSeed))
	}
	return slog.Default().With(slog.String("job", TaskCatalogSeed))
}
