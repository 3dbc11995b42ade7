package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogSeed loads default data into empty catalog collections.
	TaskCatalogSeed = "catalog:seed"
)

// SeedPayload selects the collections a seed task should visit. An empty
// Kinds list means every registered collection.
type SeedPayload struct {
	Kinds []string `json:"kinds,omitempty"`
}

// NewSeedTask constructs an Asynq task.
func NewSeedTask(payload SeedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogSeed, data), nil
}
