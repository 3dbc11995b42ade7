// Package redisdoc stores catalog collections in Redis hashes: one hash per
// collection, keyed by entity id, holding the JSON document.
package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/catalog/internal/resource"
)

const keyPrefix = "catalog:"

// Collection is a resource.Repository over a single Redis hash.
type Collection[T resource.Entity[T]] struct {
	client *redis.Client
	key    string
}

func NewCollection[T resource.Entity[T]](client *redis.Client, name string) *Collection[T] {
	return &Collection[T]{client: client, key: keyPrefix + name}
}

// Key returns the hash holding the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	n, err := c.client.HLen(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("store/redisdoc: count %s: %w", c.key, err)
	}
	return n, nil
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	values, err := c.client.HVals(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("store/redisdoc: list %s: %w", c.key, err)
	}
	items := make([]T, 0, len(values))
	for _, raw := range values {
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("store/redisdoc: decode %s: %w", c.key, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	var item T
	raw, err := c.client.HGet(ctx, c.key, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return item, false, nil
	}
	if err != nil {
		return item, false, fmt.Errorf("store/redisdoc: get %s/%s: %w", c.key, id, err)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, false, fmt.Errorf("store/redisdoc: decode %s/%s: %w", c.key, id, err)
	}
	return item, true, nil
}

// Save writes entity under its id, generating a UUID when it has none.
func (c *Collection[T]) Save(ctx context.Context, entity T) (T, error) {
	var zero T
	id := entity.GetID()
	if id == "" {
		id = uuid.NewString()
		entity = entity.WithID(id)
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return zero, fmt.Errorf("store/redisdoc: encode %s/%s: %w", c.key, id, err)
	}
	if err := c.client.HSet(ctx, c.key, id, raw).Err(); err != nil {
		return zero, fmt.Errorf("store/redisdoc: save %s/%s: %w", c.key, id, err)
	}
	return entity, nil
}

func (c *Collection[T]) SaveAll(ctx context.Context, in <-chan T) <-chan resource.Result[T] {
	return resource.SaveEach(ctx, in, c.Save)
}
