// Package resource holds the storage-agnostic contract shared by every
// catalog collection: the repository port, the patch merge engine, the
// streaming create pipeline and the HTTP endpoints built on top of them.
package resource

// Entity is a record addressed by an opaque string id.
type Entity[T any] interface {
	GetID() string
	// WithID returns a copy of the record carrying id.
	WithID(id string) T
}

// Merge applies a partial update onto current. It returns the merged copy and
// whether any field actually changed value.
type Merge[T, P any] func(current T, patch P) (T, bool)
