package resource

import "github.com/odyssey-erp/catalog/internal/platform/httpx"

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = httpx.ErrNotFound

// NotFoundError reports a patch target that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "Not Found id: " + e.ID
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
