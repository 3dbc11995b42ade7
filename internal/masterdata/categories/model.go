package categories

// Category represents a product category.
type Category struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

func (c Category) GetID() string {
	return c.ID
}

func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}

// Patch carries the fields a PATCH request wants to change. A nil field
// means "leave as is".
type Patch struct {
	Description *string `json:"description"`
}

// Merge applies p onto current. A field counts as changed only when it is
// supplied and differs from the stored value.
func Merge(current Category, p Patch) (Category, bool) {
	changed := false
	if p.Description != nil && *p.Description != current.Description {
		current.Description = *p.Description
		changed = true
	}
	return current, changed
}
