package vendors

// Vendor represents a supplier of goods.
type Vendor struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (v Vendor) GetID() string {
	return v.ID
}

func (v Vendor) WithID(id string) Vendor {
	v.ID = id
	return v
}

// Patch carries the fields a PATCH request wants to change. A nil field
// means "leave as is".
type Patch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Merge applies every supplied field of p that differs from current.
func Merge(current Vendor, p Patch) (Vendor, bool) {
	changed := false
	if p.FirstName != nil && *p.FirstName != current.FirstName {
		current.FirstName = *p.FirstName
		changed = true
	}
	if p.LastName != nil && *p.LastName != current.LastName {
		current.LastName = *p.LastName
		changed = true
	}
	return current, changed
}
