package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	desc := "desc"
	desc2 := "desc2"
	empty := ""
	current := Category{ID: "x", Description: "desc"}

	tests := []struct {
		name        string
		patch       Patch
		want        Category
		wantChanged bool
	}{
		{name: "absent field", patch: Patch{}, want: current},
		{name: "same value", patch: Patch{Description: &desc}, want: current},
		{name: "new value", patch: Patch{Description: &desc2}, want: Category{ID: "x", Description: "desc2"}, wantChanged: true},
		{name: "empty string is a value", patch: Patch{Description: &empty}, want: Category{ID: "x"}, wantChanged: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Merge(current, tt.patch)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestDefaults(t *testing.T) {
	var names []string
	for _, c := range Defaults() {
		assert.Empty(t, c.ID)
		names = append(names, c.Description)
	}
	assert.Equal(t, []string{"Fruits", "Nuts", "Breads", "Meats", "Eggs"}, names)
}
