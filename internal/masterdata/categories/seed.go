package categories

// Defaults is the dataset loaded into an empty store, in insertion order.
func Defaults() []Category {
	return []Category{
		{Description: "Fruits"},
		{Description: "Nuts"},
		{Description: "Breads"},
		{Description: "Meats"},
		{Description: "Eggs"},
	}
}
