package vendors

// Defaults is the dataset loaded into an empty store, in insertion order.
func Defaults() []Vendor {
	return []Vendor{
		{FirstName: "Joe", LastName: "Buck"},
		{FirstName: "Michael", LastName: "Weston"},
		{FirstName: "Jessie", LastName: "Waters"},
		{FirstName: "Bill", LastName: "Mershi"},
		{FirstName: "Jimmy", LastName: "Buffett"},
	}
}
