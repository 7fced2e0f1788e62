package domain

// Segment is one labeled wedge of the wheel.
type Segment struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// NewSegment is the input for creating a segment. The store assigns the ID.
type NewSegment struct {
	Label string
	Color string
	Order int
}

// DefaultSegments are installed into an empty store at startup.
func DefaultSegments() []NewSegment {
	return []NewSegment{
		{Label: "Apple", Color: "from-red-500 to-red-600", Order: 0},
		{Label: "Orange", Color: "from-orange-500 to-orange-600", Order: 1},
		{Label: "Banana", Color: "from-yellow-500 to-yellow-600", Order: 2},
		{Label: "Grape", Color: "from-purple-500 to-purple-600", Order: 3},
		{Label: "Cherry", Color: "from-pink-500 to-pink-600", Order: 4},
		{Label: "Mango", Color: "from-amber-500 to-amber-600", Order: 5},
	}
}
