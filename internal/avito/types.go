package avito

// Item represents a single marketplace listing.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Location string  `json:"location,omitempty"`
	Category string  `json:"category,omitempty"`
	URL      string  `json:"url,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// ItemStats holds view and contact counters for a listing.
type ItemStats struct {
	Views     int `json:"views"`
	UniqViews int `json:"uniqViews"`
	Contacts  int `json:"contacts"`
	Favorites int `json:"favorites"`
}

// Category is a marketplace category reference.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Location is a marketplace location reference.
type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
