package domain

// Hotel is the canonical record built from all suppliers that list the same hotel_id.
type Hotel struct {
	ID                string     `json:"hotel_id"`
	DestinationID     string     `json:"destination_id"`
	Name              string     `json:"name"`
	Location          Location   `json:"location"`
	Description       string     `json:"description"`
	Images            Images     `json:"images"`
	Amenities         *Amenities `json:"amenities"`
	BookingConditions []string   `json:"booking_conditions"` // nil -> null
}

type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
}

// Images lists are never nil so they always serialize as arrays.
type Images struct {
	Rooms     []Image `json:"rooms"`
	Site      []Image `json:"site"`
	Amenities []Image `json:"amenities"`
}

type Image struct {
	Link        string `json:"link"`
	Description string `json:"description"`
}

type Amenities struct {
	General []string `json:"general"`
	Room    []string `json:"room"`
}
