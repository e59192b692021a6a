package models

// City is immutable reference data imported administratively. FullName is
// the canonical "City, ST" form postings are normalized against.
type City struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	State     string  `json:"state" db:"state"`
	FullName  string  `json:"full_name" db:"full_name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// ContinentalStates is every serviced state code: the lower 48, excluding
// Alaska and Hawaii.
var ContinentalStates = []string{
	"AL", "AR", "AZ", "CA", "CO", "CT", "DE", "FL", "GA", "IA",
	"ID", "IL", "IN", "KS", "KY", "LA", "MA", "MD", "ME", "MI",
	"MN", "MO", "MS", "MT", "NC", "ND", "NE", "NH", "NJ", "NM",
	"NV", "NY", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN",
	"TX", "UT", "VA", "VT", "WA", "WI", "WV", "WY",
}
