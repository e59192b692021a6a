package models

import "time"

// DayType selects which pickup day a heatmap snapshot covers.
type DayType string

const (
	DayToday    DayType = "Today"
	DayTomorrow DayType = "Tomorrow"
)

// HeatmapState holds the aggregated pickup/delivery figures for one state
// within one heatmap snapshot.
type HeatmapState struct {
	ID                  string  `json:"id" db:"id"`
	HeatmapID           string  `json:"heatmap_id" db:"heatmap_id"`
	State               string  `json:"state" db:"state"`
	PickupsAmount       int     `json:"pickups_amount" db:"pickups_amount"`
	SumPickupRates      float64 `json:"sum_pickup_rates" db:"sum_pickup_rates"`
	AveragePickupRate   float64 `json:"average_pickup_rate" db:"average_pickup_rate"`
	DeliveriesAmount    int     `json:"deliveries_amount" db:"deliveries_amount"`
	SumDeliveryRates    float64 `json:"sum_delivery_rates" db:"sum_delivery_rates"`
	AverageDeliveryRate float64 `json:"average_delivery_rate" db:"average_delivery_rate"`

	// Rank is the 1..5 heat bucket, relative to the strongest state in the
	// same generation cycle.
	Rank int `json:"rank" db:"rank"`
}

// Heatmap is one market snapshot, keyed by day type and equipment. Six
// instances exist at steady state (2 day types x 3 equipments); each run
// fully resets and regenerates them, never updates incrementally.
type Heatmap struct {
	ID        string          `json:"id" db:"id"`
	DayType   DayType         `json:"day_type" db:"day_type"`
	Equipment Equipment       `json:"equipment" db:"equipment"`
	States    []*HeatmapState `json:"states"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// HeatmapSearchRequest selects one snapshot and how to order its states.
type HeatmapSearchRequest struct {
	DayType   DayType   `json:"day_type" validate:"required,oneof=Today Tomorrow"`
	Equipment Equipment `json:"equipment" validate:"required,oneof=flatbed reefer van"`
	SortField string    `json:"sort_field,omitempty"`
	Order     SortOrder `json:"order,omitempty"`
}
