package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Equipment is the trailer category a truck pulls and a posting requires.
type Equipment string

const (
	EquipmentFlatbed Equipment = "flatbed"
	EquipmentReefer  Equipment = "reefer"
	EquipmentVan     Equipment = "van"
)

// Matches reports whether a posting with equipment e can be hauled by a
// truck with the given equipment. A reefer can legally haul dry-van
// freight; the inverse is not true.
func (e Equipment) Matches(truck Equipment) bool {
	if truck == EquipmentReefer {
		return e == EquipmentReefer || e == EquipmentVan
	}
	return e == truck
}

// LatLng is a WGS84 coordinate pair in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// Point converts to an orb.Point (longitude first, per orb's convention).
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// Load is a freight posting imported from an external broker feed.
// Origin/Destination are formatted "City, ST"; the two-letter state codes
// are stored as first-class fields so grouping never has to parse the
// formatted name.
type Load struct {
	ID            string    `json:"id" db:"id"`
	ReferenceID   string    `json:"reference_id" db:"reference_id"`
	Origin        string    `json:"origin" db:"origin"`
	OriginState   string    `json:"origin_state" db:"origin_state"`
	OriginLat     float64   `json:"origin_latitude" db:"origin_latitude"`
	OriginLon     float64   `json:"origin_longitude" db:"origin_longitude"`
	Destination   string    `json:"destination" db:"destination"`
	DestState     string    `json:"destination_state" db:"destination_state"`
	DestLat       float64   `json:"destination_latitude" db:"destination_latitude"`
	DestLon       float64   `json:"destination_longitude" db:"destination_longitude"`
	PickUp        time.Time `json:"pickup" db:"pickup"`
	Delivery      time.Time `json:"delivery" db:"delivery"`
	Equipment     Equipment `json:"equipment" db:"equipment"`
	Length        int       `json:"length" db:"length"`
	Weight        int       `json:"weight" db:"weight"`
	Miles         float64   `json:"miles" db:"miles"`
	Rate          float64   `json:"rate" db:"rate"`
	ShipperID     string    `json:"shipper_id" db:"shipper_id"`
	ShipperName   string    `json:"shipper_name" db:"shipper_name"`
	ShipperEmail  string    `json:"shipper_email" db:"shipper_email"`
	ShipperPhone  string    `json:"shipper_phone" db:"shipper_phone"`
	Requirements  string    `json:"requirements" db:"requirements"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// OriginPoint returns the pickup coordinate.
func (l *Load) OriginPoint() orb.Point {
	return orb.Point{l.OriginLon, l.OriginLat}
}

// DestPoint returns the delivery coordinate.
func (l *Load) DestPoint() orb.Point {
	return orb.Point{l.DestLon, l.DestLat}
}

// RankedLoad is a posting plus the per-truck economics derived for one
// search. Never persisted.
type RankedLoad struct {
	*Load

	DeadheadOrigin float64 `json:"deadhead_origin"`
	DeadheadDest   float64 `json:"deadhead_destination"`
	Profit         float64 `json:"profit"`
	RatePerMile    float64 `json:"rate_per_mile"`
	ProfitPerMile  float64 `json:"profit_per_mile"`
}

// TruckProfile is the cost structure of the vehicle a search runs for.
type TruckProfile struct {
	Equipment   Equipment `json:"equipment" validate:"required,oneof=flatbed reefer van"`
	CostPerMile float64   `json:"cost_per_mile" validate:"gt=0"`
}

// LoadSearchRequest is the input to the load matching engine.
type LoadSearchRequest struct {
	Origin          *LatLng      `json:"origin" validate:"required"`
	Destination     *LatLng      `json:"destination,omitempty"`
	Truck           TruckProfile `json:"truck" validate:"required"`
	Deadhead        float64      `json:"deadhead" validate:"gt=0"`
	PickupStartDate time.Time    `json:"pickup_start_date"`
	MilesMin        float64      `json:"miles_min" validate:"min=0"`
	MilesMax        float64      `json:"miles_max" validate:"min=0"`
	SortField       string       `json:"sort_field,omitempty"`
	Order           SortOrder    `json:"order,omitempty"`
	Page            int          `json:"page" validate:"min=1"`
	PageSize        int          `json:"page_size" validate:"min=0"`
}

// LoadPage is one page of ranked search results.
type LoadPage struct {
	Items           []*RankedLoad `json:"items"`
	PageCount       int           `json:"page_count"`
	TotalItemsCount int           `json:"total_items_count"`
}

// AverageRates is the fleet-wide market snapshot over the next 24 hours.
type AverageRates struct {
	At          time.Time `json:"at"`
	All         float64   `json:"all"`
	FlatbedRate float64   `json:"flatbed_rate"`
	ReeferRate  float64   `json:"reefer_rate"`
	VanRate     float64   `json:"van_rate"`
}
