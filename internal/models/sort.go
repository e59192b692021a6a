package models

// SortOrder is the requested result ordering direction.
type SortOrder string

const (
	OrderNone       SortOrder = "none"
	OrderAscending  SortOrder = "asc"
	OrderDescending SortOrder = "desc"
)

// ParseSortOrder canonicalizes the wire direction. Anything that is not
// explicitly ascending or "none" — including the empty zero value a client
// omits — means descending: the default ranking puts the most profitable
// load first.
func ParseSortOrder(name string) SortOrder {
	switch SortOrder(name) {
	case OrderAscending:
		return OrderAscending
	case OrderNone:
		return OrderNone
	default:
		return OrderDescending
	}
}

// LoadSortField enumerates the sortable load-search columns. Keeping this
// an enum (instead of dispatching on raw strings) means an unknown field
// degrades to the documented default exactly once, at parse time.
type LoadSortField int

const (
	SortByProfit LoadSortField = iota
	SortByPickup
	SortByDelivery
	SortByMiles
	SortByRate
	SortByRatePerMile
	SortByProfitPerMile
)

// ParseLoadSortField maps the wire name to a sort field. Unknown or empty
// names fall back to profit, which is the default ranking.
func ParseLoadSortField(name string) LoadSortField {
	switch name {
	case "Pickup":
		return SortByPickup
	case "Delivery":
		return SortByDelivery
	case "Miles":
		return SortByMiles
	case "Rate":
		return SortByRate
	case "Rate Per Mile":
		return SortByRatePerMile
	case "Profit Per Mile":
		return SortByProfitPerMile
	default:
		return SortByProfit
	}
}

// HeatmapSortField enumerates the sortable heatmap-state columns.
type HeatmapSortField int

const (
	SortStatesByState HeatmapSortField = iota
	SortStatesByRank
	SortStatesByPickupRate
	SortStatesByDeliveryRate
	SortStatesByPickups
	SortStatesByDeliveries
)

// ParseHeatmapSortField maps the wire name to a state sort field; unknown
// names fall back to alphabetical state order.
func ParseHeatmapSortField(name string) HeatmapSortField {
	switch name {
	case "Rank":
		return SortStatesByRank
	case "RPM pickup":
		return SortStatesByPickupRate
	case "RPM delivery":
		return SortStatesByDeliveryRate
	case "Pickups":
		return SortStatesByPickups
	case "Deliveries":
		return SortStatesByDeliveries
	default:
		return SortStatesByState
	}
}
