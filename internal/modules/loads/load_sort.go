package loads

import (
	"sort"

	"freight-dispatch/internal/models"
)

// lessFunc orders two ranked loads ascending on one field.
type lessFunc func(a, b *models.RankedLoad) bool

// loadComparators maps each sort field to its ascending comparator.
// Ties fall through to reference id so ordering is deterministic and
// direction inversion is an exact reversal.
var loadComparators = map[models.LoadSortField]lessFunc{
	models.SortByPickup: func(a, b *models.RankedLoad) bool {
		if !a.PickUp.Equal(b.PickUp) {
			return a.PickUp.Before(b.PickUp)
		}
		return a.ReferenceID < b.ReferenceID
	},
	models.SortByDelivery: func(a, b *models.RankedLoad) bool {
		if !a.Delivery.Equal(b.Delivery) {
			return a.Delivery.Before(b.Delivery)
		}
		return a.ReferenceID < b.ReferenceID
	},
	models.SortByMiles:         numericLess(func(l *models.RankedLoad) float64 { return l.Miles }),
	models.SortByRate:          numericLess(func(l *models.RankedLoad) float64 { return l.Rate }),
	models.SortByRatePerMile:   numericLess(func(l *models.RankedLoad) float64 { return l.RatePerMile }),
	models.SortByProfit:        numericLess(func(l *models.RankedLoad) float64 { return l.Profit }),
	models.SortByProfitPerMile: numericLess(func(l *models.RankedLoad) float64 { return l.ProfitPerMile }),
}

func numericLess(key func(*models.RankedLoad) float64) lessFunc {
	return func(a, b *models.RankedLoad) bool {
		ka, kb := key(a), key(b)
		if ka != kb {
			return ka < kb
		}
		return a.ReferenceID < b.ReferenceID
	}
}

// sortLoads orders results in place by the requested field and direction.
// OrderNone leaves the slice untouched.
func sortLoads(items []*models.RankedLoad, field models.LoadSortField, order models.SortOrder) {
	if order == models.OrderNone {
		return
	}
	less := loadComparators[field]
	if order == models.OrderDescending {
		asc := less
		less = func(a, b *models.RankedLoad) bool { return asc(b, a) }
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// paginate computes the page descriptor over the post-filtered set. A
// non-positive page size means "everything on one page" and must not
// divide.
func paginate(items []*models.RankedLoad, page, pageSize int) *models.LoadPage {
	total := len(items)

	result := &models.LoadPage{TotalItemsCount: total}
	if total == 0 {
		result.Items = []*models.RankedLoad{}
		return result
	}
	if pageSize <= 0 {
		result.PageCount = 1
		result.Items = items
		return result
	}

	result.PageCount = (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	skip := (page - 1) * pageSize
	if skip >= total {
		result.Items = []*models.RankedLoad{}
		return result
	}
	end := skip + pageSize
	if end > total {
		end = total
	}
	result.Items = items[skip:end]
	return result
}
