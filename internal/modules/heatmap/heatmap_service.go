package heatmap

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"freight-dispatch/internal/models"
	"freight-dispatch/pkg/geo"
)

// LoadWindowStore is the slice of the posting store regeneration needs:
// one equipment type's postings for a pickup day.
type LoadWindowStore interface {
	SearchWindow(ctx context.Context, start, end time.Time, equipment models.Equipment) ([]*models.Load, error)
}

// ServiceInterface defines the contract for the heatmap engine.
type ServiceInterface interface {
	Find(ctx context.Context, req models.HeatmapSearchRequest) (*models.Heatmap, error)
	Regenerate(ctx context.Context) error
}

// Service implements the heatmap engine. A full regeneration cycle holds
// cycleMu for its whole duration: the reset is global, so letting a second
// cycle's reset run while the first is still persisting would zero rows
// the first run had already completed. Per-key locks additionally keep two
// writers off the same (day type, equipment) snapshot.
type Service struct {
	store StoreInterface
	loads LoadWindowStore

	cycleMu  sync.Mutex
	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

// NewService creates a new heatmap service.
func NewService(store StoreInterface, loads LoadWindowStore) *Service {
	return &Service{
		store:    store,
		loads:    loads,
		keyLocks: make(map[string]*sync.Mutex),
	}
}

var equipments = []models.Equipment{
	models.EquipmentFlatbed,
	models.EquipmentReefer,
	models.EquipmentVan,
}

// Find returns one snapshot with its states ordered by the requested key.
func (s *Service) Find(ctx context.Context, req models.HeatmapSearchRequest) (*models.Heatmap, error) {
	hm, err := s.store.FindByKey(ctx, req.DayType, req.Equipment)
	if err != nil {
		return nil, fmt.Errorf("heatmap.Find: %w", err)
	}
	sortStates(hm.States, models.ParseHeatmapSortField(req.SortField), req.Order)
	return hm, nil
}

// Regenerate rebuilds all six snapshots from the current posting pool:
// one global reset, then per key a day-window fetch, a full generate and a
// persist. A failure on any key aborts that key's cycle before anything is
// persisted for it and is surfaced to the trigger caller.
func (s *Service) Regenerate(ctx context.Context) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	if err := s.store.ResetAllStates(ctx); err != nil {
		return fmt.Errorf("heatmap.Regenerate: %w", err)
	}

	todayStart := time.Now().UTC().Truncate(24 * time.Hour)
	windows := map[models.DayType][2]time.Time{
		models.DayToday:    {todayStart, todayStart.AddDate(0, 0, 1)},
		models.DayTomorrow: {todayStart.AddDate(0, 0, 1), todayStart.AddDate(0, 0, 2)},
	}

	for _, equipment := range equipments {
		for _, dayType := range []models.DayType{models.DayToday, models.DayTomorrow} {
			if err := s.regenerateKey(ctx, dayType, equipment, windows[dayType]); err != nil {
				return fmt.Errorf("heatmap.Regenerate: %s/%s: %w", dayType, equipment, err)
			}
		}
	}
	return nil
}

func (s *Service) regenerateKey(ctx context.Context, dayType models.DayType, equipment models.Equipment, window [2]time.Time) error {
	lock := s.lockFor(string(dayType) + "/" + string(equipment))
	lock.Lock()
	defer lock.Unlock()

	hm, err := s.store.FindByKey(ctx, dayType, equipment)
	if err != nil {
		return err
	}

	loads, err := s.loads.SearchWindow(ctx, window[0], window[1], equipment)
	if err != nil {
		return err
	}

	Generate(hm, loads)

	if err := s.store.SaveStates(ctx, hm.States); err != nil {
		return err
	}
	return s.store.TouchUpdatedAt(ctx, hm.ID, time.Now().UTC())
}

func (s *Service) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keyLocks[key] = lock
	}
	return lock
}

// Generate folds one day's postings into a snapshot's state aggregates and
// assigns each state its 1..5 heat rank. Pure; mutates only the snapshot.
func Generate(hm *models.Heatmap, loads []*models.Load) {
	for _, st := range hm.States {
		var pickups, deliveries []*models.Load
		for _, l := range loads {
			if l.OriginState == st.State {
				pickups = append(pickups, l)
			}
			if l.DestState == st.State {
				deliveries = append(deliveries, l)
			}
		}

		st.PickupsAmount, st.SumPickupRates, st.AveragePickupRate = aggregate(pickups)
		st.DeliveriesAmount, st.SumDeliveryRates, st.AverageDeliveryRate = aggregate(deliveries)
	}

	assignRanks(hm.States)
}

// aggregate sums one subgroup's rates and computes its rate per mile,
// rounded to cents. An empty subgroup is all zeroes.
func aggregate(loads []*models.Load) (count int, sumRates, averageRate float64) {
	if len(loads) == 0 {
		return 0, 0, 0
	}

	var sumMiles float64
	for _, l := range loads {
		sumRates += l.Rate
		sumMiles += l.Miles
	}
	if sumMiles > 0 {
		averageRate = geo.Round2(sumRates / sumMiles)
	}
	return len(loads), sumRates, averageRate
}

// assignRanks buckets each state by where its pickup-rate sum falls
// relative to the cycle maximum. The scale is relative: the same raw sum
// can land in a different bucket on a different day. The band edges were
// chosen so roughly equal numbers of states land in each bucket.
func assignRanks(states []*models.HeatmapState) {
	var max float64
	for _, st := range states {
		if st.SumPickupRates > max {
			max = st.SumPickupRates
		}
	}

	for _, st := range states {
		switch v := st.SumPickupRates; {
		case v <= max*0.04:
			st.Rank = 1
		case v <= max*0.12:
			st.Rank = 2
		case v <= max*0.32:
			st.Rank = 3
		case v <= max*0.8:
			st.Rank = 4
		default:
			st.Rank = 5
		}
	}
}

// sortStates orders a snapshot's states by the requested typed key.
func sortStates(states []*models.HeatmapState, field models.HeatmapSortField, order models.SortOrder) {
	if order == models.OrderNone {
		return
	}

	var less func(a, b *models.HeatmapState) bool
	switch field {
	case models.SortStatesByRank:
		less = func(a, b *models.HeatmapState) bool { return a.Rank < b.Rank }
	case models.SortStatesByPickupRate:
		less = func(a, b *models.HeatmapState) bool { return a.AveragePickupRate < b.AveragePickupRate }
	case models.SortStatesByDeliveryRate:
		less = func(a, b *models.HeatmapState) bool { return a.AverageDeliveryRate < b.AverageDeliveryRate }
	case models.SortStatesByPickups:
		less = func(a, b *models.HeatmapState) bool { return a.PickupsAmount < b.PickupsAmount }
	case models.SortStatesByDeliveries:
		less = func(a, b *models.HeatmapState) bool { return a.DeliveriesAmount < b.DeliveriesAmount }
	default:
		less = func(a, b *models.HeatmapState) bool { return a.State < b.State }
	}

	if order == models.OrderDescending {
		asc := less
		less = func(a, b *models.HeatmapState) bool { return asc(b, a) }
	}
	sort.SliceStable(states, func(i, j int) bool { return less(states[i], states[j]) })
}
