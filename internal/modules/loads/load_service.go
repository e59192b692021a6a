package loads

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"freight-dispatch/internal/models"
	"freight-dispatch/pkg/geo"
)

// refineWorkers bounds the fan-out of the exact-distance pass. Profit math
// is pure per candidate, so the only coordination is the barrier before
// sorting.
const refineWorkers = 8

// CityDirectory is the slice of the city module this service needs for
// imports: resolving a feed's "City, ST" string to canonical reference
// data.
type CityDirectory interface {
	FindByFullName(ctx context.Context, fullName string) (*models.City, error)
}

// ServiceInterface defines the contract for the load matching engine.
type ServiceInterface interface {
	Search(ctx context.Context, req models.LoadSearchRequest) (*models.LoadPage, error)
	AverageRates(ctx context.Context) (*models.AverageRates, error)
	Import(ctx context.Context, incoming []*models.Load) (int, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// Service implements the load matching engine.
type Service struct {
	store  StoreInterface
	cities CityDirectory
}

// NewService creates a new load service.
func NewService(store StoreInterface, cities CityDirectory) *Service {
	return &Service{store: store, cities: cities}
}

// Search runs the four-phase matching pipeline: coarse bounding-box
// pre-filter at the store, exact deadhead refinement, strict radius
// post-filter, then sort and paginate.
func (s *Service) Search(ctx context.Context, req models.LoadSearchRequest) (*models.LoadPage, error) {
	if req.Origin == nil {
		return nil, models.ErrOriginRequired
	}
	if req.Deadhead <= 0 {
		return nil, models.ErrInvalidRadius
	}

	milesMax := req.MilesMax
	if milesMax <= 0 {
		milesMax = 1e9 // no upper bound requested
	}

	// Phase 1: coarse geographic pre-filter. Over-inclusive on purpose;
	// it exists so the store never computes exact distances.
	filter := Filter{
		OriginBox:   geo.BoundingBox(req.Origin.Point(), req.Deadhead),
		MilesMin:    req.MilesMin,
		MilesMax:    milesMax,
		PickupAfter: req.PickupStartDate,
		Equipments:  haulableEquipments(req.Truck.Equipment),
	}
	if req.Destination != nil {
		box := geo.BoundingBox(req.Destination.Point(), req.Deadhead)
		filter.DestBox = &box
	}

	candidates, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loads.Search: %w", err)
	}

	// Phase 2: exact refinement, fanned out across candidates. The
	// barrier below is required before sorting; ordering within the fan
	// is irrelevant.
	ranked := make([]*models.RankedLoad, len(candidates))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < refineWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ranked[i] = rankLoad(candidates[i], req)
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Phase 3: strict post-filter correcting the box's over-inclusion.
	survivors := ranked[:0]
	for _, rl := range ranked {
		if rl.DeadheadOrigin >= req.Deadhead {
			continue
		}
		if req.Destination != nil && rl.DeadheadDest >= req.Deadhead {
			continue
		}
		survivors = append(survivors, rl)
	}

	// Phase 4: sort and paginate over the post-filtered set.
	sortLoads(survivors, models.ParseLoadSortField(req.SortField), models.ParseSortOrder(string(req.Order)))
	return paginate(survivors, req.Page, req.PageSize), nil
}

// rankLoad computes the per-truck economics for one candidate.
func rankLoad(load *models.Load, req models.LoadSearchRequest) *models.RankedLoad {
	rl := &models.RankedLoad{Load: load}

	rl.DeadheadOrigin = geo.Distance(req.Origin.Point(), load.OriginPoint())
	if req.Destination != nil {
		rl.DeadheadDest = geo.Distance(req.Destination.Point(), load.DestPoint())
	}

	// geo.Distance floors at 0.01, so distance is never zero.
	distance := rl.DeadheadOrigin + load.Miles + rl.DeadheadDest
	rl.Profit = load.Rate - req.Truck.CostPerMile*distance
	rl.RatePerMile = load.Rate / distance
	rl.ProfitPerMile = rl.Profit / distance
	return rl
}

// haulableEquipments expands a truck's equipment into the posting
// equipments it may legally haul.
func haulableEquipments(truck models.Equipment) []models.Equipment {
	all := []models.Equipment{models.EquipmentFlatbed, models.EquipmentReefer, models.EquipmentVan}

	var out []models.Equipment
	for _, eq := range all {
		if eq.Matches(truck) {
			out = append(out, eq)
		}
	}
	return out
}

// AverageRates aggregates rate-per-mile over the next 24 hours, fleet-wide
// and per equipment type.
func (s *Service) AverageRates(ctx context.Context) (*models.AverageRates, error) {
	now := time.Now().UTC()
	end := now.Add(24 * time.Hour)

	sums := map[models.Equipment]struct {
		miles float64
		rates float64
	}{}
	var allMiles, allRates float64

	for _, eq := range []models.Equipment{models.EquipmentFlatbed, models.EquipmentReefer, models.EquipmentVan} {
		loads, err := s.store.SearchWindow(ctx, now, end, eq)
		if err != nil {
			return nil, fmt.Errorf("loads.AverageRates: %w", err)
		}
		entry := sums[eq]
		for _, l := range loads {
			entry.miles += l.Miles
			entry.rates += l.Rate
			allMiles += l.Miles
			allRates += l.Rate
		}
		sums[eq] = entry
	}

	perMile := func(eq models.Equipment) float64 {
		entry := sums[eq]
		if entry.miles <= 0 {
			return 0
		}
		return geo.Round2(entry.rates / entry.miles)
	}

	rates := &models.AverageRates{
		At:          now,
		FlatbedRate: perMile(models.EquipmentFlatbed),
		ReeferRate:  perMile(models.EquipmentReefer),
		VanRate:     perMile(models.EquipmentVan),
	}
	if allMiles > 0 {
		rates.All = geo.Round2(allRates / allMiles)
	}
	return rates, nil
}

// Import stores a batch of normalized feed postings. Each posting must
// reference known cities on both ends; a newer posting supersedes an
// existing one with the same reference id and equipment. Feed parsing is
// an upstream concern; this takes already-normalized records.
func (s *Service) Import(ctx context.Context, incoming []*models.Load) (int, error) {
	imported := 0
	for _, load := range incoming {
		origin, err := s.cities.FindByFullName(ctx, load.Origin)
		if errors.Is(err, models.ErrNotFound) {
			continue // unknown origin city, drop the posting
		}
		if err != nil {
			return imported, fmt.Errorf("loads.Import: origin city %q: %w", load.Origin, err)
		}
		dest, err := s.cities.FindByFullName(ctx, load.Destination)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return imported, fmt.Errorf("loads.Import: destination city %q: %w", load.Destination, err)
		}

		// Canonicalize names and pin the state codes from reference data
		// so grouping never derives them from the formatted string.
		load.Origin = origin.FullName
		load.OriginState = origin.State
		load.Destination = dest.FullName
		load.DestState = dest.State

		// Only a definitive "nothing there" skips the supersede; a failed
		// lookup must not slip a duplicate reference in.
		existing, err := s.store.FindByReference(ctx, load.ReferenceID, load.Equipment)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return imported, fmt.Errorf("loads.Import: supersede lookup %s: %w", load.ReferenceID, err)
		}
		if existing != nil {
			if err := s.store.Delete(ctx, existing.ID); err != nil {
				return imported, fmt.Errorf("loads.Import: superseding %s: %w", load.ReferenceID, err)
			}
		}

		if _, err := s.store.Create(ctx, load); err != nil {
			return imported, fmt.Errorf("loads.Import: reference %s: %w", load.ReferenceID, err)
		}
		imported++
	}
	return imported, nil
}

// PurgeExpired deletes postings whose pickup time has passed.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("loads.PurgeExpired: %w", err)
	}
	return n, nil
}
