package heatmap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"freight-dispatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(dayType models.DayType, eq models.Equipment) *models.Heatmap {
	hm := &models.Heatmap{
		ID:        string(dayType) + "-" + string(eq),
		DayType:   dayType,
		Equipment: eq,
	}
	for _, st := range models.ContinentalStates {
		hm.States = append(hm.States, &models.HeatmapState{
			ID:        hm.ID + "-" + st,
			HeatmapID: hm.ID,
			State:     st,
			Rank:      1,
		})
	}
	return hm
}

func stateOf(hm *models.Heatmap, code string) *models.HeatmapState {
	for _, st := range hm.States {
		if st.State == code {
			return st
		}
	}
	return nil
}

func load(originState, destState string, miles, rate float64) *models.Load {
	return &models.Load{
		Origin:      "Somewhere, " + originState,
		OriginState: originState,
		Destination: "Elsewhere, " + destState,
		DestState:   destState,
		Miles:       miles,
		Rate:        rate,
	}
}

func TestGenerateSinglePostingContributesToExactlyTwoStates(t *testing.T) {
	hm := snapshot(models.DayToday, models.EquipmentFlatbed)

	Generate(hm, []*models.Load{load("TX", "CA", 1400, 2800)})

	tx := stateOf(hm, "TX")
	require.NotNil(t, tx)
	assert.Equal(t, 1, tx.PickupsAmount)
	assert.Equal(t, 2800.0, tx.SumPickupRates)
	assert.Equal(t, 2.0, tx.AveragePickupRate)
	assert.Zero(t, tx.DeliveriesAmount)

	ca := stateOf(hm, "CA")
	require.NotNil(t, ca)
	assert.Equal(t, 1, ca.DeliveriesAmount)
	assert.Equal(t, 2800.0, ca.SumDeliveryRates)
	assert.Zero(t, ca.PickupsAmount)

	for _, st := range hm.States {
		if st.State == "TX" || st.State == "CA" {
			continue
		}
		assert.Zero(t, st.PickupsAmount, "state %s", st.State)
		assert.Zero(t, st.DeliveriesAmount, "state %s", st.State)
	}
}

func TestGenerateAverageRateRoundsToCents(t *testing.T) {
	hm := snapshot(models.DayToday, models.EquipmentVan)

	Generate(hm, []*models.Load{
		load("GA", "FL", 1070.813324771944, 2010),
	})

	ga := stateOf(hm, "GA")
	assert.Equal(t, 1.88, ga.AveragePickupRate)
}

func TestGenerateRankBuckets(t *testing.T) {
	hm := snapshot(models.DayToday, models.EquipmentFlatbed)

	// TX carries the cycle maximum of 10000 in pickup rates; the rest sit
	// at fixed fractions of it, one per bucket boundary.
	loads := []*models.Load{
		load("TX", "CA", 1000, 10000), // max, rank 5
		load("OK", "CA", 1000, 8100),  // >80%, rank 5
		load("NM", "CA", 1000, 8000),  // ==80%, rank 4
		load("KS", "CA", 1000, 3200),  // ==32%, rank 3
		load("NE", "CA", 1000, 1200),  // ==12%, rank 2
		load("IA", "CA", 1000, 400),   // ==4%, rank 1
	}
	Generate(hm, loads)

	assert.Equal(t, 5, stateOf(hm, "TX").Rank)
	assert.Equal(t, 5, stateOf(hm, "OK").Rank)
	assert.Equal(t, 4, stateOf(hm, "NM").Rank)
	assert.Equal(t, 3, stateOf(hm, "KS").Rank)
	assert.Equal(t, 2, stateOf(hm, "NE").Rank)
	assert.Equal(t, 1, stateOf(hm, "IA").Rank)
	assert.Equal(t, 1, stateOf(hm, "WY").Rank, "empty states rank 1")
}

func TestGenerateRankIsMonotonicInPickupSums(t *testing.T) {
	hm := snapshot(models.DayTomorrow, models.EquipmentReefer)

	var loads []*models.Load
	rates := []float64{150, 900, 2400, 5100, 9900, 10000, 320, 77, 4800}
	for i, r := range rates {
		loads = append(loads, load(models.ContinentalStates[i], "CA", 500, r))
	}
	Generate(hm, loads)

	for _, a := range hm.States {
		for _, b := range hm.States {
			if a.SumPickupRates > b.SumPickupRates {
				assert.GreaterOrEqual(t, a.Rank, b.Rank,
					"%s ($%v) vs %s ($%v)", a.State, a.SumPickupRates, b.State, b.SumPickupRates)
			}
		}
	}
}

func TestGenerateEmptyPoolZeroesEverything(t *testing.T) {
	hm := snapshot(models.DayToday, models.EquipmentReefer)

	Generate(hm, nil)

	for _, st := range hm.States {
		assert.Zero(t, st.PickupsAmount)
		assert.Zero(t, st.AveragePickupRate)
		assert.Equal(t, 1, st.Rank)
	}
}

func TestSortStatesByRankDescending(t *testing.T) {
	hm := snapshot(models.DayToday, models.EquipmentFlatbed)
	Generate(hm, []*models.Load{
		load("TX", "CA", 1000, 10000),
		load("GA", "FL", 1000, 5000),
	})

	sortStates(hm.States, models.ParseHeatmapSortField("Rank"), models.OrderDescending)
	assert.Equal(t, "TX", hm.States[0].State)

	sortStates(hm.States, models.ParseHeatmapSortField("unknown"), models.OrderAscending)
	assert.Equal(t, "AL", hm.States[0].State, "unknown sort falls back to state order")
}

// --- Regeneration orchestration ---

type fakeHeatmapStore struct {
	mu        sync.Mutex
	snapshots map[string]*models.Heatmap
	resets    int
	saves     []string
	touched   []string
	events    []string
}

func key(d models.DayType, e models.Equipment) string { return string(d) + "/" + string(e) }

func newFakeHeatmapStore() *fakeHeatmapStore {
	f := &fakeHeatmapStore{snapshots: map[string]*models.Heatmap{}}
	for _, d := range []models.DayType{models.DayToday, models.DayTomorrow} {
		for _, e := range []models.Equipment{models.EquipmentFlatbed, models.EquipmentReefer, models.EquipmentVan} {
			f.snapshots[key(d, e)] = snapshot(d, e)
		}
	}
	return f
}

func (f *fakeHeatmapStore) FindByKey(_ context.Context, d models.DayType, e models.Equipment) (*models.Heatmap, error) {
	hm, ok := f.snapshots[key(d, e)]
	if !ok {
		return nil, models.ErrHeatmapMissing
	}
	return hm, nil
}

func (f *fakeHeatmapStore) ResetAllStates(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.events = append(f.events, "reset")
	return nil
}

func (f *fakeHeatmapStore) SaveStates(_ context.Context, states []*models.HeatmapState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, states[0].HeatmapID)
	f.events = append(f.events, "save")
	return nil
}

func (f *fakeHeatmapStore) TouchUpdatedAt(_ context.Context, id string, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeWindowStore struct {
	byEquipment map[models.Equipment][]*models.Load
	err         error
}

func (f *fakeWindowStore) SearchWindow(_ context.Context, start, end time.Time, eq models.Equipment) ([]*models.Load, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Load
	for _, l := range f.byEquipment[eq] {
		if !l.PickUp.Before(start) && l.PickUp.Before(end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestRegenerateRebuildsAllSixSnapshots(t *testing.T) {
	store := newFakeHeatmapStore()

	today := time.Now().UTC().Truncate(24 * time.Hour).Add(6 * time.Hour)
	flatbedLoad := load("TX", "CA", 1000, 2000)
	flatbedLoad.PickUp = today

	windows := &fakeWindowStore{byEquipment: map[models.Equipment][]*models.Load{
		models.EquipmentFlatbed: {flatbedLoad},
	}}

	svc := NewService(store, windows)
	require.NoError(t, svc.Regenerate(context.Background()))

	assert.Equal(t, 1, store.resets, "reset runs once, globally, before generation")
	assert.Len(t, store.saves, 6)
	assert.Len(t, store.touched, 6)

	todayFlatbed := store.snapshots[key(models.DayToday, models.EquipmentFlatbed)]
	assert.Equal(t, 1, stateOf(todayFlatbed, "TX").PickupsAmount)

	tomorrowFlatbed := store.snapshots[key(models.DayTomorrow, models.EquipmentFlatbed)]
	assert.Zero(t, stateOf(tomorrowFlatbed, "TX").PickupsAmount, "today's posting must not leak into tomorrow")
}

func TestRegenerateFailureAbortsWithoutPartialPersist(t *testing.T) {
	store := newFakeHeatmapStore()
	windows := &fakeWindowStore{err: errors.New("feed store down")}

	svc := NewService(store, windows)
	err := svc.Regenerate(context.Background())

	require.Error(t, err)
	assert.Empty(t, store.saves, "no states persisted for a failed cycle")
	assert.Empty(t, store.touched)
}

func TestRegenerateCyclesDoNotInterleave(t *testing.T) {
	// The reset is global. If a second cycle could reset while the first is
	// still persisting, it would zero rows the first cycle had already
	// written. Each reset must therefore be followed by all six of its own
	// saves before the next reset appears.
	store := newFakeHeatmapStore()
	svc := NewService(store, &fakeWindowStore{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Regenerate(context.Background()))
		}()
	}
	wg.Wait()

	require.Len(t, store.events, 14)
	assert.Equal(t, 2, store.resets)
	assert.Equal(t, "reset", store.events[0])
	for i, ev := range store.events {
		if ev != "reset" {
			continue
		}
		for j := i + 1; j <= i+6; j++ {
			assert.Equal(t, "save", store.events[j], "event %d after reset at %d", j, i)
		}
	}
}

func TestFindSortsStates(t *testing.T) {
	store := newFakeHeatmapStore()
	hm := store.snapshots[key(models.DayToday, models.EquipmentVan)]
	Generate(hm, []*models.Load{load("TX", "CA", 1000, 9000)})

	svc := NewService(store, &fakeWindowStore{})
	got, err := svc.Find(context.Background(), models.HeatmapSearchRequest{
		DayType:   models.DayToday,
		Equipment: models.EquipmentVan,
		SortField: "Pickups",
		Order:     models.OrderDescending,
	})
	require.NoError(t, err)
	assert.Equal(t, "TX", got.States[0].State)
}
