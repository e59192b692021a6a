package heatmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-dispatch/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StoreInterface is the persistence contract for heatmap snapshots. The
// snapshot rows (one heatmap per day-type/equipment key, one state row per
// continental state) are provisioned once by migration; regeneration only
// updates them.
type StoreInterface interface {
	// FindByKey returns the snapshot for one key, states included.
	FindByKey(ctx context.Context, dayType models.DayType, equipment models.Equipment) (*models.Heatmap, error)
	// ResetAllStates zeroes every counter and sets rank to 1 on all six
	// snapshots. Runs before regeneration so no stale contribution survives.
	ResetAllStates(ctx context.Context) error
	// SaveStates persists a generated snapshot's state rows.
	SaveStates(ctx context.Context, states []*models.HeatmapState) error
	// TouchUpdatedAt stamps a snapshot after successful regeneration.
	TouchUpdatedAt(ctx context.Context, heatmapID string, at time.Time) error
}

// Store implements StoreInterface on PostgreSQL.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new heatmap store.
func NewStore(db *pgxpool.Pool) StoreInterface {
	return &Store{db: db}
}

// FindByKey loads the snapshot header then its state rows.
func (s *Store) FindByKey(ctx context.Context, dayType models.DayType, equipment models.Equipment) (*models.Heatmap, error) {
	var hm models.Heatmap
	err := s.db.QueryRow(ctx,
		`SELECT id, day_type, equipment, updated_at FROM heatmaps WHERE day_type = $1 AND equipment = $2`,
		string(dayType), string(equipment),
	).Scan(&hm.ID, &hm.DayType, &hm.Equipment, &hm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrHeatmapMissing
		}
		return nil, fmt.Errorf("heatmap.FindByKey: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, heatmap_id, state, pickups_amount, sum_pickup_rates, average_pickup_rate,
			deliveries_amount, sum_delivery_rates, average_delivery_rate, rank
		FROM heatmap_states WHERE heatmap_id = $1 ORDER BY state`,
		hm.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("heatmap.FindByKey: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st models.HeatmapState
		if err := rows.Scan(
			&st.ID, &st.HeatmapID, &st.State,
			&st.PickupsAmount, &st.SumPickupRates, &st.AveragePickupRate,
			&st.DeliveriesAmount, &st.SumDeliveryRates, &st.AverageDeliveryRate,
			&st.Rank,
		); err != nil {
			return nil, fmt.Errorf("heatmap.FindByKey: scan state: %w", err)
		}
		hm.States = append(hm.States, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("heatmap.FindByKey: %w", err)
	}
	return &hm, nil
}

// ResetAllStates zeroes every snapshot in one statement.
func (s *Store) ResetAllStates(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		UPDATE heatmap_states SET
			pickups_amount = 0, sum_pickup_rates = 0, average_pickup_rate = 0,
			deliveries_amount = 0, sum_delivery_rates = 0, average_delivery_rate = 0,
			rank = 1`)
	if err != nil {
		return fmt.Errorf("heatmap.ResetAllStates: %w", err)
	}
	return nil
}

// SaveStates batches the per-state updates of one generated snapshot.
func (s *Store) SaveStates(ctx context.Context, states []*models.HeatmapState) error {
	batch := &pgx.Batch{}
	for _, st := range states {
		batch.Queue(`
			UPDATE heatmap_states SET
				pickups_amount = $2, sum_pickup_rates = $3, average_pickup_rate = $4,
				deliveries_amount = $5, sum_delivery_rates = $6, average_delivery_rate = $7,
				rank = $8
			WHERE id = $1`,
			st.ID,
			st.PickupsAmount, st.SumPickupRates, st.AveragePickupRate,
			st.DeliveriesAmount, st.SumDeliveryRates, st.AverageDeliveryRate,
			st.Rank,
		)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()
	for range states {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("heatmap.SaveStates: %w", err)
		}
	}
	return nil
}

// TouchUpdatedAt stamps the snapshot header.
func (s *Store) TouchUpdatedAt(ctx context.Context, heatmapID string, at time.Time) error {
	tag, err := s.db.Exec(ctx, `UPDATE heatmaps SET updated_at = $2 WHERE id = $1`, heatmapID, at)
	if err != nil {
		return fmt.Errorf("heatmap.TouchUpdatedAt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrHeatmapMissing
	}
	return nil
}
