package loads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight-dispatch/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
)

// Filter is the conjunctive predicate set the search engine hands to the
// posting store. The geographic members are cheap rectangles, not exact
// radii; the engine re-checks survivors with exact distances.
type Filter struct {
	OriginBox   orb.Bound
	DestBox     *orb.Bound
	MilesMin    float64
	MilesMax    float64
	PickupAfter time.Time
	// Equipments is the set of posting equipments the truck may haul.
	Equipments []models.Equipment
}

// StoreInterface is the posting store contract the matching and heatmap
// engines depend on.
type StoreInterface interface {
	// Search returns every posting matching all predicates in the filter.
	Search(ctx context.Context, f Filter) ([]*models.Load, error)
	// SearchWindow returns postings of one equipment type picked up within
	// [start, end), ordered by pickup time. Used by heatmap regeneration.
	SearchWindow(ctx context.Context, start, end time.Time, equipment models.Equipment) ([]*models.Load, error)
	// FindByReference looks up a posting by feed reference id (case
	// insensitive) and equipment, the identity the import job supersedes on.
	FindByReference(ctx context.Context, referenceID string, equipment models.Equipment) (*models.Load, error)
	Create(ctx context.Context, load *models.Load) (*models.Load, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired purges postings whose pickup time has passed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store implements StoreInterface on PostgreSQL.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new posting store.
func NewStore(db *pgxpool.Pool) StoreInterface {
	return &Store{db: db}
}

const loadColumns = `id, reference_id, origin, origin_state, origin_latitude, origin_longitude,
	destination, destination_state, destination_latitude, destination_longitude,
	pickup, delivery, equipment, length, weight, miles, rate,
	shipper_id, shipper_name, shipper_email, shipper_phone, requirements, created_at`

// scanLoad is a helper to scan a row into a Load model.
func scanLoad(row pgx.Row) (*models.Load, error) {
	var l models.Load
	err := row.Scan(
		&l.ID,
		&l.ReferenceID,
		&l.Origin,
		&l.OriginState,
		&l.OriginLat,
		&l.OriginLon,
		&l.Destination,
		&l.DestState,
		&l.DestLat,
		&l.DestLon,
		&l.PickUp,
		&l.Delivery,
		&l.Equipment,
		&l.Length,
		&l.Weight,
		&l.Miles,
		&l.Rate,
		&l.ShipperID,
		&l.ShipperName,
		&l.ShipperEmail,
		&l.ShipperPhone,
		&l.Requirements,
		&l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan load: %w", err)
	}
	return &l, nil
}

func collectLoads(rows pgx.Rows) ([]*models.Load, error) {
	defer rows.Close()

	var loads []*models.Load
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loads, nil
}

// Search builds the conjunctive WHERE clause from the filter. All range
// predicates translate to plain inequality comparisons so the planner can
// use the lat/lon btree indexes.
func (s *Store) Search(ctx context.Context, f Filter) ([]*models.Load, error) {
	var (
		clauses []string
		args    []interface{}
	)
	bind := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	clauses = append(clauses,
		"pickup >= "+bind(f.PickupAfter),
		"miles >= "+bind(f.MilesMin),
		"miles <= "+bind(f.MilesMax),
		"origin_latitude > "+bind(f.OriginBox.Min.Lat()),
		"origin_latitude < "+bind(f.OriginBox.Max.Lat()),
		"origin_longitude > "+bind(f.OriginBox.Min.Lon()),
		"origin_longitude < "+bind(f.OriginBox.Max.Lon()),
	)
	if f.DestBox != nil {
		clauses = append(clauses,
			"destination_latitude > "+bind(f.DestBox.Min.Lat()),
			"destination_latitude < "+bind(f.DestBox.Max.Lat()),
			"destination_longitude > "+bind(f.DestBox.Min.Lon()),
			"destination_longitude < "+bind(f.DestBox.Max.Lon()),
		)
	}
	if len(f.Equipments) > 0 {
		placeholders := make([]string, len(f.Equipments))
		for i, eq := range f.Equipments {
			placeholders[i] = bind(string(eq))
		}
		clauses = append(clauses, "equipment IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := "SELECT " + loadColumns + " FROM loads WHERE " + strings.Join(clauses, " AND ")

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store.Search: %w", errors.Join(models.ErrStoreUnavailable, err))
	}
	loads, err := collectLoads(rows)
	if err != nil {
		return nil, fmt.Errorf("store.Search: %w", err)
	}
	return loads, nil
}

// SearchWindow retrieves one equipment type's postings for a pickup day.
func (s *Store) SearchWindow(ctx context.Context, start, end time.Time, equipment models.Equipment) ([]*models.Load, error) {
	query := "SELECT " + loadColumns + ` FROM loads
		WHERE pickup >= $1 AND pickup < $2 AND equipment = $3
		ORDER BY pickup`

	rows, err := s.db.Query(ctx, query, start, end, string(equipment))
	if err != nil {
		return nil, fmt.Errorf("store.SearchWindow: %w", errors.Join(models.ErrStoreUnavailable, err))
	}
	loads, err := collectLoads(rows)
	if err != nil {
		return nil, fmt.Errorf("store.SearchWindow: %w", err)
	}
	return loads, nil
}

// FindByReference fetches the posting the import job would supersede.
func (s *Store) FindByReference(ctx context.Context, referenceID string, equipment models.Equipment) (*models.Load, error) {
	query := "SELECT " + loadColumns + ` FROM loads
		WHERE LOWER(reference_id) = LOWER($1) AND equipment = $2`

	row := s.db.QueryRow(ctx, query, referenceID, string(equipment))
	l, err := scanLoad(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("store.FindByReference: %w", err)
	}
	return l, nil
}

// Create inserts a new posting.
func (s *Store) Create(ctx context.Context, load *models.Load) (*models.Load, error) {
	if load.ID == "" {
		load.ID = uuid.NewString()
	}
	query := `
		INSERT INTO loads (id, reference_id, origin, origin_state, origin_latitude, origin_longitude,
			destination, destination_state, destination_latitude, destination_longitude,
			pickup, delivery, equipment, length, weight, miles, rate,
			shipper_id, shipper_name, shipper_email, shipper_phone, requirements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING created_at`

	err := s.db.QueryRow(ctx, query,
		load.ID, load.ReferenceID, load.Origin, load.OriginState, load.OriginLat, load.OriginLon,
		load.Destination, load.DestState, load.DestLat, load.DestLon,
		load.PickUp, load.Delivery, string(load.Equipment), load.Length, load.Weight, load.Miles, load.Rate,
		load.ShipperID, load.ShipperName, load.ShipperEmail, load.ShipperPhone, load.Requirements,
	).Scan(&load.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store.Create: %w", err)
	}
	return load, nil
}

// Delete removes one posting.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM loads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("store.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteExpired purges postings whose pickup is in the past.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM loads WHERE pickup < $1", now)
	if err != nil {
		return 0, fmt.Errorf("store.DeleteExpired: %w", err)
	}
	return tag.RowsAffected(), nil
}
