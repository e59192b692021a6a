package cities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"freight-dispatch/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StoreInterface is the city reference-data contract.
type StoreInterface interface {
	// FindByFullName resolves a "City, ST" name, case insensitively.
	FindByFullName(ctx context.Context, fullName string) (*models.City, error)
	Create(ctx context.Context, city *models.City) (*models.City, error)
	// List returns cities whose full name contains the criteria, paged.
	List(ctx context.Context, criteria string, page, limit int) ([]*models.City, int, error)
}

// Store implements StoreInterface on PostgreSQL.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new city store.
func NewStore(db *pgxpool.Pool) StoreInterface {
	return &Store{db: db}
}

// FindByFullName resolves the canonical city record for a formatted name.
func (s *Store) FindByFullName(ctx context.Context, fullName string) (*models.City, error) {
	var c models.City
	err := s.db.QueryRow(ctx,
		`SELECT id, name, state, full_name, latitude, longitude
		FROM cities WHERE LOWER(full_name) = LOWER($1)`,
		fullName,
	).Scan(&c.ID, &c.Name, &c.State, &c.FullName, &c.Latitude, &c.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("cities.FindByFullName: %w", err)
	}
	return &c, nil
}

// Create inserts a new city.
func (s *Store) Create(ctx context.Context, city *models.City) (*models.City, error) {
	if !IsStateAllowed(city.State) {
		return nil, models.ErrStateNotServiced
	}
	if city.ID == "" {
		city.ID = uuid.NewString()
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO cities (id, name, state, full_name, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		city.ID, city.Name, city.State, city.FullName, city.Latitude, city.Longitude,
	)
	if err != nil {
		return nil, fmt.Errorf("cities.Create: %w", err)
	}
	return city, nil
}

// List pages through cities matching a name fragment.
func (s *Store) List(ctx context.Context, criteria string, page, limit int) ([]*models.City, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM cities WHERE full_name ILIKE '%' || $1 || '%'`, criteria,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("cities.List: count: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, name, state, full_name, latitude, longitude
		FROM cities WHERE full_name ILIKE '%' || $1 || '%'
		ORDER BY full_name LIMIT $2 OFFSET $3`,
		criteria, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("cities.List: %w", err)
	}
	defer rows.Close()

	var out []*models.City
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.State, &c.FullName, &c.Latitude, &c.Longitude); err != nil {
			return nil, 0, fmt.Errorf("cities.List: scan: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("cities.List: %w", err)
	}
	return out, total, nil
}

// IsStateAllowed reports whether a state code is in the continental
// coverage list, regardless of the caller's casing.
func IsStateAllowed(state string) bool {
	state = strings.ToUpper(state)
	for _, s := range models.ContinentalStates {
		if s == state {
			return true
		}
	}
	return false
}
