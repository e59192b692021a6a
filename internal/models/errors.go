package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrOriginRequired is returned when a load search is submitted
	// without an origin point.
	ErrOriginRequired = errors.New("search origin is required")

	// ErrInvalidRadius is returned when the deadhead radius is zero or
	// negative.
	ErrInvalidRadius = errors.New("deadhead radius must be positive")

	// ErrStoreUnavailable is returned when the posting store could not be
	// queried. The engine never retries internally; retry policy belongs
	// to the store collaborator.
	ErrStoreUnavailable = errors.New("posting store unavailable")

	// ErrStateNotServiced is returned when an imported posting references
	// a state outside the continental coverage list.
	ErrStateNotServiced = errors.New("state is not serviced")

	// ErrHeatmapMissing is returned when regeneration cannot find the
	// pre-provisioned snapshot row for a (day type, equipment) key.
	ErrHeatmapMissing = errors.New("heatmap snapshot is not provisioned")
)
