package cities

import (
	"net/http"
	"strings"

	"freight-dispatch/internal/models"
	"freight-dispatch/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for city reference data.
type Handler struct {
	store StoreInterface
}

// NewHandler creates a new city handler.
func NewHandler(store StoreInterface) *Handler {
	return &Handler{store: store}
}

// List pages through cities matching ?q=.
func (h *Handler) List(c echo.Context) error {
	page, limit := utils.GetPageLimit(c)
	cities, total, err := h.store.List(c.Request().Context(), c.QueryParam("q"), page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"cities": cities, "total": total})
}

// Create adds a city to the reference data (administrative import step).
func (h *Handler) Create(c echo.Context) error {
	var city models.City
	if err := c.Bind(&city); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}

	normalized, err := Normalize(city.FullName, city.Latitude, city.Longitude)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	created, err := h.store.Create(c.Request().Context(), normalized)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, created)
}

// Normalize turns a raw "city name, st" string into a canonical City:
// title-cased name, upper-cased state, and the recombined full name.
func Normalize(fullName string, latitude, longitude float64) (*models.City, error) {
	parts := strings.SplitN(fullName, ",", 2)
	if len(parts) != 2 {
		return nil, models.ErrNotFound
	}

	state := strings.ToUpper(strings.TrimSpace(parts[1]))
	if !IsStateAllowed(state) {
		return nil, models.ErrStateNotServiced
	}

	words := strings.Fields(strings.ToLower(strings.TrimSpace(parts[0])))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	name := strings.Join(words, " ")

	return &models.City{
		Name:      name,
		State:     state,
		FullName:  name + ", " + state,
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}
