package heatmap

import (
	"net/http"

	"freight-dispatch/internal/models"
	"freight-dispatch/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for heatmap snapshots.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new heatmap handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Search returns one snapshot with its states ordered as requested.
func (h *Handler) Search(c echo.Context) error {
	var req models.HeatmapSearchRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	hm, err := h.svc.Find(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, hm)
}

// Regenerate rebuilds all six snapshots from the current posting pool.
// Admin only; a failure aborts the failing key's cycle and is returned to
// the caller rather than persisting partial state.
func (h *Handler) Regenerate(c echo.Context) error {
	if err := h.svc.Regenerate(c.Request().Context()); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"status": "regenerated"})
}
