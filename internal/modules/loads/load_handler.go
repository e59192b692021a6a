package loads

import (
	"net/http"

	"freight-dispatch/internal/models"
	"freight-dispatch/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for load matching.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new load handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Search returns one page of ranked postings for a truck.
func (h *Handler) Search(c echo.Context) error {
	var req models.LoadSearchRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	page, err := h.svc.Search(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, page)
}

// AverageRates returns the 24-hour market averages.
func (h *Handler) AverageRates(c echo.Context) error {
	rates, err := h.svc.AverageRates(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, rates)
}

// Import ingests a batch of normalized feed postings.
func (h *Handler) Import(c echo.Context) error {
	var batch []*models.Load
	if err := c.Bind(&batch); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}

	imported, err := h.svc.Import(c.Request().Context(), batch)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, map[string]int{"imported": imported})
}

// PurgeExpired deletes stale postings.
func (h *Handler) PurgeExpired(c echo.Context) error {
	n, err := h.svc.PurgeExpired(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]int64{"deleted": n})
}
