package utils

import (
	"errors"
	"net/http"

	"freight-dispatch/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON payload with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes a uniform JSON error body.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// HandleServiceError maps service-layer sentinel errors onto HTTP codes.
// Anything unrecognized is a 500; the detailed error stays in the server
// log, not the response.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrHeatmapMissing):
		return RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrOriginRequired),
		errors.Is(err, models.ErrInvalidRadius),
		errors.Is(err, models.ErrStateNotServiced):
		return RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		return RespondWithError(c, http.StatusBadGateway, err.Error())
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, "something went wrong")
	}
}
