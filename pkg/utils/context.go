package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetPageLimit reads ?page= and ?limit= query parameters with sane
// defaults.
func GetPageLimit(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return page, limit
}
