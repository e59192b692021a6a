package api

import (
	"net/http"

	"freight-dispatch/internal/api/middleware"
	"freight-dispatch/internal/models"
	"freight-dispatch/internal/modules/cities"
	"freight-dispatch/internal/modules/heatmap"
	"freight-dispatch/internal/modules/loads"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	loadHandler *loads.Handler,
	heatmapHandler *heatmap.Handler,
	cityHandler *cities.Handler,
	jwtSecret string,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)
	anyRole := middleware.RolesRequired(models.RoleAdmin, models.RoleCarrier, models.RoleBroker)
	adminRequired := middleware.RolesRequired(models.RoleAdmin)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Load Matching ---
	loadGroup := e.Group("/loads", authMiddleware, anyRole)
	{
		loadGroup.POST("/search", loadHandler.Search)
		loadGroup.GET("/average-rates", loadHandler.AverageRates)
	}

	// --- Market Heatmap ---
	heatmapGroup := e.Group("/heatmaps", authMiddleware, anyRole)
	{
		heatmapGroup.POST("/search", heatmapHandler.Search)
	}

	// --- Reference Data ---
	cityGroup := e.Group("/cities", authMiddleware, anyRole)
	{
		cityGroup.GET("", cityHandler.List)
	}

	// --- Admin ---
	adminGroup := e.Group("/admin", authMiddleware, adminRequired)
	{
		adminGroup.POST("/loads/import", loadHandler.Import)       // daily feed ingestion
		adminGroup.DELETE("/loads/expired", loadHandler.PurgeExpired)
		adminGroup.POST("/heatmaps/generate", heatmapHandler.Regenerate)
		adminGroup.POST("/cities", cityHandler.Create)
	}
}
