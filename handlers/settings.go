package handlers

import (
	"net/http"

	"code_enforce_app_go/db"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetSettingsHandler returns the organization settings with renderer
// fallbacks applied.
func GetSettingsHandler(c echo.Context) error {
	var settings models.OrgSettings
	if err := db.DB.First(&settings, 1).Error; err != nil {
		settings = models.OrgSettings{ID: 1}
	}
	return c.JSON(http.StatusOK, settings.WithDefaults())
}

// SaveSettingsHandler upserts the single settings row.
func SaveSettingsHandler(c echo.Context) error {
	var settings models.OrgSettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	settings.ID = 1

	if err := db.DB.Save(&settings).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "update", "org_settings", "1", settings.CityName, "Organization settings saved")

	return c.JSON(http.StatusOK, settings.WithDefaults())
}
