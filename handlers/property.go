package handlers

import (
	"net/http"
	"strings"

	"code_enforce_app_go/db"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// ListPropertiesHandler returns every property directory entry.
func ListPropertiesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, Registry.Properties())
}

// GetPropertyHandler returns a single directory entry by id.
func GetPropertyHandler(c echo.Context) error {
	p, err := Registry.PropertyByID(c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// LookupPropertyHandler finds the directory entry for a street address,
// compared case-insensitively after trimming. Used by the case form to
// pre-fill owner details. A miss is an empty 200, not an error.
func LookupPropertyHandler(c echo.Context) error {
	street := strings.TrimSpace(c.QueryParam("street"))
	if street == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "street query parameter is required"})
	}

	p, found := Registry.LookupProperty(street)
	if !found {
		return c.JSON(http.StatusOK, map[string]any{"found": false})
	}
	return c.JSON(http.StatusOK, map[string]any{"found": true, "property": p})
}

// SavePropertyHandler creates or updates a directory entry.
func SavePropertyHandler(c echo.Context) error {
	var p models.Property
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if id := c.Param("id"); id != "" {
		p.ID = id
	}

	saved, err := Registry.SaveProperty(p)
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "save", "property", saved.ID, saved.StreetAddress, "Property saved")

	status := http.StatusOK
	if p.ID == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, saved)
}

// DeletePropertyHandler removes a directory entry. Cases at the address are
// untouched.
func DeletePropertyHandler(c echo.Context) error {
	id := c.Param("id")
	if err := Registry.DeleteProperty(id); err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "delete", "property", id, "", "Property deleted")

	return c.JSON(http.StatusOK, map[string]string{"message": "property deleted"})
}

// MigratePropertiesHandler backfills the directory from existing cases. Safe
// to run repeatedly.
func MigratePropertiesHandler(c echo.Context) error {
	result, err := Registry.MigrateCasesIntoProperties()
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "migrate", "property", "", "", "Property directory backfilled from cases")

	return c.JSON(http.StatusOK, result)
}
