package handlers

import (
	"net/http"
	"strconv"
	"time"

	"code_enforce_app_go/db"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// ListAuditLogsHandler returns paginated audit log entries, admin only.
func ListAuditLogsHandler(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	filters := services.AuditLogFilters{
		UserID:       c.QueryParam("user_id"),
		ResourceType: c.QueryParam("resource_type"),
		Action:       c.QueryParam("action"),
		SearchQuery:  c.QueryParam("q"),
	}
	if from := c.QueryParam("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filters.DateFrom = t
		}
	}
	if to := c.QueryParam("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			// Include the whole day
			filters.DateTo = t.Add(24*time.Hour - time.Second)
		}
	}

	logs, total, err := services.GetAuditLogs(db.DB, filters, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load audit logs"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"logs":      logs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ResourceAuditHistoryHandler returns the audit trail for one resource.
func ResourceAuditHistoryHandler(c echo.Context) error {
	logs, err := services.GetResourceAuditHistory(db.DB, c.Param("type"), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load audit history"})
	}
	return c.JSON(http.StatusOK, logs)
}
