package handlers

import (
	"fmt"
	"net/http"
	"time"

	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// StreetReportHandler returns the patrol-route street report. Closed cases
// are excluded unless ?include_closed=true, in which case they trail the
// open ones. With ?format=xlsx the report downloads as a spreadsheet.
func StreetReportHandler(c echo.Context) error {
	includeClosed := c.QueryParam("include_closed") == "true"
	now := time.Now()

	rows := services.BuildStreetReport(Registry.Cases(), now, includeClosed)

	if c.QueryParam("format") == "xlsx" {
		buf, err := services.GenerateStreetReportXLSX(rows, now)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to generate spreadsheet"})
		}

		filename := fmt.Sprintf("street-report-%s.xlsx", now.Format("2006-01-02"))
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			buf.Bytes())
	}

	return c.JSON(http.StatusOK, rows)
}
