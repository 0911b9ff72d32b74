package handlers

import (
	"net/http"
	"strings"
	"time"

	"code_enforce_app_go/db"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// UpdateAbatementHandler saves the abatement record on a case. Cost totals
// are recomputed server-side from the parts.
func UpdateAbatementHandler(c echo.Context) error {
	var abatement models.Abatement
	if err := c.Bind(&abatement); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	updated, err := Registry.UpdateAbatement(c.Param("id"), abatement)
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "update", "abatement", updated.ID, updated.CaseID, "Abatement record updated")

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

// UploadAbatementPhotoHandler validates and stores a before/after photo of
// the abatement work, then attaches it to the case's abatement record. The
// "stage" form field selects the set.
func UploadAbatementPhotoHandler(c echo.Context) error {
	id := c.Param("id")
	if _, err := Registry.CaseByID(id); err != nil {
		return writeServiceError(c, err)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "photo file is required"})
	}

	if err := services.ValidateImageUpload(fileHeader); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	stage := c.FormValue("stage")
	ctx := c.Request().Context()
	photo, err := services.StoreAbatementPhoto(ctx, fileHeader, id, stage)
	if err != nil {
		return writeServiceError(c, err)
	}
	photo.Caption = strings.TrimSpace(c.FormValue("caption"))

	updated, err := Registry.AddAbatementPhoto(id, stage, photo)
	if err != nil {
		services.Storage.Delete(ctx, photo.StoreKey)
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "upload", "abatement", updated.ID, updated.CaseID, "Abatement "+stage+" photo attached")

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

// AbatementReportHandler returns the abatement cost report in patrol-route
// order with the grand total.
func AbatementReportHandler(c echo.Context) error {
	report := services.BuildAbatementReport(Registry.Cases())
	return c.JSON(http.StatusOK, report)
}
