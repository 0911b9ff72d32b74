package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"code_enforce_app_go/db"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// caseView is a case decorated with its computed time status. The stored
// document never carries the time status; it is derived per request.
type caseView struct {
	models.Case
	TimeStatus string `json:"timeStatus"`
}

func toCaseView(c models.Case, today time.Time) caseView {
	return caseView{Case: c, TimeStatus: services.TimeStatus(&c, today)}
}

// ListCasesHandler returns cases newest-first, optionally filtered by status
// and time status, or sorted in patrol-route order with ?sort=street.
func ListCasesHandler(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	timeStatus := strings.TrimSpace(c.QueryParam("time_status"))
	sortBy := c.QueryParam("sort")

	today := time.Now()
	cases := Registry.Cases()

	views := make([]caseView, 0, len(cases))
	for _, cs := range cases {
		view := toCaseView(cs, today)
		if status != "" && view.Status != status {
			continue
		}
		if timeStatus != "" && view.TimeStatus != timeStatus {
			continue
		}
		views = append(views, view)
	}

	if sortBy == "street" {
		sort.SliceStable(views, func(i, j int) bool {
			return services.CompareStreets(views[i].Address.Street, views[j].Address.Street) < 0
		})
	}

	return c.JSON(http.StatusOK, views)
}

// GetCaseHandler returns a single case by record id.
func GetCaseHandler(c echo.Context) error {
	cs, err := Registry.CaseByID(c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCaseView(cs, time.Now()))
}

// CreateCaseHandler opens a new case from a draft.
func CreateCaseHandler(c echo.Context) error {
	var draft services.CaseDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	created, err := Registry.CreateCase(draft)
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "create", "case", created.ID, created.CaseID, "Case opened")

	return c.JSON(http.StatusCreated, toCaseView(created, time.Now()))
}

// UpdateCaseHandler saves edits to an existing case. Creation date and
// notice history are preserved server-side regardless of the payload.
func UpdateCaseHandler(c echo.Context) error {
	var payload models.Case
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	payload.ID = c.Param("id")

	updated, err := Registry.UpdateCase(payload)
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "update", "case", updated.ID, updated.CaseID, "Case updated")

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetCaseStatusHandler moves a case to an explicit workflow status.
func SetCaseStatusHandler(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	updated, err := Registry.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "status_change", "case", updated.ID, updated.CaseID, "Status set to "+updated.Status)

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

// CloseCaseHandler closes a case, stamping the closure date.
func CloseCaseHandler(c echo.Context) error {
	updated, err := Registry.CloseCase(c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "close", "case", updated.ID, updated.CaseID, "Case closed")

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

// ReopenCaseHandler reopens a closed case and clears its closure date.
func ReopenCaseHandler(c echo.Context) error {
	updated, err := Registry.ReopenCase(c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "reopen", "case", updated.ID, updated.CaseID, "Case reopened")

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

// DeleteCaseHandler hard-deletes a case. The request must carry ?confirm=true;
// the property directory entry for the address is left in place.
func DeleteCaseHandler(c echo.Context) error {
	confirmed := c.QueryParam("confirm") == "true"

	id := c.Param("id")
	cs, err := Registry.CaseByID(id)
	if err != nil {
		return writeServiceError(c, err)
	}

	if err := Registry.DeleteCase(id, confirmed); err != nil {
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "delete", "case", id, cs.CaseID, "Case deleted")

	return c.JSON(http.StatusOK, map[string]string{"message": "case deleted"})
}

type noteRequest struct {
	Text string `json:"text"`
}

// AddCaseNoteHandler prepends a dated note to the case's evidence log.
func AddCaseNoteHandler(c echo.Context) error {
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	updated, err := Registry.AddNote(c.Param("id"), req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

// UploadCasePhotoHandler validates and stores an evidence photo, then
// attaches it to the case.
func UploadCasePhotoHandler(c echo.Context) error {
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

	ctx := c.Request().Context()
	photo, err := services.StoreEvidencePhoto(ctx, fileHeader, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	photo.Caption = strings.TrimSpace(c.FormValue("caption"))

	updated, err := Registry.AddPhoto(id, photo)
	if err != nil {
		services.Storage.Delete(ctx, photo.StoreKey)
		return writeServiceError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "upload", "case", updated.ID, updated.CaseID, "Evidence photo attached")

	return c.JSON(http.StatusOK, toCaseView(updated, time.Now()))
}

// ViolationCatalogHandler returns the fixed catalog of citable violations.
func ViolationCatalogHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.ViolationCatalog)
}
