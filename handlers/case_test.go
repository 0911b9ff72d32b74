package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"code_enforce_app_go/config"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCaseHandler(t *testing.T) {
	setupTestDB(t)
	setupRegistryForHandlers(t)

	t.Run("valid draft creates case", func(t *testing.T) {
		body := `{
			"caseId": "CE-2024-100",
			"address": {"street": "400 Elm St", "city": "Commerce"},
			"ownerInfo": {"name": "Jane Doe", "mailingAddress": "PO Box 9"},
			"ownerInfoStatus": "KNOWN",
			"violation": {"type": "Tall Grass / Weeds"}
		}`
		_, c, rec := setupEcho(http.MethodPost, "/api/cases", strings.NewReader(body))

		err := CreateCaseHandler(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var view caseView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "CE-2024-100", view.CaseID)
		assert.Equal(t, models.CaseStatusActive, view.Status)
		assert.NotEmpty(t, view.ID)
		assert.NotEmpty(t, view.ComplianceDeadline)
		// Catalog snap fills the ordinance
		assert.Contains(t, view.Violation.Ordinance, "8-101")
	})

	t.Run("missing fields return 400 with field list", func(t *testing.T) {
		body := `{"caseId": "", "address": {"street": ""}}`
		_, c, rec := setupEcho(http.MethodPost, "/api/cases", strings.NewReader(body))

		err := CreateCaseHandler(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "caseNumber")
		assert.Contains(t, resp.Fields, "streetAddress")
	})
}

func TestListCasesHandler(t *testing.T) {
	setupTestDB(t)
	registry := setupRegistryForHandlers(t)

	first := seedHandlerCase(t, registry)
	second, err := registry.CreateCase(services.CaseDraft{
		CaseID:          "CE-2024-002",
		Address:         models.Address{Street: "50 Zinnia Ln"},
		OwnerInfoStatus: models.OwnerInfoUnknown,
		Violation:       models.Violation{Type: "Open Storage"},
	})
	require.NoError(t, err)
	_, err = registry.CloseCase(second.ID)
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/cases", nil)
		require.NoError(t, ListCasesHandler(c))

		var views []caseView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		require.Len(t, views, 2)
		assert.Equal(t, "CE-2024-002", views[0].CaseID)
		assert.Equal(t, "CE-2024-001", views[1].CaseID)
	})

	t.Run("filter by status", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/cases?status=CLOSED", nil)
		c.QueryParams().Set("status", "CLOSED")
		require.NoError(t, ListCasesHandler(c))

		var views []caseView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		require.Len(t, views, 1)
		assert.Equal(t, second.ID, views[0].ID)
		assert.Equal(t, services.TimeStatusClosed, views[0].TimeStatus)
	})

	t.Run("street sort orders by patrol route", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/cases?sort=street", nil)
		c.QueryParams().Set("sort", "street")
		require.NoError(t, ListCasesHandler(c))

		var views []caseView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		require.Len(t, views, 2)
		// Main St comes before the off-route Zinnia Ln
		assert.Equal(t, first.ID, views[0].ID)
	})
}

func TestGetCaseHandler(t *testing.T) {
	setupTestDB(t)
	registry := setupRegistryForHandlers(t)
	created := seedHandlerCase(t, registry)

	t.Run("found", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/cases/"+created.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, GetCaseHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "CE-2024-001")
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/cases/nope", nil)
		c.SetParamNames("id")
		c.SetParamValues("nope")

		require.NoError(t, GetCaseHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCaseLifecycleHandlers(t *testing.T) {
	setupTestDB(t)
	registry := setupRegistryForHandlers(t)
	created := seedHandlerCase(t, registry)

	t.Run("close stamps date", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/cases/"+created.ID+"/close", nil)
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, CloseCaseHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var view caseView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, models.CaseStatusClosed, view.Status)
		assert.NotEmpty(t, view.DateClosed)
	})

	t.Run("reopen clears date", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/cases/"+created.ID+"/reopen", nil)
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, ReopenCaseHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var view caseView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, models.CaseStatusActive, view.Status)
		assert.Empty(t, view.DateClosed)
	})

	t.Run("explicit status change", func(t *testing.T) {
		body := `{"status": "PENDING_ABATEMENT"}`
		_, c, rec := setupEcho(http.MethodPut, "/api/cases/"+created.ID+"/status", strings.NewReader(body))
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, SetCaseStatusHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), models.CaseStatusPendingAbatement)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		body := `{"status": "ARCHIVED"}`
		_, c, rec := setupEcho(http.MethodPut, "/api/cases/"+created.ID+"/status", strings.NewReader(body))
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, SetCaseStatusHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteCaseHandler(t *testing.T) {
	setupTestDB(t)
	registry := setupRegistryForHandlers(t)
	created := seedHandlerCase(t, registry)

	t.Run("without confirmation is rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodDelete, "/api/cases/"+created.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, DeleteCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		_, err := registry.CaseByID(created.ID)
		assert.NoError(t, err)
	})

	t.Run("with confirmation deletes, keeps property", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodDelete, "/api/cases/"+created.ID+"?confirm=true", nil)
		c.QueryParams().Set("confirm", "true")
		c.SetParamNames("id")
		c.SetParamValues(created.ID)

		require.NoError(t, DeleteCaseHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		_, err := registry.CaseByID(created.ID)
		assert.ErrorIs(t, err, services.ErrCaseNotFound)

		_, found := registry.LookupProperty("123 Main St")
		assert.True(t, found)
	})
}

func TestAddCaseNoteHandler(t *testing.T) {
	setupTestDB(t)
	registry := setupRegistryForHandlers(t)
	created := seedHandlerCase(t, registry)

	body := `{"text": "Spoke with owner on site."}`
	_, c, rec := setupEcho(http.MethodPost, "/api/cases/"+created.ID+"/notes", strings.NewReader(body))
	c.SetParamNames("id")
	c.SetParamValues(created.ID)

	require.NoError(t, AddCaseNoteHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var view caseView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotEmpty(t, view.Evidence.Notes)
	assert.Equal(t, "Spoke with owner on site.", view.Evidence.Notes[0].Text)
}

// photoUploadRequest builds a multipart request carrying a real PNG so
// content sniffing passes.
func photoUploadRequest(t *testing.T, path string, fields map[string]string) (*http.Request, error) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", "evidence.png")
	require.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	require.NoError(t, err)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, nil
}

func TestUploadCasePhotoHandler(t *testing.T) {
	setupTestDB(t)
	registry := setupRegistryForHandlers(t)
	created := seedHandlerCase(t, registry)

	// Pin the provider so the stored key and bytes can be checked
	baseDir := t.TempDir()
	prevStorage := services.Storage
	services.Storage = services.NewLocalStorage(baseDir)
	t.Cleanup(func() { services.Storage = prevStorage })

	req, err := photoUploadRequest(t, "/api/cases/"+created.ID+"/photos", map[string]string{"caption": "Front yard"})
	require.NoError(t, err)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("config", &config.Config{Environment: "test"})
	c.SetParamNames("id")
	c.SetParamValues(created.ID)

	require.NoError(t, UploadCasePhotoHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var view caseView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Evidence.Photos, 1)
	photo := view.Evidence.Photos[0]
	assert.Equal(t, "Front yard", photo.Caption)
	assert.NotEmpty(t, photo.URL)

	// The photo went through the storage provider under the case's prefix
	assert.True(t, strings.HasPrefix(photo.StoreKey, "cases/"+created.ID+"/photos/"))
	_, err = os.Stat(filepath.Join(baseDir, photo.StoreKey))
	assert.NoError(t, err)
}

func TestUploadAbatementPhotoHandler(t *testing.T) {
	setupTestDB(t)
	registry := setupRegistryForHandlers(t)
	created := seedHandlerCase(t, registry)

	baseDir := t.TempDir()
	prevStorage := services.Storage
	services.Storage = services.NewLocalStorage(baseDir)
	t.Cleanup(func() { services.Storage = prevStorage })

	upload := func(stage string) (*httptest.ResponseRecorder, error) {
		req, err := photoUploadRequest(t, "/api/cases/"+created.ID+"/abatement/photos", map[string]string{"stage": stage})
		require.NoError(t, err)

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("config", &config.Config{Environment: "test"})
		c.SetParamNames("id")
		c.SetParamValues(created.ID)
		return rec, UploadAbatementPhotoHandler(c)
	}

	rec, err := upload("before")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var view caseView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotNil(t, view.Abatement)
	require.NotNil(t, view.Abatement.Photos)
	require.Len(t, view.Abatement.Photos.Before, 1)
	photo := view.Abatement.Photos.Before[0]
	assert.True(t, strings.HasPrefix(photo.StoreKey, "cases/"+created.ID+"/abatement/before/"))
	_, err = os.Stat(filepath.Join(baseDir, photo.StoreKey))
	assert.NoError(t, err)

	rec, err = upload("during")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViolationCatalogHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/api/violations", nil)

	require.NoError(t, ViolationCatalogHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tall Grass / Weeds")
	assert.Contains(t, rec.Body.String(), models.ViolationTypeOther)
}
