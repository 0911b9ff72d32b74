package handlers

import (
	"net/http"
	"strings"

	"code_enforce_app_go/db"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// templatePolicy sanitizes template HTML at save time. UGC policy keeps
// formatting tags but strips scripts and event handlers; {{Token}}
// placeholders survive untouched because they are plain text.
var templatePolicy = bluemonday.UGCPolicy()

type templateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	DocType     string  `json:"doc_type"`
	Content     string  `json:"content"`
	IsActive    *bool   `json:"is_active"`
}

func validDocType(docType string) bool {
	switch docType {
	case models.DocTypeNotice, models.DocTypeEnvelope, models.DocTypeStatement,
		models.DocTypeLien, models.DocTypeCertificate:
		return true
	}
	return false
}

// ListTemplatesHandler returns all notice templates, active first.
func ListTemplatesHandler(c echo.Context) error {
	var templates []models.NoticeTemplate
	if err := db.DB.Order("is_active DESC, name ASC").Find(&templates).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load templates"})
	}
	return c.JSON(http.StatusOK, templates)
}

// GetTemplateHandler returns a single template by id.
func GetTemplateHandler(c echo.Context) error {
	var tmpl models.NoticeTemplate
	if err := db.DB.First(&tmpl, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load template"})
	}
	return c.JSON(http.StatusOK, tmpl)
}

// CreateTemplateHandler creates a notice template. Content is sanitized
// before storage.
func CreateTemplateHandler(c echo.Context) error {
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name and content are required"})
	}
	if req.DocType == "" {
		req.DocType = models.DocTypeNotice
	}
	if !validDocType(req.DocType) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid document type"})
	}

	tmpl := models.NoticeTemplate{
		Name:        req.Name,
		Description: req.Description,
		DocType:     req.DocType,
		Content:     templatePolicy.Sanitize(req.Content),
		IsActive:    true,
	}
	if user := middleware.GetCurrentUser(c); user != nil {
		tmpl.CreatedByID = &user.ID
	}

	if err := db.DB.Create(&tmpl).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create template"})
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "create", "notice_template", tmpl.ID, tmpl.Name, "Template created")

	return c.JSON(http.StatusCreated, tmpl)
}

// UpdateTemplateHandler edits a template and bumps its version.
func UpdateTemplateHandler(c echo.Context) error {
	var tmpl models.NoticeTemplate
	if err := db.DB.First(&tmpl, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load template"})
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		tmpl.Name = name
	}
	if req.Description != nil {
		tmpl.Description = req.Description
	}
	if req.DocType != "" {
		if !validDocType(req.DocType) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid document type"})
		}
		tmpl.DocType = req.DocType
	}
	if strings.TrimSpace(req.Content) != "" {
		tmpl.Content = templatePolicy.Sanitize(req.Content)
		tmpl.Version++
	}
	if req.IsActive != nil {
		tmpl.IsActive = *req.IsActive
	}

	if err := db.DB.Save(&tmpl).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to update template"})
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "update", "notice_template", tmpl.ID, tmpl.Name, "Template updated")

	return c.JSON(http.StatusOK, tmpl)
}

// DeleteTemplateHandler soft-deletes a template. Notices already generated
// from it keep their stored documents.
func DeleteTemplateHandler(c echo.Context) error {
	var tmpl models.NoticeTemplate
	if err := db.DB.First(&tmpl, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load template"})
	}

	if err := db.DB.Delete(&tmpl).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to delete template"})
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "delete", "notice_template", tmpl.ID, tmpl.Name, "Template deleted")

	return c.JSON(http.StatusOK, map[string]string{"message": "template deleted"})
}

// TemplateVariablesHandler returns the placeholder dictionary shown in the
// template editor.
func TemplateVariablesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.VariableDictionary())
}
