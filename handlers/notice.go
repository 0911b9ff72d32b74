package handlers

import (
	"net/http"
	"time"

	"code_enforce_app_go/config"
	"code_enforce_app_go/db"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type generateNoticeRequest struct {
	TemplateID string `json:"template_id"`
	// Optional workflow status to move the case to after generation, e.g.
	// FAILURE-NOTICED when issuing a failure-to-comply notice.
	SetStatus string `json:"set_status"`
	// When true, a copy is emailed to the department inbox.
	Email bool `json:"email"`
}

func loadSettings() models.OrgSettings {
	var settings models.OrgSettings
	if err := db.DB.First(&settings, 1).Error; err != nil {
		settings = models.OrgSettings{ID: 1}
	}
	return settings
}

func loadTemplate(c echo.Context, templateID string) (*models.NoticeTemplate, error) {
	var tmpl models.NoticeTemplate
	if err := db.DB.First(&tmpl, "id = ?", templateID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.JSON(http.StatusNotFound, errorResponse{Error: "template not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load template"})
	}
	return &tmpl, nil
}

// GenerateNoticeHandler renders a template against a case, produces the PDF,
// stores it, and records it on the case. Notice-type documents append to the
// notice history; statement, lien, and certificate documents land on the
// abatement record instead.
func GenerateNoticeHandler(c echo.Context) error {
	var req generateNoticeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.TemplateID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "template_id is required"})
	}

	tmpl, err := loadTemplate(c, req.TemplateID)
	if tmpl == nil {
		return err
	}

	settings := loadSettings()

	result, err := services.GenerateNotice(c.Request().Context(), Registry, tmpl, c.Param("id"), settings)
	if err != nil {
		return writeServiceError(c, err)
	}

	// The document exists by now, so a failed escalation must not fail the
	// request; it is reported alongside the generated notice instead.
	statusError := ""
	if req.SetStatus != "" && result.Case.Status != req.SetStatus {
		updated, err := Registry.SetStatus(result.Case.ID, req.SetStatus)
		if err != nil {
			statusError = err.Error()
		} else {
			result.Case = updated
		}
	}

	if req.Email {
		if to, err := services.NoticeEmailAddress(settings); err == nil {
			cfg, _ := c.Get("config").(*config.Config)
			if cfg != nil {
				email := services.BuildNoticeEmail(to, &result.Case, tmpl.Name, result.PDF, settings)
				services.SendEmailAsync(cfg, email)
				result.Emailed = true
			}
		}
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), "generate", "notice", result.Case.ID, tmpl.Name, "Document generated from template")

	resp := map[string]any{
		"case":    toCaseView(result.Case, time.Now()),
		"docUrl":  result.DocURL,
		"emailed": result.Emailed,
	}
	if statusError != "" {
		resp["statusError"] = statusError
	}
	return c.JSON(http.StatusOK, resp)
}

// PreviewNoticeHandler renders a template against a case without producing
// a PDF or touching stored state.
func PreviewNoticeHandler(c echo.Context) error {
	templateID := c.QueryParam("template_id")
	if templateID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "template_id is required"})
	}

	tmpl, err := loadTemplate(c, templateID)
	if tmpl == nil {
		return err
	}

	html, err := services.PreviewNotice(Registry, tmpl, c.Param("id"), loadSettings())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.HTML(http.StatusOK, html)
}
