package services

import (
	"context"
	"testing"

	"code_enforce_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNoticeTest(t *testing.T) (*CaseRegistry, models.Case) {
	t.Helper()

	registry := setupRegistry(t)
	created, err := registry.CreateCase(validDraft())
	require.NoError(t, err)

	Storage = NewLocalStorage(t.TempDir())

	// Stub out headless Chrome
	orig := GenerateNoticePDF
	GenerateNoticePDF = func(html string, opts PDFOptions) ([]byte, error) {
		return []byte("%PDF-1.4 stub"), nil
	}
	t.Cleanup(func() { GenerateNoticePDF = orig })

	return registry, created
}

func noticeTemplate(docType string) *models.NoticeTemplate {
	return &models.NoticeTemplate{
		ID:      models.NewRecordID(),
		Name:    "Notice of Violation",
		DocType: docType,
		Content: "<p>Case {{CaseNumber}} at {{PropertyAddress}} is due {{Deadline}}.</p>",
	}
}

func TestGenerateNoticeAppendsToHistory(t *testing.T) {
	registry, created := setupNoticeTest(t)

	result, err := GenerateNotice(context.Background(), registry, noticeTemplate(models.DocTypeNotice), created.ID, models.OrgSettings{})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, "CE-2024-001")
	assert.Contains(t, result.HTML, "123 Main St")
	assert.NotEmpty(t, result.PDF)
	assert.NotEmpty(t, result.DocURL)
	assert.Contains(t, result.DocKey, "cases/"+created.ID+"/notices")

	require.Len(t, result.Case.Notices, 1)
	assert.Equal(t, "Notice of Violation", result.Case.Notices[0].Title)
	assert.Equal(t, result.DocURL, result.Case.Notices[0].DocURL)
	assert.Equal(t, "March 1, 2024", result.Case.Notices[0].Date)

	// Status is untouched; escalation is the caller's call
	assert.Equal(t, models.CaseStatusActive, result.Case.Status)
}

func TestGenerateNoticeRecordsAbatementDocuments(t *testing.T) {
	registry, created := setupNoticeTest(t)

	tmpl := noticeTemplate(models.DocTypeStatement)
	tmpl.Name = "Statement of Cost"

	result, err := GenerateNotice(context.Background(), registry, tmpl, created.ID, models.OrgSettings{})
	require.NoError(t, err)

	require.NotNil(t, result.Case.Abatement)
	assert.Equal(t, result.DocURL, result.Case.Abatement.StatementOfCostDocURL)
	assert.Empty(t, result.Case.Notices, "abatement documents do not enter the notice history")
}

func TestGenerateNoticeUnknownCase(t *testing.T) {
	registry, _ := setupNoticeTest(t)

	_, err := GenerateNotice(context.Background(), registry, noticeTemplate(models.DocTypeNotice), "missing", models.OrgSettings{})
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestGenerateNoticePDFFailure(t *testing.T) {
	registry, created := setupNoticeTest(t)

	GenerateNoticePDF = func(html string, opts PDFOptions) ([]byte, error) {
		return nil, assert.AnError
	}

	_, err := GenerateNotice(context.Background(), registry, noticeTemplate(models.DocTypeNotice), created.ID, models.OrgSettings{})
	var serr *ExternalServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "pdf generation", serr.Service)

	// A failed run leaves no trace on the case
	got, err := registry.CaseByID(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notices)
}

func TestPreviewNotice(t *testing.T) {
	registry, created := setupNoticeTest(t)

	html, err := PreviewNotice(registry, noticeTemplate(models.DocTypeNotice), created.ID, models.OrgSettings{})
	require.NoError(t, err)
	assert.Contains(t, html, "CE-2024-001")

	got, err := registry.CaseByID(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notices, "preview must not touch the case")
}

func TestNoticeEmailAddress(t *testing.T) {
	_, err := NoticeEmailAddress(models.OrgSettings{})
	assert.Error(t, err)

	addr, err := NoticeEmailAddress(models.OrgSettings{DepartmentInbox: "inbox@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "inbox@example.com", addr)
}
