package services

import (
	"bytes"
	"context"
	"fmt"

	"code_enforce_app_go/models"
)

// GenerateNoticePDF is swappable so tests can run without headless Chrome.
var GenerateNoticePDF = GeneratePDF

// NoticeResult carries everything produced by a notice generation run.
type NoticeResult struct {
	Case    models.Case
	PDF     []byte
	DocURL  string
	DocKey  string
	HTML    string
	Emailed bool
}

// GenerateNotice renders a template against a case, prints it to PDF, stores
// the document, and records it on the case. Notices and envelopes append to
// the case's notice history; statement, lien, and certificate documents are
// recorded on the abatement record instead.
//
// Changing the case status after a failure notice is the caller's decision,
// not a side effect of generation.
func GenerateNotice(ctx context.Context, registry *CaseRegistry, tmpl *models.NoticeTemplate, caseRecordID string, settings models.OrgSettings) (*NoticeResult, error) {
	c, err := registry.CaseByID(caseRecordID)
	if err != nil {
		return nil, err
	}

	html := RenderNotice(tmpl, &c, settings)

	pdf, err := GenerateNoticePDF(html, NoticePDFOptions(tmpl.DocType))
	if err != nil {
		return nil, &ExternalServiceError{Service: "pdf generation", Err: err}
	}

	key := GenerateNoticeKey(c.ID, sanitizeFilename(tmpl.Name)+".pdf")
	stored, err := Storage.UploadReader(ctx, bytes.NewReader(pdf), key, "application/pdf", int64(len(pdf)))
	if err != nil {
		return nil, &ExternalServiceError{Service: "document storage", Err: err}
	}

	docURL := stored.URL
	if docURL == "" {
		// Bucket without a public URL: hand back a signed link instead
		docURL, err = Storage.GetSignedURL(ctx, key, DefaultSessionDuration)
		if err != nil {
			return nil, &ExternalServiceError{Service: "document storage", Err: err}
		}
	}

	switch tmpl.DocType {
	case models.DocTypeStatement, models.DocTypeLien, models.DocTypeCertificate:
		c, err = registry.RecordAbatementDocument(c.ID, tmpl.DocType, docURL)
	default:
		c, err = registry.AppendNotice(c.ID, models.NoticeRecord{
			Title:  tmpl.Name,
			DocURL: docURL,
		})
	}
	if err != nil {
		return nil, err
	}

	return &NoticeResult{
		Case:   c,
		PDF:    pdf,
		DocURL: docURL,
		DocKey: key,
		HTML:   html,
	}, nil
}

// PreviewNotice renders a template against a case without generating a PDF
// or touching the case record.
func PreviewNotice(registry *CaseRegistry, tmpl *models.NoticeTemplate, caseRecordID string, settings models.OrgSettings) (string, error) {
	c, err := registry.CaseByID(caseRecordID)
	if err != nil {
		return "", err
	}
	return RenderNotice(tmpl, &c, settings), nil
}

// NoticeEmailAddress picks the inbox a generated notice is mailed to.
func NoticeEmailAddress(settings models.OrgSettings) (string, error) {
	if settings.DepartmentInbox == "" {
		return "", fmt.Errorf("no department inbox configured")
	}
	return settings.DepartmentInbox, nil
}
