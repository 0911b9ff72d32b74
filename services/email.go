package services

import (
	"fmt"
	"log"
	"strings"

	"code_enforce_app_go/config"
	"code_enforce_app_go/models"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []EmailAttachment
}

// EmailAttachment is a file attached to an outgoing email
type EmailAttachment struct {
	Filename string
	Content  []byte
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("✅ Email logged successfully (development mode - not actually sent)")
		return nil // Return early in development mode
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	// Create Resend client
	client := resend.NewClient(cfg.ResendAPIKey)

	// Build the from address
	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	// Create email params
	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Set body (prefer HTML if available)
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	// Validate we have at least one body
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	for _, att := range email.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: att.Filename,
			Content:  att.Content,
		})
	}

	// Send email via Resend
	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("Attachments: %d", len(email.Attachments))
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email asynchronously using a goroutine
// This is the recommended method for sending emails in handlers to avoid blocking HTTP responses
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Create a copy of the email to avoid race conditions
	emailCopy := &Email{
		To:          append([]string{}, email.To...),
		Subject:     email.Subject,
		HTMLBody:    email.HTMLBody,
		TextBody:    email.TextBody,
		Attachments: append([]EmailAttachment{}, email.Attachments...),
	}

	// Send in goroutine
	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// BuildNoticeEmail creates the email that carries a generated notice PDF to
// the department inbox for printing and mailing.
func BuildNoticeEmail(toEmail string, c *models.Case, noticeTitle string, pdf []byte, settings models.OrgSettings) *Email {
	settings = settings.WithDefaults()

	subject := fmt.Sprintf("%s - Case %s, %s", noticeTitle, c.CaseID, c.Address.Street)
	html := fmt.Sprintf(
		`<p>A %s has been generated for case <strong>%s</strong> at <strong>%s</strong>.</p>
<p>Violation: %s<br />Compliance deadline: %s</p>
<p>The document is attached and ready to print.</p>
<p>%s<br />%s</p>`,
		noticeTitle, c.CaseID, c.Address.Street,
		c.Violation.Type, c.ComplianceDeadline,
		settings.OfficerName, settings.DepartmentName,
	)
	text := fmt.Sprintf(
		"A %s has been generated for case %s at %s.\nViolation: %s\nCompliance deadline: %s\nThe document is attached and ready to print.\n\n%s\n%s",
		noticeTitle, c.CaseID, c.Address.Street,
		c.Violation.Type, c.ComplianceDeadline,
		settings.OfficerName, settings.DepartmentName,
	)

	filename := fmt.Sprintf("%s_%s.pdf", sanitizeFilename(noticeTitle), c.CaseID)

	return &Email{
		To:       []string{toEmail},
		Subject:  subject,
		HTMLBody: html,
		TextBody: text,
		Attachments: []EmailAttachment{
			{Filename: filename, Content: pdf},
		},
	}
}

// BuildOverdueDigestEmail creates a summary email of cases past their
// compliance deadline, in patrol-route order.
func BuildOverdueDigestEmail(toEmail string, rows []StreetReportRow, settings models.OrgSettings) *Email {
	settings = settings.WithDefaults()

	var htmlRows, textRows strings.Builder
	for _, row := range rows {
		htmlRows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			row.CaseID, row.StreetAddress, row.ViolationType, row.ComplianceDeadline,
		))
		textRows.WriteString(fmt.Sprintf(
			"- %s  %s  (%s, due %s)\n",
			row.CaseID, row.StreetAddress, row.ViolationType, row.ComplianceDeadline,
		))
	}

	html := fmt.Sprintf(
		`<p>%d case(s) are past their compliance deadline:</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Case #</th><th>Address</th><th>Violation</th><th>Deadline</th></tr>
%s
</table>
<p>%s</p>`,
		len(rows), htmlRows.String(), settings.DepartmentName,
	)
	text := fmt.Sprintf(
		"%d case(s) are past their compliance deadline:\n%s\n%s",
		len(rows), textRows.String(), settings.DepartmentName,
	)

	return &Email{
		To:       []string{toEmail},
		Subject:  fmt.Sprintf("Overdue cases: %d past deadline", len(rows)),
		HTMLBody: html,
		TextBody: text,
	}
}

// sanitizeFilename makes a title safe for use in an attachment filename
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}
