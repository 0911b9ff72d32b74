package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"code_enforce_app_go/models"
)

// placeholderRegex matches {{Placeholder}} tokens. Tokens are case-sensitive
// exact strings; anything not in the value map passes through verbatim.
var placeholderRegex = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// RenderNotice substitutes a case's values into a template and wraps the
// result in the layout shell for the template's document type. Deterministic
// for identical inputs apart from the Date placeholder, which is the render
// date. Rendering only returns the document string; printing or storing it is
// the caller's concern.
func RenderNotice(tmpl *models.NoticeTemplate, c *models.Case, settings models.OrgSettings) string {
	values := PlaceholderValues(c, settings, time.Now())
	body := SubstitutePlaceholders(tmpl.Content, values)
	return WrapDocumentHTML(body, tmpl.DocType)
}

// SubstitutePlaceholders replaces every occurrence of every known token in
// the content. Unknown {{...}} tokens are left untouched - silent
// pass-through, not an error, so a template typo never blocks a notice from
// printing.
func SubstitutePlaceholders(content string, values map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(content, func(match string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(match, "{{"), "}}")
		value, known := values[key]
		if !known {
			return match
		}
		return value
	})
}

// PlaceholderValues computes the fixed token-to-value map for one case.
// Every recognized token has an entry; fields with no data substitute as
// empty strings.
func PlaceholderValues(c *models.Case, settings models.OrgSettings, now time.Time) map[string]string {
	settings = settings.WithDefaults()

	values := map[string]string{
		"Date":       FormatLongDate(now),
		"CaseNumber": c.CaseID,
		"Status":     c.Status,

		"OwnerName":      c.OwnerInfo.Name,
		"MailingAddress": mailingAddressHTML(c.OwnerInfo.MailingAddress),
		"OwnerPhone":     c.OwnerInfo.Phone,

		"PropertyAddress": propertyAddressLine(c.Address),

		"ViolationType":        c.Violation.Type,
		"Ordinance":            c.Violation.Ordinance,
		"ViolationDescription": c.Violation.Description,
		"CorrectiveAction":     c.Violation.CorrectiveAction,
		"Violations":           violationBlockHTML(c),
		"Deadline":             c.ComplianceDeadline,

		"LegalDescription": "",
		"TaxID":            "",
		"ParcelNumber":     "",
		"TotalCost":        "",
		"InvoiceNumber":    "",
		"WorkDate":         "",
		"CostBreakdown":    "",

		"CityName":       settings.CityName,
		"DepartmentName": settings.DepartmentName,
		"OfficerName":    settings.OfficerName,
		"ContactPhone":   settings.ContactPhone,
		"ContactEmail":   settings.ContactEmail,
	}

	if ab := c.Abatement; ab != nil {
		values["WorkDate"] = ab.WorkDate
		if info := ab.PropertyInfo; info != nil {
			values["LegalDescription"] = info.LegalDescription
			values["TaxID"] = info.TaxID
			values["ParcelNumber"] = info.ParcelNumber
		}
		if cost := ab.CostDetails; cost != nil {
			values["TotalCost"] = fmt.Sprintf("$%.2f", cost.ComputeTotal())
			values["InvoiceNumber"] = "INV-" + c.CaseID
			values["CostBreakdown"] = costBreakdownHTML(cost)
		}
	}

	return values
}

// mailingAddressHTML converts the stored multi-line mailing address into
// line breaks for the rendered document.
func mailingAddressHTML(addr string) string {
	addr = strings.ReplaceAll(addr, "\r\n", "\n")
	return strings.ReplaceAll(addr, "\n", "<br />")
}

func propertyAddressLine(a models.Address) string {
	line := a.Street
	if a.City != "" {
		line += ", " + a.City
	}
	if a.Province != "" {
		line += ", " + a.Province
	}
	if a.PostalCode != "" {
		line += " " + a.PostalCode
	}
	return line
}

// violationBlockHTML renders the combined violation block: all violation
// fields plus the deadline and the catalog's notice clause in one piece.
func violationBlockHTML(c *models.Case) string {
	var b strings.Builder
	b.WriteString("<div class=\"violation-block\">")
	b.WriteString(fmt.Sprintf("<p><strong>Violation Type:</strong> %s</p>", c.Violation.Type))
	b.WriteString(fmt.Sprintf("<p><strong>Ordinance:</strong> %s</p>", c.Violation.Ordinance))
	b.WriteString(fmt.Sprintf("<p><strong>Description:</strong> %s</p>", c.Violation.Description))
	b.WriteString(fmt.Sprintf("<p><strong>Required Correction:</strong> %s</p>", c.Violation.CorrectiveAction))
	b.WriteString(fmt.Sprintf("<p><strong>Compliance Deadline:</strong> %s</p>", c.ComplianceDeadline))
	if c.Violation.NoticeClause != "" {
		b.WriteString(fmt.Sprintf("<p>%s</p>", c.Violation.NoticeClause))
	}
	b.WriteString("</div>")
	return b.String()
}

// costBreakdownHTML renders the abatement cost computation as a table:
// employees x hours x hourly rate plus the fixed admin fee.
func costBreakdownHTML(cost *models.AbatementCost) string {
	labor := float64(cost.Employees) * cost.Hours * cost.Rate
	var b strings.Builder
	b.WriteString("<table class=\"cost-breakdown\">")
	b.WriteString("<tr><th>Item</th><th>Amount</th></tr>")
	b.WriteString(fmt.Sprintf("<tr><td>Labor (%d employees &times; %.2f hours &times; $%.2f/hr)</td><td>$%.2f</td></tr>",
		cost.Employees, cost.Hours, cost.Rate, labor))
	b.WriteString(fmt.Sprintf("<tr><td>Administrative Fee</td><td>$%.2f</td></tr>", cost.AdminFee))
	b.WriteString(fmt.Sprintf("<tr><td><strong>Total</strong></td><td><strong>$%.2f</strong></td></tr>", labor+cost.AdminFee))
	b.WriteString("</table>")
	return b.String()
}

// WrapDocumentHTML wraps substituted content in the layout shell for the
// document type. Notices and the abatement documents use a standard letter
// page; envelopes use the small #10 envelope layout.
func WrapDocumentHTML(content string, docType string) string {
	if docType == models.DocTypeEnvelope {
		return envelopeShell(content)
	}
	return letterShell(content)
}

func letterShell(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            size: 8.5in 11in;
            margin: 1in;
        }
        body {
            font-family: "Times New Roman", Times, serif;
            font-size: 12pt;
            line-height: 1.5;
            color: #000;
        }
        h1 {
            font-size: 16pt;
            font-weight: bold;
            text-align: center;
            border-bottom: 2px solid #333;
            padding-bottom: 6pt;
            margin-bottom: 24pt;
        }
        p {
            margin-bottom: 12pt;
        }
        .violation-block {
            background-color: #f9f9f9;
            border-left: 4px solid #cc0000;
            padding: 12pt;
            margin: 18pt 0;
        }
        table.cost-breakdown {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 12pt;
        }
        table.cost-breakdown th, table.cost-breakdown td {
            border: 1px solid #000;
            padding: 6pt;
            text-align: left;
        }
        table.cost-breakdown th {
            background-color: #f0f0f0;
        }
        .signature-block {
            margin-top: 48pt;
        }
    </style>
</head>
<body>
` + content + `
</body>
</html>`
}

func envelopeShell(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            size: 9.5in 4.125in;
            margin: 0.25in;
        }
        body {
            font-family: "Times New Roman", Times, serif;
            font-size: 12pt;
            line-height: 1.4;
            color: #000;
        }
        .recipient {
            position: absolute;
            top: 1.6in;
            left: 4in;
        }
    </style>
</head>
<body>
` + content + `
</body>
</html>`
}
