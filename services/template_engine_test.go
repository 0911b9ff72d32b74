package services

import (
	"testing"
	"time"

	"code_enforce_app_go/models"

	"github.com/stretchr/testify/assert"
)

func sampleCase() *models.Case {
	return &models.Case{
		ID:                 "id-1",
		CaseID:             "CE-2024-001",
		Status:             models.CaseStatusActive,
		DateCreated:        "June 1, 2024",
		ComplianceDeadline: "June 11, 2024",
		Address:            models.Address{Street: "123 Main St", City: "Commerce", Province: "OK", PostalCode: "74339"},
		OwnerInfo: models.OwnerInfo{
			Name:           "Jane Doe",
			MailingAddress: "PO Box 12\nCommerce, OK 74339",
			Phone:          "(918) 555-0142",
		},
		OwnerInfoStatus: models.OwnerInfoKnown,
		Violation: models.Violation{
			Type:             "Tall Grass / Weeds",
			Ordinance:        "Ordinance 8-101",
			Description:      "Vegetation over twelve inches.",
			CorrectiveAction: "Mow the lot.",
			NoticeClause:     "The City may enter and mow at the owner's expense.",
		},
	}
}

func TestSubstitutePlaceholders(t *testing.T) {
	values := PlaceholderValues(sampleCase(), models.OrgSettings{}, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Case number and owner name",
			content:  "Case {{CaseNumber}} owner {{OwnerName}}",
			expected: "Case CE-2024-001 owner Jane Doe",
		},
		{
			name:     "Unknown token passes through verbatim",
			content:  "Keep {{NotAToken}} as-is",
			expected: "Keep {{NotAToken}} as-is",
		},
		{
			name:     "Date placeholder",
			content:  "Dated {{Date}}",
			expected: "Dated June 10, 2024",
		},
		{
			name:     "Mailing address gains line breaks",
			content:  "{{MailingAddress}}",
			expected: "PO Box 12<br />Commerce, OK 74339",
		},
		{
			name:     "Property address combined line",
			content:  "{{PropertyAddress}}",
			expected: "123 Main St, Commerce, OK 74339",
		},
		{
			name:     "Known token with empty value substitutes empty",
			content:  "Cost: {{TotalCost}}.",
			expected: "Cost: .",
		},
		{
			name:     "Malformed token untouched",
			content:  "{{CaseNumber",
			expected: "{{CaseNumber",
		},
		{
			name:     "Settings fallbacks apply",
			content:  "{{CityName}} / {{DepartmentName}}",
			expected: "City of Commerce / Code Enforcement Division",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SubstitutePlaceholders(tt.content, values))
		})
	}
}

func TestPlaceholderValues_AbatementFields(t *testing.T) {
	c := sampleCase()
	c.Abatement = &models.Abatement{
		WorkDate: "2024-06-01",
		CostDetails: &models.AbatementCost{
			Type: "mowing", Employees: 2, Hours: 1.5, Rate: 25, AdminFee: 50,
		},
		PropertyInfo: &models.AbatementPropertyInfo{
			LegalDescription: "Lot 4, Block 12",
			TaxID:            "0000-12-345",
			ParcelNumber:     "44-0081",
		},
	}

	values := PlaceholderValues(c, models.OrgSettings{}, time.Now())

	// 2 * 1.5 * 25 + 50 = 125
	assert.Equal(t, "$125.00", values["TotalCost"])
	assert.Equal(t, "INV-CE-2024-001", values["InvoiceNumber"])
	assert.Equal(t, "2024-06-01", values["WorkDate"])
	assert.Equal(t, "Lot 4, Block 12", values["LegalDescription"])
	assert.Contains(t, values["CostBreakdown"], "$125.00")
	assert.Contains(t, values["CostBreakdown"], "Administrative Fee")
}

func TestPlaceholderValues_NoAbatement(t *testing.T) {
	values := PlaceholderValues(sampleCase(), models.OrgSettings{}, time.Now())

	// Tokens for absent data still exist and substitute as empty strings.
	for _, token := range []string{"TotalCost", "InvoiceNumber", "WorkDate", "CostBreakdown", "LegalDescription", "TaxID", "ParcelNumber"} {
		value, known := values[token]
		assert.True(t, known, "token %s should be recognized", token)
		assert.Empty(t, value)
	}
}

func TestPlaceholderValues_ViolationBlock(t *testing.T) {
	values := PlaceholderValues(sampleCase(), models.OrgSettings{}, time.Now())

	block := values["Violations"]
	assert.Contains(t, block, "Tall Grass / Weeds")
	assert.Contains(t, block, "Ordinance 8-101")
	assert.Contains(t, block, "Mow the lot.")
	assert.Contains(t, block, "June 11, 2024")
	assert.Contains(t, block, "The City may enter and mow at the owner's expense.")
}

func TestRenderNotice_LayoutShells(t *testing.T) {
	c := sampleCase()
	settings := models.OrgSettings{CityName: "Commerce"}

	notice := &models.NoticeTemplate{
		Name:    "Initial Notice",
		DocType: models.DocTypeNotice,
		Content: "<h1>NOTICE OF VIOLATION</h1><p>Case {{CaseNumber}}</p>",
	}
	rendered := RenderNotice(notice, c, settings)
	assert.Contains(t, rendered, "<!DOCTYPE html>")
	assert.Contains(t, rendered, "size: 8.5in 11in")
	assert.Contains(t, rendered, "Case CE-2024-001")

	envelope := &models.NoticeTemplate{
		Name:    "Envelope",
		DocType: models.DocTypeEnvelope,
		Content: "<div class=\"recipient\">{{OwnerName}}<br />{{MailingAddress}}</div>",
	}
	rendered = RenderNotice(envelope, c, settings)
	assert.Contains(t, rendered, "size: 9.5in 4.125in")
	assert.Contains(t, rendered, "Jane Doe")
}

func TestRenderNotice_Deterministic(t *testing.T) {
	c := sampleCase()
	tmpl := &models.NoticeTemplate{DocType: models.DocTypeNotice, Content: "{{CaseNumber}} {{Violations}}"}

	first := RenderNotice(tmpl, c, models.OrgSettings{})
	second := RenderNotice(tmpl, c, models.OrgSettings{})
	assert.Equal(t, first, second)
}

func TestVariableDictionary_CoversRendererTokens(t *testing.T) {
	values := PlaceholderValues(sampleCase(), models.OrgSettings{}, time.Now())

	for _, category := range VariableDictionary() {
		for _, variable := range category.Variables {
			key := variable.Token[2 : len(variable.Token)-2]
			_, known := values[key]
			assert.True(t, known, "dictionary token %s is not recognized by the renderer", variable.Token)
		}
	}
}
