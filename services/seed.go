package services

import (
	"log"
	"os"

	"code_enforce_app_go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedAdminFromEnv creates an admin user from environment variables.
// Only runs if ADMIN_USERNAME and ADMIN_PASSWORD are set and no admin user
// exists yet.
func SeedAdminFromEnv(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	// Skip if env vars not set
	if username == "" || password == "" {
		return nil
	}

	if name == "" {
		name = "Administrator"
	}

	// Check if an admin already exists
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("[SEED] Admin user already exists, skipping seed")
		return nil
	}

	// Check if a user with this username already exists
	var existingUser models.User
	if err := db.Where("username = ?", username).First(&existingUser).Error; err == nil {
		log.Printf("[SEED] User %s already exists, skipping admin seed", username)
		return nil
	}

	// Hash password
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Username: username,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("[SEED] Created admin user: %s", username)
	return nil
}

// SeedOrgSettings ensures the single settings row exists with the standard
// cost defaults.
func SeedOrgSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.OrgSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := models.OrgSettings{ID: 1}.WithDefaults()
	if err := db.Create(&settings).Error; err != nil {
		return err
	}

	log.Println("[SEED] Created default organization settings")
	return nil
}

// defaultTemplates are the document templates the office starts with. Each
// carries {{Placeholder}} tokens resolved at generation time.
var defaultTemplates = []models.NoticeTemplate{
	{
		Name:    "Notice of Violation",
		DocType: models.DocTypeNotice,
		Content: `<p style="text-align: right;">{{Date}}</p>
<p>{{OwnerName}}<br />{{MailingAddress}}</p>
<p><strong>RE: Notice of Violation — Case {{CaseNumber}}<br />{{PropertyAddress}}</strong></p>
<p>Dear Property Owner,</p>
<p>An inspection of the property referenced above found the following violation of the municipal code:</p>
{{Violations}}
<p>You are hereby ordered to correct the condition described above no later than <strong>{{Deadline}}</strong>. Failure to comply may result in abatement by the City at your expense and the filing of a lien against the property.</p>
<p>If you have questions, contact this office at {{ContactPhone}} or {{ContactEmail}}.</p>
<p>Respectfully,</p>
<p>{{OfficerName}}<br />{{DepartmentName}}<br />{{CityName}}</p>`,
	},
	{
		Name:    "Failure to Comply",
		DocType: models.DocTypeNotice,
		Content: `<p style="text-align: right;">{{Date}}</p>
<p>{{OwnerName}}<br />{{MailingAddress}}</p>
<p><strong>RE: Failure to Comply — Case {{CaseNumber}}<br />{{PropertyAddress}}</strong></p>
<p>Dear Property Owner,</p>
<p>A re-inspection of the property referenced above found that the violation cited in the previous notice has not been corrected:</p>
{{Violations}}
<p>The compliance deadline of <strong>{{Deadline}}</strong> has passed. The City will now proceed with abatement of the condition. All costs of the abatement, plus an administrative fee, will be billed to you and may be filed as a lien against the property.</p>
<p>{{OfficerName}}<br />{{DepartmentName}}<br />{{CityName}}</p>`,
	},
	{
		Name:    "Mailing Envelope",
		DocType: models.DocTypeEnvelope,
		Content: `<div style="font-size: 10pt;">{{DepartmentName}}<br />{{CityName}}</div>
<div style="margin-top: 0.9in; margin-left: 3.5in; font-size: 12pt;">{{OwnerName}}<br />{{MailingAddress}}</div>`,
	},
	{
		Name:    "Statement of Cost",
		DocType: models.DocTypeStatement,
		Content: `<p style="text-align: right;">{{Date}}</p>
<h2 style="text-align: center;">STATEMENT OF COST</h2>
<p>Invoice: {{InvoiceNumber}}<br />Case: {{CaseNumber}}<br />Property: {{PropertyAddress}}</p>
<p>{{OwnerName}}<br />{{MailingAddress}}</p>
<p>On {{WorkDate}}, the {{DepartmentName}} abated the following violation at the property referenced above:</p>
<p>{{ViolationDescription}}</p>
{{CostBreakdown}}
<p><strong>Total amount due: {{TotalCost}}</strong></p>
<p>Payment is due within thirty (30) days. Unpaid amounts may be filed as a lien against the property.</p>
<p>{{OfficerName}}<br />{{DepartmentName}}</p>`,
	},
	{
		Name:    "Notice of Lien",
		DocType: models.DocTypeLien,
		Content: `<h2 style="text-align: center;">NOTICE OF LIEN</h2>
<p style="text-align: right;">{{Date}}</p>
<p>Notice is hereby given that the {{CityName}} claims a lien in the amount of <strong>{{TotalCost}}</strong> against the following described property for the cost of abating a municipal code violation:</p>
<p>Property address: {{PropertyAddress}}<br />Legal description: {{LegalDescription}}<br />Parcel number: {{ParcelNumber}}<br />Tax ID: {{TaxID}}</p>
<p>Record owner: {{OwnerName}}</p>
<p>The abatement was performed on {{WorkDate}} under case {{CaseNumber}} after the owner failed to correct the violation by the ordered deadline.</p>
<p>{{OfficerName}}<br />{{DepartmentName}}<br />{{CityName}}</p>`,
	},
	{
		Name:    "Certificate of Lien Release",
		DocType: models.DocTypeCertificate,
		Content: `<h2 style="text-align: center;">CERTIFICATE OF LIEN RELEASE</h2>
<p style="text-align: right;">{{Date}}</p>
<p>The {{CityName}} certifies that the lien filed under case {{CaseNumber}} against the following described property has been satisfied in full and is hereby released:</p>
<p>Property address: {{PropertyAddress}}<br />Legal description: {{LegalDescription}}<br />Parcel number: {{ParcelNumber}}</p>
<p>Record owner: {{OwnerName}}</p>
<p>{{OfficerName}}<br />{{DepartmentName}}<br />{{CityName}}</p>`,
	},
}

// SeedDefaultTemplates creates the standard document templates on first run.
// Skipped entirely once any template exists so officer edits are never
// overwritten.
func SeedDefaultTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.NoticeTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, tmpl := range defaultTemplates {
		t := tmpl
		t.ID = uuid.New().String()
		t.Version = 1
		t.IsActive = true
		if err := db.Create(&t).Error; err != nil {
			return err
		}
	}

	log.Printf("[SEED] Created %d default document templates", len(defaultTemplates))
	return nil
}
