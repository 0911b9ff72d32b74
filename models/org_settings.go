package models

import (
	"time"
)

// Renderer fallbacks used when no settings row exists or a field is blank.
const (
	DefaultCityName       = "City of Commerce"
	DefaultDepartmentName = "Code Enforcement Division"
	DefaultOfficerName    = "Code Enforcement Officer"
	DefaultContactPhone   = "(918) 555-0100"
	DefaultContactEmail   = "codeenforcement@cityofcommerce.gov"
)

// OrgSettings holds the organization-wide values exposed to the template
// renderer. A single row (ID 1) is kept; reads fall back field by field to
// the defaults above.
type OrgSettings struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	CityName       string `json:"city_name"`
	DepartmentName string `json:"department_name"`
	OfficerName    string `json:"officer_name"`
	ContactPhone   string `json:"contact_phone"`
	ContactEmail   string `json:"contact_email"`

	// Cost defaults for abatement billing
	HourlyRate float64 `gorm:"not null;default:25" json:"hourly_rate"`
	AdminFee   float64 `gorm:"not null;default:50" json:"admin_fee"`

	// Inbox that receives emailed copies of generated notices
	DepartmentInbox string `json:"department_inbox"`
}

// TableName specifies the table name for OrgSettings model
func (OrgSettings) TableName() string {
	return "org_settings"
}

// WithDefaults returns a copy with every blank field replaced by its
// renderer fallback.
func (s OrgSettings) WithDefaults() OrgSettings {
	if s.CityName == "" {
		s.CityName = DefaultCityName
	}
	if s.DepartmentName == "" {
		s.DepartmentName = DefaultDepartmentName
	}
	if s.OfficerName == "" {
		s.OfficerName = DefaultOfficerName
	}
	if s.ContactPhone == "" {
		s.ContactPhone = DefaultContactPhone
	}
	if s.ContactEmail == "" {
		s.ContactEmail = DefaultContactEmail
	}
	if s.HourlyRate == 0 {
		s.HourlyRate = 25
	}
	if s.AdminFee == 0 {
		s.AdminFee = 50
	}
	return s
}
