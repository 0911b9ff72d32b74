package models

import (
	"strings"

	"github.com/google/uuid"
)

// Case status constants
const (
	CaseStatusActive             = "ACTIVE"
	CaseStatusDue                = "DUE"
	CaseStatusClosed             = "CLOSED"
	CaseStatusFailureNoticed     = "FAILURE-NOTICED"
	CaseStatusPendingAbatement   = "PENDING_ABATEMENT"
	CaseStatusContinualAbatement = "CONTINUAL_ABATEMENT"
)

// Owner info status constants
const (
	OwnerInfoKnown   = "KNOWN"
	OwnerInfoUnknown = "UNKNOWN"
)

// Address is the location of the violating property, all free text.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// OwnerInfo holds contact details for the property owner. All fields are
// optional; when the case's OwnerInfoStatus is UNKNOWN they are not required
// for the case to be considered complete.
type OwnerInfo struct {
	Name           string `json:"name,omitempty"`
	MailingAddress string `json:"mailingAddress,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// Violation describes the cited violation, either snapped from the catalog or
// entered manually under the "Other" type.
type Violation struct {
	Type             string `json:"type"`
	Ordinance        string `json:"ordinance"`
	Description      string `json:"description"`
	CorrectiveAction string `json:"correctiveAction"`
	NoticeClause     string `json:"noticeClause"`
}

// EvidenceNote is a dated free-text note. Notes are kept newest-first.
type EvidenceNote struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// EvidencePhoto is a stored photo attached to a case.
type EvidencePhoto struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Date     string `json:"date"`
	Caption  string `json:"caption,omitempty"`
	StoreKey string `json:"storeKey,omitempty"`
}

// Evidence groups a case's notes and photos.
type Evidence struct {
	Notes  []EvidenceNote  `json:"notes"`
	Photos []EvidencePhoto `json:"photos,omitempty"`
}

// NoticeRecord is an entry in the case's generated-notice history.
// The history is append-only and never mutated.
type NoticeRecord struct {
	Title  string `json:"title"`
	DocURL string `json:"docUrl"`
	Date   string `json:"date"`
}

// AbatementCost captures the city's cost of performing the abatement work.
// Total is employees * hours * hourly rate + fixed admin fee.
type AbatementCost struct {
	Type      string  `json:"type"`
	Employees int     `json:"employees"`
	Hours     float64 `json:"hours"`
	Rate      float64 `json:"rate"`
	AdminFee  float64 `json:"adminFee"`
	Total     float64 `json:"total"`
}

// ComputeTotal recomputes the billed cost from its parts.
func (a *AbatementCost) ComputeTotal() float64 {
	return float64(a.Employees)*a.Hours*a.Rate + a.AdminFee
}

// AbatementPropertyInfo holds the legal identifiers needed on lien documents.
type AbatementPropertyInfo struct {
	LegalDescription string `json:"legalDescription"`
	TaxID            string `json:"taxId"`
	ParcelNumber     string `json:"parcelNumber"`
}

// AbatementPhotos groups before/after photo sets of the abatement work.
type AbatementPhotos struct {
	Before []EvidencePhoto `json:"before,omitempty"`
	After  []EvidencePhoto `json:"after,omitempty"`
}

// Abatement is the optional nested record for city-performed remediation.
// CostDetails and PropertyInfo stay nil until that stage of the workflow is
// reached, so renderers must treat each sub-record independently.
type Abatement struct {
	WorkDate                string                 `json:"workDate,omitempty"`
	CostDetails             *AbatementCost         `json:"costDetails,omitempty"`
	StatementOfCostDate     string                 `json:"statementOfCostDate,omitempty"`
	StatementOfCostDocURL   string                 `json:"statementOfCostDocUrl,omitempty"`
	Photos                  *AbatementPhotos       `json:"photos,omitempty"`
	PropertyInfo            *AbatementPropertyInfo `json:"propertyInfo,omitempty"`
	NoticeOfLienDocURL      string                 `json:"noticeOfLienDocUrl,omitempty"`
	CertificateOfLienDocURL string                 `json:"certificateOfLienDocUrl,omitempty"`
}

// Case is the unit of enforcement work: one property, one primary violation.
// Cases live in the case-file JSON document, not in the relational store.
type Case struct {
	ID                 string         `json:"id"`
	CaseID             string         `json:"caseId"`
	Status             string         `json:"status"`
	DateCreated        string         `json:"dateCreated"`
	DateClosed         string         `json:"dateClosed,omitempty"`
	ComplianceDeadline string         `json:"complianceDeadline"`
	Address            Address        `json:"address"`
	OwnerInfo          OwnerInfo      `json:"ownerInfo"`
	OwnerInfoStatus    string         `json:"ownerInfoStatus"`
	Violation          Violation      `json:"violation"`
	Evidence           Evidence       `json:"evidence"`
	Notices            []NoticeRecord `json:"notices"`
	IsVacant           bool           `json:"isVacant"`
	Abatement          *Abatement     `json:"abatement,omitempty"`
}

// NewRecordID generates the opaque, immutable record id. The human-assigned
// case number (CaseID) is a separate field and is never generated.
func NewRecordID() string {
	return uuid.New().String()
}

// IsClosed checks if the case is closed
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// HasKnownOwner reports whether owner fields are required for completeness.
func (c *Case) HasKnownOwner() bool {
	return c.OwnerInfoStatus != OwnerInfoUnknown
}

// NormalizedStreet returns the trimmed, lowercased street address used as the
// property-directory lookup key.
func (c *Case) NormalizedStreet() string {
	return strings.ToLower(strings.TrimSpace(c.Address.Street))
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	validStatuses := []string{
		CaseStatusActive,
		CaseStatusDue,
		CaseStatusClosed,
		CaseStatusFailureNoticed,
		CaseStatusPendingAbatement,
		CaseStatusContinualAbatement,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidOwnerInfoStatus checks if the owner info status is valid
func IsValidOwnerInfoStatus(status string) bool {
	return status == OwnerInfoKnown || status == OwnerInfoUnknown
}
