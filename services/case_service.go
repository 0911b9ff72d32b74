package services

import (
	"fmt"
	"sync"
	"time"

	"code_enforce_app_go/db"
	"code_enforce_app_go/models"
)

// CaseRegistry holds the live case and property collections and persists
// them wholesale to the case-file document after every mutation. The mutex
// only guards in-process access; the persistence contract stays
// last-writer-wins with no merge, exactly like the backing document.
//
// A failed save is returned to the caller but does not roll back the
// in-memory mutation: memory and disk can diverge until the next successful
// save.
type CaseRegistry struct {
	mu             sync.Mutex
	store          *db.CaseFileStore
	cases          []models.Case
	properties     []models.Property
	complianceDays int
	now            func() time.Time
}

// NewCaseRegistry loads the case document and wraps it in a registry.
func NewCaseRegistry(store *db.CaseFileStore, complianceDays int) (*CaseRegistry, error) {
	doc, err := store.Load()
	if err != nil {
		return nil, err
	}
	if complianceDays <= 0 {
		complianceDays = 10
	}
	return &CaseRegistry{
		store:          store,
		cases:          doc.Cases,
		properties:     doc.Properties,
		complianceDays: complianceDays,
		now:            time.Now,
	}, nil
}

// CaseDraft carries the user-entered fields for a new case.
type CaseDraft struct {
	CaseID          string           `json:"caseId"`
	Address         models.Address   `json:"address"`
	OwnerInfo       models.OwnerInfo `json:"ownerInfo"`
	OwnerInfoStatus string           `json:"ownerInfoStatus"`
	Violation       models.Violation `json:"violation"`
	IsVacant        bool             `json:"isVacant"`
}

// CreateCase validates a draft, snaps its violation to the catalog, stamps
// creation date and compliance deadline (creation date + the compliance-day
// offset, long-form), and prepends the new case to the collection. The
// property directory entry for the address is upserted in the same save.
func (r *CaseRegistry) CreateCase(draft CaseDraft) (models.Case, error) {
	if err := validateDraft(&draft); err != nil {
		return models.Case{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	created := FormatLongDate(now)
	deadline := FormatLongDate(now.AddDate(0, 0, r.complianceDays))

	newCase := models.Case{
		ID:                 models.NewRecordID(),
		CaseID:             draft.CaseID,
		Status:             models.CaseStatusActive,
		DateCreated:        created,
		ComplianceDeadline: deadline,
		Address:            draft.Address,
		OwnerInfo:          draft.OwnerInfo,
		OwnerInfoStatus:    draft.OwnerInfoStatus,
		Violation:          snapViolation(draft.Violation),
		Evidence: models.Evidence{
			Notes: []models.EvidenceNote{{Date: created, Text: "Case created."}},
		},
		Notices:  []models.NoticeRecord{},
		IsVacant: draft.IsVacant,
	}

	// Newest first
	r.cases = append([]models.Case{newCase}, r.cases...)
	r.upsertPropertyFromCase(&newCase)

	return newCase, r.persist()
}

// UpdateCase replaces an existing case's editable fields. The record id,
// creation date, and the append-only notice history are preserved from the
// stored record. The deadline is accepted as-is, even when edited earlier
// than the creation date.
func (r *CaseRegistry) UpdateCase(updated models.Case) (models.Case, error) {
	if err := validateCase(&updated); err != nil {
		return models.Case{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(updated.ID)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	existing := r.cases[idx]
	updated.DateCreated = existing.DateCreated
	updated.Notices = existing.Notices
	updated.Violation = snapViolation(updated.Violation)
	if updated.Abatement != nil && updated.Abatement.CostDetails != nil {
		updated.Abatement.CostDetails.Total = updated.Abatement.CostDetails.ComputeTotal()
	}

	r.cases[idx] = updated
	r.upsertPropertyFromCase(&updated)

	return updated, r.persist()
}

// SetStatus moves a case to the given lifecycle status. Closing stamps
// DateClosed; leaving CLOSED clears it.
func (r *CaseRegistry) SetStatus(id, status string) (models.Case, error) {
	if !models.IsValidCaseStatus(status) {
		return models.Case{}, &ValidationError{Fields: []string{"status"}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	c := &r.cases[idx]
	if status == models.CaseStatusClosed && !c.IsClosed() {
		c.DateClosed = FormatLongDate(r.now())
	}
	if status != models.CaseStatusClosed {
		c.DateClosed = ""
	}
	c.Status = status

	return *c, r.persist()
}

// CloseCase closes the case and stamps the closed date.
func (r *CaseRegistry) CloseCase(id string) (models.Case, error) {
	return r.SetStatus(id, models.CaseStatusClosed)
}

// ReopenCase returns a closed case to ACTIVE and clears the closed date.
func (r *CaseRegistry) ReopenCase(id string) (models.Case, error) {
	return r.SetStatus(id, models.CaseStatusActive)
}

// DeleteCase hard-deletes a case. The confirmation flag must be set
// explicitly; there is no soft delete. The property directory entry for the
// address is left in place.
func (r *CaseRegistry) DeleteCase(id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return ErrCaseNotFound
	}

	r.cases = append(r.cases[:idx], r.cases[idx+1:]...)
	return r.persist()
}

// AddNote prepends a dated note to the case's evidence, newest first.
func (r *CaseRegistry) AddNote(id, text string) (models.Case, error) {
	if text == "" {
		return models.Case{}, &ValidationError{Fields: []string{"text"}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	c := &r.cases[idx]
	note := models.EvidenceNote{Date: FormatLongDate(r.now()), Text: text}
	c.Evidence.Notes = append([]models.EvidenceNote{note}, c.Evidence.Notes...)

	return *c, r.persist()
}

// AddPhoto appends an evidence photo to the case.
func (r *CaseRegistry) AddPhoto(id string, photo models.EvidencePhoto) (models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	if photo.ID == "" {
		photo.ID = models.NewRecordID()
	}
	if photo.Date == "" {
		photo.Date = FormatLongDate(r.now())
	}

	c := &r.cases[idx]
	c.Evidence.Photos = append(c.Evidence.Photos, photo)

	return *c, r.persist()
}

// AppendNotice appends a generated-notice record to the case's history.
// The history is append-only; existing records are never touched.
func (r *CaseRegistry) AppendNotice(id string, record models.NoticeRecord) (models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	if record.Date == "" {
		record.Date = FormatLongDate(r.now())
	}

	c := &r.cases[idx]
	c.Notices = append(c.Notices, record)

	return *c, r.persist()
}

// UpdateAbatement replaces the case's abatement record, recomputing the
// cost total from its parts when cost details are present.
func (r *CaseRegistry) UpdateAbatement(id string, abatement models.Abatement) (models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	if abatement.CostDetails != nil {
		abatement.CostDetails.Total = abatement.CostDetails.ComputeTotal()
	}

	c := &r.cases[idx]
	c.Abatement = &abatement

	return *c, r.persist()
}

// AddAbatementPhoto attaches a stored before/after photo to the case's
// abatement record, creating the record if this is the first photo.
func (r *CaseRegistry) AddAbatementPhoto(id, stage string, photo models.EvidencePhoto) (models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	if photo.ID == "" {
		photo.ID = models.NewRecordID()
	}
	if photo.Date == "" {
		photo.Date = FormatLongDate(r.now())
	}

	c := &r.cases[idx]
	if c.Abatement == nil {
		c.Abatement = &models.Abatement{}
	}
	if c.Abatement.Photos == nil {
		c.Abatement.Photos = &models.AbatementPhotos{}
	}

	switch stage {
	case AbatementStageBefore:
		c.Abatement.Photos.Before = append(c.Abatement.Photos.Before, photo)
	case AbatementStageAfter:
		c.Abatement.Photos.After = append(c.Abatement.Photos.After, photo)
	default:
		return models.Case{}, &ValidationError{Fields: []string{"stage"}}
	}

	return *c, r.persist()
}

// RecordAbatementDocument stores the reference to a generated abatement
// document (statement of cost, notice of lien, certificate of lien) on the
// case's abatement record.
func (r *CaseRegistry) RecordAbatementDocument(id, docType, docURL string) (models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}

	c := &r.cases[idx]
	if c.Abatement == nil {
		c.Abatement = &models.Abatement{}
	}

	switch docType {
	case models.DocTypeStatement:
		c.Abatement.StatementOfCostDocURL = docURL
		c.Abatement.StatementOfCostDate = FormatLongDate(r.now())
	case models.DocTypeLien:
		c.Abatement.NoticeOfLienDocURL = docURL
	case models.DocTypeCertificate:
		c.Abatement.CertificateOfLienDocURL = docURL
	default:
		return models.Case{}, fmt.Errorf("unknown abatement document type: %s", docType)
	}

	return *c, r.persist()
}

// Cases returns a copy of the case collection, newest first.
func (r *CaseRegistry) Cases() []models.Case {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Case, len(r.cases))
	copy(out, r.cases)
	return out
}

// CaseByID returns the case with the given record id.
func (r *CaseRegistry) CaseByID(id string) (models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.caseIndex(id)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}
	return r.cases[idx], nil
}

// caseIndex finds a case by record id. Callers hold the lock.
func (r *CaseRegistry) caseIndex(id string) int {
	for i := range r.cases {
		if r.cases[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole document back to the case file. Callers hold the
// lock. Failures are wrapped as ExternalServiceError; in-memory state is
// deliberately kept.
func (r *CaseRegistry) persist() error {
	doc := &db.CaseDocument{
		Cases:       r.cases,
		Properties:  r.properties,
		LastUpdated: r.now().UTC().Format(time.RFC3339),
	}
	if err := r.store.Save(doc); err != nil {
		return &ExternalServiceError{Service: "case file save", Err: err}
	}
	return nil
}

// snapViolation resolves a violation against the catalog. Catalog types take
// the catalog entry wholesale so free-text edits cannot drift from the
// ordinance on file; the "Other" type keeps whatever was entered.
func snapViolation(v models.Violation) models.Violation {
	if v.Type == models.ViolationTypeOther {
		return v
	}
	if entry, ok := models.FindViolation(v.Type); ok {
		return entry
	}
	return v
}

// validateDraft checks the required fields for a new case. Owner fields are
// only required while the owner is marked KNOWN.
func validateDraft(draft *CaseDraft) error {
	if draft.OwnerInfoStatus == "" {
		draft.OwnerInfoStatus = models.OwnerInfoKnown
	}
	if !models.IsValidOwnerInfoStatus(draft.OwnerInfoStatus) {
		return &ValidationError{Fields: []string{"ownerInfoStatus"}}
	}

	var missing []string
	if draft.CaseID == "" {
		missing = append(missing, "caseNumber")
	}
	if draft.Address.Street == "" {
		missing = append(missing, "streetAddress")
	}
	if draft.Violation.Type == "" {
		missing = append(missing, "violation")
	}
	if draft.OwnerInfoStatus == models.OwnerInfoKnown {
		if draft.OwnerInfo.Name == "" {
			missing = append(missing, "ownerName")
		}
		if draft.OwnerInfo.MailingAddress == "" {
			missing = append(missing, "mailingAddress")
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// validateCase applies the same save-time rules to a full case record.
// UNKNOWN-owner cases may carry partial owner data without clearing the
// flag; that permissive behavior is intentional.
func validateCase(c *models.Case) error {
	if c.OwnerInfoStatus == "" {
		c.OwnerInfoStatus = models.OwnerInfoKnown
	}
	if !models.IsValidOwnerInfoStatus(c.OwnerInfoStatus) {
		return &ValidationError{Fields: []string{"ownerInfoStatus"}}
	}
	if !models.IsValidCaseStatus(c.Status) {
		return &ValidationError{Fields: []string{"status"}}
	}

	var missing []string
	if c.CaseID == "" {
		missing = append(missing, "caseNumber")
	}
	if c.Address.Street == "" {
		missing = append(missing, "streetAddress")
	}
	if c.Violation.Type == "" {
		missing = append(missing, "violation")
	}
	if c.OwnerInfoStatus == models.OwnerInfoKnown {
		if c.OwnerInfo.Name == "" {
			missing = append(missing, "ownerName")
		}
		if c.OwnerInfo.MailingAddress == "" {
			missing = append(missing, "mailingAddress")
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
