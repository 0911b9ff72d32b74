package services

import (
	"strings"

	"code_enforce_app_go/models"
)

// Properties returns a copy of the property directory.
func (r *CaseRegistry) Properties() []models.Property {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Property, len(r.properties))
	copy(out, r.properties)
	return out
}

// PropertyByID returns the directory entry with the given id.
func (r *CaseRegistry) PropertyByID(id string) (models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.propertyIndex(id)
	if idx < 0 {
		return models.Property{}, ErrPropertyNotFound
	}
	return r.properties[idx], nil
}

// LookupProperty finds the directory entry for a street address under key
// normalization (trim + lowercase). Used to pre-fill owner information on
// new cases at a known address.
func (r *CaseRegistry) LookupProperty(street string) (models.Property, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(street))
	for i := range r.properties {
		if r.properties[i].NormalizedStreet() == key {
			return r.properties[i], true
		}
	}
	return models.Property{}, false
}

// SaveProperty creates or updates a directory entry. A blank id means
// create. Uniqueness of the street address is not enforced; entries that
// normalize differently can coexist.
func (r *CaseRegistry) SaveProperty(p models.Property) (models.Property, error) {
	if strings.TrimSpace(p.StreetAddress) == "" {
		return models.Property{}, &ValidationError{Fields: []string{"streetAddress"}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = models.NewRecordID()
		r.properties = append(r.properties, p)
		return p, r.persist()
	}

	idx := r.propertyIndex(p.ID)
	if idx < 0 {
		return models.Property{}, ErrPropertyNotFound
	}
	r.properties[idx] = p
	return p, r.persist()
}

// DeleteProperty removes a directory entry. Cases at the address are not
// touched; the directory and the case list are independent collections.
func (r *CaseRegistry) DeleteProperty(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.propertyIndex(id)
	if idx < 0 {
		return ErrPropertyNotFound
	}
	r.properties = append(r.properties[:idx], r.properties[idx+1:]...)
	return r.persist()
}

// MigrationResult summarizes a one-time fold of cases into the directory.
type MigrationResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// MigrateCasesIntoProperties folds every existing case into the property
// directory. Cases are kept newest-first, so the fold walks them oldest to
// newest and the latest case per address wins.
func (r *CaseRegistry) MigrateCasesIntoProperties() (MigrationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result MigrationResult
	for i := len(r.cases) - 1; i >= 0; i-- {
		if r.upsertPropertyFromCase(&r.cases[i]) {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, r.persist()
}

// upsertPropertyFromCase copies a case's owner info and vacancy flag onto
// the directory entry for its address, creating the entry when absent.
// Returns true when a new entry was created. Callers hold the lock.
func (r *CaseRegistry) upsertPropertyFromCase(c *models.Case) bool {
	street := strings.TrimSpace(c.Address.Street)
	key := strings.ToLower(street)

	for i := range r.properties {
		if r.properties[i].NormalizedStreet() == key {
			r.properties[i].OwnerInfo = c.OwnerInfo
			r.properties[i].IsVacant = c.IsVacant
			return false
		}
	}

	r.properties = append(r.properties, models.Property{
		ID:            models.NewRecordID(),
		StreetAddress: street,
		OwnerInfo:     c.OwnerInfo,
		IsVacant:      c.IsVacant,
		ResidentInfo:  models.ResidentInfo{},
	})
	return true
}

// propertyIndex finds a property by id. Callers hold the lock.
func (r *CaseRegistry) propertyIndex(id string) int {
	for i := range r.properties {
		if r.properties[i].ID == id {
			return i
		}
	}
	return -1
}
