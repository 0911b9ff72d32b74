package models

import "strings"

// ResidentInfo holds contact details for the current occupant, which may
// differ from the owner on rentals.
type ResidentInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Property is an address-keyed directory entry independent of any single
// case. It pre-fills owner information for new cases at the same address and
// is never auto-deleted when cases are deleted.
//
// StreetAddress is the natural lookup key, compared case-insensitively after
// trimming. The directory does not enforce uniqueness at write time, so
// entries that normalize differently can coexist.
type Property struct {
	ID                string       `json:"id"`
	StreetAddress     string       `json:"streetAddress"`
	OwnerInfo         OwnerInfo    `json:"ownerInfo"`
	ResidentInfo      ResidentInfo `json:"residentInfo"`
	IsVacant          bool         `json:"isVacant"`
	DilapidationNotes string       `json:"dilapidationNotes"`
}

// NormalizedStreet returns the directory lookup key for this entry.
func (p *Property) NormalizedStreet() string {
	return strings.ToLower(strings.TrimSpace(p.StreetAddress))
}

// MatchesStreet reports whether the given raw street address refers to this
// directory entry under key normalization.
func (p *Property) MatchesStreet(street string) bool {
	return p.NormalizedStreet() == strings.ToLower(strings.TrimSpace(street))
}
