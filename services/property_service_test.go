package services

import (
	"testing"

	"code_enforce_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePropertyCreateAndUpdate(t *testing.T) {
	registry := setupRegistry(t)

	saved, err := registry.SaveProperty(models.Property{
		StreetAddress: "700 2nd St",
		OwnerInfo:     models.OwnerInfo{Name: "Acme Holdings LLC"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	saved.DilapidationNotes = "Roof partially collapsed"
	updated, err := registry.SaveProperty(saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	got, err := registry.PropertyByID(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roof partially collapsed", got.DilapidationNotes)
}

func TestSavePropertyValidation(t *testing.T) {
	registry := setupRegistry(t)

	_, err := registry.SaveProperty(models.Property{StreetAddress: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"streetAddress"}, verr.Fields)

	_, err = registry.SaveProperty(models.Property{ID: "missing", StreetAddress: "1 Elm St"})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestLookupPropertyNormalizesKey(t *testing.T) {
	registry := setupRegistry(t)

	_, err := registry.SaveProperty(models.Property{
		StreetAddress: "123 Main St",
		OwnerInfo:     models.OwnerInfo{Name: "John Doe"},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact", "123 Main St", true},
		{"case insensitive", "123 MAIN ST", true},
		{"trimmed", "  123 main st  ", true},
		{"different address", "124 Main St", false},
		{"abbreviation is not expanded", "123 Main Street", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, found := registry.LookupProperty(tt.query)
			assert.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, "John Doe", entry.OwnerInfo.Name)
			}
		})
	}
}

func TestDeleteProperty(t *testing.T) {
	registry := setupRegistry(t)

	saved, err := registry.SaveProperty(models.Property{StreetAddress: "45 Vine St"})
	require.NoError(t, err)

	require.NoError(t, registry.DeleteProperty(saved.ID))
	assert.Empty(t, registry.Properties())

	assert.ErrorIs(t, registry.DeleteProperty(saved.ID), ErrPropertyNotFound)
}

func TestCaseSaveUpsertsDirectoryEntry(t *testing.T) {
	registry := setupRegistry(t)

	created, err := registry.CreateCase(validDraft())
	require.NoError(t, err)

	entry, found := registry.LookupProperty("123 Main St")
	require.True(t, found)
	assert.Equal(t, "John Doe", entry.OwnerInfo.Name)

	// Editing the case refreshes the same entry instead of adding another
	created.OwnerInfo.Name = "Jane Doe"
	created.IsVacant = true
	_, err = registry.UpdateCase(created)
	require.NoError(t, err)

	require.Len(t, registry.Properties(), 1)
	entry, _ = registry.LookupProperty("123 main st")
	assert.Equal(t, "Jane Doe", entry.OwnerInfo.Name)
	assert.True(t, entry.IsVacant)
}

func TestMigrateCasesIntoProperties(t *testing.T) {
	registry := setupRegistry(t)

	older := validDraft()
	older.OwnerInfo.Name = "Old Owner"
	_, err := registry.CreateCase(older)
	require.NoError(t, err)

	newer := validDraft()
	newer.CaseID = "CE-2024-002"
	newer.OwnerInfo.Name = "New Owner"
	_, err = registry.CreateCase(newer)
	require.NoError(t, err)

	other := validDraft()
	other.CaseID = "CE-2024-003"
	other.Address.Street = "45 Vine St"
	_, err = registry.CreateCase(other)
	require.NoError(t, err)

	result, err := registry.MigrateCasesIntoProperties()
	require.NoError(t, err)
	assert.Equal(t, 3, result.Updated, "entries already exist from the case saves")
	assert.Zero(t, result.Created)

	require.Len(t, registry.Properties(), 2)
	entry, found := registry.LookupProperty("123 Main St")
	require.True(t, found)
	assert.Equal(t, "New Owner", entry.OwnerInfo.Name, "latest case per address wins")
}
