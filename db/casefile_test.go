package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"code_enforce_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseFileStore_LoadNotConfigured(t *testing.T) {
	store := NewCaseFileStore("")
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCaseFile)

	err = store.Save(&CaseDocument{})
	assert.ErrorIs(t, err, ErrNoCaseFile)
}

func TestCaseFileStore_LoadMissingFile(t *testing.T) {
	store := NewCaseFileStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCaseFile)
}

func TestCaseFileStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewCaseFileStore(path)
	_, err := store.Load()

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
}

func TestCaseFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewCaseFileStore(path)

	doc := &CaseDocument{
		Cases: []models.Case{
			{
				ID:                 "id-1",
				CaseID:             "CE-2024-001",
				Status:             models.CaseStatusActive,
				DateCreated:        "January 2, 2024",
				ComplianceDeadline: "January 12, 2024",
				Address:            models.Address{Street: "123 Main St", City: "Commerce", Province: "OK", PostalCode: "74339"},
				OwnerInfo:          models.OwnerInfo{Name: "Jane Doe", MailingAddress: "PO Box 1\nCommerce, OK"},
				OwnerInfoStatus:    models.OwnerInfoKnown,
				Violation:          models.ViolationCatalog[0],
				Evidence: models.Evidence{
					Notes:  []models.EvidenceNote{{Date: "January 2, 2024", Text: "Case created."}},
					Photos: []models.EvidencePhoto{{ID: "p1", URL: "http://example.com/p1.jpg", Date: "January 2, 2024"}},
				},
				Notices: []models.NoticeRecord{{Title: "Initial Notice", Date: "January 3, 2024"}},
				Abatement: &models.Abatement{
					WorkDate:    "2024-02-01",
					CostDetails: &models.AbatementCost{Type: "mowing", Employees: 2, Hours: 1.5, Rate: 25, AdminFee: 50, Total: 125},
				},
			},
			{
				ID:              "id-2",
				CaseID:          "CE-2024-002",
				Status:          models.CaseStatusClosed,
				OwnerInfoStatus: models.OwnerInfoUnknown,
			},
		},
		Properties: []models.Property{
			{ID: "prop-1", StreetAddress: "123 Main St", OwnerInfo: models.OwnerInfo{Name: "Jane Doe"}, IsVacant: true},
		},
		LastUpdated: "2024-01-02T15:04:05Z",
	}

	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)

	// Order and field values preserved
	assert.Equal(t, doc.Cases, loaded.Cases)
	assert.Equal(t, doc.Properties, loaded.Properties)
	assert.Equal(t, doc.LastUpdated, loaded.LastUpdated)
}

func TestCaseFileStore_SaveReplacesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewCaseFileStore(path)

	require.NoError(t, store.Save(&CaseDocument{
		Cases:      []models.Case{{ID: "a"}, {ID: "b"}},
		Properties: []models.Property{},
	}))
	require.NoError(t, store.Save(&CaseDocument{
		Cases:      []models.Case{{ID: "c"}},
		Properties: []models.Property{},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Cases, 1)
	assert.Equal(t, "c", loaded.Cases[0].ID)

	// No stray temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCaseFileStore_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	store := NewCaseFileStore(path)

	require.NoError(t, store.Init())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.Cases)
	assert.Empty(t, loaded.Properties)
	assert.NotEmpty(t, loaded.LastUpdated)

	// Init on an existing file leaves it alone
	require.NoError(t, store.Save(&CaseDocument{Cases: []models.Case{{ID: "keep"}}}))
	require.NoError(t, store.Init())
	loaded, err = store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Cases, 1)
}
