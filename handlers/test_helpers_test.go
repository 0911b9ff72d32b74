package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"code_enforce_app_go/config"
	"code_enforce_app_go/db"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.NoticeTemplate{},
		&models.OrgSettings{},
	)
	assert.NoError(t, err)

	prev := db.DB
	db.DB = testDB
	t.Cleanup(func() { db.DB = prev })

	return testDB
}

// setupRegistry wires a fresh case-file registry with a fixed clock so
// computed dates are stable across test runs.
func setupRegistryForHandlers(t *testing.T) *services.CaseRegistry {
	t.Helper()

	store := db.NewCaseFileStore(t.TempDir() + "/data.json")
	require.NoError(t, store.Init())

	registry, err := services.NewCaseRegistry(store, 10)
	require.NoError(t, err)

	prev := Registry
	Registry = registry
	t.Cleanup(func() { Registry = prev })

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	return registry
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

func seedHandlerCase(t *testing.T, registry *services.CaseRegistry) models.Case {
	t.Helper()

	created, err := registry.CreateCase(services.CaseDraft{
		CaseID: "CE-2024-001",
		Address: models.Address{
			Street: "123 Main St",
			City:   "Commerce",
		},
		OwnerInfo: models.OwnerInfo{
			Name:           "John Doe",
			MailingAddress: "PO Box 12, Commerce OK",
		},
		OwnerInfoStatus: models.OwnerInfoKnown,
		Violation:       models.Violation{Type: "Tall Grass / Weeds"},
	})
	require.NoError(t, err)
	return created
}

func seedOfficer(t *testing.T, testDB *gorm.DB) *models.User {
	t.Helper()

	hash, err := services.HashPassword("SecretPass123!")
	require.NoError(t, err)

	user := &models.User{
		Name:     "Officer Smith",
		Username: "osmith",
		Password: hash,
		Role:     models.RoleOfficer,
		IsActive: true,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

// waitForAudit gives the async audit goroutine time to land.
func waitForAudit() {
	time.Sleep(100 * time.Millisecond)
}
