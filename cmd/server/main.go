package main

import (
	"log"
	"time"

	"code_enforce_app_go/config"
	"code_enforce_app_go/db"
	"code_enforce_app_go/handlers"
	"code_enforce_app_go/middleware"
	"code_enforce_app_go/models"
	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the operational database (users, sessions, templates,
	// settings, audit log)
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.NoticeTemplate{},
		&models.OrgSettings{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize the case-file document store (cases + properties)
	store := db.NewCaseFileStore(cfg.CaseFilePath)
	if err := store.Init(); err != nil {
		log.Fatalf("Failed to initialize case file: %v", err)
	}

	registry, err := services.NewCaseRegistry(store, cfg.ComplianceDays)
	if err != nil {
		log.Fatalf("Failed to load case file: %v", err)
	}
	handlers.Registry = registry

	// Object storage for generated documents (R2 when configured, local
	// filesystem otherwise)
	services.InitializeStorage(cfg)

	// Seed data
	if err := services.SeedOrgSettings(db.DB); err != nil {
		log.Printf("Warning: failed to seed settings: %v", err)
	}
	if err := services.SeedDefaultTemplates(db.DB); err != nil {
		log.Printf("Warning: failed to seed templates: %v", err)
	}
	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		log.Printf("Warning: failed to seed admin user: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files (uploaded evidence photos)
	e.Static("/static", "static")

	// Public routes
	e.POST("/api/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())
	e.POST("/api/logout", handlers.LogoutHandler)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	api.Use(middleware.APIRateLimiter.Middleware())
	{
		api.GET("/me", handlers.MeHandler)
		api.GET("/violations", handlers.ViolationCatalogHandler)

		// Cases
		api.GET("/cases", handlers.ListCasesHandler)
		api.POST("/cases", handlers.CreateCaseHandler)
		api.GET("/cases/:id", handlers.GetCaseHandler)
		api.PUT("/cases/:id", handlers.UpdateCaseHandler)
		api.DELETE("/cases/:id", handlers.DeleteCaseHandler)
		api.PUT("/cases/:id/status", handlers.SetCaseStatusHandler)
		api.POST("/cases/:id/close", handlers.CloseCaseHandler)
		api.POST("/cases/:id/reopen", handlers.ReopenCaseHandler)
		api.POST("/cases/:id/notes", handlers.AddCaseNoteHandler)
		api.POST("/cases/:id/photos", handlers.UploadCasePhotoHandler, middleware.UploadRateLimiter.Middleware())
		api.PUT("/cases/:id/abatement", handlers.UpdateAbatementHandler)
		api.POST("/cases/:id/abatement/photos", handlers.UploadAbatementPhotoHandler, middleware.UploadRateLimiter.Middleware())

		// Notice generation
		api.POST("/cases/:id/notices", handlers.GenerateNoticeHandler, middleware.NoticeRateLimiter.Middleware())
		api.GET("/cases/:id/notices/preview", handlers.PreviewNoticeHandler)

		// Property directory
		api.GET("/properties", handlers.ListPropertiesHandler)
		api.POST("/properties", handlers.SavePropertyHandler)
		api.GET("/properties/lookup", handlers.LookupPropertyHandler)
		api.GET("/properties/:id", handlers.GetPropertyHandler)
		api.PUT("/properties/:id", handlers.SavePropertyHandler)
		api.DELETE("/properties/:id", handlers.DeletePropertyHandler)
		api.POST("/properties/migrate", handlers.MigratePropertiesHandler)

		// Notice templates
		api.GET("/templates", handlers.ListTemplatesHandler)
		api.GET("/templates/variables", handlers.TemplateVariablesHandler)
		api.GET("/templates/:id", handlers.GetTemplateHandler)

		// Reports
		api.GET("/reports/street", handlers.StreetReportHandler)
		api.GET("/reports/abatement", handlers.AbatementReportHandler)

		// Admin-only routes
		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/templates", handlers.CreateTemplateHandler)
			admin.PUT("/templates/:id", handlers.UpdateTemplateHandler)
			admin.DELETE("/templates/:id", handlers.DeleteTemplateHandler)

			admin.GET("/settings", handlers.GetSettingsHandler)
			admin.PUT("/settings", handlers.SaveSettingsHandler)

			admin.GET("/audit-logs", handlers.ListAuditLogsHandler)
			admin.GET("/audit-logs/:type/:id", handlers.ResourceAuditHistoryHandler)
		}
	}

	// Background session cleanup (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Daily overdue digest to the department inbox, when one is configured
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			sendOverdueDigest(cfg, registry)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// sendOverdueDigest emails the list of overdue cases to the department
// inbox. Quietly does nothing when no inbox is configured or nothing is
// overdue.
func sendOverdueDigest(cfg *config.Config, registry *services.CaseRegistry) {
	var settings models.OrgSettings
	if err := db.DB.First(&settings, 1).Error; err != nil {
		return
	}

	to, err := services.NoticeEmailAddress(settings)
	if err != nil {
		return
	}

	now := time.Now()
	var overdue []services.StreetReportRow
	for _, row := range services.BuildStreetReport(registry.Cases(), now, false) {
		if row.TimeStatus == services.TimeStatusOverdue {
			overdue = append(overdue, row)
		}
	}
	if len(overdue) == 0 {
		return
	}

	email := services.BuildOverdueDigestEmail(to, overdue, settings)
	if err := services.SendEmail(cfg, email); err != nil {
		log.Printf("Error sending overdue digest: %v", err)
	}
}
