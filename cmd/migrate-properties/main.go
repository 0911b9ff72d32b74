package main

import (
	"log"

	"code_enforce_app_go/config"
	"code_enforce_app_go/db"
	"code_enforce_app_go/services"
)

// Backfills the property directory from the existing case list. Safe to run
// repeatedly: entries already present are refreshed from the latest case at
// the same address, never duplicated.
func main() {
	// Load configuration
	cfg := config.Load()

	store := db.NewCaseFileStore(cfg.CaseFilePath)
	if err := store.Init(); err != nil {
		log.Fatalf("Failed to initialize case file: %v", err)
	}

	registry, err := services.NewCaseRegistry(store, cfg.ComplianceDays)
	if err != nil {
		log.Fatalf("Failed to load case file: %v", err)
	}

	log.Println("Starting property directory backfill from cases...")

	result, err := registry.MigrateCasesIntoProperties()
	if err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}

	log.Printf("Backfill completed: %d entries created, %d updated\n", result.Created, result.Updated)
}
