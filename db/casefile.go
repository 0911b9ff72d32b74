package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"code_enforce_app_go/models"
)

// ErrNoCaseFile is returned by Load when no backing case file is configured
// or none exists yet at the configured path.
var ErrNoCaseFile = errors.New("no case file available")

// ParseError wraps a malformed case-file document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("case file %s is not a valid document: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CaseDocument is the persisted shape. All case and property data round-trips
// through this single document; every save replaces it wholesale. There is no
// schema version field and no merge with concurrent writers - last writer
// wins.
type CaseDocument struct {
	Cases       []models.Case     `json:"cases"`
	Properties  []models.Property `json:"properties"`
	LastUpdated string            `json:"lastUpdated"`
}

// CaseFileStore persists the case document to a local JSON file.
type CaseFileStore struct {
	path string
}

// NewCaseFileStore creates a store over the given file path. An empty path
// means no backing store is configured; Load and Save will fail.
func NewCaseFileStore(path string) *CaseFileStore {
	return &CaseFileStore{path: path}
}

// Path returns the configured case-file location.
func (s *CaseFileStore) Path() string {
	return s.path
}

// Init creates an empty document at the configured path if none exists.
func (s *CaseFileStore) Init() error {
	if s.path == "" {
		return ErrNoCaseFile
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	log.Printf("Creating new case file at %s", s.path)
	return s.Save(&CaseDocument{
		Cases:       []models.Case{},
		Properties:  []models.Property{},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
}

// Load reads and parses the whole document. It returns ErrNoCaseFile when no
// store is configured or the file does not exist, and a *ParseError when the
// stored document is malformed.
func (s *CaseFileStore) Load() (*CaseDocument, error) {
	if s.path == "" {
		return nil, ErrNoCaseFile
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCaseFile
		}
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	var doc CaseDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}

	if doc.Cases == nil {
		doc.Cases = []models.Case{}
	}
	if doc.Properties == nil {
		doc.Properties = []models.Property{}
	}

	return &doc, nil
}

// Save replaces the entire document. The write goes through a temp file and
// rename so readers never observe a partial document.
func (s *CaseFileStore) Save(doc *CaseDocument) error {
	if s.path == "" {
		return ErrNoCaseFile
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode case document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create case file directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".casefile-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp case file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write case file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close case file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace case file: %w", err)
	}

	return nil
}
