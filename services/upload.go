package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"code_enforce_app_go/models"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
)

// Abatement photo stages.
const (
	AbatementStageBefore = "before"
	AbatementStageAfter  = "after"
)

// ValidateImageUpload checks if the uploaded file is a valid image within
// size limits. Evidence photos are the only user uploads the API accepts.
func ValidateImageUpload(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxUploadSize {
		return fmt.Errorf("file size exceeds maximum allowed size of 10MB")
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowedExtensions := []string{".jpg", ".jpeg", ".png", ".webp"}

	isAllowed := false
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		return fmt.Errorf("file type not allowed. Accepted formats: JPG, PNG, WEBP")
	}

	// Open file to check content type from the actual bytes
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Read first 512 bytes to detect content type
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}

	contentType := http.DetectContentType(buffer[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("file is not a valid image")
	}

	return nil
}

// StoreEvidencePhoto uploads a validated evidence photo through the active
// storage provider under the case's photo prefix and returns the photo record
// ready to attach to the case. The record id and date are filled in by the
// registry on attach.
func StoreEvidencePhoto(ctx context.Context, fileHeader *multipart.FileHeader, caseRecordID string) (models.EvidencePhoto, error) {
	key := GenerateEvidencePhotoKey(caseRecordID, fileHeader.Filename)
	return storePhoto(ctx, fileHeader, key)
}

// StoreAbatementPhoto uploads a before/after abatement photo through the
// active storage provider under the case's abatement prefix.
func StoreAbatementPhoto(ctx context.Context, fileHeader *multipart.FileHeader, caseRecordID, stage string) (models.EvidencePhoto, error) {
	if stage != AbatementStageBefore && stage != AbatementStageAfter {
		return models.EvidencePhoto{}, &ValidationError{Fields: []string{"stage"}}
	}
	key := GenerateAbatementPhotoKey(caseRecordID, stage, fileHeader.Filename)
	return storePhoto(ctx, fileHeader, key)
}

func storePhoto(ctx context.Context, fileHeader *multipart.FileHeader, key string) (models.EvidencePhoto, error) {
	stored, err := Storage.Upload(ctx, fileHeader, key)
	if err != nil {
		return models.EvidencePhoto{}, &ExternalServiceError{Service: "photo storage", Err: err}
	}

	photoURL := stored.URL
	if photoURL == "" {
		// Bucket without a public URL: hand back a signed link instead
		photoURL, err = Storage.GetSignedURL(ctx, key, DefaultSessionDuration)
		if err != nil {
			return models.EvidencePhoto{}, &ExternalServiceError{Service: "photo storage", Err: err}
		}
	}

	return models.EvidencePhoto{URL: photoURL, StoreKey: key}, nil
}
