package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func createMockFileHeader(filename string, content []byte, contentType string) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(10 * 1024 * 1024)
	return form.File["file"][0]
}

func TestValidateImageUpload(t *testing.T) {
	t.Run("Valid PNG", func(t *testing.T) {
		content := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 100)...)
		file := createMockFileHeader("test.png", content, "image/png")
		err := ValidateImageUpload(file)
		assert.NoError(t, err)
	})

	t.Run("Valid JPEG", func(t *testing.T) {
		content := append([]byte("\xff\xd8\xff\xe0"), make([]byte, 100)...)
		file := createMockFileHeader("test.jpg", content, "image/jpeg")
		err := ValidateImageUpload(file)
		assert.NoError(t, err)
	})

	t.Run("File too large", func(t *testing.T) {
		content := make([]byte, 11*1024*1024) // 11MB
		file := createMockFileHeader("large.png", content, "image/png")
		err := ValidateImageUpload(file)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum allowed size")
	})

	t.Run("Invalid extension", func(t *testing.T) {
		file := createMockFileHeader("test.exe", []byte("fake"), "application/x-msdownload")
		err := ValidateImageUpload(file)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "file type not allowed")
	})

	t.Run("PDF is rejected as evidence photo", func(t *testing.T) {
		content := append([]byte("%PDF-1.4\n"), make([]byte, 100)...)
		file := createMockFileHeader("notice.pdf", content, "application/pdf")
		err := ValidateImageUpload(file)
		assert.Error(t, err)
	})

	t.Run("Mismatched content (PNG extension but text)", func(t *testing.T) {
		file := createMockFileHeader("fake.png", []byte("this is just text"), "text/plain")
		err := ValidateImageUpload(file)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid image")
	})
}

func swapStorage(t *testing.T, provider StorageProvider) {
	t.Helper()
	prev := Storage
	Storage = provider
	t.Cleanup(func() { Storage = prev })
}

func TestStoreEvidencePhoto(t *testing.T) {
	baseDir := t.TempDir()
	swapStorage(t, NewLocalStorage(baseDir))

	content := append([]byte("\x89PNG\r\n\x1a\n"), []byte("some image bytes")...)
	file := createMockFileHeader("site.png", content, "image/png")

	photo, err := StoreEvidencePhoto(context.Background(), file, "case456")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(photo.StoreKey, "cases/case456/photos/"))
	assert.True(t, strings.HasSuffix(photo.StoreKey, ".png"))
	assert.NotEmpty(t, photo.URL)

	// The provider placed the bytes under its base directory
	_, err = os.Stat(filepath.Join(baseDir, photo.StoreKey))
	assert.NoError(t, err)
}

func TestStoreAbatementPhoto(t *testing.T) {
	baseDir := t.TempDir()
	swapStorage(t, NewLocalStorage(baseDir))

	content := append([]byte("\x89PNG\r\n\x1a\n"), []byte("work site")...)
	file := createMockFileHeader("lot.jpg", content, "image/jpeg")

	t.Run("Before stage", func(t *testing.T) {
		photo, err := StoreAbatementPhoto(context.Background(), file, "case456", AbatementStageBefore)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(photo.StoreKey, "cases/case456/abatement/before/"))

		_, err = os.Stat(filepath.Join(baseDir, photo.StoreKey))
		assert.NoError(t, err)
	})

	t.Run("Unknown stage is rejected", func(t *testing.T) {
		_, err := StoreAbatementPhoto(context.Background(), file, "case456", "during")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
