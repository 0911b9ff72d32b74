package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document type constants. The type picks the layout shell the renderer
// wraps the substituted content in.
const (
	DocTypeNotice      = "notice"
	DocTypeEnvelope    = "envelope"
	DocTypeStatement   = "statement"
	DocTypeLien        = "lien"
	DocTypeCertificate = "certificate"
)

// NoticeTemplate is a reusable document template. Content is HTML carrying
// {{Placeholder}} tokens that the renderer substitutes from a case and the
// organization settings.
type NoticeTemplate struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Template identification
	Name        string  `gorm:"not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	// Layout shell selector (notice, envelope, statement, lien, certificate)
	DocType string `gorm:"not null;default:notice;index" json:"doc_type"`

	// Content (HTML with {{Placeholder}} tokens, sanitized at save time)
	Content string `gorm:"type:text;not null" json:"content"`

	// Versioning
	Version int `gorm:"not null;default:1" json:"version"`

	// Status
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	// Created by
	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// BeforeCreate hook to generate UUID
func (t *NoticeTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for NoticeTemplate model
func (NoticeTemplate) TableName() string {
	return "notice_templates"
}

// IsValidDocType checks if the document type is valid
func IsValidDocType(docType string) bool {
	switch docType {
	case DocTypeNotice, DocTypeEnvelope, DocTypeStatement, DocTypeLien, DocTypeCertificate:
		return true
	}
	return false
}
