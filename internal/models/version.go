// ============================================
// FILE: internal/models/version.go
// ============================================
package models

import "time"

// DesignVersion is one entry of a project's design-artifact ledger. Exactly
// one version per project carries IsCurrent at any time.
type DesignVersion struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"project_id"`
	VersionNumber int          `json:"version_number"`
	Title         *string      `json:"title,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Files         []DesignFile `json:"files"`
	IsCurrent     bool         `json:"is_current"`
	IsApproved    bool         `json:"is_approved"`
	ApprovedBy    *string      `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time   `json:"approved_at,omitempty"`
	CreatedBy     string       `json:"created_by"`
	CreatedAt     time.Time    `json:"created_at"`
}

// DesignFile is owned by its DesignVersion and immutable once created;
// replacing artwork means creating a new version.
type DesignFile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	SizeBytes int64     `json:"size_bytes"`
	MimeType  string    `json:"mime_type"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// Request models
type CreateVersionRequest struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Files       []CreateVersionFileInput `json:"files" binding:"required"`
}

type CreateVersionFileInput struct {
	Name      string `json:"name" binding:"required"`
	URL       string `json:"url" binding:"required"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
}
