package models

import (
	"time"
)

// Document statuses as stored in documents.status.
const (
	StatusDraft            = "draft"
	StatusPendingReview    = "pending_review"
	StatusInReview         = "in_review"
	StatusPendingApproval  = "pending_approval"
	StatusApproved         = "approved"
	StatusRejected         = "rejected"
	StatusChangesRequested = "changes_requested"
	StatusArchived         = "archived"
	StatusPublished        = "published"
)

// DocumentStatuses lists every valid documents.status value.
var DocumentStatuses = []string{
	StatusDraft,
	StatusPendingReview,
	StatusInReview,
	StatusPendingApproval,
	StatusApproved,
	StatusRejected,
	StatusChangesRequested,
	StatusArchived,
	StatusPublished,
}

// IsValidDocumentStatus reports whether status is a known lifecycle value.
func IsValidDocumentStatus(status string) bool {
	for _, s := range DocumentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Document struct {
	DocumentID       int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	OriginalFilename string     `gorm:"column:original_filename" json:"original_filename"`
	StoredFilename   string     `gorm:"column:stored_filename" json:"stored_filename"`
	ContentType      string     `gorm:"column:content_type" json:"content_type"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	Description      string     `gorm:"column:description" json:"description"`
	Status           string     `gorm:"column:status" json:"status"`
	Version          int        `gorm:"column:version" json:"version"`
	DepartmentID     *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	FolderID         *int       `gorm:"column:folder_id" json:"folder_id,omitempty"`
	UploadedBy       int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	LastModifiedAt   *time.Time `gorm:"column:last_modified_at" json:"last_modified_at"`
	LastModifiedBy   *int       `gorm:"column:last_modified_by" json:"last_modified_by,omitempty"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Department *Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Folder     *DocumentFolder `gorm:"foreignKey:FolderID" json:"folder,omitempty"`
	Uploader   User            `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

// TableName overrides
func (Document) TableName() string {
	return "documents"
}
