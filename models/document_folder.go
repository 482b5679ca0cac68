package models

import "time"

// DocumentFolder is a node in the folder hierarchy. Path and Level are
// derived from the parent chain and recomputed on every structural change.
type DocumentFolder struct {
	FolderID     int        `gorm:"primaryKey;column:folder_id" json:"folder_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Description  *string    `gorm:"column:description" json:"description,omitempty"`
	Color        string     `gorm:"column:color" json:"color"`
	Icon         string     `gorm:"column:icon" json:"icon"`
	DisplayOrder int        `gorm:"column:display_order" json:"display_order"`
	Path         string     `gorm:"column:path" json:"path"`
	Level        int        `gorm:"column:level" json:"level"`
	IsSystem     bool       `gorm:"column:is_system" json:"is_system"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	ParentID     *int       `gorm:"column:parent_id" json:"parent_id,omitempty"`
	DepartmentID *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	CreatedBy    int        `gorm:"column:created_by" json:"created_by"`
	UpdatedBy    *int       `gorm:"column:updated_by" json:"updated_by,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Parent     *DocumentFolder `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Department *Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName specifies the table for DocumentFolder.
func (DocumentFolder) TableName() string {
	return "document_folders"
}
