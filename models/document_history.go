package models

import "time"

// DocumentHistory tracks every action performed on a document. Rows are
// append-only and are the source of truth for the audit trail.
type DocumentHistory struct {
	HistoryID   int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	DocumentID  int       `gorm:"column:document_id" json:"document_id"`
	UserID      int       `gorm:"column:user_id" json:"user_id"`
	Action      string    `gorm:"column:action" json:"action"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	OldValue    *string   `gorm:"column:old_value" json:"old_value,omitempty"`
	NewValue    *string   `gorm:"column:new_value" json:"new_value,omitempty"`
	IPAddress   *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent   *string   `gorm:"column:user_agent" json:"user_agent,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table for DocumentHistory.
func (DocumentHistory) TableName() string {
	return "document_history"
}
