package models

import "time"

// PhoneExtension is an entry in the internal phone directory.
type PhoneExtension struct {
	ExtensionID  int        `gorm:"primaryKey;column:extension_id" json:"extension_id"`
	Extension    string     `gorm:"column:extension" json:"extension"`
	DisplayName  string     `gorm:"column:display_name" json:"display_name"`
	DepartmentID *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	Room         *string    `gorm:"column:room" json:"room,omitempty"`
	Email        *string    `gorm:"column:email" json:"email,omitempty"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (PhoneExtension) TableName() string {
	return "phone_extensions"
}
