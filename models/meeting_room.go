package models

import "time"

type MeetingRoom struct {
	RoomID    int        `gorm:"primaryKey;column:room_id" json:"room_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Location  string     `gorm:"column:location" json:"location"`
	Capacity  int        `gorm:"column:capacity" json:"capacity"`
	Equipment *string    `gorm:"column:equipment" json:"equipment,omitempty"`
	IsActive  bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type RoomBooking struct {
	BookingID   int        `gorm:"primaryKey;column:booking_id" json:"booking_id"`
	RoomID      int        `gorm:"column:room_id" json:"room_id"`
	BookedBy    int        `gorm:"column:booked_by" json:"booked_by"`
	Title       string     `gorm:"column:title" json:"title"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	StartTime   time.Time  `gorm:"column:start_time" json:"start_time"`
	EndTime     time.Time  `gorm:"column:end_time" json:"end_time"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Room   MeetingRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Booker User        `gorm:"foreignKey:BookedBy" json:"booker,omitempty"`
}

// TableName overrides
func (MeetingRoom) TableName() string {
	return "meeting_rooms"
}

func (RoomBooking) TableName() string {
	return "room_bookings"
}
