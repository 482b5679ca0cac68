package controllers

import (
	"document-portal-api/config"
	"document-portal-api/models"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMeetingRooms lists active meeting rooms
func GetMeetingRooms(c *gin.Context) {
	var rooms []models.MeetingRoom
	if err := config.DB.
		Where("is_active = ? AND delete_at IS NULL", true).
		Order("name ASC").
		Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meeting rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// CreateMeetingRoom adds a room (admin only, enforced by route)
func CreateMeetingRoom(c *gin.Context) {
	var req struct {
		Name      string  `json:"name" binding:"required"`
		Location  string  `json:"location"`
		Capacity  int     `json:"capacity" binding:"required,min=1"`
		Equipment *string `json:"equipment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	now := time.Now()
	room := models.MeetingRoom{
		Name:      req.Name,
		Location:  req.Location,
		Capacity:  req.Capacity,
		Equipment: req.Equipment,
		IsActive:  true,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meeting room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room": room})
}

// UpdateMeetingRoom edits a room (admin only, enforced by route)
func UpdateMeetingRoom(c *gin.Context) {
	roomID := c.Param("id")

	var room models.MeetingRoom
	if err := config.DB.
		Where("room_id = ? AND delete_at IS NULL", roomID).
		First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting room not found"})
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Location  *string `json:"location"`
		Capacity  *int    `json:"capacity"`
		Equipment *string `json:"equipment"`
		IsActive  *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"update_at": now}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Equipment != nil {
		updates["equipment"] = *req.Equipment
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := config.DB.Model(&room).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meeting room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meeting room updated successfully"})
}

// GetRoomBookings lists bookings for a room and day
func GetRoomBookings(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	query := config.DB.Preload("Booker").
		Where("room_id = ? AND delete_at IS NULL", roomID)

	if day := c.Query("date"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		dayEnd := parsed.AddDate(0, 0, 1)
		query = query.Where("start_time < ? AND end_time > ?", dayEnd, parsed)
	}

	var bookings []models.RoomBooking
	if err := query.Order("start_time ASC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CreateRoomBooking reserves a room slot if it does not overlap an
// existing booking
func CreateRoomBooking(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}
	userID := getActorID(c)

	var req struct {
		Title       string    `json:"title" binding:"required"`
		Description *string   `json:"description"`
		StartTime   time.Time `json:"start_time" binding:"required"`
		EndTime     time.Time `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if !req.EndTime.After(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be after start_time"})
		return
	}

	var booking models.RoomBooking
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var room models.MeetingRoom
		if err := tx.Where("room_id = ? AND is_active = ? AND delete_at IS NULL", roomID, true).
			First(&room).Error; err != nil {
			return err
		}

		// Overlap check and insert must share the transaction.
		var overlapping int64
		if err := tx.Model(&models.RoomBooking{}).
			Where("room_id = ? AND delete_at IS NULL AND start_time < ? AND end_time > ?",
				roomID, req.EndTime, req.StartTime).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return gorm.ErrDuplicatedKey
		}

		now := time.Now()
		booking = models.RoomBooking{
			RoomID:      roomID,
			BookedBy:    userID,
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			CreateAt:    &now,
			UpdateAt:    &now,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			c.JSON(http.StatusConflict, gin.H{"error": "Room is already booked for that time"})
			return
		}
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meeting room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// CancelRoomBooking soft deletes a booking; owners and admins only
func CancelRoomBooking(c *gin.Context) {
	bookingID := c.Param("booking_id")
	userID := getActorID(c)
	roleID, _ := c.Get("roleID")

	var booking models.RoomBooking
	if err := config.DB.
		Where("booking_id = ? AND delete_at IS NULL", bookingID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if booking.BookedBy != userID && roleID.(int) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	now := time.Now()
	booking.DeleteAt = &now
	if err := config.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
