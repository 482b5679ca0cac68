package controllers

import (
	"document-portal-api/config"
	"document-portal-api/models"
	"document-portal-api/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetPhoneExtensions lists directory entries, optionally filtered
func GetPhoneExtensions(c *gin.Context) {
	query := config.DB.Preload("Department").
		Where("is_active = ? AND delete_at IS NULL", true)

	if search := utils.SanitizeInput(c.Query("q")); search != "" {
		like := "%" + search + "%"
		query = query.Where("display_name LIKE ? OR extension LIKE ?", like, like)
	}
	if deptID := c.Query("department_id"); deptID != "" {
		query = query.Where("department_id = ?", deptID)
	}

	var extensions []models.PhoneExtension
	if err := query.Order("display_name ASC").Find(&extensions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch extensions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"extensions": extensions,
		"total":      len(extensions),
	})
}

// CreatePhoneExtension adds a directory entry (admin only, enforced by
// route)
func CreatePhoneExtension(c *gin.Context) {
	var req struct {
		Extension    string  `json:"extension" binding:"required"`
		DisplayName  string  `json:"display_name" binding:"required"`
		DepartmentID *int    `json:"department_id"`
		Room         *string `json:"room"`
		Email        *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if !utils.ValidateExtension(req.Extension) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Extension must be 2-6 digits"})
		return
	}
	if req.Email != nil && !utils.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	now := time.Now()
	extension := models.PhoneExtension{
		Extension:    req.Extension,
		DisplayName:  utils.SanitizeInput(req.DisplayName),
		DepartmentID: req.DepartmentID,
		Room:         req.Room,
		Email:        req.Email,
		IsActive:     true,
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if err := config.DB.Create(&extension).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create extension"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"extension": extension})
}

// UpdatePhoneExtension edits a directory entry (admin only, enforced by
// route)
func UpdatePhoneExtension(c *gin.Context) {
	extensionID := c.Param("id")

	var entry models.PhoneExtension
	if err := config.DB.
		Where("extension_id = ? AND delete_at IS NULL", extensionID).
		First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Extension not found"})
		return
	}

	var req struct {
		Extension    *string `json:"extension"`
		DisplayName  *string `json:"display_name"`
		DepartmentID *int    `json:"department_id"`
		Room         *string `json:"room"`
		Email        *string `json:"email"`
		IsActive     *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"update_at": now}
	if req.Extension != nil {
		if !utils.ValidateExtension(*req.Extension) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Extension must be 2-6 digits"})
			return
		}
		updates["extension"] = *req.Extension
	}
	if req.DisplayName != nil {
		updates["display_name"] = utils.SanitizeInput(*req.DisplayName)
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.Room != nil {
		updates["room"] = *req.Room
	}
	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
			return
		}
		updates["email"] = *req.Email
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := config.DB.Model(&entry).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update extension"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Extension updated successfully"})
}

// DeletePhoneExtension soft deletes a directory entry (admin only,
// enforced by route)
func DeletePhoneExtension(c *gin.Context) {
	extensionID := c.Param("id")

	var entry models.PhoneExtension
	if err := config.DB.
		Where("extension_id = ? AND delete_at IS NULL", extensionID).
		First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Extension not found"})
		return
	}

	now := time.Now()
	entry.DeleteAt = &now
	if err := config.DB.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete extension"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Extension deleted successfully"})
}
