package controllers

import (
	"document-portal-api/config"
	"document-portal-api/models"
	"document-portal-api/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDepartments lists active departments
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.
		Where("is_active = ? AND delete_at IS NULL", true).
		Order("name ASC").
		Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// AdminCreateDepartment adds a department (admin only, enforced by
// route)
func AdminCreateDepartment(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	name := utils.SanitizeInput(req.Name)
	var existing int64
	if err := config.DB.Model(&models.Department{}).
		Where("name = ? AND delete_at IS NULL", name).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check department name"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Department already exists"})
		return
	}

	now := time.Now()
	department := models.Department{
		Name:     name,
		IsActive: true,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"department": department})
}

// AdminUpdateDepartment renames or toggles a department (admin only,
// enforced by route)
func AdminUpdateDepartment(c *gin.Context) {
	departmentID := c.Param("id")

	var department models.Department
	if err := config.DB.
		Where("department_id = ? AND delete_at IS NULL", departmentID).
		First(&department).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"update_at": now}
	if req.Name != nil {
		updates["name"] = utils.SanitizeInput(*req.Name)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := config.DB.Model(&department).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department updated successfully"})
}

// AdminDeleteDepartment removes a department that no user, document or
// folder still references (admin only, enforced by route)
func AdminDeleteDepartment(c *gin.Context) {
	departmentID := c.Param("id")

	var department models.Department
	if err := config.DB.
		Where("department_id = ? AND delete_at IS NULL", departmentID).
		First(&department).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	var inUse int64
	if err := config.DB.Model(&models.User{}).
		Where("department_id = ? AND delete_at IS NULL", department.DepartmentID).
		Count(&inUse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check department usage"})
		return
	}
	if inUse == 0 {
		if err := config.DB.Model(&models.Document{}).
			Where("department_id = ? AND delete_at IS NULL", department.DepartmentID).
			Count(&inUse).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check department usage"})
			return
		}
	}
	if inUse == 0 {
		if err := config.DB.Model(&models.DocumentFolder{}).
			Where("department_id = ?", department.DepartmentID).
			Count(&inUse).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check department usage"})
			return
		}
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Department is still in use"})
		return
	}

	now := time.Now()
	department.DeleteAt = &now
	if err := config.DB.Save(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
