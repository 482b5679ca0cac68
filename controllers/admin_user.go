package controllers

import (
	"document-portal-api/config"
	"document-portal-api/models"
	"document-portal-api/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminListUsers returns all users (admin only, enforced by route)
func AdminListUsers(c *gin.Context) {
	query := config.DB.Preload("Role").Preload("Department").
		Where("delete_at IS NULL")

	if deptID := c.Query("department_id"); deptID != "" {
		query = query.Where("department_id = ?", deptID)
	}
	if roleID := c.Query("role_id"); roleID != "" {
		query = query.Where("role_id = ?", roleID)
	}

	var users []models.User
	if err := query.Order("user_fname ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

// AdminCreateUser registers a new portal user (admin only, enforced by
// route)
func AdminCreateUser(c *gin.Context) {
	var req struct {
		UserFname    string `json:"user_fname" binding:"required"`
		UserLname    string `json:"user_lname"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required"`
		RoleID       int    `json:"role_id" binding:"required"`
		DepartmentID *int   `json:"department_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if req.RoleID != models.RoleEmployee && req.RoleID != models.RoleReviewer && req.RoleID != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role_id"})
		return
	}

	var existing int64
	if err := config.DB.Model(&models.User{}).
		Where("email = ? AND delete_at IS NULL", req.Email).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		UserFname:    utils.SanitizeInput(req.UserFname),
		UserLname:    utils.SanitizeInput(req.UserLname),
		Email:        req.Email,
		Password:     string(hashed),
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// AdminUpdateUser edits role, department or names (admin only, enforced
// by route)
func AdminUpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req struct {
		UserFname    *string `json:"user_fname"`
		UserLname    *string `json:"user_lname"`
		RoleID       *int    `json:"role_id"`
		DepartmentID *int    `json:"department_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"update_at": now}
	if req.UserFname != nil {
		updates["user_fname"] = utils.SanitizeInput(*req.UserFname)
	}
	if req.UserLname != nil {
		updates["user_lname"] = utils.SanitizeInput(*req.UserLname)
	}
	if req.RoleID != nil {
		if *req.RoleID != models.RoleEmployee && *req.RoleID != models.RoleReviewer && *req.RoleID != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role_id"})
			return
		}
		updates["role_id"] = *req.RoleID
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// AdminResetPassword sets a new password for a user (admin only,
// enforced by route)
func AdminResetPassword(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var user models.User
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user.Password = string(hashed)
	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// AdminDeactivateUser soft deletes a user account (admin only, enforced
// by route)
func AdminDeactivateUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == getActorID(c) {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot deactivate your own account"})
		return
	}

	now := time.Now()
	user.DeleteAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}
