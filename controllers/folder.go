package controllers

import (
	"document-portal-api/services"
	"document-portal-api/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type createFolderRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	Color        string  `json:"color"`
	Icon         string  `json:"icon"`
	DisplayOrder int     `json:"display_order"`
	ParentID     *int    `json:"parent_id"`
	DepartmentID *int    `json:"department_id"`
}

type updateFolderRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
}

// CreateFolder creates a folder under an optional parent
func CreateFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	folder, err := folderService.CreateFolder(c.Request.Context(), getActorID(c), services.CreateFolderRequest{
		Name:         utils.SanitizeInput(req.Name),
		Description:  req.Description,
		Color:        req.Color,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		ParentID:     req.ParentID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Folder created successfully",
		"folder":  folder,
	})
}

// UpdateFolder edits folder display fields
func UpdateFolder(c *gin.Context) {
	folderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder ID"})
		return
	}

	var req updateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	folder, err := folderService.UpdateFolder(c.Request.Context(), getActorID(c), folderID, services.UpdateFolderRequest{
		Name:         req.Name,
		Description:  req.Description,
		Color:        req.Color,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Folder updated successfully",
		"folder":  folder,
	})
}

// MoveFolder reparents a folder
func MoveFolder(c *gin.Context) {
	folderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder ID"})
		return
	}

	var req struct {
		ParentID *int `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := folderService.MoveFolder(c.Request.Context(), getActorID(c), folderID, req.ParentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder moved successfully"})
}

// DeleteFolder removes an empty, non-system folder
func DeleteFolder(c *gin.Context) {
	folderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder ID"})
		return
	}

	if err := folderService.DeleteFolder(c.Request.Context(), getActorID(c), folderID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully"})
}

// GetFolderTree lists the visible children of a folder (or the root)
func GetFolderTree(c *gin.Context) {
	var parentID *int
	if raw := c.Query("parent_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent_id"})
			return
		}
		parentID = &parsed
	}

	nodes, err := folderService.ListChildren(c.Request.Context(), getActorID(c), parentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": nodes})
}

// GetFolderBreadcrumbs returns the ancestor chain of a folder, root first
func GetFolderBreadcrumbs(c *gin.Context) {
	folderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder ID"})
		return
	}

	chain, err := folderService.Breadcrumbs(c.Request.Context(), folderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breadcrumbs": chain})
}
