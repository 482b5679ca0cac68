package controllers

import (
	"document-portal-api/config"
	"document-portal-api/models"
	"document-portal-api/utils"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var allowedUploadTypes = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".txt":  true,
}

func uploadBasePath() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// canSeeDocument mirrors the folder visibility rule: admins and
// reviewers see everything, others see general documents, their own
// department's and their own uploads.
func canSeeDocument(userID, roleID int, departmentID *int, doc models.Document) bool {
	if roleID == models.RoleAdmin || roleID == models.RoleReviewer {
		return true
	}
	if doc.UploadedBy == userID {
		return true
	}
	if doc.DepartmentID == nil {
		return true
	}
	return departmentID != nil && *departmentID == *doc.DepartmentID
}

func actorDepartmentID(c *gin.Context) *int {
	if v, ok := c.Get("departmentID"); ok {
		if id, ok := v.(int); ok {
			return &id
		}
	}
	return nil
}

// UploadDocument stores a new document in Draft status
func UploadDocument(c *gin.Context) {
	userID := getActorID(c)
	roleID, _ := c.Get("roleID")

	// Get uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Validate file size
	maxSize := int64(50 * 1024 * 1024) // 50MB
	if file.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 50MB limit"})
		return
	}

	// Validate file type
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadTypes[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	description := utils.SanitizeInput(c.PostForm("description"))

	// Department scope defaults to the uploader's own department;
	// admins may file documents under any department.
	departmentID := actorDepartmentID(c)
	if raw := c.PostForm("department_id"); raw != "" {
		requested, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department_id"})
			return
		}
		if roleID.(int) != models.RoleAdmin && (departmentID == nil || *departmentID != requested) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot upload for another department"})
			return
		}
		departmentID = &requested
	}

	var folderID *int
	if raw := c.PostForm("folder_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder_id"})
			return
		}
		folderID = &parsed
	}

	// Opaque storage key; the original name only lives in the database.
	storedFilename := uuid.New().String() + ext
	fullPath := filepath.Join(uploadBasePath(), storedFilename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	document := models.Document{
		OriginalFilename: file.Filename,
		StoredFilename:   storedFilename,
		ContentType:      file.Header.Get("Content-Type"),
		FileSize:         file.Size,
		Description:      description,
		Status:           models.StatusDraft,
		Version:          1,
		DepartmentID:     departmentID,
		FolderID:         folderID,
		UploadedBy:       userID,
		UploadedAt:       &now,
		LastModifiedAt:   &now,
	}

	// Document row and its upload history commit together or not at all.
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&document).Error; err != nil {
			return err
		}
		newStatus := models.StatusDraft
		history := models.DocumentHistory{
			DocumentID: document.DocumentID,
			UserID:     userID,
			Action:     "upload",
			NewValue:   &newStatus,
			CreatedAt:  now,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		// Delete uploaded file if database save fails
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"document": document,
	})
}

// GetDocuments lists documents visible to the caller
func GetDocuments(c *gin.Context) {
	userID := getActorID(c)
	roleID, _ := c.Get("roleID")
	departmentID := actorDepartmentID(c)

	query := config.DB.Model(&models.Document{}).
		Preload("Department").Preload("Folder").Preload("Uploader").
		Where("delete_at IS NULL")

	if roleID.(int) != models.RoleAdmin && roleID.(int) != models.RoleReviewer {
		if departmentID != nil {
			query = query.Where("department_id IS NULL OR department_id = ? OR uploaded_by = ?", *departmentID, userID)
		} else {
			query = query.Where("department_id IS NULL OR uploaded_by = ?", userID)
		}
	}

	if status := c.Query("status"); status != "" {
		if !models.IsValidDocumentStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if folderIDStr := c.Query("folder_id"); folderIDStr != "" {
		folderID, err := strconv.Atoi(folderIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder_id"})
			return
		}
		query = query.Where("folder_id = ?", folderID)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count documents"})
		return
	}

	var documents []models.Document
	if err := query.Order("uploaded_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// GetDocument returns one document's metadata
func GetDocument(c *gin.Context) {
	documentID := c.Param("id")
	userID := getActorID(c)
	roleID, _ := c.Get("roleID")

	var document models.Document
	if err := config.DB.Preload("Department").Preload("Folder").Preload("Uploader").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if !canSeeDocument(userID, roleID.(int), actorDepartmentID(c), document) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": document})
}

// DownloadDocument streams the stored file
func DownloadDocument(c *gin.Context) {
	documentID := c.Param("id")
	userID := getActorID(c)
	roleID, _ := c.Get("roleID")

	var document models.Document
	if err := config.DB.
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if !canSeeDocument(userID, roleID.(int), actorDepartmentID(c), document) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	fullPath := filepath.Join(uploadBasePath(), document.StoredFilename)
	if _, err := os.Stat(fullPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}

	c.FileAttachment(fullPath, document.OriginalFilename)
}

// UploadDocumentVersion replaces the stored file and bumps the version
func UploadDocumentVersion(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}
	userID := getActorID(c)

	var document models.Document
	if err := config.DB.
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	// Only the uploader may push new versions
	if document.UploadedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadTypes[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	storedFilename := uuid.New().String() + ext
	fullPath := filepath.Join(uploadBasePath(), storedFilename)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	oldVersion := strconv.Itoa(document.Version)
	newVersion := strconv.Itoa(document.Version + 1)

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"original_filename": file.Filename,
			"stored_filename":   storedFilename,
			"content_type":      file.Header.Get("Content-Type"),
			"file_size":         file.Size,
			"version":           document.Version + 1,
			"last_modified_at":  now,
			"last_modified_by":  userID,
		}
		if err := tx.Model(&models.Document{}).
			Where("document_id = ?", documentID).
			Updates(updates).Error; err != nil {
			return err
		}

		action := "new_version"
		history := models.DocumentHistory{
			DocumentID: documentID,
			UserID:     userID,
			Action:     action,
			OldValue:   &oldVersion,
			NewValue:   &newVersion,
			CreatedAt:  now,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "New version uploaded successfully",
		"version": document.Version + 1,
	})
}

// UpdateDocumentDescription edits the free-text description
func UpdateDocumentDescription(c *gin.Context) {
	documentID := c.Param("id")
	userID := getActorID(c)
	roleID, _ := c.Get("roleID")

	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var document models.Document
	if err := config.DB.
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if document.UploadedBy != userID && roleID.(int) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.Document{}).
		Where("document_id = ?", document.DocumentID).
		Updates(map[string]interface{}{
			"description":      utils.SanitizeInput(req.Description),
			"last_modified_at": now,
			"last_modified_by": userID,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document updated successfully"})
}

// MoveDocument reassigns a document to a folder (or the root when the
// folder id is omitted)
func MoveDocument(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var req struct {
		FolderID *int `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := folderService.MoveDocumentToFolder(c.Request.Context(), getActorID(c), documentID, req.FolderID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document moved successfully"})
}
