package controllers

import (
	"document-portal-api/config"
	"document-portal-api/models"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type statusCountRow struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

type departmentCountRow struct {
	DepartmentID   *int   `gorm:"column:department_id" json:"department_id"`
	DepartmentName string `gorm:"column:department_name" json:"department_name"`
	Count          int64  `gorm:"column:count" json:"count"`
	TotalBytes     int64  `gorm:"column:total_bytes" json:"total_bytes"`
}

// GetDashboardStats returns portal-wide document statistics
func GetDashboardStats(c *gin.Context) {
	var totalDocuments int64
	if err := config.DB.Model(&models.Document{}).
		Where("delete_at IS NULL").
		Count(&totalDocuments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count documents"})
		return
	}

	var byStatus []statusCountRow
	if err := config.DB.Model(&models.Document{}).
		Select("status, COUNT(*) AS count").
		Where("delete_at IS NULL").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate statuses"})
		return
	}

	var storageBytes int64
	if err := config.DB.Model(&models.Document{}).
		Where("delete_at IS NULL").
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&storageBytes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum storage"})
		return
	}

	var totalFolders int64
	if err := config.DB.Model(&models.DocumentFolder{}).
		Count(&totalFolders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count folders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_documents": totalDocuments,
		"total_folders":   totalFolders,
		"storage_bytes":   storageBytes,
		"by_status":       byStatus,
	})
}

// GetDepartmentSummary aggregates documents per department
func GetDepartmentSummary(c *gin.Context) {
	var rows []departmentCountRow
	err := config.DB.Model(&models.Document{}).
		Select("documents.department_id, COALESCE(departments.name, 'General') AS department_name, COUNT(*) AS count, COALESCE(SUM(documents.file_size), 0) AS total_bytes").
		Joins("LEFT JOIN departments ON departments.department_id = documents.department_id").
		Where("documents.delete_at IS NULL").
		Group("documents.department_id, departments.name").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": rows})
}

// GetRecentActivity lists the latest workflow history entries
func GetRecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var entries []models.DocumentHistory
	if err := config.DB.Preload("User").
		Order("created_at DESC, history_id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		item := historyItem(entry)
		item["document_id"] = entry.DocumentID
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"activity": items})
}
