package controllers

import (
	"document-portal-api/models"
	"document-portal-api/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var workflowActions = map[string]services.WorkflowAction{
	"submit":          services.ActionSubmit,
	"start_review":    services.ActionStartReview,
	"complete_review": services.ActionCompleteReview,
	"request_changes": services.ActionRequestChanges,
	"approve":         services.ActionApprove,
	"reject":          services.ActionReject,
	"archive":         services.ActionArchive,
	"publish":         services.ActionPublish,
}

type workflowActionRequest struct {
	Comment string `json:"comment"`
}

// ExecuteWorkflowAction applies a single workflow action to a document
func ExecuteWorkflowAction(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	action, ok := workflowActions[c.Param("action")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown workflow action"})
		return
	}

	var req workflowActionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
	}

	err = workflowService.ExecuteAction(c.Request.Context(), getActorID(c), documentID, action, services.ActionRequest{
		Comment:   req.Comment,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Action applied successfully",
	})
}

// ExecuteBulkWorkflowAction applies one action to many documents,
// best-effort
func ExecuteBulkWorkflowAction(c *gin.Context) {
	var req struct {
		DocumentIDs []int  `json:"document_ids" binding:"required,min=1"`
		Action      string `json:"action" binding:"required"`
		Comment     string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	action, ok := workflowActions[req.Action]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown workflow action"})
		return
	}

	result := workflowService.ExecuteBulk(c.Request.Context(), getActorID(c), req.DocumentIDs, action, services.ActionRequest{
		Comment:   req.Comment,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	status := http.StatusOK
	if !result.AnySucceeded() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{
		"success": result.AnySucceeded(),
		"applied": len(result.Succeeded),
		"failed":  len(result.Failures),
		"result":  result,
	})
}

// GetDocumentHistory returns the audit trail of a document
func GetDocumentHistory(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, total, err := workflowService.History(c.Request.Context(), documentID, limit, (page-1)*limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyItem(entry))
	}

	c.JSON(http.StatusOK, gin.H{
		"history": items,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func historyItem(entry models.DocumentHistory) gin.H {
	item := gin.H{
		"history_id": entry.HistoryID,
		"action":     entry.Action,
		"actor":      entry.User.FullName(),
		"created_at": entry.CreatedAt,
	}
	if entry.Description != nil {
		item["description"] = *entry.Description
	}
	if entry.OldValue != nil {
		item["old_value"] = *entry.OldValue
	}
	if entry.NewValue != nil {
		item["new_value"] = *entry.NewValue
	}
	return item
}
