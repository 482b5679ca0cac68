package controllers

import (
	"net/http"
	"os"

	"document-portal-api/config"
	"document-portal-api/repositories"
	"document-portal-api/services"

	"github.com/gin-gonic/gin"
)

var (
	workflowService *services.WorkflowService
	folderService   *services.FolderService
)

// InitServices wires the service layer against the live database. Must
// run after config.InitDB.
func InitServices() {
	repos := repositories.NewGormContainer(config.DB)

	var notifier services.Notifier = services.NewLogNotifier()
	if os.Getenv("SMTP_HOST") != "" {
		notifier = services.NewEmailNotifier()
	}

	workflowService = services.NewWorkflowService(
		repos.TxManager, repos.Documents, repos.History, repos.Users, notifier,
	)
	folderService = services.NewFolderService(
		repos.TxManager, repos.Folders, repos.Documents, repos.Users,
	)
}

// respondServiceError maps service error kinds to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindAccessDenied:
		status = http.StatusForbidden
	case services.KindInvalidTransition, services.KindPolicyViolation:
		status = http.StatusConflict
	}

	body := gin.H{"error": err.Error()}
	if kind != 0 {
		body["code"] = kind.String()
	}
	if status == http.StatusInternalServerError {
		body["error"] = "Internal server error"
	}
	c.JSON(status, body)
}

func getActorID(c *gin.Context) int {
	userID, _ := c.Get("userID")
	id, _ := userID.(int)
	return id
}
