package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"document-portal-api/models"
	"document-portal-api/repositories"

	"gorm.io/gorm"
)

// WorkflowAction names an operation that may advance a document's status.
type WorkflowAction string

const (
	ActionSubmit         WorkflowAction = "submit"
	ActionStartReview    WorkflowAction = "start_review"
	ActionCompleteReview WorkflowAction = "complete_review"
	ActionRequestChanges WorkflowAction = "request_changes"
	ActionApprove        WorkflowAction = "approve"
	ActionReject         WorkflowAction = "reject"
	ActionArchive        WorkflowAction = "archive"
	ActionPublish        WorkflowAction = "publish"
)

// workflowTransitions is the single source of truth for valid status
// transitions: current status -> action -> next status. Any pair missing
// here is refused.
var workflowTransitions = map[string]map[WorkflowAction]string{
	models.StatusDraft: {
		ActionSubmit: models.StatusPendingReview,
	},
	models.StatusPendingReview: {
		ActionStartReview: models.StatusInReview,
		ActionReject:      models.StatusRejected,
	},
	models.StatusInReview: {
		ActionCompleteReview: models.StatusPendingApproval,
		ActionRequestChanges: models.StatusChangesRequested,
	},
	models.StatusPendingApproval: {
		ActionApprove: models.StatusApproved,
		ActionReject:  models.StatusRejected,
	},
	models.StatusApproved: {
		ActionArchive: models.StatusArchived,
		ActionPublish: models.StatusPublished,
	},
}

// NextStatus resolves the status reached by applying action to current.
func NextStatus(current string, action WorkflowAction) (string, bool) {
	actions, ok := workflowTransitions[current]
	if !ok {
		return "", false
	}
	next, ok := actions[action]
	return next, ok
}

// defaultRestrictedDepartment is the department whose documents reviewers
// may not approve themselves; separation of duties for the department that
// administers the portal. Overridable via RESTRICTED_APPROVAL_DEPARTMENT.
const defaultRestrictedDepartment = "IT"

type ActionRequest struct {
	Comment   string
	IPAddress string
	UserAgent string
}

type BulkActionFailure struct {
	DocumentID int    `json:"document_id"`
	Reason     string `json:"reason"`
}

// BulkActionResult reports a best-effort batch: items succeed or fail
// independently, there is no atomicity across the batch.
type BulkActionResult struct {
	Succeeded []int               `json:"succeeded"`
	Failures  []BulkActionFailure `json:"failures"`
}

func (r BulkActionResult) AnySucceeded() bool {
	return len(r.Succeeded) > 0
}

type WorkflowService struct {
	txManager      repositories.TxManager
	documents      repositories.DocumentRepository
	history        repositories.DocumentHistoryRepository
	users          repositories.UserRepository
	notifier       Notifier
	restrictedDept string
}

func NewWorkflowService(
	txManager repositories.TxManager,
	documents repositories.DocumentRepository,
	history repositories.DocumentHistoryRepository,
	users repositories.UserRepository,
	notifier Notifier,
) *WorkflowService {
	restricted := strings.TrimSpace(os.Getenv("RESTRICTED_APPROVAL_DEPARTMENT"))
	if restricted == "" {
		restricted = defaultRestrictedDepartment
	}
	return &WorkflowService{
		txManager:      txManager,
		documents:      documents,
		history:        history,
		users:          users,
		notifier:       notifier,
		restrictedDept: restricted,
	}
}

// CanPerformAction is the permission gate for workflow actions. It is a
// pure function of the actor, the document and the action.
func (s *WorkflowService) CanPerformAction(actor Actor, doc models.Document, action WorkflowAction) bool {
	switch action {
	case ActionSubmit:
		return actor.UserID == doc.UploadedBy
	case ActionStartReview, ActionCompleteReview, ActionRequestChanges, ActionReject:
		return actor.IsAdmin() || actor.IsReviewer()
	case ActionApprove:
		if actor.IsAdmin() {
			return true
		}
		if !actor.IsReviewer() {
			return false
		}
		// Reviewers may not approve documents owned by the restricted
		// department.
		return doc.Department == nil || doc.Department.Name != s.restrictedDept
	case ActionArchive, ActionPublish:
		return actor.IsAdmin()
	default:
		return false
	}
}

// ExecuteAction applies a workflow action to a document inside one
// transaction: permission check, transition check, status update and the
// matching history row commit together or not at all.
func (s *WorkflowService) ExecuteAction(ctx context.Context, actorID, documentID int, action WorkflowAction, req ActionRequest) error {
	actor, actorUser, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return err
	}

	var updated models.Document
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		doc, err := s.documents.GetByIDForUpdate(ctx, tx, documentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newNotFound("document not found")
			}
			return newPersistence("failed to load document", err)
		}

		if !s.CanPerformAction(actor, doc, action) {
			return newAccessDenied(fmt.Sprintf("not allowed to %s this document", action))
		}

		next, ok := NextStatus(doc.Status, action)
		if !ok {
			return newInvalidTransition(fmt.Sprintf("cannot %s a document in status %s", action, doc.Status))
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":           next,
			"last_modified_at": now,
			"last_modified_by": actorID,
		}
		if err := s.documents.UpdateByID(ctx, tx, documentID, updates); err != nil {
			return newPersistence("failed to update document status", err)
		}

		oldStatus := doc.Status
		entry := models.DocumentHistory{
			DocumentID: documentID,
			UserID:     actorID,
			Action:     string(action),
			OldValue:   &oldStatus,
			NewValue:   &next,
			CreatedAt:  now,
		}
		if comment := strings.TrimSpace(req.Comment); comment != "" {
			entry.Description = &comment
		}
		if req.IPAddress != "" {
			ip := req.IPAddress
			entry.IPAddress = &ip
		}
		if req.UserAgent != "" {
			ua := req.UserAgent
			entry.UserAgent = &ua
		}
		if err := s.history.Create(ctx, tx, &entry); err != nil {
			return newPersistence("failed to record document history", err)
		}

		updated = doc
		updated.Status = next
		updated.LastModifiedAt = &now
		return nil
	})
	if err != nil {
		return wrapPersistence("workflow transaction failed", err)
	}

	if s.notifier != nil {
		s.notifier.DocumentActioned(updated, action, actorUser, req.Comment)
	}
	return nil
}

// ExecuteBulk applies the action to each document independently. One
// item's failure never rolls back the others.
func (s *WorkflowService) ExecuteBulk(ctx context.Context, actorID int, documentIDs []int, action WorkflowAction, req ActionRequest) BulkActionResult {
	result := BulkActionResult{
		Succeeded: []int{},
		Failures:  []BulkActionFailure{},
	}
	for _, id := range documentIDs {
		if err := s.ExecuteAction(ctx, actorID, id, action, req); err != nil {
			result.Failures = append(result.Failures, BulkActionFailure{
				DocumentID: id,
				Reason:     err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}

// History returns the audit trail of a document, newest first.
func (s *WorkflowService) History(ctx context.Context, documentID int, limit, offset int) ([]models.DocumentHistory, int64, error) {
	if _, err := s.documents.GetByID(ctx, nil, documentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, newNotFound("document not found")
		}
		return nil, 0, newPersistence("failed to load document", err)
	}

	total, err := s.history.CountByDocument(ctx, nil, documentID)
	if err != nil {
		return nil, 0, newPersistence("failed to count document history", err)
	}
	entries, err := s.history.ListByDocument(ctx, nil, documentID, limit, offset)
	if err != nil {
		return nil, 0, newPersistence("failed to load document history", err)
	}
	return entries, total, nil
}
