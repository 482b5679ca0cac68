package services

import (
	"context"
	"testing"

	"document-portal-api/models"
)

func newWorkflowFixture(t *testing.T, docs []models.Document, users ...models.User) (*WorkflowService, *fakeDocumentRepository, *fakeHistoryRepository, *fakeNotifier) {
	t.Helper()
	t.Setenv("RESTRICTED_APPROVAL_DEPARTMENT", "")

	docRepo := newFakeDocumentRepository(docs...)
	userRepo := newFakeUserRepository(users...)
	docRepo.users = userRepo
	histRepo := &fakeHistoryRepository{}
	notifier := &fakeNotifier{}
	svc := NewWorkflowService(fakeTxManager{}, docRepo, histRepo, userRepo, notifier)
	return svc, docRepo, histRepo, notifier
}

func TestNextStatusTable(t *testing.T) {
	valid := map[string]map[WorkflowAction]string{
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
	actions := []WorkflowAction{
		ActionSubmit, ActionStartReview, ActionCompleteReview,
		ActionRequestChanges, ActionApprove, ActionReject,
		ActionArchive, ActionPublish,
	}

	for _, status := range models.DocumentStatuses {
		for _, action := range actions {
			next, ok := NextStatus(status, action)
			want, wantOK := valid[status][action]
			if ok != wantOK {
				t.Errorf("NextStatus(%s, %s) ok = %v, want %v", status, action, ok, wantOK)
				continue
			}
			if ok && next != want {
				t.Errorf("NextStatus(%s, %s) = %s, want %s", status, action, next, want)
			}
		}
	}

	// Terminal statuses have no way out.
	for _, status := range []string{models.StatusRejected, models.StatusChangesRequested, models.StatusArchived, models.StatusPublished} {
		for _, action := range actions {
			if _, ok := NextStatus(status, action); ok {
				t.Errorf("NextStatus(%s, %s) should be refused", status, action)
			}
		}
	}
}

func TestCanPerformActionMatrix(t *testing.T) {
	t.Setenv("RESTRICTED_APPROVAL_DEPARTMENT", "")
	svc := NewWorkflowService(fakeTxManager{}, nil, nil, nil, nil)

	itDept := models.Department{DepartmentID: 9, Name: "IT"}
	hrDept := models.Department{DepartmentID: 3, Name: "HR"}

	uploader := Actor{UserID: 10, RoleID: models.RoleEmployee}
	otherEmployee := Actor{UserID: 11, RoleID: models.RoleEmployee}
	reviewer := Actor{UserID: 20, RoleID: models.RoleReviewer}
	admin := Actor{UserID: 30, RoleID: models.RoleAdmin}

	doc := models.Document{DocumentID: 1, UploadedBy: 10, Department: &hrDept}
	itDoc := models.Document{DocumentID: 2, UploadedBy: 10, Department: &itDept}
	orphanDoc := models.Document{DocumentID: 3, UploadedBy: 10}

	cases := []struct {
		name   string
		actor  Actor
		doc    models.Document
		action WorkflowAction
		want   bool
	}{
		{"uploader submits own document", uploader, doc, ActionSubmit, true},
		{"other employee cannot submit", otherEmployee, doc, ActionSubmit, false},
		{"reviewer cannot submit for uploader", reviewer, doc, ActionSubmit, false},
		{"employee cannot start review", uploader, doc, ActionStartReview, false},
		{"reviewer starts review", reviewer, doc, ActionStartReview, true},
		{"admin starts review", admin, doc, ActionStartReview, true},
		{"reviewer completes review", reviewer, doc, ActionCompleteReview, true},
		{"reviewer requests changes", reviewer, doc, ActionRequestChanges, true},
		{"reviewer rejects", reviewer, doc, ActionReject, true},
		{"employee cannot reject", otherEmployee, doc, ActionReject, false},
		{"reviewer approves ordinary department", reviewer, doc, ActionApprove, true},
		{"reviewer cannot approve restricted department", reviewer, itDoc, ActionApprove, false},
		{"admin approves restricted department", admin, itDoc, ActionApprove, true},
		{"reviewer approves document without department", reviewer, orphanDoc, ActionApprove, true},
		{"employee cannot approve", uploader, doc, ActionApprove, false},
		{"reviewer cannot archive", reviewer, doc, ActionArchive, false},
		{"admin archives", admin, doc, ActionArchive, true},
		{"reviewer cannot publish", reviewer, doc, ActionPublish, false},
		{"admin publishes", admin, doc, ActionPublish, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.CanPerformAction(tc.actor, tc.doc, tc.action); got != tc.want {
				t.Errorf("CanPerformAction(%+v, doc %d, %s) = %v, want %v",
					tc.actor, tc.doc.DocumentID, tc.action, got, tc.want)
			}
		})
	}
}

func TestCanPerformActionRestrictedDepartmentOverride(t *testing.T) {
	t.Setenv("RESTRICTED_APPROVAL_DEPARTMENT", "Finance")
	svc := NewWorkflowService(fakeTxManager{}, nil, nil, nil, nil)

	reviewer := Actor{UserID: 20, RoleID: models.RoleReviewer}
	finDoc := models.Document{DocumentID: 1, Department: &models.Department{Name: "Finance"}}
	itDoc := models.Document{DocumentID: 2, Department: &models.Department{Name: "IT"}}

	if svc.CanPerformAction(reviewer, finDoc, ActionApprove) {
		t.Error("reviewer should not approve a Finance document when Finance is restricted")
	}
	if !svc.CanPerformAction(reviewer, itDoc, ActionApprove) {
		t.Error("reviewer should approve an IT document when Finance is restricted instead")
	}
}

func TestExecuteActionRecordsHistory(t *testing.T) {
	uploader := models.User{UserID: 10, UserFname: "Anan", Email: "anan@example.com", RoleID: models.RoleEmployee}
	doc := models.Document{DocumentID: 1, Status: models.StatusDraft, UploadedBy: 10}
	svc, docRepo, histRepo, notifier := newWorkflowFixture(t, []models.Document{doc}, uploader)

	req := ActionRequest{Comment: "ready for review", IPAddress: "10.0.0.5", UserAgent: "portal-web"}
	if err := svc.ExecuteAction(context.Background(), 10, 1, ActionSubmit, req); err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	got, _ := docRepo.GetByID(context.Background(), nil, 1)
	if got.Status != models.StatusPendingReview {
		t.Errorf("status = %s, want %s", got.Status, models.StatusPendingReview)
	}
	if got.LastModifiedBy == nil || *got.LastModifiedBy != 10 {
		t.Errorf("last_modified_by = %v, want 10", got.LastModifiedBy)
	}

	entries := histRepo.forDocument(1)
	if len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Action != string(ActionSubmit) {
		t.Errorf("history action = %s, want %s", entry.Action, ActionSubmit)
	}
	if entry.OldValue == nil || *entry.OldValue != models.StatusDraft {
		t.Errorf("history old_value = %v, want %s", entry.OldValue, models.StatusDraft)
	}
	if entry.NewValue == nil || *entry.NewValue != models.StatusPendingReview {
		t.Errorf("history new_value = %v, want %s", entry.NewValue, models.StatusPendingReview)
	}
	if entry.Description == nil || *entry.Description != "ready for review" {
		t.Errorf("history description = %v, want comment", entry.Description)
	}
	if entry.IPAddress == nil || *entry.IPAddress != "10.0.0.5" {
		t.Errorf("history ip_address = %v, want 10.0.0.5", entry.IPAddress)
	}

	if len(notifier.actions) != 1 || notifier.actions[0] != ActionSubmit {
		t.Errorf("notifier actions = %v, want [submit]", notifier.actions)
	}
	if len(notifier.docs) == 1 {
		notified := notifier.docs[0]
		if notified.Status != models.StatusPendingReview {
			t.Errorf("notified document status = %s, want %s", notified.Status, models.StatusPendingReview)
		}
		// The uploader relation must be on the notified document or the
		// email notifier has no recipient.
		if notified.Uploader.Email != "anan@example.com" {
			t.Errorf("notified uploader email = %q, want anan@example.com", notified.Uploader.Email)
		}
	}
}

func TestExecuteActionInvalidTransitionLeavesNoTrace(t *testing.T) {
	reviewer := models.User{UserID: 20, RoleID: models.RoleReviewer}
	doc := models.Document{DocumentID: 1, Status: models.StatusDraft, UploadedBy: 10}
	svc, docRepo, histRepo, notifier := newWorkflowFixture(t, []models.Document{doc}, reviewer)

	err := svc.ExecuteAction(context.Background(), 20, 1, ActionStartReview, ActionRequest{})
	if KindOf(err) != KindInvalidTransition {
		t.Fatalf("error kind = %v, want invalid transition (err: %v)", KindOf(err), err)
	}

	got, _ := docRepo.GetByID(context.Background(), nil, 1)
	if got.Status != models.StatusDraft {
		t.Errorf("status changed to %s on refused action", got.Status)
	}
	if len(histRepo.entries) != 0 {
		t.Errorf("refused action wrote %d history rows", len(histRepo.entries))
	}
	if len(notifier.actions) != 0 {
		t.Errorf("refused action notified anyway")
	}
}

func TestExecuteActionPermissionDenied(t *testing.T) {
	other := models.User{UserID: 11, RoleID: models.RoleEmployee}
	doc := models.Document{DocumentID: 1, Status: models.StatusDraft, UploadedBy: 10}
	svc, docRepo, histRepo, _ := newWorkflowFixture(t, []models.Document{doc}, other)

	err := svc.ExecuteAction(context.Background(), 11, 1, ActionSubmit, ActionRequest{})
	if KindOf(err) != KindAccessDenied {
		t.Fatalf("error kind = %v, want access denied (err: %v)", KindOf(err), err)
	}

	got, _ := docRepo.GetByID(context.Background(), nil, 1)
	if got.Status != models.StatusDraft {
		t.Errorf("status changed to %s on denied action", got.Status)
	}
	if len(histRepo.entries) != 0 {
		t.Errorf("denied action wrote %d history rows", len(histRepo.entries))
	}
}

func TestExecuteActionNotFound(t *testing.T) {
	user := models.User{UserID: 10, RoleID: models.RoleEmployee}
	svc, _, _, _ := newWorkflowFixture(t, nil, user)

	if err := svc.ExecuteAction(context.Background(), 10, 99, ActionSubmit, ActionRequest{}); KindOf(err) != KindNotFound {
		t.Errorf("missing document: kind = %v, want not found", KindOf(err))
	}
	if err := svc.ExecuteAction(context.Background(), 99, 1, ActionSubmit, ActionRequest{}); KindOf(err) != KindNotFound {
		t.Errorf("missing actor: kind = %v, want not found", KindOf(err))
	}
}

func TestExecuteBulkPartialResult(t *testing.T) {
	reviewer := models.User{UserID: 20, RoleID: models.RoleReviewer}
	docs := []models.Document{
		{DocumentID: 1, Status: models.StatusPendingReview, UploadedBy: 10},
		{DocumentID: 2, Status: models.StatusDraft, UploadedBy: 10},
		{DocumentID: 3, Status: models.StatusPendingReview, UploadedBy: 10},
	}
	svc, docRepo, histRepo, _ := newWorkflowFixture(t, docs, reviewer)

	result := svc.ExecuteBulk(context.Background(), 20, []int{1, 2, 3}, ActionStartReview, ActionRequest{})

	if !result.AnySucceeded() {
		t.Fatal("expected some documents to succeed")
	}
	if len(result.Succeeded) != 2 {
		t.Errorf("succeeded = %v, want [1 3]", result.Succeeded)
	}
	if len(result.Failures) != 1 || result.Failures[0].DocumentID != 2 {
		t.Errorf("failures = %v, want one failure for document 2", result.Failures)
	}

	// The failing item rolls nothing back for the others.
	for _, id := range []int{1, 3} {
		got, _ := docRepo.GetByID(context.Background(), nil, id)
		if got.Status != models.StatusInReview {
			t.Errorf("document %d status = %s, want %s", id, got.Status, models.StatusInReview)
		}
	}
	got, _ := docRepo.GetByID(context.Background(), nil, 2)
	if got.Status != models.StatusDraft {
		t.Errorf("document 2 status = %s, want unchanged draft", got.Status)
	}
	if len(histRepo.entries) != 2 {
		t.Errorf("history rows = %d, want 2", len(histRepo.entries))
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	uploader := models.User{UserID: 10, RoleID: models.RoleEmployee}
	reviewer := models.User{UserID: 20, RoleID: models.RoleReviewer}
	doc := models.Document{DocumentID: 1, Status: models.StatusDraft, UploadedBy: 10}
	svc, _, _, _ := newWorkflowFixture(t, []models.Document{doc}, uploader, reviewer)

	ctx := context.Background()
	if err := svc.ExecuteAction(ctx, 10, 1, ActionSubmit, ActionRequest{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.ExecuteAction(ctx, 20, 1, ActionStartReview, ActionRequest{}); err != nil {
		t.Fatalf("start_review: %v", err)
	}

	entries, total, err := svc.History(ctx, 1, 10, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Action != string(ActionStartReview) || entries[1].Action != string(ActionSubmit) {
		t.Errorf("entries not newest first: %s, %s", entries[0].Action, entries[1].Action)
	}

	paged, _, err := svc.History(ctx, 1, 1, 1)
	if err != nil {
		t.Fatalf("History paged: %v", err)
	}
	if len(paged) != 1 || paged[0].Action != string(ActionSubmit) {
		t.Errorf("paged entries = %v, want the submit row", paged)
	}

	if _, _, err := svc.History(ctx, 99, 10, 0); KindOf(err) != KindNotFound {
		t.Errorf("missing document: kind = %v, want not found", KindOf(err))
	}
}
