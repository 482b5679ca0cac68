package services

import (
	"context"
	"sort"
	"time"

	"document-portal-api/models"

	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They keep the service
// tests independent of MySQL while preserving the query semantics the
// gorm implementations have.

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeUserRepository struct {
	users map[int]models.User
}

func newFakeUserRepository(users ...models.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: map[int]models.User{}}
	for _, u := range users {
		repo.users[u.UserID] = u
	}
	return repo
}

func (r *fakeUserRepository) GetByID(ctx context.Context, tx *gorm.DB, userID int) (models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeDocumentRepository struct {
	docs map[int]*models.Document
	// users mirrors the Uploader preload the gorm repository performs.
	users *fakeUserRepository
}

func newFakeDocumentRepository(docs ...models.Document) *fakeDocumentRepository {
	repo := &fakeDocumentRepository{docs: map[int]*models.Document{}}
	for i := range docs {
		doc := docs[i]
		repo.docs[doc.DocumentID] = &doc
	}
	return repo
}

func (r *fakeDocumentRepository) GetByID(ctx context.Context, tx *gorm.DB, documentID int) (models.Document, error) {
	doc, ok := r.docs[documentID]
	if !ok {
		return models.Document{}, gorm.ErrRecordNotFound
	}
	out := *doc
	if r.users != nil {
		if uploader, ok := r.users.users[out.UploadedBy]; ok {
			out.Uploader = uploader
		}
	}
	return out, nil
}

func (r *fakeDocumentRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, documentID int) (models.Document, error) {
	return r.GetByID(ctx, tx, documentID)
}

func (r *fakeDocumentRepository) UpdateByID(ctx context.Context, tx *gorm.DB, documentID int, updates map[string]interface{}) error {
	doc, ok := r.docs[documentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "status":
			doc.Status = value.(string)
		case "last_modified_at":
			ts := value.(time.Time)
			doc.LastModifiedAt = &ts
		case "last_modified_by":
			id := value.(int)
			doc.LastModifiedBy = &id
		case "folder_id":
			if value == nil {
				doc.FolderID = nil
			} else {
				id := value.(int)
				doc.FolderID = &id
			}
		}
	}
	return nil
}

func (r *fakeDocumentRepository) CountByFolder(ctx context.Context, tx *gorm.DB, folderID int) (int64, error) {
	var count int64
	for _, doc := range r.docs {
		if doc.FolderID != nil && *doc.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

func (r *fakeDocumentRepository) ListByFolderIDs(ctx context.Context, tx *gorm.DB, folderIDs []int) ([]models.Document, error) {
	wanted := map[int]bool{}
	for _, id := range folderIDs {
		wanted[id] = true
	}
	out := []models.Document{}
	for _, doc := range r.docs {
		if doc.FolderID != nil && wanted[*doc.FolderID] {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentID < out[j].DocumentID })
	return out, nil
}

type fakeHistoryRepository struct {
	entries []models.DocumentHistory
}

func (r *fakeHistoryRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.DocumentHistory) error {
	entry.HistoryID = len(r.entries) + 1
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepository) ListByDocument(ctx context.Context, tx *gorm.DB, documentID int, limit, offset int) ([]models.DocumentHistory, error) {
	matched := []models.DocumentHistory{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].DocumentID == documentID {
			matched = append(matched, r.entries[i])
		}
	}
	if offset >= len(matched) {
		return []models.DocumentHistory{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeHistoryRepository) CountByDocument(ctx context.Context, tx *gorm.DB, documentID int) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if e.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeHistoryRepository) forDocument(documentID int) []models.DocumentHistory {
	out := []models.DocumentHistory{}
	for _, e := range r.entries {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out
}

type fakeFolderRepository struct {
	folders map[int]*models.DocumentFolder
	nextID  int
}

func newFakeFolderRepository(folders ...models.DocumentFolder) *fakeFolderRepository {
	repo := &fakeFolderRepository{folders: map[int]*models.DocumentFolder{}, nextID: 1}
	for i := range folders {
		f := folders[i]
		repo.folders[f.FolderID] = &f
		if f.FolderID >= repo.nextID {
			repo.nextID = f.FolderID + 1
		}
	}
	return repo
}

func (r *fakeFolderRepository) GetByID(ctx context.Context, tx *gorm.DB, folderID int) (models.DocumentFolder, error) {
	folder, ok := r.folders[folderID]
	if !ok {
		return models.DocumentFolder{}, gorm.ErrRecordNotFound
	}
	return *folder, nil
}

func (r *fakeFolderRepository) Create(ctx context.Context, tx *gorm.DB, folder *models.DocumentFolder) error {
	folder.FolderID = r.nextID
	r.nextID++
	stored := *folder
	r.folders[folder.FolderID] = &stored
	return nil
}

func (r *fakeFolderRepository) UpdateByID(ctx context.Context, tx *gorm.DB, folderID int, updates map[string]interface{}) error {
	folder, ok := r.folders[folderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			folder.Name = value.(string)
		case "path":
			folder.Path = value.(string)
		case "level":
			folder.Level = value.(int)
		case "parent_id":
			if value == nil {
				folder.ParentID = nil
			} else {
				id := value.(int)
				folder.ParentID = &id
			}
		case "description":
			desc := value.(string)
			folder.Description = &desc
		case "color":
			folder.Color = value.(string)
		case "icon":
			folder.Icon = value.(string)
		case "display_order":
			folder.DisplayOrder = value.(int)
		case "updated_by":
			id := value.(int)
			folder.UpdatedBy = &id
		case "update_at":
			ts := value.(time.Time)
			folder.UpdateAt = &ts
		}
	}
	return nil
}

func (r *fakeFolderRepository) DeleteByID(ctx context.Context, tx *gorm.DB, folderID int) error {
	if _, ok := r.folders[folderID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.folders, folderID)
	return nil
}

func (r *fakeFolderRepository) ListByParent(ctx context.Context, tx *gorm.DB, parentID *int) ([]models.DocumentFolder, error) {
	out := []models.DocumentFolder{}
	for _, f := range r.folders {
		if sameParent(f.ParentID, parentID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FolderID < out[j].FolderID })
	return out, nil
}

func (r *fakeFolderRepository) CountSiblingsByName(ctx context.Context, tx *gorm.DB, parentID *int, departmentID *int, name string, excludeID int) (int64, error) {
	var count int64
	for _, f := range r.folders {
		if !sameParent(f.ParentID, parentID) {
			continue
		}
		if f.Name != name || f.FolderID == excludeID {
			continue
		}
		if departmentID != nil && (f.DepartmentID == nil || *f.DepartmentID != *departmentID) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeFolderRepository) CountChildren(ctx context.Context, tx *gorm.DB, folderID int) (int64, error) {
	var count int64
	for _, f := range r.folders {
		if f.ParentID != nil && *f.ParentID == folderID {
			count++
		}
	}
	return count, nil
}

type fakeNotifier struct {
	actions []WorkflowAction
	docs    []models.Document
}

func (n *fakeNotifier) DocumentActioned(doc models.Document, action WorkflowAction, actor models.User, comment string) {
	n.actions = append(n.actions, action)
	n.docs = append(n.docs, doc)
}

func intPtr(v int) *int { return &v }
