package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"document-portal-api/models"
	"document-portal-api/repositories"

	"gorm.io/gorm"
)

type CreateFolderRequest struct {
	Name         string
	Description  *string
	Color        string
	Icon         string
	DisplayOrder int
	ParentID     *int
	DepartmentID *int
}

type UpdateFolderRequest struct {
	Name         *string
	Description  *string
	Color        *string
	Icon         *string
	DisplayOrder *int
}

type FolderService struct {
	txManager repositories.TxManager
	folders   repositories.FolderRepository
	documents repositories.DocumentRepository
	users     repositories.UserRepository
}

func NewFolderService(
	txManager repositories.TxManager,
	folders repositories.FolderRepository,
	documents repositories.DocumentRepository,
	users repositories.UserRepository,
) *FolderService {
	return &FolderService{
		txManager: txManager,
		folders:   folders,
		documents: documents,
		users:     users,
	}
}

// CanAccessFolder is the visibility rule shared by folders and, by
// extension, the documents inside them. Admins and reviewers see
// everything; everyone else sees general folders plus their own
// department's.
func CanAccessFolder(actor Actor, folder models.DocumentFolder) bool {
	if actor.IsAdmin() || actor.IsReviewer() {
		return true
	}
	if folder.DepartmentID == nil {
		return true
	}
	return actor.InDepartment(*folder.DepartmentID)
}

func canManageFolder(actor Actor, folder models.DocumentFolder) bool {
	return actor.IsAdmin() || actor.UserID == folder.CreatedBy
}

// CreateFolder persists a new folder with path and level derived from the
// parent chain. Sibling name collisions never fail: the name gets a
// " (n)" suffix until it is unique.
func (s *FolderService) CreateFolder(ctx context.Context, actorID int, req CreateFolderRequest) (models.DocumentFolder, error) {
	actor, _, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return models.DocumentFolder{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.DocumentFolder{}, newPolicyViolation("folder name is required")
	}

	if !actor.IsAdmin() && req.DepartmentID != nil && !actor.InDepartment(*req.DepartmentID) {
		return models.DocumentFolder{}, newAccessDenied("cannot create folders for another department")
	}

	var created models.DocumentFolder
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		var parent *models.DocumentFolder
		if req.ParentID != nil {
			p, err := s.folders.GetByID(ctx, tx, *req.ParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return newNotFound("parent folder not found")
				}
				return newPersistence("failed to load parent folder", err)
			}
			if !CanAccessFolder(actor, p) {
				return newAccessDenied("cannot access parent folder")
			}
			parent = &p
		}

		uniqueName, err := s.resolveUniqueName(ctx, tx, req.ParentID, req.DepartmentID, name, 0)
		if err != nil {
			return err
		}

		now := time.Now()
		folder := models.DocumentFolder{
			Name:         uniqueName,
			Description:  req.Description,
			Color:        req.Color,
			Icon:         req.Icon,
			DisplayOrder: req.DisplayOrder,
			IsActive:     true,
			ParentID:     req.ParentID,
			DepartmentID: req.DepartmentID,
			CreatedBy:    actorID,
			CreateAt:     &now,
			UpdateAt:     &now,
		}
		folder.Path, folder.Level = folderPlacement(parent, uniqueName)

		if err := s.folders.Create(ctx, tx, &folder); err != nil {
			return newPersistence("failed to create folder", err)
		}
		created = folder
		return nil
	})
	if err != nil {
		return models.DocumentFolder{}, wrapPersistence("folder transaction failed", err)
	}
	return created, nil
}

// UpdateFolder edits name, description, color, icon and display order.
// A rename rewrites the subtree's paths so the path invariant keeps
// holding for every descendant.
func (s *FolderService) UpdateFolder(ctx context.Context, actorID, folderID int, req UpdateFolderRequest) (models.DocumentFolder, error) {
	actor, _, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return models.DocumentFolder{}, err
	}

	var updated models.DocumentFolder
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		folder, err := s.folders.GetByID(ctx, tx, folderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newNotFound("folder not found")
			}
			return newPersistence("failed to load folder", err)
		}
		if !canManageFolder(actor, folder) {
			return newAccessDenied("only the creator or an admin can edit this folder")
		}

		now := time.Now()
		updates := map[string]interface{}{
			"updated_by": actorID,
			"update_at":  now,
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Color != nil {
			updates["color"] = *req.Color
		}
		if req.Icon != nil {
			updates["icon"] = *req.Icon
		}
		if req.DisplayOrder != nil {
			updates["display_order"] = *req.DisplayOrder
		}

		renamed := false
		if req.Name != nil {
			trimmed := strings.TrimSpace(*req.Name)
			if trimmed == "" {
				return newPolicyViolation("folder name is required")
			}
			if trimmed != folder.Name {
				unique, err := s.resolveUniqueName(ctx, tx, folder.ParentID, folder.DepartmentID, trimmed, folder.FolderID)
				if err != nil {
					return err
				}
				var parent *models.DocumentFolder
				if folder.ParentID != nil {
					p, err := s.folders.GetByID(ctx, tx, *folder.ParentID)
					if err != nil {
						return newPersistence("failed to load parent folder", err)
					}
					parent = &p
				}
				newPath, newLevel := folderPlacement(parent, unique)
				updates["name"] = unique
				updates["path"] = newPath
				folder.Name = unique
				folder.Path = newPath
				folder.Level = newLevel
				renamed = true
			}
		}

		if err := s.folders.UpdateByID(ctx, tx, folderID, updates); err != nil {
			return newPersistence("failed to update folder", err)
		}

		folder.UpdatedBy = &actorID
		folder.UpdateAt = &now

		// A rename shifts every descendant's path prefix.
		if renamed {
			if err := s.recomputeSubtree(ctx, tx, &folder); err != nil {
				return err
			}
		}
		updated = folder
		return nil
	})
	if err != nil {
		return models.DocumentFolder{}, wrapPersistence("folder transaction failed", err)
	}
	return updated, nil
}

// MoveFolder reparents a folder. The move is refused when the target is
// the folder itself or any of its descendants, so the tree can never
// acquire a cycle.
func (s *FolderService) MoveFolder(ctx context.Context, actorID, folderID int, newParentID *int) error {
	actor, _, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		folder, err := s.folders.GetByID(ctx, tx, folderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newNotFound("folder not found")
			}
			return newPersistence("failed to load folder", err)
		}
		if !canManageFolder(actor, folder) {
			return newAccessDenied("only the creator or an admin can move this folder")
		}

		var newParent *models.DocumentFolder
		if newParentID != nil {
			if *newParentID == folderID {
				return newPolicyViolation("folder cannot be its own parent")
			}
			p, err := s.folders.GetByID(ctx, tx, *newParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return newNotFound("target folder not found")
				}
				return newPersistence("failed to load target folder", err)
			}
			if !CanAccessFolder(actor, p) {
				return newAccessDenied("cannot access target folder")
			}
			inSubtree, err := s.isDescendantOf(ctx, tx, p, folderID)
			if err != nil {
				return err
			}
			if inSubtree {
				return newPolicyViolation("cannot move a folder into its own subtree")
			}
			newParent = &p
		}

		uniqueName, err := s.resolveUniqueName(ctx, tx, newParentID, folder.DepartmentID, folder.Name, folder.FolderID)
		if err != nil {
			return err
		}

		now := time.Now()
		newPath, newLevel := folderPlacement(newParent, uniqueName)
		updates := map[string]interface{}{
			"name":       uniqueName,
			"path":       newPath,
			"level":      newLevel,
			"updated_by": actorID,
			"update_at":  now,
		}
		if newParentID == nil {
			updates["parent_id"] = nil
		} else {
			updates["parent_id"] = *newParentID
		}
		if err := s.folders.UpdateByID(ctx, tx, folderID, updates); err != nil {
			return newPersistence("failed to move folder", err)
		}

		folder.Name = uniqueName
		folder.ParentID = newParentID
		folder.Path = newPath
		folder.Level = newLevel
		return s.recomputeSubtree(ctx, tx, &folder)
	})
	return wrapPersistence("folder transaction failed", err)
}

// DeleteFolder removes an empty, non-system folder.
func (s *FolderService) DeleteFolder(ctx context.Context, actorID, folderID int) error {
	actor, _, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		folder, err := s.folders.GetByID(ctx, tx, folderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newNotFound("folder not found")
			}
			return newPersistence("failed to load folder", err)
		}
		if !canManageFolder(actor, folder) {
			return newAccessDenied("only the creator or an admin can delete this folder")
		}
		if folder.IsSystem {
			return newPolicyViolation("system folders cannot be deleted")
		}

		children, err := s.folders.CountChildren(ctx, tx, folderID)
		if err != nil {
			return newPersistence("failed to count child folders", err)
		}
		if children > 0 {
			return newPolicyViolation("folder still contains subfolders")
		}
		docs, err := s.documents.CountByFolder(ctx, tx, folderID)
		if err != nil {
			return newPersistence("failed to count folder documents", err)
		}
		if docs > 0 {
			return newPolicyViolation("folder still contains documents")
		}

		if err := s.folders.DeleteByID(ctx, tx, folderID); err != nil {
			return newPersistence("failed to delete folder", err)
		}
		return nil
	})
	return wrapPersistence("folder transaction failed", err)
}

// MoveDocumentToFolder reassigns a document's folder reference.
func (s *FolderService) MoveDocumentToFolder(ctx context.Context, actorID, documentID int, folderID *int) error {
	actor, _, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		doc, err := s.documents.GetByID(ctx, tx, documentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newNotFound("document not found")
			}
			return newPersistence("failed to load document", err)
		}
		if !actor.IsAdmin() && !actor.IsReviewer() && actor.UserID != doc.UploadedBy {
			return newAccessDenied("not allowed to move this document")
		}

		if folderID != nil {
			folder, err := s.folders.GetByID(ctx, tx, *folderID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return newNotFound("target folder not found")
				}
				return newPersistence("failed to load target folder", err)
			}
			if !CanAccessFolder(actor, folder) {
				return newAccessDenied("cannot access target folder")
			}
		}

		now := time.Now()
		updates := map[string]interface{}{
			"last_modified_at": now,
			"last_modified_by": actorID,
		}
		if folderID == nil {
			updates["folder_id"] = nil
		} else {
			updates["folder_id"] = *folderID
		}
		if err := s.documents.UpdateByID(ctx, tx, documentID, updates); err != nil {
			return newPersistence("failed to move document", err)
		}
		return nil
	})
	return wrapPersistence("folder transaction failed", err)
}

// Breadcrumbs returns the ancestor chain of a folder, root first,
// including the folder itself. A zero id yields an empty chain.
func (s *FolderService) Breadcrumbs(ctx context.Context, folderID int) ([]models.DocumentFolder, error) {
	if folderID == 0 {
		return []models.DocumentFolder{}, nil
	}

	chain := []models.DocumentFolder{}
	seen := map[int]bool{}
	id := folderID
	for {
		folder, err := s.folders.GetByID(ctx, nil, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newNotFound("folder not found")
			}
			return nil, newPersistence("failed to load folder", err)
		}
		if seen[folder.FolderID] {
			return nil, newPolicyViolation("folder hierarchy contains a cycle")
		}
		seen[folder.FolderID] = true
		chain = append([]models.DocumentFolder{folder}, chain...)
		if folder.ParentID == nil {
			return chain, nil
		}
		id = *folder.ParentID
	}
}

// ListChildren returns the visible children of parentID (root when nil)
// together with the documents directly inside each child.
func (s *FolderService) ListChildren(ctx context.Context, actorID int, parentID *int) ([]FolderNode, error) {
	actor, _, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.folders.GetByID(ctx, nil, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newNotFound("folder not found")
			}
			return nil, newPersistence("failed to load folder", err)
		}
		if !CanAccessFolder(actor, parent) {
			return nil, newAccessDenied("cannot access folder")
		}
	}

	folders, err := s.folders.ListByParent(ctx, nil, parentID)
	if err != nil {
		return nil, newPersistence("failed to list folders", err)
	}

	visible := make([]models.DocumentFolder, 0, len(folders))
	ids := make([]int, 0, len(folders))
	for _, f := range folders {
		if CanAccessFolder(actor, f) {
			visible = append(visible, f)
			ids = append(ids, f.FolderID)
		}
	}

	docs, err := s.documents.ListByFolderIDs(ctx, nil, ids)
	if err != nil {
		return nil, newPersistence("failed to list folder documents", err)
	}

	return BuildFolderTree(visible, docs, parentID), nil
}

// folderPlacement derives path and level from the parent. Roots sit at
// level 0 with their own name as path.
func folderPlacement(parent *models.DocumentFolder, name string) (string, int) {
	if parent == nil {
		return name, 0
	}
	return parent.Path + "/" + name, parent.Level + 1
}

// resolveUniqueName appends " (n)" until the candidate is unique among
// its siblings, so creation never fails on a name collision alone.
func (s *FolderService) resolveUniqueName(ctx context.Context, tx *gorm.DB, parentID *int, departmentID *int, base string, excludeID int) (string, error) {
	deptScope := departmentID
	if parentID != nil {
		// Department only scopes root-level uniqueness.
		deptScope = nil
	}

	candidate := base
	for n := 1; ; n++ {
		count, err := s.folders.CountSiblingsByName(ctx, tx, parentID, deptScope, candidate, excludeID)
		if err != nil {
			return "", newPersistence("failed to check folder name", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)", base, n)
	}
}

// isDescendantOf walks candidate's ancestor chain and reports whether it
// passes through folderID.
func (s *FolderService) isDescendantOf(ctx context.Context, tx *gorm.DB, candidate models.DocumentFolder, folderID int) (bool, error) {
	seen := map[int]bool{}
	current := candidate
	for {
		if current.FolderID == folderID {
			return true, nil
		}
		if current.ParentID == nil {
			return false, nil
		}
		if seen[current.FolderID] {
			return false, newPolicyViolation("folder hierarchy contains a cycle")
		}
		seen[current.FolderID] = true

		parent, err := s.folders.GetByID(ctx, tx, *current.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, newPersistence("failed to walk folder ancestors", err)
		}
		current = parent
	}
}

// recomputeSubtree rewrites path and level for every descendant of root
// after a rename or move.
func (s *FolderService) recomputeSubtree(ctx context.Context, tx *gorm.DB, root *models.DocumentFolder) error {
	queue := []models.DocumentFolder{*root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		children, err := s.folders.ListByParent(ctx, tx, &parent.FolderID)
		if err != nil {
			return newPersistence("failed to list child folders", err)
		}
		for _, child := range children {
			path, level := folderPlacement(&parent, child.Name)
			if path != child.Path || level != child.Level {
				updates := map[string]interface{}{"path": path, "level": level}
				if err := s.folders.UpdateByID(ctx, tx, child.FolderID, updates); err != nil {
					return newPersistence("failed to update child folder path", err)
				}
			}
			child.Path = path
			child.Level = level
			queue = append(queue, child)
		}
	}
	return nil
}
