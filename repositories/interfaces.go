package repositories

import (
	"context"

	"document-portal-api/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, userID int) (models.User, error)
}

type DocumentRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, documentID int) (models.Document, error)
	// GetByIDForUpdate locks the document row for the duration of the
	// surrounding transaction so concurrent workflow actions serialize.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, documentID int) (models.Document, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, documentID int, updates map[string]interface{}) error
	CountByFolder(ctx context.Context, tx *gorm.DB, folderID int) (int64, error)
	ListByFolderIDs(ctx context.Context, tx *gorm.DB, folderIDs []int) ([]models.Document, error)
}

type DocumentHistoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.DocumentHistory) error
	ListByDocument(ctx context.Context, tx *gorm.DB, documentID int, limit, offset int) ([]models.DocumentHistory, error)
	CountByDocument(ctx context.Context, tx *gorm.DB, documentID int) (int64, error)
}

type FolderRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, folderID int) (models.DocumentFolder, error)
	Create(ctx context.Context, tx *gorm.DB, folder *models.DocumentFolder) error
	UpdateByID(ctx context.Context, tx *gorm.DB, folderID int, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, folderID int) error
	ListByParent(ctx context.Context, tx *gorm.DB, parentID *int) ([]models.DocumentFolder, error)
	// CountSiblingsByName counts folders named name under the same parent.
	// departmentID only narrows root-level lookups; pass nil elsewhere.
	CountSiblingsByName(ctx context.Context, tx *gorm.DB, parentID *int, departmentID *int, name string, excludeID int) (int64, error)
	CountChildren(ctx context.Context, tx *gorm.DB, folderID int) (int64, error)
}
