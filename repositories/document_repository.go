package repositories

import (
	"context"

	"document-portal-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) GetByID(_ context.Context, tx *gorm.DB, documentID int) (models.Document, error) {
	var doc models.Document
	err := useTx(r.db, tx).Preload("Department").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&doc).Error
	return doc, err
}

func (r *GormDocumentRepository) GetByIDForUpdate(_ context.Context, tx *gorm.DB, documentID int) (models.Document, error) {
	var doc models.Document
	err := useTx(r.db, tx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Department").
		Preload("Uploader").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&doc).Error
	return doc, err
}

func (r *GormDocumentRepository) UpdateByID(_ context.Context, tx *gorm.DB, documentID int, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.Document{}).
		Where("document_id = ?", documentID).
		Updates(updates).Error
}

func (r *GormDocumentRepository) CountByFolder(_ context.Context, tx *gorm.DB, folderID int) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.Document{}).
		Where("folder_id = ? AND delete_at IS NULL", folderID).
		Count(&count).Error
	return count, err
}

func (r *GormDocumentRepository) ListByFolderIDs(_ context.Context, tx *gorm.DB, folderIDs []int) ([]models.Document, error) {
	if len(folderIDs) == 0 {
		return []models.Document{}, nil
	}
	var docs []models.Document
	err := useTx(r.db, tx).
		Where("folder_id IN ? AND delete_at IS NULL", folderIDs).
		Order("original_filename ASC").
		Find(&docs).Error
	return docs, err
}
