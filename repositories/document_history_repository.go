package repositories

import (
	"context"

	"document-portal-api/models"

	"gorm.io/gorm"
)

type GormDocumentHistoryRepository struct {
	db *gorm.DB
}

func NewGormDocumentHistoryRepository(db *gorm.DB) *GormDocumentHistoryRepository {
	return &GormDocumentHistoryRepository{db: db}
}

func (r *GormDocumentHistoryRepository) Create(_ context.Context, tx *gorm.DB, entry *models.DocumentHistory) error {
	return useTx(r.db, tx).Create(entry).Error
}

func (r *GormDocumentHistoryRepository) ListByDocument(_ context.Context, tx *gorm.DB, documentID int, limit, offset int) ([]models.DocumentHistory, error) {
	var entries []models.DocumentHistory
	db := useTx(r.db, tx).Preload("User").
		Where("document_id = ?", documentID).
		Order("created_at DESC, history_id DESC")
	if limit > 0 {
		db = db.Limit(limit).Offset(offset)
	}
	err := db.Find(&entries).Error
	return entries, err
}

func (r *GormDocumentHistoryRepository) CountByDocument(_ context.Context, tx *gorm.DB, documentID int) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.DocumentHistory{}).
		Where("document_id = ?", documentID).
		Count(&count).Error
	return count, err
}
