package repositories

import (
	"context"

	"document-portal-api/models"

	"gorm.io/gorm"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) GetByID(_ context.Context, tx *gorm.DB, folderID int) (models.DocumentFolder, error) {
	var folder models.DocumentFolder
	err := useTx(r.db, tx).Where("folder_id = ?", folderID).First(&folder).Error
	return folder, err
}

func (r *GormFolderRepository) Create(_ context.Context, tx *gorm.DB, folder *models.DocumentFolder) error {
	return useTx(r.db, tx).Create(folder).Error
}

func (r *GormFolderRepository) UpdateByID(_ context.Context, tx *gorm.DB, folderID int, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.DocumentFolder{}).
		Where("folder_id = ?", folderID).
		Updates(updates).Error
}

func (r *GormFolderRepository) DeleteByID(_ context.Context, tx *gorm.DB, folderID int) error {
	return useTx(r.db, tx).Where("folder_id = ?", folderID).Delete(&models.DocumentFolder{}).Error
}

func (r *GormFolderRepository) ListByParent(_ context.Context, tx *gorm.DB, parentID *int) ([]models.DocumentFolder, error) {
	db := useTx(r.db, tx).Model(&models.DocumentFolder{})
	if parentID == nil {
		db = db.Where("parent_id IS NULL")
	} else {
		db = db.Where("parent_id = ?", *parentID)
	}

	var folders []models.DocumentFolder
	err := db.Order("display_order ASC, name ASC").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) CountSiblingsByName(_ context.Context, tx *gorm.DB, parentID *int, departmentID *int, name string, excludeID int) (int64, error) {
	db := useTx(r.db, tx).Model(&models.DocumentFolder{}).Where("name = ?", name)
	if parentID == nil {
		db = db.Where("parent_id IS NULL")
		if departmentID == nil {
			db = db.Where("department_id IS NULL")
		} else {
			db = db.Where("department_id = ?", *departmentID)
		}
	} else {
		db = db.Where("parent_id = ?", *parentID)
	}
	if excludeID > 0 {
		db = db.Where("folder_id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormFolderRepository) CountChildren(_ context.Context, tx *gorm.DB, folderID int) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.DocumentFolder{}).
		Where("parent_id = ?", folderID).
		Count(&count).Error
	return count, err
}
