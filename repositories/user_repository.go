package repositories

import (
	"context"

	"document-portal-api/models"

	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(_ context.Context, tx *gorm.DB, userID int) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).Preload("Role").Preload("Department").
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error
	return user, err
}
