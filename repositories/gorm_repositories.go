package repositories

import (
	"context"

	"gorm.io/gorm"
)

type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}

// Container bundles every repository behind its interface.
type Container struct {
	TxManager TxManager
	Users     UserRepository
	Documents DocumentRepository
	History   DocumentHistoryRepository
	Folders   FolderRepository
}

func NewGormContainer(db *gorm.DB) Container {
	return Container{
		TxManager: NewGormTxManager(db),
		Users:     NewGormUserRepository(db),
		Documents: NewGormDocumentRepository(db),
		History:   NewGormDocumentHistoryRepository(db),
		Folders:   NewGormFolderRepository(db),
	}
}

func useTx(db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
