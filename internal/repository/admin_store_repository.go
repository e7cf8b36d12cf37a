package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/retailops/workforce-bot/internal/model"
)

type AdminStoreRepository interface {
	// Replace атомарно заменяет весь набор магазинов администратора.
	Replace(ctx context.Context, adminID uint, storeIDs []uint) error
	RemoveAll(ctx context.Context, adminID uint) error
	ListByAdmin(ctx context.Context, adminID uint) ([]model.Store, error)
}

type GormAdminStoreRepository struct {
	db *gorm.DB
}

func NewGormAdminStoreRepository(db *gorm.DB) *GormAdminStoreRepository {
	return &GormAdminStoreRepository{db: db}
}

func (r *GormAdminStoreRepository) Replace(ctx context.Context, adminID uint, storeIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", adminID).Delete(&model.AdminStore{}).Error; err != nil {
			return err
		}
		for _, storeID := range storeIDs {
			link := model.AdminStore{AdminID: adminID, StoreID: storeID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormAdminStoreRepository) RemoveAll(ctx context.Context, adminID uint) error {
	return r.db.WithContext(ctx).Where("admin_id = ?", adminID).Delete(&model.AdminStore{}).Error
}

func (r *GormAdminStoreRepository) ListByAdmin(ctx context.Context, adminID uint) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Joins("JOIN admin_stores ON admin_stores.store_id = stores.id").
		Where("admin_stores.admin_id = ?", adminID).
		Order("stores.id").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}
