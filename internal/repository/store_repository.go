package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/retailops/workforce-bot/internal/model"
)

type StoreRepository interface {
	Create(ctx context.Context, s *model.Store) error
	GetByID(ctx context.Context, id uint) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	Count(ctx context.Context) (int64, error)
	// Employees возвращает сотрудников магазина без "безмагазинных" должностей.
	Employees(ctx context.Context, storeID uint) ([]model.User, error)
	EmployeeCount(ctx context.Context, storeID uint) (int64, error)
}

type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) Create(ctx context.Context, s *model.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormStoreRepository) GetByID(ctx context.Context, id uint) (*model.Store, error) {
	var s model.Store
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormStoreRepository) List(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.WithContext(ctx).Order("id").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *GormStoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *GormStoreRepository) employeesQuery(ctx context.Context, storeID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("work_store_id = ?", storeID).
		Where("position NOT IN ?", []model.Position{
			model.PositionCompliance,
			model.PositionTerritorial,
			model.PositionSecurity,
		})
}

func (r *GormStoreRepository) Employees(ctx context.Context, storeID uint) ([]model.User, error) {
	var users []model.User
	if err := r.employeesQuery(ctx, storeID).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormStoreRepository) EmployeeCount(ctx context.Context, storeID uint) (int64, error) {
	var n int64
	if err := r.employeesQuery(ctx, storeID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
