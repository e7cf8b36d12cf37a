package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/retailops/workforce-bot/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.User, error)
	UpdateFullName(ctx context.Context, id uint, fullName string) error
	UpdateBarcode(ctx context.Context, id uint, barcode string) error
	UpdateHireDate(ctx context.Context, id uint, hireDate string) error
	SetAdminStatus(ctx context.Context, id uint, isAdmin bool) error
	SetWorkStore(ctx context.Context, id uint, storeID *uint) error
	List(ctx context.Context) ([]model.User, error)
	ListAdmins(ctx context.Context) ([]model.User, error)
	ListNonAdmins(ctx context.Context) ([]model.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func normalizeBarcode(barcode string) string {
	return strings.TrimSpace(barcode)
}

func (r *GormUserRepository) Create(ctx context.Context, u *model.User) error {
	u.Barcode = normalizeBarcode(u.Barcode)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Preload("WorkStore").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByBarcode(ctx context.Context, barcode string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Preload("WorkStore").
		Where("barcode = ?", normalizeBarcode(barcode)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) UpdateFullName(ctx context.Context, id uint, fullName string) error {
	return r.updateColumn(ctx, id, "full_name", fullName)
}

func (r *GormUserRepository) UpdateBarcode(ctx context.Context, id uint, barcode string) error {
	return r.updateColumn(ctx, id, "barcode", normalizeBarcode(barcode))
}

func (r *GormUserRepository) UpdateHireDate(ctx context.Context, id uint, hireDate string) error {
	return r.updateColumn(ctx, id, "hire_date", hireDate)
}

func (r *GormUserRepository) SetAdminStatus(ctx context.Context, id uint, isAdmin bool) error {
	return r.updateColumn(ctx, id, "is_admin", isAdmin)
}

func (r *GormUserRepository) SetWorkStore(ctx context.Context, id uint, storeID *uint) error {
	return r.updateColumn(ctx, id, "work_store_id", storeID)
}

func (r *GormUserRepository) updateColumn(ctx context.Context, id uint, column string, value any) error {
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) ListAdmins(ctx context.Context) ([]model.User, error) {
	return r.listByAdminFlag(ctx, true)
}

func (r *GormUserRepository) ListNonAdmins(ctx context.Context) ([]model.User, error) {
	return r.listByAdminFlag(ctx, false)
}

func (r *GormUserRepository) listByAdminFlag(ctx context.Context, isAdmin bool) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("is_admin = ?", isAdmin).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
