package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/retailops/workforce-bot/internal/model"
)

type SubstitutionRepository interface {
	Create(ctx context.Context, s *model.Substitution) error
	Exists(ctx context.Context, userID uint, date time.Time) (bool, error)
	// ListByUserRange возвращает подмены пользователя в [from, to] по дате.
	ListByUserRange(ctx context.Context, userID uint, from, to time.Time) ([]model.Substitution, error)
	// Update переписывает подмену по ключу (user, oldDate).
	Update(ctx context.Context, userID uint, oldDate time.Time, storeID uint, newDate time.Time, hours int) error
	// Delete удаляет по ключу; отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, userID uint, date time.Time) error
}

type GormSubstitutionRepository struct {
	db *gorm.DB
}

func NewGormSubstitutionRepository(db *gorm.DB) *GormSubstitutionRepository {
	return &GormSubstitutionRepository{db: db}
}

func (r *GormSubstitutionRepository) Create(ctx context.Context, s *model.Substitution) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormSubstitutionRepository) Exists(ctx context.Context, userID uint, date time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Substitution{}).
		Where("user_id = ? AND date = ?", userID, datatypes.Date(date)).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormSubstitutionRepository) ListByUserRange(ctx context.Context, userID uint, from, to time.Time) ([]model.Substitution, error) {
	var subs []model.Substitution
	err := r.db.WithContext(ctx).
		Preload("Store").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, datatypes.Date(from), datatypes.Date(to)).
		Order("date").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *GormSubstitutionRepository) Update(ctx context.Context, userID uint, oldDate time.Time, storeID uint, newDate time.Time, hours int) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Substitution{}).
		Where("user_id = ? AND date = ?", userID, datatypes.Date(oldDate)).
		Updates(map[string]any{
			"store_id": storeID,
			"date":     datatypes.Date(newDate),
			"hours":    hours,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormSubstitutionRepository) Delete(ctx context.Context, userID uint, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, datatypes.Date(date)).
		Delete(&model.Substitution{}).Error
}
