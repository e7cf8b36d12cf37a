package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailops/workforce-bot/internal/model"
)

type ScheduleRepository interface {
	// Upsert сохраняет график; повторная запись по (user, store, month)
	// перезаписывает битмап.
	Upsert(ctx context.Context, s *model.Schedule) error
	Get(ctx context.Context, userID, storeID uint, month string) (*model.Schedule, error)
	// ListByStore возвращает все графики магазина за месяц вместе с владельцами.
	ListByStore(ctx context.Context, storeID uint, month string) ([]model.Schedule, error)
}

type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) Upsert(ctx context.Context, s *model.Schedule) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "store_id"},
			{Name: "month"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"days", "updated_at"}),
	}).Create(s).Error
}

func (r *GormScheduleRepository) Get(ctx context.Context, userID, storeID uint, month string) (*model.Schedule, error) {
	var s model.Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ? AND month = ?", userID, storeID, month).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormScheduleRepository) ListByStore(ctx context.Context, storeID uint, month string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("store_id = ? AND month = ?", storeID, month).
		Order("user_id").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
