package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/repository"
	"github.com/retailops/workforce-bot/internal/shift"
)

var (
	ErrOutOfRange          = errors.New("value out of range")
	ErrSubstitutionExists  = errors.New("substitution already exists for this date")
	ErrSubstitutionMissing = errors.New("substitution not found")
)

// SubstitutionDateLayout — формат даты подмены в хранилище и выводе.
const SubstitutionDateLayout = "2006-01-02"

// ScheduleService — месячные графики, подмены и сводный просмотр.
type ScheduleService struct {
	schedules     repository.ScheduleRepository
	substitutions repository.SubstitutionRepository
	stores        repository.StoreRepository
	users         repository.UserRepository
	log           *zap.Logger
}

func NewScheduleService(
	schedules repository.ScheduleRepository,
	substitutions repository.SubstitutionRepository,
	stores repository.StoreRepository,
	users repository.UserRepository,
	log *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules:     schedules,
		substitutions: substitutions,
		stores:        stores,
		users:         users,
		log:           log,
	}
}

// SaveSchedule кодирует рабочие дни в битмап месяца и апсертит строку
// (user, store, month). Неперечисленные дни — выходные.
func (s *ScheduleService) SaveSchedule(ctx context.Context, userID, storeID uint, month time.Time, workDays []int) (*model.Schedule, error) {
	bitmap, err := shift.Encode(month.Year(), month.Month(), workDays)
	if err != nil {
		if errors.Is(err, shift.ErrDayOutOfRange) {
			return nil, fmt.Errorf("%w: %v", ErrOutOfRange, err)
		}
		return nil, err
	}

	sched := &model.Schedule{
		UserID:  userID,
		StoreID: storeID,
		Month:   shift.MonthKey(month),
		Days:    bitmap,
	}
	if err := s.schedules.Upsert(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *ScheduleService) GetSchedule(ctx context.Context, userID, storeID uint, month time.Time) (*model.Schedule, error) {
	return s.schedules.Get(ctx, userID, storeID, shift.MonthKey(month))
}

// SaveSubstitution создаёт подмену. Повторная запись на ту же дату —
// отдельная операция UpdateSubstitution, неявной перезаписи нет.
func (s *ScheduleService) SaveSubstitution(ctx context.Context, userID, storeID uint, date time.Time, hours int) error {
	if hours < 1 || hours > 24 {
		return fmt.Errorf("%w: hours must be 1..24, got %d", ErrOutOfRange, hours)
	}

	exists, err := s.substitutions.Exists(ctx, userID, date)
	if err != nil {
		return err
	}
	if exists {
		return ErrSubstitutionExists
	}

	sub := &model.Substitution{
		UserID:  userID,
		StoreID: storeID,
		Date:    dateOnly(date),
		Hours:   hours,
	}
	return s.substitutions.Create(ctx, sub)
}

// UpdateSubstitution переписывает подмену по ключу (user, oldDate).
func (s *ScheduleService) UpdateSubstitution(ctx context.Context, userID uint, oldDate time.Time, newStoreID uint, newDate time.Time, hours int) error {
	if hours < 1 || hours > 24 {
		return fmt.Errorf("%w: hours must be 1..24, got %d", ErrOutOfRange, hours)
	}
	err := s.substitutions.Update(ctx, userID, oldDate, newStoreID, newDate, hours)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSubstitutionMissing
	}
	return err
}

// DeleteSubstitution удаляет подмену; отсутствующий ключ — не ошибка.
func (s *ScheduleService) DeleteSubstitution(ctx context.Context, userID uint, date time.Time) error {
	return s.substitutions.Delete(ctx, userID, date)
}

// ListSubstitutions — подмены пользователя за месяц, по возрастанию даты.
func (s *ScheduleService) ListSubstitutions(ctx context.Context, userID uint, month time.Time) ([]model.Substitution, error) {
	from, to := shift.MonthBounds(month)
	return s.substitutions.ListByUserRange(ctx, userID, from, to)
}

// GetAggregatedView собирает график и подмены пользователя, затем то же
// для коллег из его магазина, и режет текст на сообщения не длиннее
// лимита транспорта — по границам записей.
func (s *ScheduleService) GetAggregatedView(ctx context.Context, userID uint, month time.Time) ([]string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 График %s на текущий месяц:\n\n", u.FullName)
	s.writeUserMonth(ctx, &b, u.ID, u.WorkStoreID, month)

	if u.WorkStoreID == nil {
		return shift.ChunkLines(b.String(), shift.MessageLimit), nil
	}

	colleagues, err := s.stores.Employees(ctx, *u.WorkStoreID)
	if err != nil {
		return nil, err
	}

	var others strings.Builder
	for _, c := range colleagues {
		if c.ID == u.ID {
			continue
		}
		fmt.Fprintf(&others, "\n\n👤 %s (%s):\n", c.FullName, c.Position)
		s.writeUserMonth(ctx, &others, c.ID, u.WorkStoreID, month)
	}

	if others.Len() > 0 {
		b.WriteString("\n\n📋 Графики коллег:")
		b.WriteString(others.String())
	} else {
		b.WriteString("\n\nВ этом магазине нет других сотрудников.")
	}

	return shift.ChunkLines(b.String(), shift.MessageLimit), nil
}

// writeUserMonth дописывает график и подмены одного пользователя за месяц.
func (s *ScheduleService) writeUserMonth(ctx context.Context, b *strings.Builder, userID uint, storeID *uint, month time.Time) {
	if storeID != nil {
		if sched, err := s.schedules.Get(ctx, userID, *storeID, shift.MonthKey(month)); err == nil {
			b.WriteString(shift.FormatDays(sched.Days))
			b.WriteString("\n")
		} else {
			b.WriteString("График не найден.\n")
		}
	} else {
		b.WriteString("График не найден.\n")
	}

	subs, err := s.ListSubstitutions(ctx, userID, month)
	if err != nil || len(subs) == 0 {
		return
	}
	b.WriteString("\n🔄 Подмены в этом месяце:\n")
	for _, sub := range subs {
		address := ""
		if sub.Store != nil {
			address = sub.Store.Address
		}
		fmt.Fprintf(b, "📅 %s: %dч в %s\n", FormatSubstitutionDate(sub), sub.Hours, address)
	}
}

// FormatSubstitutionDate — дата подмены в формате хранения.
func FormatSubstitutionDate(sub model.Substitution) string {
	return time.Time(sub.Date).Format(SubstitutionDateLayout)
}

// dateOnly отбрасывает время, оставляя календарную дату в UTC.
func dateOnly(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}
