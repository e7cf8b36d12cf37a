package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/repository"
)

var (
	ErrDuplicateBarcode = errors.New("barcode already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrSecretMismatch   = errors.New("admin secret code mismatch")
	// ErrInvalidOperation — структурно запрещённый переход,
	// например снятие прав админа с территориального менеджера.
	ErrInvalidOperation = errors.New("operation not allowed for this position")
	ErrUnknownPosition  = errors.New("unknown position")
	ErrInvalidDate      = errors.New("invalid date format")
)

// HireDateLayout — формат даты трудоустройства, как вводит пользователь.
const HireDateLayout = "02.01.2006"

// IdentityService — регистрация, авторизация по штрих-коду
// и инварианты должность/права админа.
type IdentityService struct {
	db          *gorm.DB
	users       repository.UserRepository
	adminStores repository.AdminStoreRepository
	secretCode  string
	log         *zap.Logger
}

func NewIdentityService(
	db *gorm.DB,
	users repository.UserRepository,
	adminStores repository.AdminStoreRepository,
	secretCode string,
	log *zap.Logger,
) *IdentityService {
	return &IdentityService{
		db:          db,
		users:       users,
		adminStores: adminStores,
		secretCode:  secretCode,
		log:         log,
	}
}

// Register создаёт пользователя с должностью кассира и без прав админа.
// Занятый штрих-код — ErrDuplicateBarcode, новая строка не создаётся.
func (s *IdentityService) Register(ctx context.Context, externalID int64, fullName, barcode string, storeID *uint) (*model.User, error) {
	if _, err := s.users.FindByBarcode(ctx, barcode); err == nil {
		return nil, ErrDuplicateBarcode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u := &model.User{
		ExternalID:  externalID,
		FullName:    fullName,
		Barcode:     barcode,
		Position:    model.PositionCashier,
		IsAdmin:     false,
		WorkStoreID: storeID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.Int64("external_id", externalID),
	)
	return u, nil
}

// Authenticate находит пользователя по штрих-коду. Территориальному
// менеджеру права админа дожимаются при каждом входе.
func (s *IdentityService) Authenticate(ctx context.Context, barcode string) (*model.User, error) {
	u, err := s.users.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if u.Position == model.PositionTerritorial && !u.IsAdmin {
		if err := s.users.SetAdminStatus(ctx, u.ID, true); err != nil {
			return nil, err
		}
		u.IsAdmin = true
	}

	return u, nil
}

// ChangePosition атомарно меняет должность и применяет PositionPolicy:
// сброс привязки к магазинам и принудительные права админа происходят
// в одной транзакции со сменой должности.
func (s *IdentityService) ChangePosition(ctx context.Context, userID uint, newPosition model.Position) error {
	if !newPosition.Valid() {
		return ErrUnknownPosition
	}

	policy := model.PolicyFor(newPosition)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		updates := map[string]any{"position": newPosition}
		if policy.ClearsStoreAttachment {
			updates["work_store_id"] = nil
		}
		if policy.ForcedAdmin != nil {
			updates["is_admin"] = *policy.ForcedAdmin
		}

		if err := tx.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return err
		}

		if policy.ClearsStoreAttachment {
			if err := tx.Where("admin_id = ?", userID).Delete(&model.AdminStore{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("change position rolled back",
			zap.Uint("user_id", userID),
			zap.String("position", string(newPosition)),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// GrantAdminBySecret выдаёт права админа по секретному коду.
// Несовпадение — ErrSecretMismatch, без блокировок и задержек.
func (s *IdentityService) GrantAdminBySecret(ctx context.Context, userID uint, code string) error {
	if code != s.secretCode {
		return ErrSecretMismatch
	}
	return s.users.SetAdminStatus(ctx, userID, true)
}

// RevokeAdmin снимает права админа. У территориального менеджера
// снять их нельзя, пока не сменится должность.
func (s *IdentityService) RevokeAdmin(ctx context.Context, userID uint) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Position == model.PositionTerritorial {
		return ErrInvalidOperation
	}
	return s.users.SetAdminStatus(ctx, userID, false)
}

func (s *IdentityService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *IdentityService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *IdentityService) ListAdmins(ctx context.Context) ([]model.User, error) {
	return s.users.ListAdmins(ctx)
}

func (s *IdentityService) UpdateFullName(ctx context.Context, userID uint, fullName string) error {
	return s.users.UpdateFullName(ctx, userID, fullName)
}

// UpdateBarcode меняет штрих-код, если он не занят другим пользователем.
func (s *IdentityService) UpdateBarcode(ctx context.Context, userID uint, barcode string) error {
	existing, err := s.users.FindByBarcode(ctx, barcode)
	if err == nil && existing.ID != userID {
		return ErrDuplicateBarcode
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.users.UpdateBarcode(ctx, userID, barcode)
}

// UpdateHireDate сохраняет дату трудоустройства в формате ДД.ММ.ГГГГ.
func (s *IdentityService) UpdateHireDate(ctx context.Context, userID uint, hireDate string) error {
	if _, err := time.Parse(HireDateLayout, hireDate); err != nil {
		return ErrInvalidDate
	}
	return s.users.UpdateHireDate(ctx, userID, hireDate)
}

// SetWorkStore привязывает пользователя к магазину; nil — отвязка.
func (s *IdentityService) SetWorkStore(ctx context.Context, userID uint, storeID *uint) error {
	return s.users.SetWorkStore(ctx, userID, storeID)
}

// AdminStores возвращает магазины, прикреплённые к администратору.
func (s *IdentityService) AdminStores(ctx context.Context, adminID uint) ([]model.Store, error) {
	return s.adminStores.ListByAdmin(ctx, adminID)
}
