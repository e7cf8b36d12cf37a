package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/repository"
)

var ErrStoreNotFound = errors.New("store not found")

// StoreService — каталог магазинов, нумерация и прикрепление к админам.
type StoreService struct {
	stores      repository.StoreRepository
	adminStores repository.AdminStoreRepository
	log         *zap.Logger
}

func NewStoreService(
	stores repository.StoreRepository,
	adminStores repository.AdminStoreRepository,
	log *zap.Logger,
) *StoreService {
	return &StoreService{stores: stores, adminStores: adminStores, log: log}
}

// AddStore создаёт магазин с очередным номером M001, M002...
// Номер считается от текущего количества строк, без учёта возможных
// удалений — так ведёт себя исходная система.
func (s *StoreService) AddStore(ctx context.Context, address string) (*model.Store, error) {
	n, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}

	store := &model.Store{
		Number:  fmt.Sprintf("M%03d", n+1),
		Address: address,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	s.log.Info("store created",
		zap.Uint("store_id", store.ID),
		zap.String("number", store.Number),
	)
	return store, nil
}

func (s *StoreService) GetStore(ctx context.Context, id uint) (*model.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *StoreService) ListStores(ctx context.Context) ([]model.Store, error) {
	return s.stores.List(ctx)
}

// AssignStoresToAdmin атомарно заменяет полный набор магазинов администратора.
func (s *StoreService) AssignStoresToAdmin(ctx context.Context, adminID uint, storeIDs []uint) error {
	if err := s.adminStores.Replace(ctx, adminID, storeIDs); err != nil {
		s.log.Error("store assignment rolled back",
			zap.Uint("admin_id", adminID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ListEmployees — сотрудники магазина; должности без привязки к магазину
// не попадают в список по построению.
func (s *StoreService) ListEmployees(ctx context.Context, storeID uint) ([]model.User, error) {
	return s.stores.Employees(ctx, storeID)
}

func (s *StoreService) EmployeeCount(ctx context.Context, storeID uint) (int64, error) {
	return s.stores.EmployeeCount(ctx, storeID)
}
