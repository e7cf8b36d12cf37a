package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/repository"
)

const testSecretCode = "0000"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	// :memory: живёт в одном соединении.
	sqlDB.SetMaxOpenConns(1)

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	identity *IdentityService
	stores   *StoreService
	schedule *ScheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()

	users := repository.NewGormUserRepository(db)
	stores := repository.NewGormStoreRepository(db)
	adminStores := repository.NewGormAdminStoreRepository(db)
	schedules := repository.NewGormScheduleRepository(db)
	substitutions := repository.NewGormSubstitutionRepository(db)

	return &testEnv{
		db:       db,
		identity: NewIdentityService(db, users, adminStores, testSecretCode, log),
		stores:   NewStoreService(stores, adminStores, log),
		schedule: NewScheduleService(schedules, substitutions, stores, users, log),
	}
}
