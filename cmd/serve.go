package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retailops/workforce-bot/internal/config"
	"github.com/retailops/workforce-bot/internal/console"
	"github.com/retailops/workforce-bot/internal/db"
	"github.com/retailops/workforce-bot/internal/dialog"
	"github.com/retailops/workforce-bot/internal/logging"
	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/repository"
	"github.com/retailops/workforce-bot/internal/service"
)

// Локальный идентификатор оператора консоли.
const consoleExternalID int64 = 1

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dialogue assistant on the console",
	Long:  `Start the dialogue engine with a line-based console front end`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.Log.Level)
	defer logger.Sync()

	gdb, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := model.AutoMigrate(gdb); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	users := repository.NewGormUserRepository(gdb)
	stores := repository.NewGormStoreRepository(gdb)
	adminStores := repository.NewGormAdminStoreRepository(gdb)
	schedules := repository.NewGormScheduleRepository(gdb)
	substitutions := repository.NewGormSubstitutionRepository(gdb)

	identity := service.NewIdentityService(gdb, users, adminStores, cfg.Bot.AdminSecretCode, logger)
	storeSvc := service.NewStoreService(stores, adminStores, logger)
	scheduleSvc := service.NewScheduleService(schedules, substitutions, stores, users, logger)

	sessions := dialog.NewSessionStore(time.Duration(cfg.Bot.SessionTTLMin) * time.Minute)
	engine := dialog.NewEngine(identity, storeSvc, scheduleSvc, sessions, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("assistant started", zap.String("front", "console"))

	runner := console.NewRunner(engine, consoleExternalID, os.Stdin, os.Stdout)
	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("console runner stopped", zap.Error(err))
	}

	logger.Info("assistant stopped")
}
