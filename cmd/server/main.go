// File: cmd/server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"estatehub_backend/internal/config"
	"estatehub_backend/internal/listing"
	"estatehub_backend/internal/notification"
	"estatehub_backend/internal/platform/database"
	"estatehub_backend/internal/platform/logger"
	"estatehub_backend/internal/user"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrations()
		return
	}

	startServer()
}

// runMigrations applies the schema and exits. Kept as a subcommand so
// deployments control when migrations run instead of every server boot
// racing to alter tables.
func runMigrations() {
	bootLogger := logger.NewDefaultLogger()
	defer func() { _ = bootLogger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatal("Failed to load configuration for migrate", zap.Error(err))
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		bootLogger.Fatal("Failed to initialize logger for migrate", zap.Error(err))
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database for migrate", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	if err := db.AutoMigrate(&user.User{}, &listing.Listing{}, &notification.Notification{}); err != nil {
		appLogger.Fatal("Migration failed", zap.Error(err))
	}
	appLogger.Info("Database migration completed successfully.")
}

func startServer() {
	// The configured logger only exists after wiring succeeds, so bootstrap
	// failures and shutdown progress go through a plain development logger.
	bootLogger := logger.NewDefaultLogger()
	defer func() { _ = bootLogger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		bootLogger.Fatal("Failed to initialize server", zap.Error(err))
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			bootLogger.Fatal("Server failed to start or crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	bootLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	bootLogger.Info("Server exited.")
}
