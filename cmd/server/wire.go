// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"estatehub_backend/internal/app"
	"estatehub_backend/internal/auth"
	"estatehub_backend/internal/config"
	"estatehub_backend/internal/firebase"
	"estatehub_backend/internal/jobs"
	"estatehub_backend/internal/listing"
	"estatehub_backend/internal/notification"
	"estatehub_backend/internal/platform/database"
	"estatehub_backend/internal/platform/logger"
	"estatehub_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform layer
		logger.New,
		database.NewGORM,

		// Auth
		firebase.NewService,
		auth.NewJWTService,
		auth.NewService,
		auth.NewHandler,

		// Users
		user.NewGORMRepository,
		user.NewService,
		user.NewHandler,

		// Notifications
		notification.NewGORMRepository,
		notification.NewService,
		notification.NewHandler,

		// Listings
		listing.NewGORMRepository,
		listing.NewService,
		listing.NewHandler,

		// Jobs
		jobs.NewModerationDigestJob,

		// Application layer
		app.NewServer,
	)
	return nil, nil, nil
}
