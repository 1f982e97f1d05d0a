// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"estatehub_backend/internal/auth"
	"estatehub_backend/internal/config"
	"estatehub_backend/internal/jobs"
	"estatehub_backend/internal/listing"
	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/notification"
	"estatehub_backend/internal/shared"
	"estatehub_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	moderationDigestJob *jobs.ModerationDigestJob
}

// NewServer creates a new instance of the application server and registers
// every route group.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService shared.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	listingHandler *listing.Handler,
	notificationHandler *notification.Handler,
	moderationDigestJob *jobs.ModerationDigestJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	// Lets the error handler dress up 405s with the JSON envelope instead of
	// Gin falling back to 404.
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	} else {
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminMW := middleware.AdminRequired()

	// --- Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "EstateHub API is healthy!"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, authMW)
	userHandler.RegisterRoutes(v1, authMW, adminMW)
	listingHandler.RegisterRoutes(v1, authMW, optionalAuthMW, adminMW)
	notificationHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:          httpServer,
		router:              router,
		cfg:                 cfg,
		logger:              logger,
		moderationDigestJob: moderationDigestJob,
	}, nil
}

// Start launches the background jobs and the HTTP listener. It blocks until
// the server stops.
func (s *Server) Start() error {
	if s.moderationDigestJob != nil {
		if err := s.moderationDigestJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start moderation digest job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown stops the background jobs and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.moderationDigestJob != nil {
		s.moderationDigestJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
