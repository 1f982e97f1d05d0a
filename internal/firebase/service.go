// File: internal/firebase/service.go
package firebase

import (
	"context"
	"fmt"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"estatehub_backend/internal/config"
)

// Service verifies Firebase ID tokens for Google sign-in. It is nil-safe:
// when Firebase is not configured, NewService returns a disabled instance
// and Google sign-in responds with SERVICE_UNAVAILABLE.
type Service struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewService initializes the Firebase Admin SDK when a service account key
// is configured.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Info("Firebase service account key not configured; Google sign-in is disabled.")
		return &Service{logger: logger}, nil
	}

	opt := option.WithCredentialsFile(filepath.Clean(cfg.FirebaseServiceAccountKeyPath))

	var app *firebase.App
	var err error
	if cfg.FirebaseProjectID != "" {
		app, err = firebase.NewApp(context.Background(), &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opt)
	} else {
		app, err = firebase.NewApp(context.Background(), nil, opt)
	}
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{authClient: authClient, logger: logger}, nil
}

// Enabled reports whether ID-token verification is available.
func (s *Service) Enabled() bool {
	return s != nil && s.authClient != nil
}

// VerifyIDToken verifies a Firebase ID token and returns its claims.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("firebase authentication is not configured")
	}
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}
	return token, nil
}
