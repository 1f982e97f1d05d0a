// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"estatehub_backend/internal/common"
	"estatehub_backend/internal/firebase"
	"estatehub_backend/internal/shared"
	"estatehub_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const providerGoogle = "google"

// Service implements signup, signin and Google sign-in.
type Service struct {
	users        user.Repository
	tokenService shared.TokenService
	firebase     *firebase.Service
	logger       *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	users user.Repository,
	tokenService shared.TokenService,
	firebaseService *firebase.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:        users,
		tokenService: tokenService,
		firebase:     firebaseService,
		logger:       logger,
	}
}

// Signup registers a new email/password account. Duplicate email or
// username surfaces as a conflict from the repository.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*user.User, error) {
	hashed, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during signup", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not process the password.")
	}

	account := &user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashed,
		AuthProvider: "email",
		Status:       user.StatusApproved,
	}
	if err := s.users.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", account.ID.String()))
	return account, nil
}

// Signin authenticates an email/password account and issues a session
// token. Unknown emails, password-less accounts and wrong passwords all
// surface as the same unauthorized error so credentials cannot be probed.
// Deactivated accounts are rejected explicitly.
func (s *Service) Signin(ctx context.Context, req SigninRequest) (*user.User, *shared.TokenResponse, error) {
	account, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
		}
		return nil, nil, err
	}

	if account.PasswordHash == nil || !common.CheckPasswordHash(req.Password, *account.PasswordHash) {
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}
	if account.IsDeactivated() {
		return nil, nil, common.ErrForbidden.WithDetails("This account has been deactivated.")
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, nil, err
	}
	return account, token, nil
}

// GoogleSignIn verifies a Firebase ID token and signs the matching account
// in, creating one on first sight.
func (s *Service) GoogleSignIn(ctx context.Context, req GoogleSignInRequest) (*user.User, *shared.TokenResponse, error) {
	if !s.firebase.Enabled() {
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Google sign-in is not configured on this server.")
	}

	token, err := s.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid Google credential.")
	}

	account, err := s.users.FindByProvider(ctx, providerGoogle, token.UID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, nil, err
		}
		account, err = s.createGoogleAccount(ctx, token.UID, token.Claims)
		if err != nil {
			return nil, nil, err
		}
	}

	if account.IsDeactivated() {
		return nil, nil, common.ErrForbidden.WithDetails("This account has been deactivated.")
	}

	sessionToken, err := s.issueToken(account)
	if err != nil {
		return nil, nil, err
	}
	return account, sessionToken, nil
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *Service) issueToken(account *user.User) (*shared.TokenResponse, error) {
	tokenString, expiresAt, err := s.tokenService.GenerateToken(account)
	if err != nil {
		return nil, common.ErrInternalServer.WithDetails("Could not issue a session token.")
	}
	return &shared.TokenResponse{
		AccessToken: tokenString,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

func (s *Service) createGoogleAccount(ctx context.Context, providerID string, claims map[string]interface{}) (*user.User, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, common.ErrBadRequest.WithDetails("The Google account has no email address.")
	}
	avatar, _ := claims["picture"].(string)

	// If the Google email already belongs to an email/password account,
	// link the identity rather than creating a duplicate.
	if existing, err := s.users.FindByEmail(ctx, email); err == nil {
		pid := providerID
		existing.AuthProvider = providerGoogle
		existing.ProviderID = &pid
		if avatar != "" && existing.Avatar == "" {
			existing.Avatar = avatar
		}
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("Linked Google identity to existing account",
			zap.String("user_id", existing.ID.String()))
		return existing, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	username, err := s.pickUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	pid := providerID
	account := &user.User{
		Username:     username,
		Email:        email,
		Avatar:       avatar,
		AuthProvider: providerGoogle,
		ProviderID:   &pid,
		Status:       user.StatusApproved,
	}
	if err := s.users.Create(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("User registered via Google", zap.String("user_id", account.ID.String()))
	return account, nil
}

// pickUsername derives a username from the email local part, suffixing it
// until it is free.
func (s *Service) pickUsername(ctx context.Context, email string) (string, error) {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 0; i < 20; i++ {
		_, err := s.users.FindByUsername(ctx, candidate)
		if errors.Is(err, common.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%s", base, uuid.NewString()[:8])
	}
	return "", common.ErrInternalServer.WithDetails("Could not allocate a username.")
}
