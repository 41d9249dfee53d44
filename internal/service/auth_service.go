package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// AuthService coordinates registration, login and password flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetStore
	directory  *DirectoryService
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	ResetStore repository.PasswordResetStore
	Directory  *DirectoryService
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.ResetStore,
		directory:  deps.Directory,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// RegisterInput carries self-service registration fields.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	CompanyName  string
	EmployeeCode string
	PhoneNumber  string
}

// ProfileInput carries self-service profile edits.
type ProfileInput struct {
	Name         *string
	PhoneNumber  *string
	CompanyName  *string
	EmployeeCode *string
}

// Register creates a new end-user account. A previously unseen
// company name synthesizes a pending company record.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email and password required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("malformed email", map[string]any{"field": "email"})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CompanyName:  strings.TrimSpace(input.CompanyName),
		EmployeeCode: strings.TrimSpace(input.EmployeeCode),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	if s.directory != nil && user.CompanyName != "" {
		if err := s.directory.EnsureCompany(ctx, user.CompanyName); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account and stamps last login. Suspended and
// frozen accounts are rejected.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account " + string(user.Status))
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// UpdateProfile applies self-service edits to the acting account.
func (s *AuthService) UpdateProfile(ctx context.Context, actor *domain.User, input ProfileInput) (*domain.User, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		actor.Name = name
	}
	if input.PhoneNumber != nil {
		actor.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.CompanyName != nil {
		actor.CompanyName = strings.TrimSpace(*input.CompanyName)
		if s.directory != nil && actor.CompanyName != "" {
			if err := s.directory.EnsureCompany(ctx, actor.CompanyName); err != nil {
				return nil, err
			}
		}
	}
	if input.EmployeeCode != nil {
		actor.EmployeeCode = strings.TrimSpace(*input.EmployeeCode)
	}
	if err := s.users.Update(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// ChangePassword verifies the current password before updating.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.User, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}
	if err := auth.ComparePassword(actor.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	actor.PasswordHash = hash
	return s.users.Update(ctx, actor)
}

// ForgotPassword issues a one-time reset token for the account. The
// token lives in the reset store until consumed or expired.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("account", nil)
		}
		return "", err
	}
	token := uuid.NewString()
	if err := s.resets.Save(ctx, token, user.ID, s.resetTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}
	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return apperrors.NewUnauthorized("reset token invalid or expired")
		}
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
