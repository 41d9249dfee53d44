package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// AccountService performs administrative account management.
type AccountService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	directory  *DirectoryService
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(users repository.UserRepository, tickets repository.TicketRepository, directory *DirectoryService, bcryptCost int) *AccountService {
	return &AccountService{users: users, tickets: tickets, directory: directory, bcryptCost: bcryptCost}
}

// AccountCreateInput carries fields for administratively created accounts.
type AccountCreateInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	DepartmentID *string
	CompanyName  string
	EmployeeCode string
	PhoneNumber  string
}

// AccountUpdateInput carries administrative edits.
type AccountUpdateInput struct {
	Name         *string
	DepartmentID *string
	CompanyName  *string
	EmployeeCode *string
	PhoneNumber  *string
}

// CreateAccount provisions an account. Only superadmins may create
// admin or superadmin accounts; only staff roles may hold a department.
func (s *AccountService) CreateAccount(ctx context.Context, actor *domain.User, input AccountCreateInput) (*domain.User, error) {
	if input.Role == "" {
		input.Role = domain.RoleUser
	}
	if input.Role != domain.RoleUser && actor.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbiddenWithHome("superadmin role required", actor.Role.HomeRoute())
	}
	if input.DepartmentID != nil && !input.Role.IsStaff() {
		return nil, apperrors.NewValidationError("only admin accounts may belong to a department", nil)
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("malformed email", map[string]any{"field": "email"})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		DepartmentID: input.DepartmentID,
		CompanyName:  strings.TrimSpace(input.CompanyName),
		EmployeeCode: strings.TrimSpace(input.EmployeeCode),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if s.directory != nil && user.CompanyName != "" {
		if err := s.directory.EnsureCompany(ctx, user.CompanyName); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// UpdateAccount applies administrative edits.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, input AccountUpdateInput) (*domain.User, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		user.Name = name
	}
	if input.DepartmentID != nil {
		if !user.Role.IsStaff() {
			return nil, apperrors.NewValidationError("only admin accounts may belong to a department", nil)
		}
		user.DepartmentID = input.DepartmentID
	}
	if input.CompanyName != nil {
		user.CompanyName = strings.TrimSpace(*input.CompanyName)
	}
	if input.EmployeeCode != nil {
		user.EmployeeCode = strings.TrimSpace(*input.EmployeeCode)
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeStatus suspends, freezes or reactivates an account.
func (s *AccountService) ChangeStatus(ctx context.Context, id string, status domain.UserStatus, reason string) (*domain.User, error) {
	switch status {
	case domain.UserStatusActive, domain.UserStatusSuspended, domain.UserStatusFrozen:
	default:
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	user.StatusReason = strings.TrimSpace(reason)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword sets a freshly generated password on the account and
// returns it for out-of-band delivery.
func (s *AccountService) ResetPassword(ctx context.Context, id string) (string, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return "", err
	}
	newPassword := uuid.NewString()[:12]
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return newPassword, nil
}

// DeleteAccount removes an account unless it still owns tickets.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.loadUser(ctx, id); err != nil {
		return err
	}
	count, err := s.tickets.CountByCreator(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflict("account owns tickets", map[string]any{"ticket_count": count})
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", nil)
		}
		return err
	}
	return nil
}

// GetAccount fetches a single account.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.User, error) {
	return s.loadUser(ctx, id)
}

// ListAccounts returns accounts matching the filter.
func (s *AccountService) ListAccounts(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.users.List(ctx, filter)
}

func (s *AccountService) loadUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}
	return user, nil
}
