package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// DirectoryService maintains the derived company directory. Aggregates
// are stale by design until an explicit refresh recomputes them.
type DirectoryService struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	tickets   repository.TicketRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(companies repository.CompanyRepository, users repository.UserRepository, tickets repository.TicketRepository) *DirectoryService {
	return &DirectoryService{companies: companies, users: users, tickets: tickets}
}

// CompanyPatch carries administrative overrides. Status is independent
// of the derived counts.
type CompanyPatch struct {
	Domain *string
	Status *domain.CompanyStatus
}

// EnsureCompany synthesizes a pending company record the first time a
// company name is observed.
func (s *DirectoryService) EnsureCompany(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if _, err := s.companies.GetByName(ctx, name); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	company := &domain.Company{
		Name:   name,
		Status: domain.CompanyStatusPending,
	}
	return s.companies.Create(ctx, company)
}

// Refresh recomputes every company's derived counts from the current
// user and ticket sets. Running it twice without intervening changes
// yields identical results.
func (s *DirectoryService) Refresh(ctx context.Context) ([]domain.Company, error) {
	names, err := s.users.ListCompanyNames(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := s.EnsureCompany(ctx, name); err != nil {
			return nil, err
		}
	}

	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range companies {
		company := &companies[i]
		if err := s.recompute(ctx, company); err != nil {
			return nil, err
		}
		company.RefreshedAt = &now
		if err := s.companies.Update(ctx, company); err != nil {
			return nil, err
		}
	}
	return companies, nil
}

func (s *DirectoryService) recompute(ctx context.Context, company *domain.Company) error {
	employees, err := s.users.List(ctx, repository.UserFilter{CompanyName: &company.Name})
	if err != nil {
		return err
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{CompanyName: &company.Name})
	if err != nil {
		return err
	}

	resolved := 0
	var supportSeconds float64
	for _, ticket := range tickets {
		if ticket.Status == domain.TicketStatusResolved {
			resolved++
			supportSeconds += ticket.TimeToSolve()
		}
	}

	company.EmployeeCount = len(employees)
	company.TotalTickets = len(tickets)
	company.ResolvedTickets = resolved
	company.PendingTickets = len(tickets) - resolved
	if resolved > 0 {
		company.AverageSupportTime = supportSeconds / float64(resolved)
	} else {
		company.AverageSupportTime = 0
	}
	return nil
}

// List returns the company directory.
func (s *DirectoryService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

// Get fetches a single company.
func (s *DirectoryService) Get(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company", nil)
		}
		return nil, err
	}
	return company, nil
}

// Patch applies administrative overrides to a company.
func (s *DirectoryService) Patch(ctx context.Context, id string, patch CompanyPatch) (*domain.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Domain != nil {
		company.Domain = strings.TrimSpace(*patch.Domain)
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.CompanyStatusActive, domain.CompanyStatusSuspended, domain.CompanyStatusFrozen, domain.CompanyStatusPending:
		default:
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *patch.Status})
		}
		company.Status = *patch.Status
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}
