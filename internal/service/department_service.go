package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// DepartmentService manages the department registry.
type DepartmentService struct {
	departments repository.DepartmentRepository
	tickets     repository.TicketRepository
}

// NewDepartmentService builds the service.
func NewDepartmentService(departments repository.DepartmentRepository, tickets repository.TicketRepository) *DepartmentService {
	return &DepartmentService{departments: departments, tickets: tickets}
}

// DepartmentInput carries create/update fields. Categories replace
// the existing list wholesale, preserving order.
type DepartmentInput struct {
	Name        string
	Description string
	Categories  []string
}

// Create adds a department with a unique name.
func (s *DepartmentService) Create(ctx context.Context, input DepartmentInput) (*domain.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if _, err := s.departments.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("department name already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	dept := &domain.Department{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Categories:  input.Categories,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// Update edits a department.
func (s *DepartmentService) Update(ctx context.Context, id string, input DepartmentInput) (*domain.Department, error) {
	dept, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if name != dept.Name {
		if _, err := s.departments.GetByName(ctx, name); err == nil {
			return nil, apperrors.NewConflict("department name already exists", nil)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	dept.Name = name
	dept.Description = strings.TrimSpace(input.Description)
	dept.Categories = input.Categories
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// Get fetches a department.
func (s *DepartmentService) Get(ctx context.Context, id string) (*domain.Department, error) {
	return s.load(ctx, id)
}

// List returns all departments ordered by name.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

// Delete removes a department unless tickets still reference it.
func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	count, err := s.tickets.CountByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflict("department has tickets", map[string]any{"ticket_count": count})
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", nil)
		}
		return err
	}
	return nil
}

func (s *DepartmentService) load(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, err
	}
	return dept, nil
}
