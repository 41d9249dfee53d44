package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// DepartmentRequest payload for create and update.
type DepartmentRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// DepartmentResponse is the canonical department shape.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	categories := dept.Categories
	if categories == nil {
		categories = []string{}
	}
	return DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
		Categories:  categories,
		CreatedAt:   dept.CreatedAt,
		UpdatedAt:   dept.UpdatedAt,
	}
}
