package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// PatchCompanyRequest payload; nil fields are untouched.
type PatchCompanyRequest struct {
	Domain *string               `json:"domain"`
	Status *domain.CompanyStatus `json:"status"`
}

// CompanyResponse is the canonical company shape.
type CompanyResponse struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Domain             string               `json:"domain,omitempty"`
	Status             domain.CompanyStatus `json:"status"`
	EmployeeCount      int                  `json:"employee_count"`
	TotalTickets       int                  `json:"total_tickets"`
	ResolvedTickets    int                  `json:"resolved_tickets"`
	PendingTickets     int                  `json:"pending_tickets"`
	AverageSupportTime float64              `json:"average_support_time_seconds"`
	AverageRating      float64              `json:"average_rating"`
	RefreshedAt        *time.Time           `json:"refreshed_at,omitempty"`
}

// NewCompanyResponse maps a domain company.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 company.ID,
		Name:               company.Name,
		Domain:             company.Domain,
		Status:             company.Status,
		EmployeeCount:      company.EmployeeCount,
		TotalTickets:       company.TotalTickets,
		ResolvedTickets:    company.ResolvedTickets,
		PendingTickets:     company.PendingTickets,
		AverageSupportTime: company.AverageSupportTime,
		AverageRating:      company.AverageRating,
		RefreshedAt:        company.RefreshedAt,
	}
}
