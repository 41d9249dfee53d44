package domain

import "time"

// CompanyStatus enumerates administrative states for a company.
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended"
	CompanyStatusFrozen    CompanyStatus = "frozen"
	CompanyStatusPending   CompanyStatus = "pending"
)

// Company is a derived grouping of users sharing a company name.
// Counts are stale until an explicit refresh recomputes them.
type Company struct {
	ID                 string
	Name               string
	Domain             string
	Status             CompanyStatus
	EmployeeCount      int
	TotalTickets       int
	ResolvedTickets    int
	PendingTickets     int
	AverageSupportTime float64
	AverageRating      float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	RefreshedAt        *time.Time
}
