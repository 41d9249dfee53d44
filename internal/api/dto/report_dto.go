package dto

import (
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
)

// DepartmentStatsResponse summarizes one department's load.
type DepartmentStatsResponse struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Total          int    `json:"total"`
	Resolved       int    `json:"resolved"`
	Pending        int    `json:"pending"`
}

// DashboardStatsResponse is the overview payload.
type DashboardStatsResponse struct {
	Total       int                         `json:"total"`
	ByStatus    map[domain.TicketStatus]int `json:"by_status"`
	Departments []DepartmentStatsResponse   `json:"departments"`
}

// NewDashboardStatsResponse maps service stats.
func NewDashboardStatsResponse(stats *service.DashboardStats) DashboardStatsResponse {
	departments := make([]DepartmentStatsResponse, 0, len(stats.Departments))
	for _, dept := range stats.Departments {
		departments = append(departments, DepartmentStatsResponse{
			DepartmentID:   dept.DepartmentID,
			DepartmentName: dept.DepartmentName,
			Total:          dept.Total,
			Resolved:       dept.Resolved,
			Pending:        dept.Pending,
		})
	}
	return DashboardStatsResponse{
		Total:       stats.Total,
		ByStatus:    stats.ByStatus,
		Departments: departments,
	}
}

// ContributorResponse counts resolutions per account.
type ContributorResponse struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Resolved int    `json:"resolved"`
}

// RecurringIssueResponse counts tickets sharing a title.
type RecurringIssueResponse struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// KnowledgeAnalyticsResponse summarizes the resolved corpus.
type KnowledgeAnalyticsResponse struct {
	TotalSolutions  int                      `json:"total_solutions"`
	TopContributors []ContributorResponse    `json:"top_contributors"`
	RecurringIssues []RecurringIssueResponse `json:"recurring_issues"`
	ByDepartment    map[string]int           `json:"by_department"`
	ByCategory      map[string]int           `json:"by_category"`
}

// NewKnowledgeAnalyticsResponse maps service analytics.
func NewKnowledgeAnalyticsResponse(analytics *service.KnowledgeAnalytics) KnowledgeAnalyticsResponse {
	contributors := make([]ContributorResponse, 0, len(analytics.TopContributors))
	for _, c := range analytics.TopContributors {
		contributors = append(contributors, ContributorResponse{UserID: c.UserID, Name: c.Name, Resolved: c.Resolved})
	}
	issues := make([]RecurringIssueResponse, 0, len(analytics.RecurringIssues))
	for _, issue := range analytics.RecurringIssues {
		issues = append(issues, RecurringIssueResponse{Title: issue.Title, Count: issue.Count})
	}
	return KnowledgeAnalyticsResponse{
		TotalSolutions:  analytics.TotalSolutions,
		TopContributors: contributors,
		RecurringIssues: issues,
		ByDepartment:    analytics.ByDepartment,
		ByCategory:      analytics.ByCategory,
	}
}
