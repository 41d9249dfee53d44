package service

import (
	"context"
	"sort"
	"strings"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// ReportService computes read-only derived views over the ticket set.
// Everything is recomputed per request; ticket volumes for an internal
// helpdesk stay small enough that full scans are the simpler design.
type ReportService struct {
	tickets     repository.TicketRepository
	departments repository.DepartmentRepository
	users       repository.UserRepository
}

// NewReportService builds the service.
func NewReportService(tickets repository.TicketRepository, departments repository.DepartmentRepository, users repository.UserRepository) *ReportService {
	return &ReportService{tickets: tickets, departments: departments, users: users}
}

// DepartmentStats summarizes one department's ticket load.
type DepartmentStats struct {
	DepartmentID   string
	DepartmentName string
	Total          int
	Resolved       int
	Pending        int
}

// DashboardStats is the overview payload for admin screens.
type DashboardStats struct {
	Total       int
	ByStatus    map[domain.TicketStatus]int
	Departments []DepartmentStats
}

// SolutionQuery filters the knowledge base.
type SolutionQuery struct {
	SearchTerm   string
	Category     string
	DepartmentID string
	Priority     domain.TicketPriority
	Limit        int
	Offset       int
}

// Contributor counts resolutions attributed to one account.
type Contributor struct {
	UserID   string
	Name     string
	Resolved int
}

// RecurringIssue counts tickets sharing a normalized title.
type RecurringIssue struct {
	Title string
	Count int
}

// KnowledgeAnalytics summarizes the resolved-ticket corpus.
type KnowledgeAnalytics struct {
	TotalSolutions  int
	TopContributors []Contributor
	RecurringIssues []RecurringIssue
	ByDepartment    map[string]int
	ByCategory      map[string]int
}

// Dashboard computes ticket counts by status and per department.
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{})
	if err != nil {
		return nil, err
	}
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Total: len(tickets),
		ByStatus: map[domain.TicketStatus]int{
			domain.TicketStatusPending:    0,
			domain.TicketStatusAssigned:   0,
			domain.TicketStatusInProgress: 0,
			domain.TicketStatusResolved:   0,
		},
	}

	byDept := make(map[string]*DepartmentStats, len(departments))
	for _, dept := range departments {
		byDept[dept.ID] = &DepartmentStats{DepartmentID: dept.ID, DepartmentName: dept.Name}
	}
	for _, ticket := range tickets {
		stats.ByStatus[ticket.Status]++
		dept, ok := byDept[ticket.DepartmentID]
		if !ok {
			continue
		}
		dept.Total++
		if ticket.Status == domain.TicketStatusResolved {
			dept.Resolved++
		} else {
			dept.Pending++
		}
	}
	for _, dept := range departments {
		stats.Departments = append(stats.Departments, *byDept[dept.ID])
	}
	return stats, nil
}

// Solutions returns the searchable knowledge base: resolved tickets
// with non-empty solutions, newest resolution first.
func (s *ReportService) Solutions(ctx context.Context, query SolutionQuery) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{ResolvedOnly: true}
	if query.SearchTerm != "" {
		filter.SearchTerm = &query.SearchTerm
	}
	if query.Category != "" {
		filter.Category = &query.Category
	}
	if query.DepartmentID != "" {
		filter.DepartmentID = &query.DepartmentID
	}
	if query.Priority != "" {
		filter.Priorities = []domain.TicketPriority{query.Priority}
	}

	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		a, b := tickets[i].ResolvedAt, tickets[j].ResolvedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})

	if query.Offset > 0 {
		if query.Offset >= len(tickets) {
			return []domain.Ticket{}, nil
		}
		tickets = tickets[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(tickets) {
		tickets = tickets[:query.Limit]
	}
	return tickets, nil
}

// Analytics summarizes the resolved corpus: top resolvers, recurring
// issue titles and distribution by department and category.
func (s *ReportService) Analytics(ctx context.Context) (*KnowledgeAnalytics, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{ResolvedOnly: true})
	if err != nil {
		return nil, err
	}

	analytics := &KnowledgeAnalytics{
		TotalSolutions: len(tickets),
		ByDepartment:   map[string]int{},
		ByCategory:     map[string]int{},
	}

	resolverCounts := map[string]int{}
	titleCounts := map[string]int{}
	titleDisplay := map[string]string{}
	for _, ticket := range tickets {
		analytics.ByDepartment[ticket.DepartmentID]++
		if ticket.Category != "" {
			analytics.ByCategory[ticket.Category]++
		}
		if ticket.ResolvedByID != nil {
			resolverCounts[*ticket.ResolvedByID]++
		}
		norm := strings.ToLower(strings.TrimSpace(ticket.Title))
		titleCounts[norm]++
		if _, seen := titleDisplay[norm]; !seen {
			titleDisplay[norm] = ticket.Title
		}
	}

	for userID, count := range resolverCounts {
		name := userID
		if user, err := s.users.GetByID(ctx, userID); err == nil {
			name = user.Name
		}
		analytics.TopContributors = append(analytics.TopContributors, Contributor{
			UserID:   userID,
			Name:     name,
			Resolved: count,
		})
	}
	sort.Slice(analytics.TopContributors, func(i, j int) bool {
		a, b := analytics.TopContributors[i], analytics.TopContributors[j]
		if a.Resolved != b.Resolved {
			return a.Resolved > b.Resolved
		}
		return a.UserID < b.UserID
	})
	if len(analytics.TopContributors) > 10 {
		analytics.TopContributors = analytics.TopContributors[:10]
	}

	for norm, count := range titleCounts {
		if count < 2 {
			continue
		}
		analytics.RecurringIssues = append(analytics.RecurringIssues, RecurringIssue{
			Title: titleDisplay[norm],
			Count: count,
		})
	}
	sort.Slice(analytics.RecurringIssues, func(i, j int) bool {
		a, b := analytics.RecurringIssues[i], analytics.RecurringIssues[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Title < b.Title
	})

	return analytics, nil
}
