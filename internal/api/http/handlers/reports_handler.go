package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
)

// ReportsHandler exposes dashboard stats and the knowledge base.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// DashboardStats GET /tickets/dashboard/stats.
func (h *ReportsHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.reports.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDashboardStatsResponse(stats)})
}

// Solutions GET /knowledge-base/solutions.
func (h *ReportsHandler) Solutions(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	tickets, err := h.reports.Solutions(c.Context(), service.SolutionQuery{
		SearchTerm:   c.Query("search"),
		Category:     c.Query("category"),
		DepartmentID: c.Query("department_id"),
		Priority:     domain.TicketPriority(c.Query("priority")),
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
	})
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Analytics GET /knowledge-base/analytics.
func (h *ReportsHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.reports.Analytics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKnowledgeAnalyticsResponse(analytics)})
}
