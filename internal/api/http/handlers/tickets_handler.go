package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketsHandler exposes the ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.Context(), principal.User, createInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// CreateTicketOnBehalf POST /tickets/on-behalf.
func (h *TicketsHandler) CreateTicketOnBehalf(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketOnBehalfRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	subject := service.SubjectInput{
		UserID:       req.Subject.UserID,
		Name:         req.Subject.Name,
		Email:        req.Subject.Email,
		EmployeeCode: req.Subject.EmployeeCode,
		CompanyName:  req.Subject.CompanyName,
	}
	ticket, err := h.service.CreateTicketOnBehalf(c.Context(), principal.User, subject, createInput(req.CreateTicketRequest))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListTickets(c.Context(), principal.User, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, remarks, attachments, err := h.service.GetTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	detail := dto.TicketDetailResponse{
		TicketResponse: dto.NewTicketResponse(ticket),
		Remarks:        make([]dto.RemarkResponse, 0, len(remarks)),
		Attachments:    make([]dto.AttachmentResponse, 0, len(attachments)),
	}
	for i := range remarks {
		detail.Remarks = append(detail.Remarks, dto.NewRemarkResponse(&remarks[i]))
	}
	for i := range attachments {
		detail.Attachments = append(detail.Attachments, dto.NewAttachmentResponse(&attachments[i]))
	}
	return c.JSON(fiber.Map{"data": detail})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.Context(), principal.User, c.Params("id"), service.StatusUpdateInput{
		Status:          req.Status,
		Solution:        req.Solution,
		AssigneeID:      req.AssigneeID,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// AddRemark POST /tickets/:id/remarks.
func (h *TicketsHandler) AddRemark(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRemarkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	remark, err := h.service.AddRemark(c.Context(), principal.User, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRemarkResponse(remark)})
}

// AttachDocument POST /tickets/:id/attachments.
func (h *TicketsHandler) AttachDocument(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	attachment, err := h.service.AttachDocument(c.Context(), principal.User, c.Params("id"), service.AttachmentInput{
		FileName:   req.FileName,
		MimeType:   req.MimeType,
		StorageKey: req.StorageKey,
		SizeBytes:  req.SizeBytes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttachmentResponse(attachment)})
}

// RemoveDocument DELETE /tickets/:id/attachments/:attachmentID.
func (h *TicketsHandler) RemoveDocument(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.RemoveDocument(c.Context(), principal.User, c.Params("id"), c.Params("attachmentID")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteTicket(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func createInput(req dto.CreateTicketRequest) service.TicketCreateInput {
	attachments := make([]service.AttachmentInput, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		attachments = append(attachments, service.AttachmentInput{
			FileName:   att.FileName,
			MimeType:   att.MimeType,
			StorageKey: att.StorageKey,
			SizeBytes:  att.SizeBytes,
		})
	}
	return service.TicketCreateInput{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Category:     req.Category,
		Attachments:  attachments,
	}
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if dept := c.Query("department_id"); dept != "" {
		filter.DepartmentID = &dept
	}
	if company := c.Query("company"); company != "" {
		filter.CompanyName = &company
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
