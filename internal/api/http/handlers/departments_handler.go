package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// DepartmentsHandler exposes department registry CRUD.
type DepartmentsHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

// ListDepartments GET /departments.
func (h *DepartmentsHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.departments.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		items = append(items, dto.NewDepartmentResponse(&departments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetDepartment GET /departments/:id.
func (h *DepartmentsHandler) GetDepartment(c *fiber.Ctx) error {
	dept, err := h.departments.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

// CreateDepartment POST /departments.
func (h *DepartmentsHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dept, err := h.departments.Create(c.Context(), service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

// UpdateDepartment PUT /departments/:id.
func (h *DepartmentsHandler) UpdateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dept, err := h.departments.Update(c.Context(), c.Params("id"), service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

// DeleteDepartment DELETE /departments/:id.
func (h *DepartmentsHandler) DeleteDepartment(c *fiber.Ctx) error {
	if err := h.departments.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
