package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// CompaniesHandler exposes the derived company directory.
type CompaniesHandler struct {
	directory *service.DirectoryService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(directory *service.DirectoryService) *CompaniesHandler {
	return &CompaniesHandler{directory: directory}
}

// ListCompanies GET /companies.
func (h *CompaniesHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.directory.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetCompany GET /companies/:id.
func (h *CompaniesHandler) GetCompany(c *fiber.Ctx) error {
	company, err := h.directory.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// RefreshCompanies POST /companies/refresh.
func (h *CompaniesHandler) RefreshCompanies(c *fiber.Ctx) error {
	companies, err := h.directory.Refresh(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// PatchCompany PATCH /companies/:id.
func (h *CompaniesHandler) PatchCompany(c *fiber.Ctx) error {
	var req dto.PatchCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	company, err := h.directory.Patch(c.Context(), c.Params("id"), service.CompanyPatch{
		Domain: req.Domain,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}
