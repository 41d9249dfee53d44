package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Departments    *handlers.DepartmentsHandler
	Companies      *handlers.CompaniesHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Patch("/update-profile", cfg.Auth.UpdateProfile)
	authProtected.Post("/change-password", cfg.Auth.ChangePassword)

	staffOnly := auth.RequireRole(domain.RoleAdmin, domain.RoleSuperadmin)
	superadminOnly := auth.RequireRole(domain.RoleSuperadmin)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/dashboard/stats", staffOnly, cfg.Reports.DashboardStats)
	tickets.Post("/on-behalf", staffOnly, cfg.Tickets.CreateTicketOnBehalf)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", staffOnly, cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/remarks", cfg.Tickets.AddRemark)
	tickets.Post("/:id/attachments", cfg.Tickets.AttachDocument)
	tickets.Delete("/:id/attachments/:attachmentID", cfg.Tickets.RemoveDocument)
	tickets.Delete("/:id", superadminOnly, cfg.Tickets.DeleteTicket)

	knowledge := app.Group("/knowledge-base", cfg.AuthMiddleware.Handle)
	knowledge.Get("/solutions", cfg.Reports.Solutions)
	knowledge.Get("/analytics", staffOnly, cfg.Reports.Analytics)

	departments := app.Group("/departments", cfg.AuthMiddleware.Handle)
	departments.Get("/", cfg.Departments.ListDepartments)
	departments.Get("/:id", cfg.Departments.GetDepartment)
	departments.Post("/", superadminOnly, cfg.Departments.CreateDepartment)
	departments.Put("/:id", superadminOnly, cfg.Departments.UpdateDepartment)
	departments.Delete("/:id", superadminOnly, cfg.Departments.DeleteDepartment)

	companies := app.Group("/companies", cfg.AuthMiddleware.Handle, superadminOnly)
	companies.Get("/", cfg.Companies.ListCompanies)
	companies.Post("/refresh", cfg.Companies.RefreshCompanies)
	companies.Get("/:id", cfg.Companies.GetCompany)
	companies.Patch("/:id", cfg.Companies.PatchCompany)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, superadminOnly)
	users.Get("/", cfg.Users.ListUsers)
	users.Post("/", cfg.Users.CreateUser)
	users.Get("/:id", cfg.Users.GetUser)
	users.Put("/:id", cfg.Users.UpdateUser)
	users.Patch("/:id/status", cfg.Users.ChangeUserStatus)
	users.Post("/:id/reset-password", cfg.Users.ResetUserPassword)
	users.Delete("/:id", cfg.Users.DeleteUser)
}
