package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// RegisterRequest payload for self-service registration.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CompanyName  string `json:"company_name"`
	EmployeeCode string `json:"employee_code"`
	PhoneNumber  string `json:"phone_number"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfileRequest payload; nil fields are untouched.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	PhoneNumber  *string `json:"phone_number"`
	CompanyName  *string `json:"company_name"`
	EmployeeCode *string `json:"employee_code"`
}

// CreateAccountRequest payload for administrative account creation.
type CreateAccountRequest struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Password     string      `json:"password"`
	Role         domain.Role `json:"role"`
	DepartmentID *string     `json:"department_id"`
	CompanyName  string      `json:"company_name"`
	EmployeeCode string      `json:"employee_code"`
	PhoneNumber  string      `json:"phone_number"`
}

// UpdateAccountRequest payload; nil fields are untouched.
type UpdateAccountRequest struct {
	Name         *string `json:"name"`
	DepartmentID *string `json:"department_id"`
	CompanyName  *string `json:"company_name"`
	EmployeeCode *string `json:"employee_code"`
	PhoneNumber  *string `json:"phone_number"`
}

// ChangeAccountStatusRequest payload.
type ChangeAccountStatusRequest struct {
	Status domain.UserStatus `json:"status"`
	Reason string            `json:"reason"`
}

// UserResponse is the canonical account shape.
type UserResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         domain.Role       `json:"role"`
	EmployeeCode string            `json:"employee_code,omitempty"`
	CompanyName  string            `json:"company_name,omitempty"`
	DepartmentID *string           `json:"department_id,omitempty"`
	PhoneNumber  string            `json:"phone_number,omitempty"`
	Status       domain.UserStatus `json:"status"`
	StatusReason string            `json:"status_reason,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	LastLogin    *time.Time        `json:"last_login,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		EmployeeCode: user.EmployeeCode,
		CompanyName:  user.CompanyName,
		DepartmentID: user.DepartmentID,
		PhoneNumber:  user.PhoneNumber,
		Status:       user.Status,
		StatusReason: user.StatusReason,
		CreatedAt:    user.CreatedAt,
		LastLogin:    user.LastLogin,
	}
}
