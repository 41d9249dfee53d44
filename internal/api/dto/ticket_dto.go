package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	DepartmentID string                `json:"department_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
	Category     string                `json:"category"`
	Attachments  []AttachmentRequest   `json:"attachments"`
}

// TicketSubjectRequest identifies the person an on-behalf ticket is
// filed for.
type TicketSubjectRequest struct {
	UserID       *string `json:"user_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	EmployeeCode string  `json:"employee_code"`
	CompanyName  string  `json:"company_name"`
}

// CreateTicketOnBehalfRequest payload.
type CreateTicketOnBehalfRequest struct {
	Subject TicketSubjectRequest `json:"subject"`
	CreateTicketRequest
}

// UpdateStatusRequest payload for PATCH /tickets/:id/status.
type UpdateStatusRequest struct {
	Status          domain.TicketStatus `json:"status"`
	Solution        string              `json:"solution"`
	AssigneeID      *string             `json:"assignee_id"`
	ExpectedVersion *int                `json:"expected_version"`
}

// CreateRemarkRequest payload.
type CreateRemarkRequest struct {
	Body string `json:"body"`
}

// AttachmentRequest describes attachment input.
type AttachmentRequest struct {
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	StorageKey string `json:"storage_key"`
	SizeBytes  int64  `json:"size_bytes"`
}

// TicketSubjectResponse mirrors the embedded subject.
type TicketSubjectResponse struct {
	UserID       *string `json:"user_id,omitempty"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	CompanyName  string  `json:"company_name,omitempty"`
}

// TicketResponse is the canonical ticket shape.
type TicketResponse struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
	Category     string                `json:"category,omitempty"`
	DepartmentID string                `json:"department_id"`
	CreatedBy    TicketSubjectResponse `json:"created_by"`
	FiledByID    *string               `json:"filed_by_id,omitempty"`
	AssigneeID   *string               `json:"assignee_id,omitempty"`
	Status       domain.TicketStatus   `json:"status"`
	Solution     string                `json:"solution,omitempty"`
	ResolvedByID *string               `json:"resolved_by_id,omitempty"`
	Version      int                   `json:"version"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	ResolvedAt   *time.Time            `json:"resolved_at,omitempty"`
	TimeToSolve  float64               `json:"time_to_solve_seconds,omitempty"`
}

// TicketDetailResponse adds the remark log and attachments.
type TicketDetailResponse struct {
	TicketResponse
	Remarks     []RemarkResponse     `json:"remarks"`
	Attachments []AttachmentResponse `json:"attachments"`
}

// RemarkResponse represents one activity-log entry.
type RemarkResponse struct {
	ID         string    `json:"id"`
	Body       string    `json:"body"`
	AuthorID   *string   `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	StorageKey string    `json:"storage_key"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Priority:     ticket.Priority,
		Category:     ticket.Category,
		DepartmentID: ticket.DepartmentID,
		CreatedBy: TicketSubjectResponse{
			UserID:       ticket.CreatedBy.UserID,
			Name:         ticket.CreatedBy.Name,
			Email:        ticket.CreatedBy.Email,
			EmployeeCode: ticket.CreatedBy.EmployeeCode,
			CompanyName:  ticket.CreatedBy.CompanyName,
		},
		FiledByID:    ticket.FiledByID,
		AssigneeID:   ticket.AssigneeID,
		Status:       ticket.Status,
		Solution:     ticket.Solution,
		ResolvedByID: ticket.ResolvedByID,
		Version:      ticket.Version,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
		ResolvedAt:   ticket.ResolvedAt,
		TimeToSolve:  ticket.TimeToSolve(),
	}
}

// NewRemarkResponse maps a domain remark.
func NewRemarkResponse(remark *domain.Remark) RemarkResponse {
	return RemarkResponse{
		ID:         remark.ID,
		Body:       remark.Body,
		AuthorID:   remark.AuthorID,
		AuthorName: remark.AuthorName,
		CreatedAt:  remark.CreatedAt,
	}
}

// NewAttachmentResponse maps a domain attachment.
func NewAttachmentResponse(attachment *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         attachment.ID,
		FileName:   attachment.FileName,
		MimeType:   attachment.MimeType,
		StorageKey: attachment.StorageKey,
		SizeBytes:  attachment.SizeBytes,
		CreatedAt:  attachment.CreatedAt,
	}
}
