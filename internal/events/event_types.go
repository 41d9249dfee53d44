package events

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketRemarkAdded   EventType = "ticket_remark_added"
	EventTicketResolved      EventType = "ticket_resolved"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	DepartmentID string                `json:"department_id"`
	Priority     domain.TicketPriority `json:"priority"`
	Title        string                `json:"title"`
	OnBehalf     bool                  `json:"on_behalf"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// TicketRemarkAddedPayload payload.
type TicketRemarkAddedPayload struct {
	RemarkID    string  `json:"remark_id"`
	AuthorID    *string `json:"author_id,omitempty"`
	BodyPreview string  `json:"body_preview"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	ResolvedByID    *string `json:"resolved_by_id,omitempty"`
	TimeToSolveSecs float64 `json:"time_to_solve_seconds"`
}
