package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Transitions
// only move forward through the progression.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusAssigned   TicketStatus = "assigned"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// statusRank orders the lifecycle progression.
var statusRank = map[TicketStatus]int{
	TicketStatusPending:    0,
	TicketStatusAssigned:   1,
	TicketStatusInProgress: 2,
	TicketStatusResolved:   3,
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s TicketStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving current -> next respects the
// forward-only ordering. Forward jumps are allowed, backward and
// same-state moves are not.
func CanTransition(current, next TicketStatus) bool {
	cur, ok := statusRank[current]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// MinSolutionLength is the minimum trimmed solution text required to
// resolve a ticket.
const MinSolutionLength = 10

// TicketSubject identifies who a ticket was filed for. A subject does
// not need an account: admins may file on behalf of people known only
// by name and email.
type TicketSubject struct {
	UserID       *string
	Name         string
	Email        string
	EmployeeCode string
	CompanyName  string
}

// Ticket is the central aggregate. CreatedBy is fixed at creation;
// Version guards concurrent updates.
type Ticket struct {
	ID           string
	TicketNumber string
	Title        string
	Description  string
	Priority     TicketPriority
	Category     string
	DepartmentID string
	CreatedBy    TicketSubject
	FiledByID    *string
	AssigneeID   *string
	Status       TicketStatus
	Solution     string
	ResolvedByID *string
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ResolvedAt   *time.Time
}

// TimeToSolve returns the resolution duration in seconds, zero until
// the ticket is resolved.
func (t *Ticket) TimeToSolve() float64 {
	if t.ResolvedAt == nil {
		return 0
	}
	return t.ResolvedAt.Sub(t.CreatedAt).Seconds()
}

// Remark is an append-only, attributed note on a ticket.
type Remark struct {
	ID         string
	TicketID   string
	Body       string
	AuthorID   *string
	AuthorName string
	CreatedAt  time.Time
}

// Attachment stores metadata for a supporting document. The blob
// itself lives behind StorageKey.
type Attachment struct {
	ID         string
	TicketID   string
	FileName   string
	MimeType   string
	StorageKey string
	SizeBytes  int64
	CreatedAt  time.Time
}
