package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketService owns the ticket state machine and its side effects.
type TicketService struct {
	tickets     repository.TicketRepository
	remarks     repository.RemarkRepository
	attachments repository.AttachmentRepository
	departments repository.DepartmentRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	RemarkRepo     repository.RemarkRepository
	AttachmentRepo repository.AttachmentRepository
	DepartmentRepo repository.DepartmentRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		remarks:     deps.RemarkRepo,
		attachments: deps.AttachmentRepo,
		departments: deps.DepartmentRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// AttachmentInput defines supporting-document metadata.
type AttachmentInput struct {
	FileName   string
	MimeType   string
	StorageKey string
	SizeBytes  int64
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	DepartmentID string
	Title        string
	Description  string
	Priority     domain.TicketPriority
	Category     string
	Attachments  []AttachmentInput
}

// SubjectInput identifies who an on-behalf ticket is filed for. The
// subject does not need an existing account.
type SubjectInput struct {
	UserID       *string
	Name         string
	Email        string
	EmployeeCode string
	CompanyName  string
}

// StatusUpdateInput carries a guarded status change.
type StatusUpdateInput struct {
	Status          domain.TicketStatus
	Solution        string
	AssigneeID      *string
	ExpectedVersion *int
}

// TicketListFilter describes listing filters; visibility scoping is
// applied on top of it per the caller's role.
type TicketListFilter struct {
	Statuses     []domain.TicketStatus
	Priorities   []domain.TicketPriority
	DepartmentID *string
	CompanyName  *string
	SearchTerm   *string
	Limit        int
	Offset       int
}

// CreateTicket files a ticket for the acting user.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	subject := domain.TicketSubject{
		UserID:       &actor.ID,
		Name:         actor.Name,
		Email:        actor.Email,
		EmployeeCode: actor.EmployeeCode,
		CompanyName:  actor.CompanyName,
	}
	return s.createTicket(ctx, actor, subject, nil, input)
}

// CreateTicketOnBehalf files a ticket attributed to the subject with
// the acting admin as filer of record. The subject may not exist as
// an account; name and email are enough.
func (s *TicketService) CreateTicketOnBehalf(ctx context.Context, actor *domain.User, subject SubjectInput, input TicketCreateInput) (*domain.Ticket, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbiddenWithHome("admin role required", actor.Role.HomeRoute())
	}
	if strings.TrimSpace(subject.Name) == "" || strings.TrimSpace(subject.Email) == "" {
		return nil, apperrors.NewValidationError("subject name and email required", nil)
	}
	ticketSubject := domain.TicketSubject{
		UserID:       subject.UserID,
		Name:         strings.TrimSpace(subject.Name),
		Email:        strings.TrimSpace(subject.Email),
		EmployeeCode: subject.EmployeeCode,
		CompanyName:  subject.CompanyName,
	}
	return s.createTicket(ctx, actor, ticketSubject, &actor.ID, input)
}

func (s *TicketService) createTicket(ctx context.Context, actor *domain.User, subject domain.TicketSubject, filedBy *string, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if _, err := s.departments.GetByID(ctx, input.DepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		TicketNumber: generateTicketNumber(),
		Title:        title,
		Description:  description,
		Priority:     priority,
		Category:     strings.TrimSpace(input.Category),
		DepartmentID: input.DepartmentID,
		CreatedBy:    subject,
		FiledByID:    filedBy,
		Status:       domain.TicketStatusPending,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	for _, att := range input.Attachments {
		record := &domain.Attachment{
			TicketID:   ticket.ID,
			FileName:   att.FileName,
			MimeType:   att.MimeType,
			StorageKey: att.StorageKey,
			SizeBytes:  att.SizeBytes,
		}
		if err := s.attachments.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			DepartmentID: ticket.DepartmentID,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
			OnBehalf:     filedBy != nil,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket with its remark log and attachments,
// enforcing ownership for end users.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, []domain.Remark, []domain.Attachment, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !canViewTicket(actor, ticket) {
		return nil, nil, nil, apperrors.NewForbiddenWithHome("access denied", actor.Role.HomeRoute())
	}
	remarks, err := s.remarks.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return ticket, remarks, attachments, nil
}

// ListTickets returns the ticket set visible to the actor. End users
// only ever see tickets they created; staff see everything, filtered.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if actor.Role.IsStaff() {
		repoFilter.DepartmentID = filter.DepartmentID
		repoFilter.CompanyName = filter.CompanyName
	} else {
		repoFilter.CreatedByUserID = &actor.ID
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// UpdateStatus applies a guarded, forward-only status change.
// Resolving demands a solution of at least MinSolutionLength
// characters; nothing is mutated when validation fails.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, input StatusUpdateInput) (*domain.Ticket, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbiddenWithHome("admin role required", actor.Role.HomeRoute())
	}
	if !domain.ValidStatus(input.Status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": input.Status})
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if input.ExpectedVersion != nil && *input.ExpectedVersion != ticket.Version {
		return nil, apperrors.NewConflict("ticket was modified concurrently", map[string]any{
			"expected_version": *input.ExpectedVersion,
			"current_version":  ticket.Version,
		})
	}
	if !domain.CanTransition(ticket.Status, input.Status) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   input.Status,
		})
	}

	solution := strings.TrimSpace(input.Solution)
	if input.Status == domain.TicketStatusResolved && len(solution) < domain.MinSolutionLength {
		return nil, apperrors.NewValidationError("solution must be at least 10 characters", map[string]any{
			"field": "solution",
		})
	}

	oldStatus := ticket.Status
	ticket.Status = input.Status
	if input.AssigneeID != nil {
		ticket.AssigneeID = input.AssigneeID
	}
	if input.Status == domain.TicketStatusAssigned && ticket.AssigneeID == nil {
		ticket.AssigneeID = &actor.ID
	}
	if input.Status == domain.TicketStatusResolved {
		now := time.Now()
		ticket.Solution = solution
		ticket.ResolvedAt = &now
		ticket.ResolvedByID = &actor.ID
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperrors.NewConflict("ticket was modified concurrently", nil)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
	if input.Status == domain.TicketStatusAssigned {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticket.ID,
			Actor:    actorOf(actor),
			Payload:  events.TicketAssignedPayload{AssigneeID: ticket.AssigneeID},
		})
	}
	if input.Status == domain.TicketStatusResolved {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketResolved,
			TicketID: ticket.ID,
			Actor:    actorOf(actor),
			Payload: events.TicketResolvedPayload{
				ResolvedByID:    ticket.ResolvedByID,
				TimeToSolveSecs: ticket.TimeToSolve(),
			},
		})
	}
	return ticket, nil
}

// AddRemark appends an attributed note to the ticket's activity log.
// Anyone who can view the ticket may remark; prior entries are never
// touched.
func (s *TicketService) AddRemark(ctx context.Context, actor *domain.User, ticketID, body string) (*domain.Remark, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("remark body required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !canViewTicket(actor, ticket) {
		return nil, apperrors.NewForbiddenWithHome("access denied", actor.Role.HomeRoute())
	}

	remark := &domain.Remark{
		TicketID:   ticket.ID,
		Body:       body,
		AuthorID:   &actor.ID,
		AuthorName: actor.Name,
	}
	if err := s.remarks.Create(ctx, remark); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketRemarkAdded,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.TicketRemarkAddedPayload{
			RemarkID:    remark.ID,
			AuthorID:    remark.AuthorID,
			BodyPreview: stringPreview(remark.Body, 120),
		},
	})
	return remark, nil
}

// AttachDocument adds supporting-document metadata to a ticket.
func (s *TicketService) AttachDocument(ctx context.Context, actor *domain.User, ticketID string, input AttachmentInput) (*domain.Attachment, error) {
	if strings.TrimSpace(input.FileName) == "" {
		return nil, apperrors.NewValidationError("file_name required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !canViewTicket(actor, ticket) {
		return nil, apperrors.NewForbiddenWithHome("access denied", actor.Role.HomeRoute())
	}
	attachment := &domain.Attachment{
		TicketID:   ticket.ID,
		FileName:   input.FileName,
		MimeType:   input.MimeType,
		StorageKey: input.StorageKey,
		SizeBytes:  input.SizeBytes,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// RemoveDocument deletes an attachment from a ticket.
func (s *TicketService) RemoveDocument(ctx context.Context, actor *domain.User, ticketID, attachmentID string) error {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !canViewTicket(actor, ticket) {
		return apperrors.NewForbiddenWithHome("access denied", actor.Role.HomeRoute())
	}
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attachment", nil)
		}
		return err
	}
	if attachment.TicketID != ticket.ID {
		return apperrors.NewNotFound("attachment", nil)
	}
	return s.attachments.Delete(ctx, attachmentID)
}

// DeleteTicket is the administrative escape hatch; superadmin only.
func (s *TicketService) DeleteTicket(ctx context.Context, actor *domain.User, ticketID string) error {
	if actor.Role != domain.RoleSuperadmin {
		return apperrors.NewForbiddenWithHome("superadmin role required", actor.Role.HomeRoute())
	}
	if _, err := s.loadTicket(ctx, ticketID); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return err
	}
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	return ticket, nil
}

func canViewTicket(actor *domain.User, ticket *domain.Ticket) bool {
	if actor.Role.IsStaff() {
		return true
	}
	return ticket.CreatedBy.UserID != nil && *ticket.CreatedBy.UserID == actor.ID
}

func generateTicketNumber() string {
	return "HD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(actor *domain.User) events.Actor {
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
