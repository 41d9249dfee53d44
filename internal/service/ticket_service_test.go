package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

type ticketFixture struct {
	svc         *TicketService
	tickets     *fakeTicketRepo
	remarks     *fakeRemarkRepo
	attachments *fakeAttachmentRepo
	departments *fakeDepartmentRepo
	users       *fakeUserRepo
	dispatcher  *recordingDispatcher
	dept        *domain.Department
	endUser     *domain.User
	admin       *domain.User
	superadmin  *domain.User
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	f := &ticketFixture{
		tickets:     newFakeTicketRepo(),
		remarks:     &fakeRemarkRepo{},
		attachments: newFakeAttachmentRepo(),
		departments: newFakeDepartmentRepo(),
		users:       newFakeUserRepo(),
		dispatcher:  &recordingDispatcher{},
	}
	f.svc = NewTicketService(TicketDependencies{
		TicketRepo:     f.tickets,
		RemarkRepo:     f.remarks,
		AttachmentRepo: f.attachments,
		DepartmentRepo: f.departments,
		UserRepo:       f.users,
		Dispatcher:     f.dispatcher,
	})

	ctx := context.Background()
	f.dept = &domain.Department{Name: "IT Support", Categories: []string{"hardware", "software"}}
	require.NoError(t, f.departments.Create(ctx, f.dept))

	f.endUser = &domain.User{Name: "Dana", Email: "dana@acme.test", Role: domain.RoleUser, CompanyName: "Acme", Status: domain.UserStatusActive}
	f.admin = &domain.User{Name: "Avery", Email: "avery@helpdesk.test", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
	f.superadmin = &domain.User{Name: "Root", Email: "root@helpdesk.test", Role: domain.RoleSuperadmin, Status: domain.UserStatusActive}
	require.NoError(t, f.users.Create(ctx, f.endUser))
	require.NoError(t, f.users.Create(ctx, f.admin))
	require.NoError(t, f.users.Create(ctx, f.superadmin))
	return f
}

func (f *ticketFixture) createTicket(t *testing.T, actor *domain.User) *domain.Ticket {
	t.Helper()
	ticket, err := f.svc.CreateTicket(context.Background(), actor, TicketCreateInput{
		DepartmentID: f.dept.ID,
		Title:        "Laptop will not boot",
		Description:  "Black screen after the latest update.",
		Category:     "hardware",
	})
	require.NoError(t, err)
	return ticket
}

func TestCreateTicketDefaults(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, f.endUser)

	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, 1, ticket.Version)
	assert.NotEmpty(t, ticket.TicketNumber)
	require.NotNil(t, ticket.CreatedBy.UserID)
	assert.Equal(t, f.endUser.ID, *ticket.CreatedBy.UserID)
	assert.Nil(t, ticket.FiledByID)
	assert.Equal(t, "Acme", ticket.CreatedBy.CompanyName)

	created := f.dispatcher.published(events.EventTicketCreated)
	require.Len(t, created, 1)
	assert.Equal(t, ticket.ID, created[0].TicketID)
}

func TestCreateTicketValidation(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTicket(ctx, f.endUser, TicketCreateInput{DepartmentID: f.dept.ID, Title: "  ", Description: "x"})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, err = f.svc.CreateTicket(ctx, f.endUser, TicketCreateInput{DepartmentID: "missing", Title: "t", Description: "d"})
	assertDomainCode(t, err, "NOT_FOUND")

	_, err = f.svc.CreateTicket(ctx, f.endUser, TicketCreateInput{DepartmentID: f.dept.ID, Title: "t", Description: "d", Priority: "urgent"})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCreateTicketOnBehalf(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	subject := SubjectInput{Name: "Walk-in Visitor", Email: "visitor@guest.test", CompanyName: "Globex"}
	input := TicketCreateInput{DepartmentID: f.dept.ID, Title: "Badge not working", Description: "Door reader rejects the badge."}

	_, err := f.svc.CreateTicketOnBehalf(ctx, f.endUser, subject, input)
	assertDomainCode(t, err, "FORBIDDEN")

	_, err = f.svc.CreateTicketOnBehalf(ctx, f.admin, SubjectInput{Name: "No Email"}, input)
	assertDomainCode(t, err, "VALIDATION_FAILED")

	ticket, err := f.svc.CreateTicketOnBehalf(ctx, f.admin, subject, input)
	require.NoError(t, err)
	assert.Nil(t, ticket.CreatedBy.UserID)
	assert.Equal(t, "Walk-in Visitor", ticket.CreatedBy.Name)
	require.NotNil(t, ticket.FiledByID)
	assert.Equal(t, f.admin.ID, *ticket.FiledByID)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	updated, err := f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{Status: domain.TicketStatusAssigned})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAssigned, updated.Status)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, f.admin.ID, *updated.AssigneeID)
	assert.Equal(t, 2, updated.Version)

	updated, err = f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{Status: domain.TicketStatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)

	updated, err = f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{
		Status:   domain.TicketStatusResolved,
		Solution: "Reinstalled the graphics driver and verified boot.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	require.NotNil(t, updated.ResolvedByID)
	assert.Equal(t, f.admin.ID, *updated.ResolvedByID)
	assert.Greater(t, updated.TimeToSolve(), float64(0))

	assert.Len(t, f.dispatcher.published(events.EventTicketStatusChanged), 3)
	assert.Len(t, f.dispatcher.published(events.EventTicketAssigned), 1)
	assert.Len(t, f.dispatcher.published(events.EventTicketResolved), 1)
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	_, err := f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{
		Status:   domain.TicketStatusResolved,
		Solution: "Replaced the battery and confirmed a clean boot.",
	})
	require.NoError(t, err)

	// No backward or same-state moves once resolved.
	for _, next := range []domain.TicketStatus{domain.TicketStatusPending, domain.TicketStatusInProgress, domain.TicketStatusResolved} {
		_, err = f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{Status: next, Solution: "Replaced the battery again."})
		assertDomainCode(t, err, "VALIDATION_FAILED")
	}
}

func TestUpdateStatusGuards(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	_, err := f.svc.UpdateStatus(ctx, f.endUser, ticket.ID, StatusUpdateInput{Status: domain.TicketStatusAssigned})
	assertDomainCode(t, err, "FORBIDDEN")

	_, err = f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{Status: "archived"})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, err = f.svc.UpdateStatus(ctx, f.admin, "missing", StatusUpdateInput{Status: domain.TicketStatusAssigned})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestResolveRequiresSolutionWithoutMutation(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	_, err := f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{
		Status:   domain.TicketStatusResolved,
		Solution: "too short",
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	stored, err := f.tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, stored.Status)
	assert.Empty(t, stored.Solution)
	assert.Nil(t, stored.ResolvedAt)
	assert.Equal(t, 1, stored.Version)
}

func TestUpdateStatusVersionConflict(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	stale := 99
	_, err := f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{
		Status:          domain.TicketStatusAssigned,
		ExpectedVersion: &stale,
	})
	assertDomainCode(t, err, "CONFLICT")

	current := 1
	_, err = f.svc.UpdateStatus(ctx, f.admin, ticket.ID, StatusUpdateInput{
		Status:          domain.TicketStatusAssigned,
		ExpectedVersion: &current,
	})
	require.NoError(t, err)
}

func TestGetTicketVisibility(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	other := &domain.User{Name: "Mallory", Email: "mallory@acme.test", Role: domain.RoleUser, Status: domain.UserStatusActive}
	require.NoError(t, f.users.Create(ctx, other))

	_, _, _, err := f.svc.GetTicket(ctx, other, ticket.ID)
	assertDomainCode(t, err, "FORBIDDEN")

	got, _, _, err := f.svc.GetTicket(ctx, f.endUser, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)

	_, _, _, err = f.svc.GetTicket(ctx, f.admin, ticket.ID)
	require.NoError(t, err)
}

func TestListTicketsScoping(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	other := &domain.User{Name: "Sam", Email: "sam@globex.test", Role: domain.RoleUser, CompanyName: "Globex", Status: domain.UserStatusActive}
	require.NoError(t, f.users.Create(ctx, other))

	f.createTicket(t, f.endUser)
	f.createTicket(t, f.endUser)
	f.createTicket(t, other)

	mine, err := f.svc.ListTickets(ctx, f.endUser, TicketListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := f.svc.ListTickets(ctx, f.admin, TicketListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	company := "Globex"
	scoped, err := f.svc.ListTickets(ctx, f.admin, TicketListFilter{CompanyName: &company})
	require.NoError(t, err)
	assert.Len(t, scoped, 1)
}

func TestAddRemarkAppendOnly(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	first, err := f.svc.AddRemark(ctx, f.endUser, ticket.ID, "Still happening after reboot.")
	require.NoError(t, err)
	second, err := f.svc.AddRemark(ctx, f.admin, ticket.ID, "Escalating to field support.")
	require.NoError(t, err)

	_, err = f.svc.AddRemark(ctx, f.endUser, ticket.ID, "   ")
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, remarks, _, err := f.svc.GetTicket(ctx, f.admin, ticket.ID)
	require.NoError(t, err)
	require.Len(t, remarks, 2)
	assert.Equal(t, first.ID, remarks[0].ID)
	assert.Equal(t, second.ID, remarks[1].ID)
	assert.Equal(t, "Still happening after reboot.", remarks[0].Body)

	other := &domain.User{Name: "Mallory", Email: "mallory@acme.test", Role: domain.RoleUser, Status: domain.UserStatusActive}
	require.NoError(t, f.users.Create(ctx, other))
	_, err = f.svc.AddRemark(ctx, other, ticket.ID, "should not be allowed")
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestAttachmentLifecycle(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	attachment, err := f.svc.AttachDocument(ctx, f.endUser, ticket.ID, AttachmentInput{
		FileName:   "boot-log.txt",
		MimeType:   "text/plain",
		StorageKey: "tickets/boot-log.txt",
		SizeBytes:  2048,
	})
	require.NoError(t, err)

	otherTicket := f.createTicket(t, f.endUser)
	err = f.svc.RemoveDocument(ctx, f.endUser, otherTicket.ID, attachment.ID)
	assertDomainCode(t, err, "NOT_FOUND")

	require.NoError(t, f.svc.RemoveDocument(ctx, f.endUser, ticket.ID, attachment.ID))

	_, _, attachments, err := f.svc.GetTicket(ctx, f.endUser, ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestDeleteTicketSuperadminOnly(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.endUser)

	err := f.svc.DeleteTicket(ctx, f.admin, ticket.ID)
	assertDomainCode(t, err, "FORBIDDEN")

	require.NoError(t, f.svc.DeleteTicket(ctx, f.superadmin, ticket.ID))
	err = f.svc.DeleteTicket(ctx, f.superadmin, ticket.ID)
	assertDomainCode(t, err, "NOT_FOUND")
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, code, domainErr.Code)
}
