package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func newDepartmentFixture() (*DepartmentService, *fakeDepartmentRepo, *fakeTicketRepo) {
	departments := newFakeDepartmentRepo()
	tickets := newFakeTicketRepo()
	return NewDepartmentService(departments, tickets), departments, tickets
}

func TestCreateDepartmentUniqueName(t *testing.T) {
	svc, _, _ := newDepartmentFixture()
	ctx := context.Background()

	dept, err := svc.Create(ctx, DepartmentInput{Name: "IT Support", Categories: []string{"hardware"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"hardware"}, dept.Categories)

	_, err = svc.Create(ctx, DepartmentInput{Name: "IT Support"})
	assertDomainCode(t, err, "CONFLICT")

	_, err = svc.Create(ctx, DepartmentInput{Name: "   "})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateDepartment(t *testing.T) {
	svc, _, _ := newDepartmentFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, DepartmentInput{Name: "IT Support"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, DepartmentInput{Name: "Facilities"})
	require.NoError(t, err)

	// Renaming onto an existing department is rejected.
	_, err = svc.Update(ctx, second.ID, DepartmentInput{Name: "IT Support"})
	assertDomainCode(t, err, "CONFLICT")

	updated, err := svc.Update(ctx, first.ID, DepartmentInput{
		Name:       "IT Support",
		Categories: []string{"hardware", "software", "network"},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Categories, 3)
}

func TestDeleteDepartmentBlockedByTickets(t *testing.T) {
	svc, _, tickets := newDepartmentFixture()
	ctx := context.Background()

	dept, err := svc.Create(ctx, DepartmentInput{Name: "IT Support"})
	require.NoError(t, err)

	ticket := &domain.Ticket{Title: "t", Description: "d", DepartmentID: dept.ID, Status: domain.TicketStatusPending}
	require.NoError(t, tickets.Create(ctx, ticket))

	err = svc.Delete(ctx, dept.ID)
	assertDomainCode(t, err, "CONFLICT")

	require.NoError(t, tickets.Delete(ctx, ticket.ID))
	require.NoError(t, svc.Delete(ctx, dept.ID))

	err = svc.Delete(ctx, dept.ID)
	assertDomainCode(t, err, "NOT_FOUND")
}
