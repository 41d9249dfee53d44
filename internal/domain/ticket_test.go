package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	cases := []struct {
		from, to TicketStatus
		want     bool
	}{
		{TicketStatusPending, TicketStatusAssigned, true},
		{TicketStatusPending, TicketStatusResolved, true},
		{TicketStatusAssigned, TicketStatusInProgress, true},
		{TicketStatusInProgress, TicketStatusResolved, true},
		{TicketStatusResolved, TicketStatusPending, false},
		{TicketStatusInProgress, TicketStatusAssigned, false},
		{TicketStatusPending, TicketStatusPending, false},
		{TicketStatusResolved, TicketStatusResolved, false},
		{TicketStatus("archived"), TicketStatusResolved, false},
		{TicketStatusPending, TicketStatus("archived"), false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	assert.True(t, ValidStatus(TicketStatusPending))
	assert.False(t, ValidStatus("archived"))
	assert.True(t, ValidPriority(TicketPriorityHigh))
	assert.False(t, ValidPriority("urgent"))
}

func TestTimeToSolve(t *testing.T) {
	created := time.Now().Add(-90 * time.Minute)
	ticket := Ticket{CreatedAt: created}
	assert.Zero(t, ticket.TimeToSolve())

	resolved := created.Add(time.Hour)
	ticket.ResolvedAt = &resolved
	assert.InDelta(t, time.Hour.Seconds(), ticket.TimeToSolve(), 0.01)
}

func TestRoleHelpers(t *testing.T) {
	assert.False(t, RoleUser.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleSuperadmin.IsStaff())

	assert.Equal(t, "/dashboard", RoleUser.HomeRoute())
	assert.Equal(t, "/admin", RoleAdmin.HomeRoute())
	assert.Equal(t, "/superadmin", RoleSuperadmin.HomeRoute())
}
