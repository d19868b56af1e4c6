package ticketControllers

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Ticket{}, &models.TicketMessage{}))
	return db
}

func TestCreateTicket(t *testing.T) {
	db := newTestDB(t)

	ticket, err := CreateTicket(db, "user-1", "ORD-20260829-AAAA1111", "Package arrived open", "delivery", "The box was already opened.", "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.Reference, "TCK-"))
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)
	assert.False(t, ticket.Escalated)
	assert.False(t, ticket.LastResponseAt.IsZero())
	require.Len(t, ticket.Messages, 1)
	assert.Equal(t, "user-1", ticket.Messages[0].SenderID)
	assert.Equal(t, models.RoleUser, ticket.Messages[0].SenderRole)
}

func TestCreateTicketRejectsEmptyBody(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateTicket(db, "user-1", "", "Subject", "other", "   ", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAddMessageAppendsOnly(t *testing.T) {
	db := newTestDB(t)

	ticket, err := CreateTicket(db, "user-1", "", "Question", "other", "First message", "")
	require.NoError(t, err)

	fresh, err := AddMessage(db, ticket, "agent-1", models.RoleAdmin, "We are on it.")
	require.NoError(t, err)

	require.Len(t, fresh.Messages, 2)
	assert.Equal(t, "First message", fresh.Messages[0].Body)
	assert.Equal(t, "We are on it.", fresh.Messages[1].Body)
	assert.True(t, fresh.LastResponseAt.After(ticket.Messages[0].CreatedAt) ||
		fresh.LastResponseAt.Equal(ticket.Messages[0].CreatedAt))
}

func TestCustomerReplyReopensWaitingTicket(t *testing.T) {
	db := newTestDB(t)

	ticket, err := CreateTicket(db, "user-1", "", "Question", "other", "First message", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(ticket).Update("status", models.TicketStatusWaitingCustomer).Error)
	ticket.Status = models.TicketStatusWaitingCustomer

	fresh, err := AddMessage(db, ticket, "user-1", models.RoleUser, "Here is the photo you asked for.")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusOpen, fresh.Status)
}

func TestAgentReplyDoesNotReopenWaitingTicket(t *testing.T) {
	db := newTestDB(t)

	ticket, err := CreateTicket(db, "user-1", "", "Question", "other", "First message", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(ticket).Update("status", models.TicketStatusWaitingCustomer).Error)
	ticket.Status = models.TicketStatusWaitingCustomer

	fresh, err := AddMessage(db, ticket, "agent-1", models.RoleAdmin, "Still waiting on your photo.")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusWaitingCustomer, fresh.Status)
}

func TestCustomerReplyLeavesResolvedTicketAlone(t *testing.T) {
	db := newTestDB(t)

	ticket, err := CreateTicket(db, "user-1", "", "Question", "other", "First message", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(ticket).Update("status", models.TicketStatusResolved).Error)
	ticket.Status = models.TicketStatusResolved

	fresh, err := AddMessage(db, ticket, "user-1", models.RoleUser, "Thanks!")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, fresh.Status)
}

func TestMapTicketStatus(t *testing.T) {
	status, err := mapTicketStatus("waiting_customer")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusWaitingCustomer, status)

	_, err = mapTicketStatus("SNOOZED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMapTicketPriority(t *testing.T) {
	priority, err := mapTicketPriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, models.TicketPriorityUrgent, priority)

	_, err = mapTicketPriority("WHENEVER")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}
