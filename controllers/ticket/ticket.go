package ticketControllers

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrInvalidStatus   = errors.New("invalid ticket status")
	ErrInvalidPriority = errors.New("invalid ticket priority")
	ErrEmptyMessage    = errors.New("message body is empty")
)

func generateTicketRef() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// CreateTicket opens a new support thread with its first message.
func CreateTicket(db *gorm.DB, userID string, orderNumber, subject, category, body string, priority models.TicketPriority) (*models.Ticket, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	now := time.Now()
	ticket := models.Ticket{
		Reference:      generateTicketRef(),
		UserID:         userID,
		OrderNumber:    orderNumber,
		Subject:        subject,
		Category:       category,
		Priority:       priority,
		Status:         models.TicketStatusOpen,
		LastResponseAt: now,
		Messages: []models.TicketMessage{{
			SenderID:   userID,
			SenderRole: models.RoleUser,
			Body:       body,
			CreatedAt:  now,
		}},
	}
	if err := db.Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// AddMessage appends to the thread. Messages are never edited or
// removed. A customer reply while the ticket sits in WAITING_CUSTOMER
// flips the status back to OPEN.
func AddMessage(db *gorm.DB, ticket *models.Ticket, senderID string, senderRole models.Role, body string) (*models.Ticket, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}

	now := time.Now()
	message := models.TicketMessage{
		TicketID:   ticket.ID,
		SenderID:   senderID,
		SenderRole: senderRole,
		Body:       body,
		CreatedAt:  now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		updates := map[string]any{"last_response_at": now}
		if senderRole == models.RoleUser && ticket.Status == models.TicketStatusWaitingCustomer {
			updates["status"] = models.TicketStatusOpen
		}
		return tx.Model(ticket).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	var fresh models.Ticket
	if err := db.Preload("Messages").First(&fresh, ticket.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func mapTicketStatus(status string) (models.TicketStatus, error) {
	switch models.TicketStatus(strings.ToUpper(status)) {
	case models.TicketStatusOpen:
		return models.TicketStatusOpen, nil
	case models.TicketStatusInProgress:
		return models.TicketStatusInProgress, nil
	case models.TicketStatusWaitingCustomer:
		return models.TicketStatusWaitingCustomer, nil
	case models.TicketStatusResolved:
		return models.TicketStatusResolved, nil
	case models.TicketStatusClosed:
		return models.TicketStatusClosed, nil
	default:
		return "", ErrInvalidStatus
	}
}

func mapTicketPriority(priority string) (models.TicketPriority, error) {
	switch models.TicketPriority(strings.ToUpper(priority)) {
	case models.TicketPriorityLow:
		return models.TicketPriorityLow, nil
	case models.TicketPriorityMedium:
		return models.TicketPriorityMedium, nil
	case models.TicketPriorityHigh:
		return models.TicketPriorityHigh, nil
	case models.TicketPriorityUrgent:
		return models.TicketPriorityUrgent, nil
	default:
		return "", ErrInvalidPriority
	}
}
