package models

import "time"

type TicketStatus string
type TicketPriority string

const (
	TicketStatusOpen            TicketStatus = "OPEN"
	TicketStatusInProgress      TicketStatus = "IN_PROGRESS"
	TicketStatusWaitingCustomer TicketStatus = "WAITING_CUSTOMER"
	TicketStatusResolved        TicketStatus = "RESOLVED"
	TicketStatusClosed          TicketStatus = "CLOSED"

	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is a support thread owned by a user, optionally attached to an
// order. The message list is append-only; LastResponseAt tracks the most
// recent message.
type Ticket struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Reference      string          `gorm:"uniqueIndex;not null" json:"reference"`
	UserID         string          `gorm:"index;not null" json:"user_id"`
	OrderNumber    string          `json:"order_number,omitempty"`
	Subject        string          `gorm:"not null" json:"subject"`
	Category       string          `json:"category"`
	Priority       TicketPriority  `gorm:"type:VARCHAR(10);default:'MEDIUM'" json:"priority"`
	Status         TicketStatus    `gorm:"type:VARCHAR(20);default:'OPEN'" json:"status"`
	Escalated      bool            `gorm:"default:false" json:"escalated"`
	LastResponseAt time.Time       `json:"last_response_at"`
	Messages       []TicketMessage `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"messages"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type TicketMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TicketID   uint      `gorm:"index" json:"ticket_id"`
	SenderID   string    `gorm:"not null" json:"sender_id"`
	SenderRole Role      `gorm:"type:VARCHAR(20);not null" json:"sender_role"`
	Body       string    `gorm:"not null" json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
