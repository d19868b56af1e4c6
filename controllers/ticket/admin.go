package ticketControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

type UpdateTicketInput struct {
	Status    *string `json:"status"`
	Priority  *string `json:"priority"`
	Escalated *bool   `json:"escalated"`
}

// GET /admin/tickets
func ListAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("updated_at DESC")
		if status := c.Query("status"); status != "" {
			mapped, err := mapTicketStatus(status)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid status filter")
				return
			}
			query = query.Where("status = ?", mapped)
		}
		if c.Query("escalated") == "true" {
			query = query.Where("escalated = ?", true)
		}

		var tickets []models.Ticket
		if err := query.Find(&tickets).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch tickets")
			return
		}
		response.OK(c, tickets)
	}
}

// GET /admin/tickets/:reference
func AdminGet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, ok := findTicket(c, db)
		if !ok {
			return
		}
		response.OK(c, ticket)
	}
}

// PUT /admin/tickets/:reference
// Status, priority and escalation move independently of the message
// thread and only through this admin path.
func Update(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateTicketInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := map[string]any{}
		if input.Status != nil {
			status, err := mapTicketStatus(*input.Status)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid status")
				return
			}
			updates["status"] = status
		}
		if input.Priority != nil {
			priority, err := mapTicketPriority(*input.Priority)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid priority")
				return
			}
			updates["priority"] = priority
		}
		if input.Escalated != nil {
			updates["escalated"] = *input.Escalated
		}
		if len(updates) == 0 {
			response.Error(c, http.StatusBadRequest, "Nothing to update")
			return
		}

		ticket, ok := findTicket(c, db)
		if !ok {
			return
		}
		if err := db.Model(ticket).Updates(updates).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update ticket")
			return
		}

		var fresh models.Ticket
		if err := db.Preload("Messages").First(&fresh, ticket.ID).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch ticket")
			return
		}
		response.OK(c, &fresh)
	}
}

// POST /admin/tickets/:reference/messages
func AdminPostMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		ticket, ok := findTicket(c, db)
		if !ok {
			return
		}

		fresh, err := AddMessage(db, ticket, middleware.UserIDFrom(c), middleware.RoleFrom(c), input.Body)
		if err != nil {
			if errors.Is(err, ErrEmptyMessage) {
				response.Error(c, http.StatusBadRequest, "Message body is empty")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to add message")
			return
		}
		response.Created(c, fresh)
	}
}

type ticketStats struct {
	Total           int64 `json:"total"`
	Open            int64 `json:"open"`
	InProgress      int64 `json:"in_progress"`
	WaitingCustomer int64 `json:"waiting_customer"`
	Resolved        int64 `json:"resolved"`
	Escalated       int64 `json:"escalated"`
	Urgent          int64 `json:"urgent"`
}

// GET /admin/tickets/stats
func Stats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats ticketStats
		model := func() *gorm.DB { return db.Model(&models.Ticket{}) }

		type count struct {
			dest  *int64
			query *gorm.DB
		}
		counts := []count{
			{&stats.Total, model()},
			{&stats.Open, model().Where("status = ?", models.TicketStatusOpen)},
			{&stats.InProgress, model().Where("status = ?", models.TicketStatusInProgress)},
			{&stats.WaitingCustomer, model().Where("status = ?", models.TicketStatusWaitingCustomer)},
			{&stats.Resolved, model().Where("status = ?", models.TicketStatusResolved)},
			{&stats.Escalated, model().Where("escalated = ?", true)},
			{&stats.Urgent, model().Where("priority = ?", models.TicketPriorityUrgent)},
		}
		for _, entry := range counts {
			if err := entry.query.Count(entry.dest).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to compute stats")
				return
			}
		}
		response.OK(c, stats)
	}
}

func findTicket(c *gin.Context, db *gorm.DB) (*models.Ticket, bool) {
	var ticket models.Ticket
	err := db.Where("reference = ?", c.Param("reference")).Preload("Messages").First(&ticket).Error
	if err != nil {
		response.Error(c, http.StatusNotFound, "Ticket not found")
		return nil, false
	}
	return &ticket, true
}
