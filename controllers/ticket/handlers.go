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

type CreateTicketInput struct {
	Subject     string `json:"subject" binding:"required"`
	Category    string `json:"category"`
	Body        string `json:"body" binding:"required"`
	OrderNumber string `json:"order_number"`
	Priority    string `json:"priority"`
}

type MessageInput struct {
	Body string `json:"body" binding:"required"`
}

// POST /tickets
func Create(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateTicketInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		priority := models.TicketPriority("")
		if input.Priority != "" {
			mapped, err := mapTicketPriority(input.Priority)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid priority")
				return
			}
			priority = mapped
		}

		userID := middleware.UserIDFrom(c)
		if input.OrderNumber != "" {
			var order models.Order
			if err := db.Where("order_number = ? AND user_id = ?", input.OrderNumber, userID).
				First(&order).Error; err != nil {
				response.Error(c, http.StatusBadRequest, "Referenced order not found")
				return
			}
		}

		ticket, err := CreateTicket(db, userID, input.OrderNumber, input.Subject, input.Category, input.Body, priority)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create ticket")
			return
		}
		response.Created(c, ticket)
	}
}

// GET /tickets
func ListMine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tickets []models.Ticket
		err := db.Where("user_id = ?", middleware.UserIDFrom(c)).
			Order("updated_at DESC").Find(&tickets).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch tickets")
			return
		}
		response.OK(c, tickets)
	}
}

// GET /tickets/:reference
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, ok := findOwnedTicket(c, db)
		if !ok {
			return
		}
		response.OK(c, ticket)
	}
}

// POST /tickets/:reference/messages
func PostMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		ticket, ok := findOwnedTicket(c, db)
		if !ok {
			return
		}

		fresh, err := AddMessage(db, ticket, middleware.UserIDFrom(c), models.RoleUser, input.Body)
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

func findOwnedTicket(c *gin.Context, db *gorm.DB) (*models.Ticket, bool) {
	var ticket models.Ticket
	err := db.Where("reference = ? AND user_id = ?", c.Param("reference"), middleware.UserIDFrom(c)).
		Preload("Messages").First(&ticket).Error
	if err != nil {
		response.Error(c, http.StatusNotFound, "Ticket not found")
		return nil, false
	}
	return &ticket, true
}
