package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

// OrderMailer sends the order confirmation; failures are logged and
// swallowed.
type OrderMailer interface {
	SendOrderConfirmation(to, name, orderNumber string, total float64) error
}

// POST /orders/checkout
func Checkout(db *gorm.DB, gw PaymentGateway, mailer OrderMailer, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		userID := middleware.UserIDFrom(c)
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}

		result, err := PlaceOrder(c.Request.Context(), db, gw, &user, input)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingRedirects), errors.Is(err, ErrAddressIncomplete), errors.Is(err, ErrCartEmpty):
				response.Error(c, http.StatusBadRequest, err.Error())
			default:
				log.Error().Err(err).Str("user_id", userID).Msg("checkout failed")
				response.Error(c, http.StatusBadRequest, err.Error())
			}
			return
		}

		if err := mailer.SendOrderConfirmation(user.Email, user.Name,
			result.Order.OrderNumber, result.Order.TotalAmount); err != nil {
			log.Warn().Err(err).Str("order", result.Order.OrderNumber).Msg("order confirmation email failed")
		}

		response.Created(c, result)
	}
}

// GET /orders
func ListMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		err := db.Where("user_id = ? AND is_active = ?", middleware.UserIDFrom(c), true).
			Preload("Items").Order("created_at DESC").Find(&orders).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		response.OK(c, orders)
	}
}

// GET /orders/:order_number
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOwnedOrder(c, db)
		if !ok {
			return
		}
		response.OK(c, order)
	}
}

// POST /orders/:order_number/cancel
func CancelOrder(db *gorm.DB, gw PaymentGateway, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOwnedOrder(c, db)
		if !ok {
			return
		}

		refundErr, err := Cancel(c.Request.Context(), db, gw, order)
		if err != nil {
			if errors.Is(err, ErrNotCancellable) {
				response.Error(c, http.StatusConflict, "Order has shipped and can no longer be cancelled")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to cancel order")
			return
		}
		if refundErr != nil {
			log.Error().Err(refundErr).Str("order", order.OrderNumber).Msg("refund failed, cancellation kept")
		}

		response.OK(c, order)
	}
}

func findOwnedOrder(c *gin.Context, db *gorm.DB) (*models.Order, bool) {
	var order models.Order
	err := db.Where("order_number = ? AND user_id = ?", c.Param("order_number"), middleware.UserIDFrom(c)).
		Preload("Items").First(&order).Error
	if err != nil {
		response.Error(c, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return &order, true
}
