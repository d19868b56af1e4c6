package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// GET /admin/orders
func ListAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			mapped, err := mapOrderStatus(status)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid status filter")
				return
			}
			query = query.Where("status = ?", mapped)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		response.OK(c, orders)
	}
}

// PUT /admin/orders/:order_number/status
// Fulfillment advances via admin action. Moving to CANCELLED is subject
// to the same shipped/delivered guard as user cancellation.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		status, err := mapOrderStatus(input.Status)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid order status")
			return
		}

		var order models.Order
		if err := db.First(&order, "order_number = ?", c.Param("order_number")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Order not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch order")
			return
		}

		if status == models.OrderStatusCancelled && !order.Cancellable() {
			response.Error(c, http.StatusConflict, "Order has shipped and can no longer be cancelled")
			return
		}

		if err := db.Model(&order).Update("status", status).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update order")
			return
		}
		order.Status = status
		response.OK(c, order)
	}
}

type orderStats struct {
	TotalOrders   int64   `json:"total_orders"`
	PendingOrders int64   `json:"pending_orders"`
	Shipped       int64   `json:"shipped_orders"`
	Delivered     int64   `json:"delivered_orders"`
	Cancelled     int64   `json:"cancelled_orders"`
	PaidRevenue   float64 `json:"paid_revenue"`
}

// GET /admin/orders/stats
func OrderStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats orderStats
		base := db.Model(&models.Order{}).Where("is_active = ?", true)

		if err := base.Session(&gorm.Session{}).Count(&stats.TotalOrders).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		counts := map[models.OrderStatus]*int64{
			models.OrderStatusPending:   &stats.PendingOrders,
			models.OrderStatusShipped:   &stats.Shipped,
			models.OrderStatusDelivered: &stats.Delivered,
			models.OrderStatusCancelled: &stats.Cancelled,
		}
		for status, dest := range counts {
			if err := base.Session(&gorm.Session{}).Where("status = ?", status).Count(dest).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to compute stats")
				return
			}
		}

		err := db.Model(&models.Order{}).
			Where("is_active = ? AND payment_status = ?", true, models.PaymentStatusPaid).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.PaidRevenue).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}

		response.OK(c, stats)
	}
}
