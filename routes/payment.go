package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/nimbusmart/commerce-api/controllers/payment"
)

// SetupPaymentRoutes registers the inbound gateway webhook. The
// endpoint is public; authenticity comes from the HMAC signature.
func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	r.POST("/webhooks/payment", paymentControllers.Webhook(d.DB, d.Gateway, d.Log))
}
