package paymentControllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/gateway"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

// SignatureHeader carries the gateway's HMAC over the raw body.
const SignatureHeader = "X-Gateway-Signature"

// Gateway is the slice of the gateway client the webhook needs.
type Gateway interface {
	GetCheckoutSession(ctx context.Context, id string) (*gateway.CheckoutSession, error)
	VerifySignature(payload []byte, signature string) error
}

// POST /webhooks/payment
// Consumes checkout.session.completed. The payload's own status field
// is never trusted; the session is re-fetched from the gateway and its
// payment state mapped onto the order. Replays reapply the same status.
func Webhook(db *gorm.DB, gw Gateway, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Failed to read payload")
			return
		}

		if err := gw.VerifySignature(payload, c.GetHeader(SignatureHeader)); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid signature")
			return
		}

		var event gateway.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			response.Error(c, http.StatusBadRequest, "Malformed event")
			return
		}
		if event.Type != gateway.EventCheckoutCompleted {
			response.Message(c, http.StatusOK, "Event ignored")
			return
		}

		orderNumber := event.Data.Object.Metadata["order_number"]
		var order models.Order
		if err := db.First(&order, "order_number = ?", orderNumber).Error; err != nil {
			// 200 so the gateway does not keep retrying an event we will
			// never be able to apply.
			log.Warn().Str("order", orderNumber).Msg("webhook for unknown order")
			response.Message(c, http.StatusOK, "Order not processed")
			return
		}

		session, err := gw.GetCheckoutSession(c.Request.Context(), event.Data.Object.ID)
		if err != nil {
			log.Error().Err(err).Str("order", orderNumber).Msg("session lookup failed")
			response.Error(c, http.StatusInternalServerError, "Failed to verify session")
			return
		}

		status := models.PaymentStatusPending
		if session.PaymentStatus == gateway.SessionPaid {
			status = models.PaymentStatusPaid
		}

		updates := map[string]any{"payment_status": status}
		if session.PaymentRef != "" {
			updates["gateway_payment_id"] = session.PaymentRef
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update order")
			return
		}

		log.Info().Str("order", orderNumber).Str("payment_status", string(status)).Msg("payment webhook applied")
		response.Message(c, http.StatusOK, "Webhook processed")
	}
}
