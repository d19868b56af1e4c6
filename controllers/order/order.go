package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/gateway"
	"github.com/nimbusmart/commerce-api/models"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrAddressIncomplete  = errors.New("shipping address is incomplete")
	ErrMissingRedirects   = errors.New("successUrl and cancelUrl are required for online payment")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotCancellable     = errors.New("order can no longer be cancelled")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// PaymentGateway is the slice of the gateway client the order engine
// uses.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req gateway.SessionRequest) (*gateway.CheckoutSession, error)
	Refund(ctx context.Context, paymentRef string, amount float64) error
}

type CheckoutInput struct {
	PaymentMethod   string          `json:"payment_method" binding:"required,oneof=ONLINE COD"`
	SuccessURL      string          `json:"success_url"`
	CancelURL       string          `json:"cancel_url"`
	ShippingAddress *models.Address `json:"shipping_address"`
}

// CheckoutResult carries the created order plus the hosted checkout URL
// for ONLINE payments.
type CheckoutResult struct {
	Order      *models.Order `json:"order"`
	PaymentURL string        `json:"payment_url,omitempty"`
}

func generateOrderNumber() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + time.Now().Format("20060102") + "-" + short
}

// PlaceOrder converts the user's active cart into an order. Every line
// is re-validated against live stock; any shortage rejects the whole
// checkout with nothing persisted. Prices and titles are frozen from
// the cart snapshot, stock is deducted, and the cart is cleared and
// deactivated in the same transaction. For ONLINE payment a hosted
// checkout session is then requested; if that fails the order is
// soft-cancelled and the error returned.
func PlaceOrder(ctx context.Context, db *gorm.DB, gw PaymentGateway, user *models.User, in CheckoutInput) (*CheckoutResult, error) {
	method := models.PaymentMethod(in.PaymentMethod)
	if method == models.PaymentMethodOnline && (in.SuccessURL == "" || in.CancelURL == "") {
		return nil, ErrMissingRedirects
	}

	address := user.Address
	if in.ShippingAddress != nil {
		address = *in.ShippingAddress
	}
	if !address.Complete() {
		return nil, ErrAddressIncomplete
	}

	var cart models.Cart
	err := db.Where("user_id = ? AND is_active = ?", user.ID, true).
		Preload("Items").First(&cart).Error
	if err != nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	order := models.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          user.ID,
		ShippingAddress: address,
		PaymentMethod:   method,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusPending,
		IsActive:        true,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		totalItems := 0
		totalAmount := 0.0

		for _, line := range cart.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				return fmt.Errorf("product %q is no longer available", line.Title)
			}
			if product.Stock < line.Quantity {
				return fmt.Errorf("insufficient stock for %q", line.Title)
			}

			product.Stock -= line.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			totalItems += line.Quantity
			totalAmount += line.Price * float64(line.Quantity)
			order.Items = append(order.Items, models.OrderItem{
				ProductID: line.ProductID,
				Title:     line.Title,
				Price:     line.Price,
				Thumbnail: line.Thumbnail,
				Quantity:  line.Quantity,
			})
		}

		order.TotalItems = totalItems
		order.TotalAmount = totalAmount
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Cart is cleared unconditionally, even for ONLINE checkout the
		// buyer may never complete. See the product-owner note in
		// DESIGN.md before changing this.
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&cart).
			Updates(map[string]any{"is_active": false, "total_items": 0, "total_amount": 0}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if method == models.PaymentMethodCOD {
		return &CheckoutResult{Order: &order}, nil
	}

	session, err := gw.CreateCheckoutSession(ctx, gateway.SessionRequest{
		OrderNumber:   order.OrderNumber,
		CustomerEmail: user.Email,
		LineItems:     sessionLines(order.Items),
		SuccessURL:    in.SuccessURL,
		CancelURL:     in.CancelURL,
		Metadata:      map[string]string{"order_number": order.OrderNumber},
	})
	if err != nil {
		// No retry: deactivate the order, put the stock back and fail
		// the checkout.
		_ = db.Transaction(func(tx *gorm.DB) error {
			if err := restock(tx, order.Items); err != nil {
				return err
			}
			return tx.Model(&order).
				Updates(map[string]any{"is_active": false, "status": models.OrderStatusCancelled}).Error
		})
		return nil, fmt.Errorf("payment session creation failed: %w", err)
	}

	if err := db.Model(&order).Update("gateway_session_id", session.ID).Error; err != nil {
		return nil, err
	}
	order.GatewaySessionID = session.ID
	return &CheckoutResult{Order: &order, PaymentURL: session.URL}, nil
}

// Cancel cancels an order, restocking its items. Blocked once the order
// has shipped. If the order was already paid a refund is attempted;
// refund failure is reported to the caller for logging but does not
// stop the cancellation.
func Cancel(ctx context.Context, db *gorm.DB, gw PaymentGateway, order *models.Order) (refundErr error, err error) {
	if !order.Cancellable() {
		return nil, ErrNotCancellable
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := restock(tx, order.Items); err != nil {
			return err
		}
		return tx.Model(order).Update("status", models.OrderStatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCancelled

	if order.PaymentStatus == models.PaymentStatusPaid {
		refundErr = gw.Refund(ctx, order.GatewayPaymentID, order.TotalAmount)
	}
	return refundErr, nil
}

func restock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

func sessionLines(items []models.OrderItem) []gateway.LineItem {
	lines := make([]gateway.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, gateway.LineItem{
			Name:      item.Title,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}
	return lines
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToUpper(status)) {
	case models.OrderStatusPending:
		return models.OrderStatusPending, nil
	case models.OrderStatusConfirmed:
		return models.OrderStatusConfirmed, nil
	case models.OrderStatusShipped:
		return models.OrderStatusShipped, nil
	case models.OrderStatusDelivered:
		return models.OrderStatusDelivered, nil
	case models.OrderStatusCancelled:
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}
