package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Fulfillment statuses, advanced by admin action
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"

	// Payment statuses; PAID is set only from a verified gateway callback
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"

	PaymentMethodOnline PaymentMethod = "ONLINE"
	PaymentMethodCOD    PaymentMethod = "COD"
)

type Order struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	OrderNumber      string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID           string        `gorm:"index;not null" json:"user_id"`
	User             User          `gorm:"foreignKey:UserID" json:"-"`
	Items            []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalItems       int           `json:"total_items"`
	TotalAmount      float64       `json:"total_amount"`
	ShippingAddress  Address       `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod    PaymentMethod `gorm:"type:VARCHAR(10);not null" json:"payment_method"`
	PaymentStatus    PaymentStatus `gorm:"type:VARCHAR(10);default:'PENDING'" json:"payment_status"`
	Status           OrderStatus   `gorm:"type:VARCHAR(15);default:'PENDING'" json:"status"`
	GatewaySessionID string        `json:"gateway_session_id,omitempty"`
	GatewayPaymentID string        `json:"gateway_payment_id,omitempty"`
	IsActive         bool          `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// OrderItem freezes title/price/thumbnail at order time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Quantity  int     `json:"quantity"`
}

// Cancellable reports whether the order may still be cancelled.
// Cancellation is blocked once fulfillment reaches SHIPPED, regardless
// of payment status.
func (o *Order) Cancellable() bool {
	return o.Status != OrderStatusShipped &&
		o.Status != OrderStatusDelivered &&
		o.Status != OrderStatusCancelled
}
