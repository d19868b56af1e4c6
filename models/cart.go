package models

import "time"

// Cart is the single cart entity for both identities: registered users
// (UserID set) and guests (GuestID set, UserID nil). At most one active
// cart exists per identity; merged or checked-out carts are kept with
// IsActive=false.
type Cart struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      *string    `gorm:"index" json:"user_id,omitempty"`
	GuestID     string     `gorm:"index" json:"guest_id,omitempty"`
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	TotalItems  int        `json:"total_items"`
	TotalAmount float64    `json:"total_amount"`
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CartItem snapshots name/price/thumbnail at add time; it is not
// live-linked to the product row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index" json:"cart_id"`
	ProductID uint      `json:"product_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Thumbnail string    `json:"thumbnail"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
