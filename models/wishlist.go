package models

import "time"

// Wishlist is a per-user set of saved product references. Unlike the
// cart there are no quantities or totals.
type Wishlist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"uniqueIndex;not null" json:"user_id"`
	Items     []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WishlistID uint      `gorm:"index:idx_wishlist_product,unique" json:"wishlist_id"`
	ProductID  uint      `gorm:"index:idx_wishlist_product,unique" json:"product_id"`
	AddedAt    time.Time `json:"added_at"`
}
