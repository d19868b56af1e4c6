package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Thumbnail   string     `json:"thumbnail"`
	Tags        string     `json:"tags"` // comma-separated, searched with ILIKE
	Categories  []Category `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	Stock       int        `json:"stock"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Products []Product `gorm:"many2many:product_categories;" json:"products,omitempty"`
}
