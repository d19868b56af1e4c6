package models

import "time"

type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleGuest      Role = "GUEST" // token-only role, guests have no User row
)

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      Role      `gorm:"type:VARCHAR(20);default:'USER'" json:"role"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Cart      *Cart     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is embedded in User and snapshotted onto orders at checkout.
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

// Complete reports whether the address can be shipped to.
// State is optional; everything else is required.
func (a Address) Complete() bool {
	return a.Country != "" && a.City != "" && a.Street != "" && a.PostalCode != ""
}

const (
	OTPPurposeVerify        = "verify"
	OTPPurposePasswordReset = "password_reset"
)

// OTP is a one-time code mailed to the user for account verification
// or password reset. Codes expire and are deleted on successful use.
type OTP struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	Code      string `gorm:"not null"`
	Purpose   string `gorm:"type:VARCHAR(20);not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// GuestUser tracks issued guest sessions so abandoned carts can be
// expired later.
type GuestUser struct {
	ID        string `gorm:"primaryKey"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
