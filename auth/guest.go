package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
	"github.com/nimbusmart/commerce-api/token"
)

const guestTTL = 24 * time.Hour

// POST /auth/guest
// Issues an anonymous identity so visitors can build a cart before
// registering. The guest id doubles as the cart key held client-side.
func CreateGuestSession(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := "guest_" + uuid.NewString()

		guest := models.GuestUser{
			ID:        guestID,
			ExpiresAt: time.Now().Add(guestTTL),
		}
		if err := db.Create(&guest).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create guest")
			return
		}

		signed, err := token.Issue(secret, guestID, models.RoleGuest, guestTTL)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		response.OK(c, gin.H{
			"guest_id":   guestID,
			"token":      signed,
			"expires_at": guest.ExpiresAt,
		})
	}
}
