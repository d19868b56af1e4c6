package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

// ProfileMailer sends the profile-update notification.
type ProfileMailer interface {
	SendProfileUpdated(to, name string) error
}

type UpdateUserInput struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
}

// GET /user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		err := db.Preload("Cart.Items").First(&user, "id = ?", middleware.UserIDFrom(c)).Error
		if err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.OK(c, user)
	}
}

// PUT /user
func UpdateUser(db *gorm.DB, mailer ProfileMailer, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", middleware.UserIDFrom(c)).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Address != nil {
			updates["address_country"] = input.Address.Country
			updates["address_state"] = input.Address.State
			updates["address_city"] = input.Address.City
			updates["address_street"] = input.Address.Street
			updates["address_postal_code"] = input.Address.PostalCode
		}
		if len(updates) == 0 {
			response.Error(c, http.StatusBadRequest, "Nothing to update")
			return
		}

		if err := db.Model(&user).Updates(updates).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}

		if err := mailer.SendProfileUpdated(user.Email, user.Name); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("profile update email failed")
		}

		var fresh models.User
		if err := db.First(&fresh, "id = ?", user.ID).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch user")
			return
		}
		response.OK(c, fresh)
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		err := db.
			Select("id", "email", "username", "name", "role", "verified", "created_at").
			Order("created_at DESC").
			Find(&users).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		response.OK(c, users)
	}
}

type userStats struct {
	Total      int64 `json:"total"`
	Verified   int64 `json:"verified"`
	Unverified int64 `json:"unverified"`
	Admins     int64 `json:"admins"`
}

// GET /admin/users/stats
func UserStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats userStats
		model := func() *gorm.DB { return db.Model(&models.User{}) }

		if err := model().Count(&stats.Total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		if err := model().Where("verified = ?", true).Count(&stats.Verified).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		stats.Unverified = stats.Total - stats.Verified
		err := model().Where("role IN ?", []models.Role{models.RoleAdmin, models.RoleSuperAdmin}).
			Count(&stats.Admins).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		response.OK(c, stats)
	}
}
