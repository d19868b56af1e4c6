package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

// ApprovalMailer notifies users of admin role decisions.
type ApprovalMailer interface {
	SendAdminApproval(to, name string, approved bool) error
}

type RoleChangeInput struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /admin/admins/promote
// Super-admin only: grants the ADMIN role.
func PromoteAdmin(db *gorm.DB, mailer ApprovalMailer, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := findByEmail(c, db)
		if !ok {
			return
		}
		if user.Role == models.RoleSuperAdmin {
			response.Error(c, http.StatusBadRequest, "Cannot change a super admin's role")
			return
		}

		if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update role")
			return
		}

		if err := mailer.SendAdminApproval(user.Email, user.Name, true); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("approval email failed")
		}
		response.Message(c, http.StatusOK, "Admin role granted")
	}
}

// POST /admin/admins/demote
// Super-admin only: revokes the ADMIN role.
func DemoteAdmin(db *gorm.DB, mailer ApprovalMailer, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := findByEmail(c, db)
		if !ok {
			return
		}
		if user.Role != models.RoleAdmin {
			response.Error(c, http.StatusBadRequest, "User is not an admin")
			return
		}

		if err := db.Model(user).Update("role", models.RoleUser).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update role")
			return
		}

		if err := mailer.SendAdminApproval(user.Email, user.Name, false); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("rejection email failed")
		}
		response.Message(c, http.StatusOK, "Admin role revoked")
	}
}

func findByEmail(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	var input RoleChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return nil, false
	}

	var user models.User
	if err := db.First(&user, "email = ?", input.Email).Error; err != nil {
		response.Error(c, http.StatusNotFound, "User not found")
		return nil, false
	}
	return &user, true
}
