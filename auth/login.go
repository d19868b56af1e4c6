package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	cartControllers "github.com/nimbusmart/commerce-api/controllers/cart"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
	"github.com/nimbusmart/commerce-api/token"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// Optional guest cart to merge into the user's cart on login.
	GuestID string `json:"guest_id"`
}

// POST /auth/login
func Login(db *gorm.DB, secret string, ttl time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		err := db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(input.Email))).Error
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !user.Verified {
			response.Error(c, http.StatusForbidden, "Account not verified")
			return
		}

		if input.GuestID != "" {
			if _, err := cartControllers.Merge(db, input.GuestID, user.ID); err != nil &&
				!errors.Is(err, cartControllers.ErrCartNotFound) {
				log.Error().Err(err).Str("user_id", user.ID).Str("guest_id", input.GuestID).
					Msg("guest cart merge failed")
			}
		}

		signed, err := token.Issue(secret, user.ID, user.Role, ttl)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		response.OK(c, gin.H{
			"token":      signed,
			"expires_at": time.Now().Add(ttl),
			"user": gin.H{
				"id":       user.ID,
				"email":    user.Email,
				"username": user.Username,
				"name":     user.Name,
				"role":     user.Role,
			},
		})
	}
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/forgot-password
func ForgotPassword(db *gorm.DB, mailer Mailer, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, "email = ?", strings.ToLower(input.Email)).Error; err != nil {
			// Do not reveal whether the address exists.
			response.Message(c, http.StatusOK, "If the account exists, a reset code was sent")
			return
		}

		code, err := issueOTP(db, user.ID, models.OTPPurposePasswordReset)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to issue reset code")
			return
		}

		data := gin.H{}
		if err := mailer.SendPasswordReset(user.Email, user.Name, code); err != nil && !production {
			data["otp"] = code
		}
		c.JSON(http.StatusOK, response.Body{Success: true, Data: data,
			Message: "If the account exists, a reset code was sent"})
	}
}

type ResetPasswordInput struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/reset-password
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, "email = ?", strings.ToLower(input.Email)).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}

		if err := consumeOTP(db, user.ID, models.OTPPurposePasswordReset, input.Code); err != nil {
			if errors.Is(err, ErrOTPInvalid) {
				response.Error(c, http.StatusBadRequest, "Invalid or expired code")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to verify code")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		if err := db.Model(&user).Update("password", string(hash)).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update password")
			return
		}
		response.Message(c, http.StatusOK, "Password updated")
	}
}
