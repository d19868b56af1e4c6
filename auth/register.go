package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

// Mailer is the slice of the email service the auth flows need. Sends
// are fire-and-forget; a failed send degrades, it never fails the
// request.
type Mailer interface {
	SendOTP(to, name, code string) error
	SendWelcome(to, name string) error
	SendPasswordReset(to, name, code string) error
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// POST /auth/register
func Register(db *gorm.DB, mailer Mailer, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))

		var existing models.User
		err := db.Where("email = ? OR username = ?", email, input.Username).First(&existing).Error
		if err == nil {
			response.Error(c, http.StatusConflict, "Email or username already registered")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusInternalServerError, "Failed to check existing users")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := models.User{
			ID:       uuid.NewString(),
			Email:    email,
			Username: input.Username,
			Password: string(hash),
			Name:     input.Name,
			Role:     models.RoleUser,
		}
		if err := db.Create(&user).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create user")
			return
		}

		code, err := issueOTP(db, user.ID, models.OTPPurposeVerify)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to issue verification code")
			return
		}

		data := gin.H{"user_id": user.ID}
		if err := mailer.SendOTP(user.Email, user.Name, code); err != nil && !production {
			// Development fallback only: surface the code so local
			// signup works without a mail provider.
			data["otp"] = code
		}

		c.JSON(http.StatusCreated, response.Body{
			Success: true,
			Data:    data,
			Message: "Registered. Check your email for the verification code.",
		})
	}
}

type VerifyOTPInput struct {
	UserID string `json:"user_id" binding:"required"`
	Code   string `json:"code" binding:"required,len=6"`
}

// POST /auth/verify-otp
func VerifyOTP(db *gorm.DB, mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", input.UserID).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		if user.Verified {
			response.Message(c, http.StatusOK, "Account already verified")
			return
		}

		if err := consumeOTP(db, user.ID, models.OTPPurposeVerify, input.Code); err != nil {
			if errors.Is(err, ErrOTPInvalid) {
				response.Error(c, http.StatusBadRequest, "Invalid or expired code")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to verify code")
			return
		}

		if err := db.Model(&user).Update("verified", true).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update user")
			return
		}

		_ = mailer.SendWelcome(user.Email, user.Name)
		response.Message(c, http.StatusOK, "Account verified")
	}
}

type ResendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/resend-otp
func ResendOTP(db *gorm.DB, mailer Mailer, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResendOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, "email = ?", strings.ToLower(input.Email)).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		if user.Verified {
			response.Error(c, http.StatusBadRequest, "Account already verified")
			return
		}

		code, err := issueOTP(db, user.ID, models.OTPPurposeVerify)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to issue verification code")
			return
		}

		data := gin.H{"user_id": user.ID}
		if err := mailer.SendOTP(user.Email, user.Name, code); err != nil && !production {
			data["otp"] = code
		}
		c.JSON(http.StatusOK, response.Body{Success: true, Data: data, Message: "Verification code sent"})
	}
}
