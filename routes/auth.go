package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nimbusmart/commerce-api/auth"
)

// SetupAuthRoutes registers the public /auth endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	ttl := time.Duration(d.Cfg.TokenExpiryHours) * time.Hour

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(d.DB, d.Mailer, d.Cfg.Production()))
		authGroup.POST("/verify-otp", auth.VerifyOTP(d.DB, d.Mailer))
		authGroup.POST("/resend-otp", auth.ResendOTP(d.DB, d.Mailer, d.Cfg.Production()))
		authGroup.POST("/login", auth.Login(d.DB, d.Cfg.JWTSecret, ttl, d.Log))
		authGroup.POST("/guest", auth.CreateGuestSession(d.DB, d.Cfg.JWTSecret))
		authGroup.POST("/forgot-password", auth.ForgotPassword(d.DB, d.Mailer, d.Cfg.Production()))
		authGroup.POST("/reset-password", auth.ResetPassword(d.DB))
	}
}
