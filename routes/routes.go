package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/config"
	"github.com/nimbusmart/commerce-api/email"
	"github.com/nimbusmart/commerce-api/gateway"
	"github.com/nimbusmart/commerce-api/policy"
	"github.com/nimbusmart/commerce-api/response"
)

// Deps bundles the process-scoped resources handed to route groups.
type Deps struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Log     zerolog.Logger
	Mailer  *email.Mailer
	Gateway *gateway.Client
	Policy  *policy.Table
}

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		response.Message(c, 200, "ok")
	})

	SetupAuthRoutes(r, d)
	SetupCatalogRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupAdminRoutes(r, d)
	SetupPaymentRoutes(r, d)
}
