package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/config"
	"github.com/nimbusmart/commerce-api/email"
	"github.com/nimbusmart/commerce-api/gateway"
	"github.com/nimbusmart/commerce-api/logger"
	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/policy"
	"github.com/nimbusmart/commerce-api/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.AppEnv)
	log.Info().Str("env", cfg.AppEnv).Msg("starting commerce-api")

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.OTP{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Ticket{},
		&models.TicketMessage{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}

	table := policy.Default()
	if cfg.PolicyFile != "" {
		table, err = policy.LoadFile(cfg.PolicyFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.PolicyFile).Msg("failed to load policy file")
		}
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		DB:      db,
		Cfg:     cfg,
		Log:     log,
		Mailer:  email.NewMailer(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.EmailFromName, log),
		Gateway: gateway.New(cfg.GatewayAPIURL, cfg.GatewayAPIKey, cfg.GatewayWebhookSecret),
		Policy:  table,
	})

	log.Info().Str("port", cfg.ServerPort).Msg("listening")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
