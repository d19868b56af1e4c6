package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/nimbusmart/commerce-api/controllers/admin"
	orderControllers "github.com/nimbusmart/commerce-api/controllers/order"
	productcontroller "github.com/nimbusmart/commerce-api/controllers/product"
	ticketControllers "github.com/nimbusmart/commerce-api/controllers/ticket"
	userControllers "github.com/nimbusmart/commerce-api/controllers/user"
	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/policy"
)

// SetupAdminRoutes registers the /admin surface. Every group is gated
// on the capability table rather than inline role checks.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateToken(d.Cfg.JWTSecret), middleware.RequireUser())

	products := admin.Group("/", middleware.Authorize(d.Policy, policy.ActionProductWrite))
	{
		products.POST("/products", productcontroller.CreateProduct(d.DB))
		products.PUT("/products/:id", productcontroller.UpdateProduct(d.DB))
		products.DELETE("/products/:id", productcontroller.DeleteProduct(d.DB))
		products.POST("/categories", productcontroller.CreateCategory(d.DB))
		products.DELETE("/categories/:id", productcontroller.DeleteCategory(d.DB))
	}

	orders := admin.Group("/orders", middleware.Authorize(d.Policy, policy.ActionOrderManage))
	{
		orders.GET("", orderControllers.ListAllOrders(d.DB))
		orders.PUT("/:order_number/status", orderControllers.UpdateOrderStatus(d.DB))
	}

	tickets := admin.Group("/tickets", middleware.Authorize(d.Policy, policy.ActionTicketManage))
	{
		tickets.GET("", ticketControllers.ListAll(d.DB))
		tickets.GET("/:reference", ticketControllers.AdminGet(d.DB))
		tickets.PUT("/:reference", ticketControllers.Update(d.DB))
		tickets.POST("/:reference/messages", ticketControllers.AdminPostMessage(d.DB))
	}

	stats := admin.Group("/stats", middleware.Authorize(d.Policy, policy.ActionStatsView))
	{
		stats.GET("/orders", orderControllers.OrderStats(d.DB))
		stats.GET("/tickets", ticketControllers.Stats(d.DB))
		stats.GET("/users", userControllers.UserStats(d.DB))
	}

	users := admin.Group("/users", middleware.Authorize(d.Policy, policy.ActionUserList))
	{
		users.GET("", userControllers.GetAllUsers(d.DB))
	}

	admins := admin.Group("/admins", middleware.Authorize(d.Policy, policy.ActionAdminManage))
	{
		admins.POST("/promote", adminController.PromoteAdmin(d.DB, d.Mailer, d.Log))
		admins.POST("/demote", adminController.DemoteAdmin(d.DB, d.Mailer, d.Log))
	}
}
