package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/nimbusmart/commerce-api/controllers/cart"
	orderControllers "github.com/nimbusmart/commerce-api/controllers/order"
	productcontroller "github.com/nimbusmart/commerce-api/controllers/product"
	ticketControllers "github.com/nimbusmart/commerce-api/controllers/ticket"
	userControllers "github.com/nimbusmart/commerce-api/controllers/user"
	wishlistControllers "github.com/nimbusmart/commerce-api/controllers/wishlist"
	"github.com/nimbusmart/commerce-api/middleware"
)

// SetupCatalogRoutes registers public browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	r.GET("/products", productcontroller.GetProducts(d.DB))
	r.GET("/products/:id", productcontroller.GetProductByID(d.DB))
	r.GET("/categories", productcontroller.GetCategories(d.DB))
	r.GET("/categories/:id/products", productcontroller.GetCategoryProducts(d.DB))
}

// SetupUserRoutes registers endpoints for authenticated callers. The
// cart group serves guests too; everything else requires a registered
// user.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	authed := r.Group("/")
	authed.Use(middleware.ValidateToken(d.Cfg.JWTSecret))

	cartGroup := authed.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(d.DB))
		cartGroup.POST("/items", cartControllers.AddCartItem(d.DB))
		cartGroup.PUT("/items/:product_id", cartControllers.UpdateCartItem(d.DB))
		cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(d.DB))
		cartGroup.DELETE("", cartControllers.ClearCart(d.DB))
		cartGroup.POST("/merge", middleware.RequireUser(), cartControllers.MergeCart(d.DB))
	}

	userOnly := authed.Group("/")
	userOnly.Use(middleware.RequireUser())
	{
		userOnly.GET("/user", userControllers.GetUser(d.DB))
		userOnly.PUT("/user", userControllers.UpdateUser(d.DB, d.Mailer, d.Log))

		wishlistGroup := userOnly.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.Get(d.DB))
			wishlistGroup.POST("", wishlistControllers.Add(d.DB))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.Remove(d.DB))
			wishlistGroup.DELETE("", wishlistControllers.Clear(d.DB))
		}

		orderGroup := userOnly.Group("/orders")
		{
			orderGroup.POST("/checkout", orderControllers.Checkout(d.DB, d.Gateway, d.Mailer, d.Log))
			orderGroup.GET("", orderControllers.ListMyOrders(d.DB))
			orderGroup.GET("/:order_number", orderControllers.GetOrder(d.DB))
			orderGroup.POST("/:order_number/cancel", orderControllers.CancelOrder(d.DB, d.Gateway, d.Log))
		}

		ticketGroup := userOnly.Group("/tickets")
		{
			ticketGroup.POST("", ticketControllers.Create(d.DB))
			ticketGroup.GET("", ticketControllers.ListMine(d.DB))
			ticketGroup.GET("/:reference", ticketControllers.Get(d.DB))
			ticketGroup.POST("/:reference/messages", ticketControllers.PostMessage(d.DB))
		}
	}
}
