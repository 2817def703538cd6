package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"storefront-service/controllers"
	"storefront-service/middleware"
)

// Register sets up all storefront routes.
func Register(
	r *gin.Engine,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	storefront *controllers.StorefrontController,
) {
	// Catalog browsing; session only needed for the stateful browse view.
	store := r.Group("/storefront")
	{
		store.GET("/products", storefront.ListProducts)
		store.GET("/products/:slug", storefront.GetProduct)
		store.GET("/categories", storefront.ListCategories)

		view := store.Group("/browse")
		view.Use(middleware.Session())
		view.GET("", storefront.GetBrowse)
		view.PUT("", storefront.UpdateBrowse)
	}

	cartRoutes := r.Group("/cart")
	cartRoutes.Use(middleware.Session())
	{
		cartRoutes.GET("", cart.GetCart)
		cartRoutes.GET("/count", cart.Count)
		cartRoutes.POST("/items", cart.AddItem)
		cartRoutes.PATCH("/items/:index", cart.UpdateQuantity)
		cartRoutes.DELETE("/items/:index", cart.RemoveItem)
		cartRoutes.DELETE("", cart.ClearCart)
	}

	checkoutRoutes := r.Group("/checkout")
	checkoutRoutes.Use(middleware.Session())
	{
		checkoutRoutes.GET("/customer", checkout.GetCustomer)
		checkoutRoutes.PUT("/customer", checkout.SaveCustomer)
		checkoutRoutes.GET("/confirmation", checkout.Confirmation)

		// One order every few seconds per IP is plenty; the webhook has no
		// idempotency of its own.
		checkoutRoutes.POST("", middleware.RateLimit(rate.Every(3*time.Second), 5), checkout.PlaceOrder)
	}
}
