package routes

import (
	"github.com/gin-gonic/gin"

	"storefront/controllers"
)

// RegisterRoutes sets up all the routes for the storefront API.
func RegisterRoutes(
	r *gin.Engine,
	catalog *controllers.CatalogController,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	auth *controllers.AuthController,
) {
	// Catalog
	r.GET("/products", catalog.GetProducts)
	r.GET("/products/:id", catalog.GetProductByID)
	r.GET("/search", catalog.SearchProducts)

	// Cart
	cartAPI := r.Group("/cart")
	{
		cartAPI.GET("", cart.GetCart)
		cartAPI.POST("/add", cart.AddItem)
		cartAPI.POST("/increment/:product_id", cart.IncrementItem)
		cartAPI.POST("/decrement/:product_id", cart.DecrementItem)
		cartAPI.DELETE("/remove/:product_id", cart.RemoveItem)
		cartAPI.DELETE("/clear", cart.ClearCart)
	}

	// Checkout
	r.GET("/checkout", checkout.GetCheckout)
	r.POST("/checkout", checkout.PlaceOrder)

	// Accounts & session
	authAPI := r.Group("/auth")
	{
		authAPI.POST("/signup", auth.Signup)
		authAPI.POST("/login", auth.Login)
		authAPI.POST("/logout", auth.Logout)
		authAPI.GET("/me", auth.Me)
		authAPI.GET("/orders", auth.MyOrders)
	}
}
