package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_storefront/internal/handlers"
	"velora_storefront/internal/middleware"
)

// RegisterRoutes wires the storefront API. Cart and wishlist routes accept
// guests (device id) and signed-in users alike; the middleware resolves which
// on every request.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-ID"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	// Delegated sign-in.
	api.GET("/auth/:provider", handlers.BeginAuth)
	api.GET("/auth/:provider/callback", handlers.CallbackAuth)
	api.GET("/auth/link/:provider", handlers.AuthLinkURL)

	api.POST("/session/device", h.CreateDeviceSession)
	api.GET("/products/:id", h.GetProduct)

	identified := api.Group("")
	identified.Use(middleware.Identify())
	{
		identified.GET("/cart", h.GetCart)
		identified.GET("/cart/count", h.GetCartCount)
		identified.GET("/cart/ws", h.CartWebSocket)
		identified.GET("/checkout", h.GetCheckout)
		identified.GET("/checkout/qr", h.GetCheckoutQR)
		identified.GET("/wishlist", h.GetWishlist)

		mutating := identified.Group("")
		mutating.Use(middleware.MutationRateLimit())
		{
			mutating.POST("/cart/items", h.AddCartItem)
			mutating.DELETE("/cart/items/:itemId", h.RemoveCartItem)
			mutating.POST("/wishlist/items", h.AddWishlistItem)
			mutating.DELETE("/wishlist/items/:id", h.RemoveWishlistItem)
			mutating.POST("/wishlist/share", h.ShareWishlist)
		}
	}
}

func allowedOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return []string{"http://localhost:3000"}
	}
	return strings.Split(origins, ",")
}
