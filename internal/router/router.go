// Package router assembles the gin engine: CORS, auth middleware and the
// route table for the storefront, account and back-office surfaces.
package router

import (
	"net/http"
	"time"

	"bakehouse-backend/internal/config"
	"bakehouse-backend/internal/handler"
	"bakehouse-backend/internal/middleware"
	"bakehouse-backend/internal/ws"
	"bakehouse-backend/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	OAuth     *handler.OAuthHandler
	Catalog   *handler.CatalogHandler
	Cart      *handler.CartHandler
	Checkout  *handler.CheckoutHandler
	Order     *handler.OrderHandler
	Recipe    *handler.RecipeHandler
	FlashSale *handler.FlashSaleHandler
	Review    *handler.ReviewHandler
	Wishlist  *handler.WishlistHandler
	Hub       *ws.Hub
}

func New(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Guest-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := []byte(cfg.JWTSecret)
	api := r.Group("/api")

	// Public storefront.
	api.POST("/users/register", h.Auth.Register)
	api.POST("/users/login", h.Auth.Login)
	api.GET("/auth/google", h.OAuth.Redirect)
	api.GET("/auth/google/callback", h.OAuth.Callback)
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)
	api.GET("/ingredients", h.Catalog.ListIngredients)
	api.GET("/ingredients/:id", h.Catalog.GetIngredient)
	api.GET("/flash-sales/active", h.FlashSale.ListActive)
	api.GET("/reviews", h.Review.List)
	api.GET("/orders/statuses", h.Order.Statuses)
	api.POST("/payments/webhook", h.Checkout.Webhook)

	// Cart works for both guests and signed-in users.
	cart := api.Group("/cart", middleware.OptionalAuth(secret))
	{
		cart.GET("", h.Cart.Get)
		cart.POST("", h.Cart.AddItem)
		cart.PUT("/:productId", h.Cart.UpdateItem)
		cart.DELETE("/:productId", h.Cart.RemoveItem)
		cart.POST("/refresh", h.Cart.Refresh)
	}

	// Signed-in account surface.
	auth := api.Group("", middleware.Auth(secret))
	{
		auth.GET("/users/profile", h.Auth.Profile)
		auth.PUT("/users/profile", h.Auth.UpdateProfile)

		auth.POST("/cart/merge", h.Cart.Merge)

		auth.GET("/wishlist", h.Wishlist.Get)
		auth.POST("/wishlist", h.Wishlist.Add)
		auth.DELETE("/wishlist/:productId/:itemType", h.Wishlist.Remove)
		auth.GET("/wishlist/check/:productId/:itemType", h.Wishlist.Check)

		auth.POST("/reviews", h.Review.Create)

		auth.POST("/checkout", h.Checkout.Create)
		auth.GET("/checkout/pending", h.Checkout.Pending)
		auth.PUT("/checkout/:id/pay", h.Checkout.Pay)
		auth.POST("/checkout/:id/finalize", h.Checkout.Finalize)

		auth.GET("/orders/my-orders", h.Order.MyOrders)
		auth.GET("/orders/:id", h.Order.Get)
		auth.PUT("/orders/:id/cancel", h.Order.Cancel)
	}

	// Back-office surfaces, gated by capability rather than role name.
	adminOrders := api.Group("/admin/orders", middleware.Auth(secret))
	{
		adminOrders.GET("", middleware.RequireAnyCapability(models.CapOrdersManage), h.Order.List)
		adminOrders.PUT("/:id/status",
			middleware.RequireAnyCapability(models.CapOrdersManage, models.CapOrdersBake, models.CapOrdersDeliver),
			h.Order.UpdateStatus)
		adminOrders.DELETE("/:id", middleware.RequireAnyCapability(models.CapOrdersManage), h.Order.Delete)
	}

	adminCatalog := api.Group("/admin", middleware.Auth(secret), middleware.RequireAnyCapability(models.CapCatalogManage))
	{
		adminCatalog.GET("/products", h.Catalog.AdminListProducts)
		adminCatalog.POST("/products", h.Catalog.CreateProduct)
		adminCatalog.PUT("/products/:id", h.Catalog.UpdateProduct)
		adminCatalog.DELETE("/products/:id", h.Catalog.DeleteProduct)
		adminCatalog.GET("/ingredients", h.Catalog.AdminListIngredients)
		adminCatalog.POST("/ingredients", h.Catalog.CreateIngredient)
		adminCatalog.PUT("/ingredients/:id", h.Catalog.UpdateIngredient)
		adminCatalog.DELETE("/ingredients/:id", h.Catalog.DeleteIngredient)
		adminCatalog.PATCH("/ingredients/:id/stock", h.Catalog.AdjustIngredientStock)
	}

	adminRecipes := api.Group("/admin/recipes", middleware.Auth(secret), middleware.RequireAnyCapability(models.CapRecipesManage))
	{
		adminRecipes.GET("", h.Recipe.List)
		adminRecipes.GET("/:id", h.Recipe.Get)
		adminRecipes.POST("", h.Recipe.Create)
		adminRecipes.PUT("/:id", h.Recipe.Update)
		adminRecipes.DELETE("/:id", h.Recipe.Delete)
		adminRecipes.PATCH("/:id/toggle-status", h.Recipe.ToggleStatus)
		adminRecipes.PATCH("/:id/toggle-publish", h.Recipe.TogglePublish)
	}

	bakerRecipes := api.Group("/baker/recipes", middleware.Auth(secret), middleware.RequireAnyCapability(models.CapRecipesRead))
	{
		bakerRecipes.GET("", h.Recipe.BakerList)
		bakerRecipes.GET("/categories", h.Recipe.BakerCategories)
		bakerRecipes.GET("/search", h.Recipe.BakerSearch)
		bakerRecipes.GET("/:id", h.Recipe.BakerGet)
	}

	adminFlashSales := api.Group("/admin/flash-sales", middleware.Auth(secret), middleware.RequireAnyCapability(models.CapFlashSalesManage))
	{
		adminFlashSales.GET("", h.FlashSale.List)
		adminFlashSales.GET("/:id", h.FlashSale.Get)
		adminFlashSales.POST("", h.FlashSale.Create)
		adminFlashSales.PUT("/:id", h.FlashSale.Update)
		adminFlashSales.DELETE("/:id", h.FlashSale.Delete)
	}

	adminReviews := api.Group("/admin/reviews", middleware.Auth(secret), middleware.RequireAnyCapability(models.CapReviewsModerate))
	{
		adminReviews.GET("", h.Review.ModerationList)
		adminReviews.PUT("/:id/moderate", h.Review.Moderate)
		adminReviews.DELETE("/:id", h.Review.Delete)
	}

	// Order status push.
	r.GET("/ws/orders", gin.WrapH(h.Hub.Handler()))

	return r
}
