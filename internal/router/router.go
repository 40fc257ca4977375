// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/farmfresh/internal/config"
	"github.com/javajoker/farmfresh/internal/handlers"
	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/middleware"
	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/services"
	"github.com/javajoker/farmfresh/internal/utils"
)

// Dependencies are the optional backends the server runs with. A nil Tokens
// falls back to an in-process denylist; a nil Publisher only logs order events.
type Dependencies struct {
	Tokens    services.TokenStore
	Publisher services.EventPublisher
	Logger    *logrus.Logger
}

// Initialize builds the API engine. The returned stop func releases the
// rate limiters' background cleanup and must be called once the engine is
// no longer serving.
func Initialize(db *gorm.DB, cfg *config.Config, deps Dependencies) (*gin.Engine, func()) {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tokens := deps.Tokens
	if tokens == nil {
		tokens = services.NewMemoryTokenStore()
	}

	// Initialize services
	notificationService := services.NewNotificationService(deps.Publisher, cfg, logger)
	authService := services.NewAuthService(db, cfg, tokens, logger)
	productService := services.NewProductService(db, logger)
	orderService := services.NewOrderService(db, notificationService, logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.Frontend.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	limits := middleware.NewRateLimits(cfg.RateLimit)
	r.Use(limits.General.Middleware())
	if db != nil {
		r.Use(middleware.AuditLogMiddleware(db))
	}

	r.GET("/health", healthHandler.Health)

	authRequired := middleware.AuthRequired(authService)
	farmerOnly := middleware.RoleRequired(models.RoleFarmer)
	customerOnly := middleware.RoleRequired(models.RoleCustomer)

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", limits.Auth.Middleware(), authHandler.Register)
			auth.POST("/login", limits.Auth.Middleware(), authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/my-products", authRequired, farmerOnly, productHandler.GetMyProducts)
			products.POST("", authRequired, farmerOnly, productHandler.CreateProduct)
			products.PUT("/:id", authRequired, farmerOnly, productHandler.UpdateProduct)
			products.DELETE("/:id", authRequired, farmerOnly, productHandler.DeleteProduct)
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("", customerOnly, orderHandler.PlaceOrder)
			orders.GET("/my-orders", customerOnly, orderHandler.GetMyOrders)
			orders.GET("/farmer-orders", farmerOnly, orderHandler.GetFarmerOrders)
			orders.PUT("/:id", farmerOnly, orderHandler.UpdateOrderStatus)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyRouteNotFound), nil)
	})

	return r, limits.Stop
}
