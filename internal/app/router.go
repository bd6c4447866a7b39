package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/handler"
	"github.com/zvanbay-arch/transfer-test/internal/middleware"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler   *handler.AuthHandler
	ClientHandler *handler.ClientHandler
	DriverHandler *handler.DriverHandler
	AdminHandler  *handler.AdminHandler
	OrderHandler  *handler.OrderHandler
	AuthService   *service.AuthService
	CookieName    string
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authenticated := middleware.Authenticate(deps.AuthService, deps.CookieName)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", deps.AuthHandler.Logout)
		}

		clients := api.Group("/clients", authenticated, middleware.RequireRole(domain.RoleClient))
		{
			clients.GET("/profile", deps.ClientHandler.Profile)
			clients.GET("/orders", deps.ClientHandler.Orders)
			clients.POST("/orders/create", deps.ClientHandler.CreateOrder)
			clients.POST("/orders/:id/review", deps.ClientHandler.ReviewOrder)
			clients.GET("/stats", deps.ClientHandler.Stats)
		}

		drivers := api.Group("/drivers", authenticated, middleware.RequireRole(domain.RoleDriver))
		{
			drivers.GET("/profile", deps.DriverHandler.Profile)
			drivers.POST("/profile/update", deps.DriverHandler.UpdateProfile)
			drivers.POST("/cars/add", deps.DriverHandler.AddCar)
			drivers.POST("/documents/upload", deps.DriverHandler.UploadDocuments)
			drivers.GET("/documents/status", deps.DriverHandler.DocumentsStatus)
			drivers.GET("/available-orders", deps.DriverHandler.AvailableOrders)
			drivers.POST("/orders/:id/accept", deps.DriverHandler.AcceptOrder)
			drivers.GET("/stats", deps.DriverHandler.Stats)
		}

		admin := api.Group("/admin", authenticated, middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/dashboard", deps.AdminHandler.Dashboard)
			admin.GET("/users", deps.AdminHandler.Users)
			admin.GET("/drivers/pending", deps.AdminHandler.PendingDrivers)
			admin.POST("/drivers/:id/approve", deps.AdminHandler.ApproveDriver)
			admin.POST("/drivers/:id/reject", deps.AdminHandler.RejectDriver)
			admin.GET("/orders/all", deps.AdminHandler.Orders)
			admin.GET("/statistics/full", deps.AdminHandler.Statistics)
		}

		orders := api.Group("/orders", authenticated)
		{
			orders.POST("/create", middleware.RequireRole(domain.RoleClient), deps.OrderHandler.Create)
			orders.GET("/driver/my-orders", middleware.RequireRole(domain.RoleDriver), deps.OrderHandler.DriverOrders)
			orders.GET("/:id", deps.OrderHandler.Get)
			orders.POST("/:id/complete", middleware.RequireRole(domain.RoleDriver), deps.OrderHandler.Complete)
			orders.POST("/:id/cancel", deps.OrderHandler.Cancel)
		}
	}

	return router
}
