package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smarterpicks/backend/internal/cache"
	"github.com/smarterpicks/backend/internal/handlers"
	"github.com/smarterpicks/backend/internal/middleware"
	"github.com/smarterpicks/backend/internal/services/catalog"
	"github.com/smarterpicks/backend/internal/services/identity"
	"github.com/smarterpicks/backend/internal/services/reward"
	"github.com/smarterpicks/backend/internal/storage"
)

// RegisterRoutes configures all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, store storage.Store, cacheClient *cache.Client) {
	catalogService := catalog.NewService(db, cacheClient)
	identityService := identity.NewService(db)
	rewardService := reward.NewService(db, store)

	productHandler := handlers.NewProductHandler(catalogService)
	userHandler := handlers.NewUserHandler(identityService)
	rewardHandler := handlers.NewRewardRequestHandler(rewardService)

	// Storefront rate limit: 20 requests per second per IP
	rateLimiter := middleware.NewRateLimiter(20, 40)

	// Public storefront surface
	public := router.Group("/api")
	public.Use(rateLimiter.Middleware())
	{
		public.GET("/products", productHandler.List)
		public.GET("/products/:id", productHandler.Get)
	}

	// Authenticated surface
	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/users", userHandler.Sync)
		authed.GET("/users/:userId", userHandler.Get)
		authed.PUT("/users/:userId", userHandler.Update)

		authed.GET("/reward-requests", rewardHandler.List)
		authed.POST("/reward-requests", rewardHandler.Create)
		authed.GET("/reward-requests/:id", rewardHandler.Get)
		authed.PUT("/reward-requests/:id", rewardHandler.Update)
		authed.PUT("/reward-requests/:id/status", rewardHandler.UpdateStatus)
		authed.DELETE("/reward-requests/:id", rewardHandler.Delete)
		authed.GET("/reward-requests/:id/comments", rewardHandler.ListComments)
		authed.POST("/reward-requests/:id/comments", rewardHandler.AddComment)
	}

	// Admin console surface
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", userHandler.List)
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
	}
}
