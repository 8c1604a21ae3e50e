package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
)

// SetupRouter configures the application routes. The rate limiter is
// optional; it is skipped when Redis is unavailable (tests).
func SetupRouter(
	authHandler *api.AuthHandler,
	catalogHandler *api.CatalogHandler,
	recipeHandler *api.RecipeHandler,
	followHandler *api.FollowHandler,
	validator middleware.TokenValidator,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	catalogHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	if rateLimiter != nil {
		protected.Use(rateLimiter.Middleware())
	}
	recipeHandler.RegisterRoutes(protected)
	followHandler.RegisterRoutes(protected)

	return router
}
