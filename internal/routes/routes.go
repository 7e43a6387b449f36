package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/brandloom/brandloom-backend/internal/handler"
	"github.com/brandloom/brandloom-backend/internal/middleware"
	"github.com/brandloom/brandloom-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	aiHandler *handler.AiHandler,
	brandHandler *handler.BrandHandler,
	packageHandler *handler.PackageHandler,
	templateHandler *handler.TemplateHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))

	// AI generation and evaluation. Generation routes carry a tighter rate
	// limit because each call hits the external provider.
	ai := api.Group("/ai")
	genLimit := middleware.RateLimit(redisClient, middleware.GenerationRateLimitConfig())
	ai.POST("/doc-variants", middleware.OptionalJWTAuth(jwtManager), genLimit, aiHandler.GenerateDocVariants)
	ai.POST("/design-variants", middleware.OptionalJWTAuth(jwtManager), genLimit, aiHandler.GenerateDesignVariants)
	ai.POST("/evaluate", middleware.OptionalJWTAuth(jwtManager), aiHandler.Evaluate)

	// Brands
	brands := api.Group("/brands")
	brands.GET("/:brandId/context", brandHandler.GetContext)
	brands.GET("/:brandId/packages", packageHandler.ListByBrand)
	brands.PUT("/:brandId/guide", middleware.JWTAuth(jwtManager), brandHandler.UpsertGuide)

	// Content packages
	packages := api.Group("/packages")
	packages.GET("/:contentId", packageHandler.Get)
	packages.POST("", middleware.JWTAuth(jwtManager), packageHandler.Create)
	packages.PATCH("/:contentId/status", middleware.JWTAuth(jwtManager), packageHandler.UpdateStatus)
	packages.POST("/:contentId/log", middleware.JWTAuth(jwtManager), packageHandler.AppendLog)

	// Template conversion
	templates := api.Group("/templates")
	templates.POST("/convert", middleware.JWTAuth(jwtManager), templateHandler.Convert)
}
