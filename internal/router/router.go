package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"veridoc/internal/handler"
	"veridoc/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	extractH *handler.ExtractHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Service metadata and health
	r.GET("/", healthH.Banner)
	r.GET("/health", healthH.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/extract", extractH.Extract)
	v1.POST("/extract-simple", extractH.ExtractSimple)
	v1.GET("/models", extractH.Models)

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
