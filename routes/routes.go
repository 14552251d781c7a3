package routes

import (
	"net/http"
	"time"

	"advisorly/handlers"
	"advisorly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterMatchingRoutes sets up the endpoints for expert matching.
func RegisterMatchingRoutes(r *gin.Engine) {
	api := r.Group("/api/matching")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/find", handlers.FindMatches)
		api.POST("/notify/:requestID", handlers.NotifyMatches)
		api.POST("/emergency/:requestID", handlers.NotifyEmergency)
	}
}

// RegisterSessionRoutes sets up the consultation session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", handlers.ScheduleSession)
		api.GET("", handlers.ListMySessions)
		api.GET("/:sessionID", handlers.GetSession)
		api.POST("/:sessionID/start", handlers.StartSession)
		api.POST("/:sessionID/end", handlers.EndSession)
		api.POST("/:sessionID/cancel", handlers.CancelSession)
	}
}

// RegisterExpertRoutes sets up the expert directory endpoints.
func RegisterExpertRoutes(r *gin.Engine) {
	api := r.Group("/api/experts")
	{
		api.GET("", handlers.ListExperts)
		api.GET("/:expertID", handlers.GetExpert)

		// Mutations require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", handlers.CreateExpert)
		protected.PUT("/:expertID", handlers.UpdateExpert)
		protected.DELETE("/:expertID", handlers.DeleteExpert)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthCheck)
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine, h http.Handler) {
	r.GET("/metrics", gin.WrapH(h))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, metrics http.Handler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterMatchingRoutes(r)
	RegisterSessionRoutes(r)
	RegisterExpertRoutes(r)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r, metrics)
}
