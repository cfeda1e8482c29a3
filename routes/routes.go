package routes

import (
	"net/http"
	"time"

	"blinno/handlers"
	"blinno/middleware"
	"blinno/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterOnboardingRoutes registers the seller onboarding wizard endpoints.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/onboarding")
	{
		api.Use(middleware.JWTAuthSellerMiddleware())
		api.GET("/status", hb.GetOnboardingStatusHandler)
		api.GET("/redirect", hb.GetOnboardingRedirectHandler)
		api.GET("/steps", hb.GetOnboardingStepsHandler)
		api.GET("/steps/:stepId", hb.GetOnboardingStepHandler)
		api.POST("/steps/:stepId/validate", hb.ValidateOnboardingStepHandler)
		api.POST("/steps/:stepId", hb.SubmitOnboardingStepHandler)
		api.POST("/complete", hb.CompleteOnboardingHandler)
	}
}

// RegisterCatalogRoutes registers the public seller type catalog.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/seller-types", hb.ListSellerTypesHandler)
		api.GET("/seller-types/:type", hb.GetSellerTypeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the health monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status := http.StatusOK
		if !health.Healthy() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": health})
	})
}

// RegisterAdminRoutes sets up endpoints for admin onboarding operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin/onboarding")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware(hb.AdminToken))
		adminGroup.POST("/version-sweep", hb.AdminHandler.VersionSweepHandler)
		adminGroup.POST("/:userId/reset", hb.AdminHandler.ResetOnboardingHandler)
		adminGroup.POST("/:userId/version-check", hb.AdminHandler.VersionCheckHandler)
		adminGroup.GET("/:userId/resets", hb.AdminHandler.ResetHistoryHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterOnboardingRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterAdminRoutes(r, hb)
}
