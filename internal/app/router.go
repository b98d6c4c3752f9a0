package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vignesh-sundaramoorthi/identity-sprint/docs"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/config"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/middleware"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerTrackerRoutes(router, c)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
		public.POST("/applications", c.application.Submit)
		public.GET("/discovery/questions", c.discovery.Questions)
		public.POST("/discovery", c.discovery.Submit)
		public.GET("/habits", c.habit.Library)
	}
}

func (a *App) registerTrackerRoutes(router *gin.Engine, c *controllers) {
	tracker := router.Group("/api/tracker/:token")
	{
		tracker.GET("", c.tracker.GetTracker)
		tracker.POST("/checkin", c.tracker.Checkin)
		tracker.GET("/progress", c.tracker.Progress)
		tracker.POST("/setup", c.tracker.Setup)
		tracker.GET("/onboarding", c.tracker.GetOnboarding)
		tracker.POST("/onboarding", c.tracker.SaveDeclaration)
		tracker.GET("/identity-checkin", c.tracker.GetIdentityCheckin)
		tracker.POST("/identity-checkin", c.tracker.SaveIdentityCheckin)
		tracker.POST("/group", c.tracker.JoinGroup)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Coach))
	{
		admin.GET("/applications", c.application.List)

		admin.GET("/challenges", c.challenge.List)
		admin.POST("/challenges", c.challenge.Create)
		admin.POST("/challenges/export", c.challenge.Export)
		admin.PATCH("/challenges/:id/status", c.challenge.UpdateStatus)

		admin.GET("/habits", c.habit.Library)
		admin.POST("/habits", c.habit.Create)
		admin.PATCH("/habits/:id", c.habit.Update)
		admin.DELETE("/habits/:id", c.habit.Delete)

		admin.POST("/groups", c.challenge.CreateGroup)

		admin.GET("/discovery", c.discovery.List)
	}
}
