package app

import (
	"design_hub_backend/docs"
	"design_hub_backend/internal/config"
	"design_hub_backend/internal/middleware"
	"design_hub_backend/internal/model"
	"design_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no token required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/logout", c.auth.Logout)
	rg.GET("/me", c.auth.Me)

	rg.GET("/awards", c.dashboard.Awards)

	challenges := rg.Group("/challenges")
	{
		challenges.GET("", c.challenge.ListVisible)
		challenges.GET("/:id", c.challenge.Get)
		challenges.POST("/generate", c.challenge.Generate)
		challenges.POST("/:id/export", c.challenge.Export)
	}

	submissions := rg.Group("/submissions")
	{
		submissions.POST("", c.submission.Submit)
		submissions.GET("", c.submission.ListMine)
		submissions.POST("/upload", c.submission.Upload)
		submissions.GET("/review-queue", c.submission.ListForReview)
		submissions.GET("/:id", c.submission.Get)
	}

	rg.POST("/reviews", c.review.Submit)
	rg.GET("/reviews/mine", c.review.ListMine)

	progress := rg.Group("/progress")
	{
		progress.GET("", c.progress.Snapshot)
		progress.GET("/status", c.progress.GetStatus)
		progress.PUT("/status", c.progress.SetStatus)
	}

	teams := rg.Group("/teams")
	{
		teams.POST("", c.team.Create)
		teams.GET("", c.team.List)
		teams.GET("/:id", c.team.Get)
		teams.POST("/:id/project", c.team.AdoptProject)
		teams.PUT("/:id/progress", c.team.UpdateProgress)
		teams.POST("/:id/logs", c.team.AddLog)
		teams.GET("/:id/logs", c.team.ListLogs)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/engagement", c.dashboard.Engagement)
		teacher.GET("/nominations", c.dashboard.Nominations)
		teacher.GET("/students", c.dashboard.Students)
		teacher.GET("/submissions", c.submission.ListRecent)
		teacher.PUT("/submissions/:id/score", c.submission.Score)

		teacher.GET("/incidents", c.dashboard.RecentIncidents)
		teacher.POST("/incidents", c.behavior.LogIncident)
		teacher.GET("/students/:id/incidents", c.behavior.ListByStudent)

		teacher.GET("/students/:id/progress", c.progress.StudentSnapshot)
		teacher.POST("/students/:id/complete", c.progress.Complete)
		teacher.POST("/students/:id/xp", c.progress.AwardXP)

		teacher.GET("/teams/:id/assessment", c.team.Assess)
	}

	library := rg.Group("/library/challenges")
	library.Use(middleware.RoleMiddleware(model.Teacher))
	{
		library.POST("", c.challenge.CreateLibrary)
		library.GET("", c.challenge.ListMine)
		library.PUT("/:id", c.challenge.UpdateLibrary)
		library.POST("/:id/publish", c.challenge.Publish)
		library.POST("/:id/archive", c.challenge.ArchiveChallenge)
		library.POST("/:id/assign", c.challenge.Assign)
	}
}
