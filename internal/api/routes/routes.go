package routes

import (
	"net/http"

	"github.com/Ethansurfas/launchpad/config"
	"github.com/Ethansurfas/launchpad/internal/api/handlers"
	"github.com/Ethansurfas/launchpad/internal/api/middleware"
	"github.com/Ethansurfas/launchpad/internal/metrics"
	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Auth    config.AuthConfig
	Limits  config.LimitsConfig
	Redis   *redis.Client // nil disables rate limiting
	Users   services.UserService
	Log     logrus.FieldLogger

	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
	Interviews   *handlers.InterviewHandler
	Reviews      *handlers.ReviewHandler
	Companies    *handlers.CompanyHandler
	Admin        *handlers.AdminHandler
	Profile      *handlers.ProfileHandler
	Upload       *handlers.UploadHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(d.Log), metrics.GinMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	student := middleware.RequireRole(models.RoleStudent)
	employer := middleware.RequireRole(models.RoleEmployer)

	// Public routes; a valid token still identifies the caller.
	public := r.Group("/")
	public.Use(middleware.OptionalJWTAuth(d.Auth), middleware.EnsureUser(d.Users))

	public.GET("/jobs", d.Jobs.List)
	public.GET("/jobs/:id", d.Jobs.Get)
	public.GET("/companies/:id", d.Companies.Public)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth(d.Auth), middleware.EnsureUser(d.Users))

	auth.POST("/jobs", employer, d.Jobs.Create)
	auth.PUT("/jobs/:id", employer, d.Jobs.Update)
	auth.DELETE("/jobs/:id", employer, d.Jobs.Delete)

	auth.GET("/applications", student, d.Applications.ListMine)
	auth.POST("/applications", student, d.Applications.Apply)

	auth.GET("/interviews", d.Interviews.List)
	auth.POST("/interviews", employer, d.Interviews.Create)
	auth.GET("/interviews/:id", d.Interviews.Get)
	auth.PUT("/interviews/:id", d.Interviews.UpdateStatus)
	auth.PUT("/interviews/:id/select-slot", student, d.Interviews.SelectSlot)
	auth.GET("/interviews/:id/events", d.Interviews.Events)
	auth.POST("/interviews/:id/room",
		middleware.RateLimit(d.Redis, "room", d.Limits.RoomPerMinute), d.Interviews.Room)
	auth.POST("/interviews/:id/analyze",
		middleware.RateLimit(d.Redis, "analyze", d.Limits.AnalyzePerMinute), d.Interviews.Analyze)

	auth.GET("/reviews", student, d.Reviews.ListMine)
	auth.POST("/reviews", student, d.Reviews.Create)

	emp := auth.Group("/employer", employer)
	emp.GET("/jobs", d.Jobs.Mine)
	emp.GET("/applicants", d.Applications.Applicants)
	emp.PUT("/applicants", d.Applications.UpdateStatus)
	emp.GET("/company", d.Companies.Mine)
	emp.POST("/company", d.Companies.Create)
	emp.PUT("/company", d.Companies.Update)
	emp.GET("/reviews", d.Reviews.Employer)

	admin := auth.Group("/admin", middleware.RequireAdmin())
	admin.GET("/employers", d.Admin.Employers)
	admin.GET("/reviews", d.Admin.Reviews)
	admin.POST("/reviews", d.Admin.UpsertReview)

	auth.GET("/profile", d.Profile.Me)
	auth.PUT("/profile", d.Profile.Update)
	auth.POST("/profile/experience", student, d.Profile.AddExperience)
	auth.PUT("/profile/experience", student, d.Profile.UpdateExperience)
	auth.DELETE("/profile/experience", student, d.Profile.DeleteExperience)
	auth.POST("/profile/projects", student, d.Profile.AddProject)
	auth.DELETE("/profile/projects", student, d.Profile.DeleteProject)

	auth.POST("/upload",
		middleware.RateLimit(d.Redis, "upload", d.Limits.UploadPerMinute), d.Upload.Upload)
}
