package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biogram-server/internal/blobstore"
	"biogram-server/internal/config"
	"biogram-server/internal/handlers"
	"biogram-server/internal/middleware"
	"biogram-server/internal/models"
	"biogram-server/internal/sharing"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
)

// Dependencies are what the router wires into handlers and middleware.
type Dependencies struct {
	Repos *store.Repositories
	Cfg   *config.Config
	Log   *zap.Logger
	Gate  *sharing.Gate
	Blobs blobstore.Store
	// Limiter guards login and code redemption; nil disables it.
	Limiter *middleware.IPRateLimiter
	Now     func() time.Time
}

// NewRouter builds the engine with the global middleware and every route.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.Cfg.TrustedProxies); err != nil {
		deps.Log.Warn("ignoring trusted proxies", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.RequestID(), middleware.Logger(deps.Log), middleware.Recovery(deps.Log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = deps.Cfg.Origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.DoctorAccessHeader, middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	SetupRoutes(router, deps)
	return router
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	cfg, repos := deps.Cfg, deps.Repos
	d := handlers.Deps{Repos: repos, Cfg: cfg, Log: deps.Log, Now: deps.Now}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d)
	profileHandler := handlers.NewProfileHandler(d)
	dashboardHandler := handlers.NewDashboardHandler(d)
	recordHandler := handlers.NewRecordHandler(d)
	medicationHandler := handlers.NewMedicationHandler(d)
	labHandler := handlers.NewLabHandler(d)
	vitalHandler := handlers.NewVitalHandler(d)
	wearableHandler := handlers.NewWearableHandler(d)
	insightHandler := handlers.NewInsightHandler(d)
	noteHandler := handlers.NewNoteHandler(d)
	documentHandler := handlers.NewDocumentHandler(d, deps.Blobs)
	linkRecordsHandler := handlers.NewLinkRecordsHandler(d)
	sharingHandler := handlers.NewSharingHandler(d, deps.Gate)
	adminHandler := handlers.NewAdminHandler(d, deps.Blobs)

	limited := func(c *gin.Context) { c.Next() }
	if deps.Limiter != nil {
		limited = middleware.RateLimitMiddleware(deps.Limiter)
	}

	router.GET("/health", dashboardHandler.Health)
	router.GET("/", middleware.IdentifyMiddleware(cfg, repos.Sessions), dashboardHandler.Home)

	// Public routes (no authentication required)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", limited, authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		authRoutes.POST("/logout", middleware.AuthMiddleware(cfg, repos.Sessions), authHandler.Logout)
	}

	router.GET(middleware.DoctorAccessPath, sharingHandler.DoctorAccess)
	router.POST(middleware.DoctorAccessPath, limited, sharingHandler.Redeem)
	router.GET("/doctor-summary", middleware.DoctorAccessMiddleware(cfg), sharingHandler.DoctorSummary)

	// Owner routes: the signed-in user's data, or the demo patient's when
	// the data source is public.
	owner := router.Group("")
	owner.Use(middleware.OwnerMiddleware(cfg, repos))
	{
		owner.GET("/dashboard", dashboardHandler.Dashboard)
		owner.GET("/share-with-doctor", sharingHandler.ShareWithDoctor)

		owner.GET("/profile-settings", profileHandler.Show)
		owner.POST("/profile-settings", profileHandler.Update)
		owner.GET("/connect-devices", wearableHandler.ConnectDevices)
		owner.POST("/connect-devices", wearableHandler.Sync)
		owner.GET("/link-records", linkRecordsHandler.Show)
		owner.POST("/link-records", linkRecordsHandler.Create)
		owner.GET("/upload-documents", documentHandler.List)
		owner.POST("/upload-documents", documentHandler.Upload)
		owner.GET("/upload-documents/:id", documentHandler.Download)
		owner.DELETE("/upload-documents/:id", documentHandler.Delete)

		health := owner.Group("/health")
		{
			health.GET("/timeline", recordHandler.Timeline)
			health.POST("/record/add", recordHandler.Create)
			health.GET("/records/:id", recordHandler.Get)
			health.PUT("/records/:id", recordHandler.Update)
			health.DELETE("/records/:id", recordHandler.Delete)

			health.GET("/medications", medicationHandler.List)
			health.POST("/medications", medicationHandler.Create)
			health.PUT("/medications/:id", medicationHandler.Update)
			health.PATCH("/medications/:id/active", medicationHandler.SetActive)
			health.DELETE("/medications/:id", medicationHandler.Delete)

			health.GET("/lab-results", labHandler.List)
			health.GET("/lab-results/export", labHandler.Export)
			health.POST("/lab-results", labHandler.Create)
			health.PUT("/lab-results/:id", labHandler.Update)
			health.DELETE("/lab-results/:id", labHandler.Delete)

			health.GET("/vitals", vitalHandler.List)
			health.POST("/vitals", vitalHandler.Create)
			health.DELETE("/vitals/:id", vitalHandler.Delete)

			health.GET("/wearable", wearableHandler.Show)
			health.POST("/wearable", wearableHandler.Sync)
			health.DELETE("/wearable/:id", wearableHandler.Delete)

			health.GET("/insights", insightHandler.List)
			health.PATCH("/insights/:id/complete", insightHandler.Complete)

			health.GET("/notes", noteHandler.List)
			health.POST("/notes", noteHandler.Create)
			health.PUT("/notes/:id", noteHandler.Update)
			health.PATCH("/notes/:id/pin", noteHandler.TogglePin)
			health.DELETE("/notes/:id", noteHandler.Delete)
		}
	}

	// Admin-only routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg, repos.Sessions), middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminRoutes.GET("/users", adminHandler.GetUsers)
		adminRoutes.GET("/users/:id", adminHandler.GetUserByID)
		adminRoutes.POST("/users/:id/sessions/revoke", adminHandler.RevokeSessions)
		adminRoutes.DELETE("/users/:id/records/:kind/:recordId", adminHandler.DeleteRecord)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Not found.")
	})
}
