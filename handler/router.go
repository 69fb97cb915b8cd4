package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/middleware"
	"github.com/prithidevghosh/speerNote/usecase"
	"github.com/prithidevghosh/speerNote/utils"
)

type RouterConfig struct {
	AuthService  *usecase.AuthService
	NotesService *usecase.NotesService
	Logger       *zap.Logger
	HealthChecks []HealthCheck
	CORSOrigins  []string
	MaxBodyBytes int64
}

// NewRouter wires middleware and routes. Logout is only exposed when the
// auth service has somewhere to record revoked tokens.
func NewRouter(cfg RouterConfig) *gin.Engine {
	// Registers the custom binding rules before any request is bound.
	utils.Validator()

	logger := cfg.Logger
	authService := cfg.AuthService
	notesService := cfg.NotesService

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimiter(cfg.MaxBodyBytes))

	router.GET("/metrics", middleware.MetricsHandler())

	health := NewHealthHandler(logger, cfg.HealthChecks...)

	// Public routes (no authentication required)
	public := router.Group("/api")
	public.Use(middleware.NoStoreMiddleware())
	{
		public.GET("/health", health.GetHealth)

		auth := public.Group("/auth")
		{
			auth.POST("/signup", func(c *gin.Context) {
				SignupHandler(c, authService, logger)
			})
			auth.POST("/login", func(c *gin.Context) {
				LoginHandler(c, authService, logger)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.NoStoreMiddleware())
	protected.Use(middleware.AuthMiddleware(authService, logger))
	{
		if authService.Revoked != nil {
			protected.POST("/auth/logout", func(c *gin.Context) {
				LogoutHandler(c, authService, logger)
			})
		}

		notes := protected.Group("/notes")
		{
			notes.GET("", func(c *gin.Context) {
				GetUserNotesHandler(c, notesService, logger)
			})
			notes.POST("", func(c *gin.Context) {
				CreateNoteHandler(c, notesService, logger)
			})
			notes.PUT("/update/:noteid", func(c *gin.Context) {
				UpdateNoteHandler(c, notesService, logger)
			})
			notes.DELETE("/delete/:noteid", func(c *gin.Context) {
				DeleteNoteHandler(c, notesService, logger)
			})
			notes.POST("/share/:shareduserid/:noteid", func(c *gin.Context) {
				ShareNoteHandler(c, notesService, logger)
			})
		}

		protected.GET("/search", func(c *gin.Context) {
			SearchNotesHandler(c, notesService, logger)
		})
	}

	return router
}
