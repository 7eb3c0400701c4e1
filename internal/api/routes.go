package api

import (
	"net/http"

	"liftlog/workout-app/internal/metrics"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteConfig holds what SetupRoutes needs besides the services.
type RouteConfig struct {
	Auth      AuthConfig
	StaticDir string // built web client, optional
	Metrics   *metrics.Manager
	Gatherer  prometheus.Gatherer
}

func SetupRoutes(
	router *gin.Engine,
	cfg RouteConfig,
	authService service.AuthService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService, cfg.Auth)
	exerciseHandler := NewExerciseHandler(exerciseService, cfg.Metrics)
	workoutHandler := NewWorkoutHandler(workoutService, exportService, cfg.Metrics)

	authMiddleware := AuthMiddleware(authService)

	router.Use(LogRequest())
	router.Use(RequestMetrics(cfg.Metrics))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Server is running!"})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.GET("/google", authHandler.GoogleLogin)
			authGroup.GET("/google/redirect", authHandler.GoogleCallback)
			authGroup.GET("/google/mobile", authHandler.GoogleMobileLogin)
			authGroup.GET("/google/redirect/mobile", authHandler.GoogleMobileCallback)
			authGroup.POST("/logout", authHandler.Logout)
		}
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Workout Routes ---
		protected.GET("/workouts", workoutHandler.GetWorkouts)
		protected.POST("/log-workout", workoutHandler.LogWorkout)
		protected.GET("/progress", workoutHandler.GetProgress)
		protected.POST("/workouts/export", workoutHandler.ExportWorkouts)

		// --- Exercise Routes ---
		protected.POST("/add-exercise", exerciseHandler.AddExercise)
		protected.GET("/exercises", exerciseHandler.GetExercises)
		protected.GET("/load-exercises", exerciseHandler.GetExercises) // older clients
		protected.GET("/catalog", exerciseHandler.GetCatalog)
	}

	if cfg.StaticDir != "" {
		router.NoRoute(clientFallback(cfg.StaticDir))
	}
}
