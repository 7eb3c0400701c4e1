package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftlog/workout-app/internal/api"
	"liftlog/workout-app/internal/catalog"
	"liftlog/workout-app/internal/config"
	"liftlog/workout-app/internal/logging"
	"liftlog/workout-app/internal/metrics"
	"liftlog/workout-app/internal/service"
	"liftlog/workout-app/internal/storage"
	"liftlog/workout-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	// A missing .env is fine; real deployments use the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("could not read .env: %v", err)
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logging.Setup(cfg.Log)
	log.Info("starting workout log server")

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret (JWT_SECRET) must be set")
	}

	ctx := context.Background()

	// --- Database Connection ---
	stores, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("could not open %s store: %v", cfg.Database.Driver, err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Errorf("failed to close store: %v", err)
		}
	}()
	if err := stores.Prepare(ctx, cfg); err != nil {
		log.Fatalf("could not prepare store: %v", err)
	}

	// --- Catalog ---
	builtin, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("could not load exercise catalog: %v", err)
	}
	log.Infof("exercise catalog loaded: %v", builtin.Names())

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Info("s3.bucket_name not set, workout export disabled")
	}

	// --- Initialize Services ---
	exerciseService := service.NewExerciseService(stores.Exercises, builtin)
	workoutService := service.NewWorkoutService(stores.Workouts, exerciseService, service.WorkoutOptions{
		RejectDuplicateExercises: cfg.Ingest.RejectDuplicateExercises,
	})
	exportService := service.NewExportService(workoutService, exerciseService, fileStorage, cfg.S3.ExportExpiry)
	authService := service.NewAuthService(service.NewGoogleProvider(cfg.OAuth), cfg.JWT.Secret, cfg.JWT.Expiration)

	// --- Metrics ---
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("liftlog", "server", promRegistry)

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, api.RouteConfig{
		Auth: api.AuthConfig{
			ClientURL:         cfg.OAuth.ClientURL,
			MobileRedirectURL: cfg.OAuth.MobileRedirectURL,
		},
		StaticDir: cfg.Server.StaticDir,
		Metrics:   metricsManager,
		Gatherer:  promRegistry,
	}, authService, workoutService, exerciseService, exportService)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Info("server exiting")
}
