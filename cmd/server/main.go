package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ironlog/meso-tracker/internal/api"
	"ironlog/meso-tracker/internal/config"
	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/repository"
	"ironlog/meso-tracker/internal/repository/mongo"
	"ironlog/meso-tracker/internal/service"
	"ironlog/meso-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Meso Tracker API
// @version 1.0
// @description API for building mesocycles, projecting them onto the calendar, and logging workouts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Meso Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureMesocycleIndexes(ctx, appDB.Collection("mesocycles"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	mesocycleRepo := mongo.NewMongoMesocycleRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)

	// --- Seed Preset Exercises ---
	if err := seedPresetExercises(exerciseRepo); err != nil {
		log.Printf("WARN: Failed to seed preset exercises: %v", err)
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	mesocycleService := service.NewMesocycleService(mesocycleRepo)
	programService := service.NewProgramService(mesocycleRepo, programRepo, workoutRepo)
	workoutService := service.NewWorkoutService(workoutRepo)
	exportService := service.NewExportService(workoutService, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, exerciseService, mesocycleService,
		programService, workoutService, exportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// seedPresetExercises inserts the global exercise catalog into an empty
// database. A non-zero preset count means a previous run already
// seeded; individual duplicate conflicts are skipped so a partial seed
// completes on the next start.
func seedPresetExercises(exerciseRepo repository.ExerciseRepository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := exerciseRepo.CountPresets(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Printf("Seeding %d preset exercises...", len(domain.PresetExercises))
	for i := range domain.PresetExercises {
		preset := domain.PresetExercises[i]
		if _, err := exerciseRepo.Create(ctx, &preset); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return err
		}
	}
	log.Println("Preset exercises seeded.")
	return nil
}
