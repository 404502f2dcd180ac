package api

import (
	"net/http"

	"ironlog/meso-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	mesocycleService service.MesocycleService,
	programService service.ProgramService,
	workoutService service.WorkoutService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	mesocycleHandler := NewMesocycleHandler(mesocycleService)
	programHandler := NewProgramHandler(programService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exportHandler := NewExportHandler(exportService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		mesocycleGroup := protected.Group("/mesocycles")
		{
			mesocycleGroup.GET("", mesocycleHandler.ListMesocycles)
			mesocycleGroup.POST("", mesocycleHandler.CreateMesocycle)
			mesocycleGroup.GET("/:name", mesocycleHandler.GetMesocycle)
			mesocycleGroup.PUT("/:name", mesocycleHandler.UpdateMesocycle)
			mesocycleGroup.DELETE("/:name", mesocycleHandler.DeleteMesocycle)
			mesocycleGroup.POST("/:name/volume", mesocycleHandler.MesocycleVolume)
		}

		programGroup := protected.Group("/program")
		{
			programGroup.POST("/load", programHandler.LoadProgram)
			programGroup.GET("/status", programHandler.ProgramStatus)
			programGroup.DELETE("", programHandler.ClearProgram)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/:date", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:date", workoutHandler.UpsertWorkout)
			workoutGroup.PUT("/:date/notes", workoutHandler.UpdateNotes)
			workoutGroup.POST("/:date/exercises/:name/sets", workoutHandler.AddSet)
			workoutGroup.PUT("/:date/exercises/:name/sets/:index", workoutHandler.UpdateSet)
			workoutGroup.DELETE("/:date/exercises/:name/sets/:index", workoutHandler.RemoveSet)
			workoutGroup.DELETE("/:date/exercises/:name", workoutHandler.RemoveExercise)
			workoutGroup.GET("/:date/exercises/:name/last-stats", workoutHandler.LastSessionStats)
		}

		protected.GET("/export", exportHandler.Export)
	}
}
