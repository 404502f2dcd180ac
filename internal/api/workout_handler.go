package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type SetEntryDTO struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Logged bool    `json:"logged"`
	Type   string  `json:"type" binding:"omitempty,oneof=regular dropset"`
}

type ExerciseEntryResponse struct {
	Name string        `json:"name"`
	Sets []SetEntryDTO `json:"sets"`
}

type WorkoutResponse struct {
	Date      string                  `json:"date"`
	RestDay   bool                    `json:"restDay"`
	Exercises []ExerciseEntryResponse `json:"exercises"`
	Notes     string                  `json:"notes,omitempty"`
}

type UpsertWorkoutRequest struct {
	RestDay       bool                     `json:"restDay"`
	Exercises     map[string][]SetEntryDTO `json:"exercises"`
	ExerciseOrder []string                 `json:"exerciseOrder"`
	Notes         string                   `json:"notes"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type LastSessionResponse struct {
	Date string        `json:"date"`
	Sets []SetEntryDTO `json:"sets"`
}

// --- Handler Methods ---

func (h *WorkoutHandler) dateFromPath(c *gin.Context) (time.Time, bool) {
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// GetWorkout godoc
// @Summary Get the workout for a date
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H "No workout for this date"
// @Router /workouts/{date} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}

	record, err := h.workoutService.Get(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get workout")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(record))
}

// UpsertWorkout godoc
// @Summary Replace the workout for a date
// @Description Stores the full workout record; exerciseOrder must list exactly the exercises present.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param workout body UpsertWorkoutRequest true "Workout content"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input or order mismatch"
// @Router /workouts/{date} [put]
func (h *WorkoutHandler) UpsertWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}

	var req UpsertWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record := &domain.WorkoutRecord{
		Date:          date,
		IsRestDay:     req.RestDay,
		Exercises:     make(map[string][]domain.SetEntry, len(req.Exercises)),
		ExerciseOrder: req.ExerciseOrder,
		Notes:         req.Notes,
	}
	for name, sets := range req.Exercises {
		record.Exercises[name] = mapSetsToDomain(sets)
	}

	record, err = h.workoutService.Upsert(c.Request.Context(), userID, record)
	if err != nil {
		if errors.Is(err, service.ErrOrderMismatch) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(record))
}

// AddSet godoc
// @Summary Append a set to an exercise
// @Description Creates the day's record and the exercise entry as needed; the new set copies the previous set's weight and reps.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param name path string true "Exercise name"
// @Param type query string false "regular or dropset (default regular)"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Unknown set type"
// @Router /workouts/{date}/exercises/{name}/sets [post]
func (h *WorkoutHandler) AddSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}

	setType := domain.SetType(c.DefaultQuery("type", string(domain.SetRegular)))
	record, err := h.workoutService.AddSet(c.Request.Context(), userID, date, c.Param("name"), setType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSetType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add set")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(record))
}

// UpdateSet godoc
// @Summary Overwrite one set
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param name path string true "Exercise name"
// @Param index path int true "Set index (0-based)"
// @Param set body SetEntryDTO true "Set content"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Index out of range"
// @Failure 404 {object} gin.H "No workout or exercise"
// @Router /workouts/{date}/exercises/{name}/sets/{index} [put]
func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "set index must be an integer")
		return
	}

	var req SetEntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.workoutService.UpdateSet(c.Request.Context(), userID, date, c.Param("name"), index, mapSetToDomain(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound),
			errors.Is(err, service.ErrExerciseNotInDay):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSetIndexOutOfRange):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update set")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(record))
}

// RemoveSet godoc
// @Summary Remove one set
// @Description Removing the last set of an exercise removes the exercise.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param name path string true "Exercise name"
// @Param index path int true "Set index (0-based)"
// @Success 200 {object} WorkoutResponse
// @Router /workouts/{date}/exercises/{name}/sets/{index} [delete]
func (h *WorkoutHandler) RemoveSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "set index must be an integer")
		return
	}

	record, err := h.workoutService.RemoveSet(c.Request.Context(), userID, date, c.Param("name"), index)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound),
			errors.Is(err, service.ErrExerciseNotInDay):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSetIndexOutOfRange):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to remove set")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(record))
}

// RemoveExercise godoc
// @Summary Remove an exercise and all its sets
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param name path string true "Exercise name"
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H "No workout or exercise"
// @Router /workouts/{date}/exercises/{name} [delete]
func (h *WorkoutHandler) RemoveExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}

	record, err := h.workoutService.RemoveExercise(c.Request.Context(), userID, date, c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) || errors.Is(err, service.ErrExerciseNotInDay) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to remove exercise")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(record))
}

// UpdateNotes godoc
// @Summary Set the notes for a day
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param notes body UpdateNotesRequest true "Notes"
// @Success 200 {object} WorkoutResponse
// @Router /workouts/{date}/notes [put]
func (h *WorkoutHandler) UpdateNotes(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.workoutService.UpdateNotes(c.Request.Context(), userID, date, req.Notes)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update notes")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(record))
}

// LastSessionStats godoc
// @Summary Most recent earlier session with this exercise
// @Description Looks back up to a year before the given date.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param name path string true "Exercise name"
// @Success 200 {object} LastSessionResponse
// @Failure 404 {object} gin.H "No prior session"
// @Router /workouts/{date}/exercises/{name}/last-stats [get]
func (h *WorkoutHandler) LastSessionStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := h.dateFromPath(c)
	if !ok {
		return
	}

	last, err := h.workoutService.LastSessionStats(c.Request.Context(), userID, c.Param("name"), date)
	if err != nil {
		if errors.Is(err, service.ErrNoPriorSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to look up last session")
		}
		return
	}

	c.JSON(http.StatusOK, LastSessionResponse{
		Date: last.Date.Format("2006-01-02"),
		Sets: mapSetsToDTO(last.Sets),
	})
}

// --- Mapping Helpers ---

func mapSetToDomain(dto SetEntryDTO) domain.SetEntry {
	setType := domain.SetType(dto.Type)
	if setType == "" {
		setType = domain.SetRegular
	}
	return domain.SetEntry{
		Weight: dto.Weight,
		Reps:   dto.Reps,
		Logged: dto.Logged,
		Type:   setType,
	}
}

func mapSetsToDomain(dtos []SetEntryDTO) []domain.SetEntry {
	sets := make([]domain.SetEntry, 0, len(dtos))
	for _, dto := range dtos {
		sets = append(sets, mapSetToDomain(dto))
	}
	return sets
}

func mapSetsToDTO(sets []domain.SetEntry) []SetEntryDTO {
	dtos := make([]SetEntryDTO, 0, len(sets))
	for _, set := range sets {
		dtos = append(dtos, SetEntryDTO{
			Weight: set.Weight,
			Reps:   set.Reps,
			Logged: set.Logged,
			Type:   string(set.Type),
		})
	}
	return dtos
}

// MapWorkoutToResponse converts a domain WorkoutRecord to its DTO,
// listing exercises in stored order.
func MapWorkoutToResponse(record *domain.WorkoutRecord) WorkoutResponse {
	response := WorkoutResponse{
		Date:      record.Date.Format("2006-01-02"),
		RestDay:   record.IsRestDay,
		Exercises: make([]ExerciseEntryResponse, 0, len(record.ExerciseOrder)),
		Notes:     record.Notes,
	}
	for _, name := range record.ExerciseOrder {
		response.Exercises = append(response.Exercises, ExerciseEntryResponse{
			Name: name,
			Sets: mapSetsToDTO(record.Exercises[name]),
		})
	}
	return response
}
