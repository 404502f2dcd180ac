package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ironlog/meso-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request/Response Structs ---

type LoadProgramRequest struct {
	MesocycleName   string         `json:"mesocycleName" binding:"required"`
	StartDate       string         `json:"startDate" binding:"required"`
	DurationWeeks   int            `json:"durationWeeks" binding:"required,min=1,max=52"`
	SetsPerExercise map[string]int `json:"setsPerExercise"`
	Policy          string         `json:"policy" binding:"omitempty,oneof=overwrite merge"`
}

type LoadProgramResponse struct {
	MesocycleName string `json:"mesocycleName"`
	StartDate     string `json:"startDate"`
	DurationWeeks int    `json:"durationWeeks"`
	DaysWritten   int    `json:"daysWritten"`
}

type ProgramStatusResponse struct {
	MesocycleName string `json:"mesocycleName"`
	Week          int    `json:"week"`
	Day           int    `json:"day"`
	DurationWeeks int    `json:"durationWeeks"`
	StartDate     string `json:"startDate"`
}

// --- Handler Methods ---

// LoadProgram godoc
// @Summary Load a mesocycle onto the calendar
// @Description Expands the named mesocycle into per-day workout records starting at startDate and stores the active program.
// @Tags Program
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body LoadProgramRequest true "Load parameters"
// @Success 200 {object} LoadProgramResponse
// @Failure 400 {object} gin.H "Invalid input or mesocycle has no training days"
// @Failure 404 {object} gin.H "Mesocycle not found"
// @Router /program/load [post]
func (h *ProgramHandler) LoadProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req LoadProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	startDate, err := parseDateParam(req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}

	program, written, err := h.programService.Load(
		c.Request.Context(), userID,
		req.MesocycleName, startDate, req.DurationWeeks,
		req.SetsPerExercise, service.LoadPolicy(req.Policy),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMesocycleNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoTrainingDays),
			errors.Is(err, service.ErrInvalidPolicy):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load program")
		}
		return
	}

	c.JSON(http.StatusOK, LoadProgramResponse{
		MesocycleName: program.MesocycleName,
		StartDate:     program.StartDate.Format("2006-01-02"),
		DurationWeeks: program.DurationWeeks,
		DaysWritten:   written,
	})
}

// ProgramStatus godoc
// @Summary Where am I in my program
// @Description Returns (week, day) for the given date against the active program. Both are 0 outside the program bounds.
// @Tags Program
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} ProgramStatusResponse
// @Failure 404 {object} gin.H "No active program"
// @Router /program/status [get]
func (h *ProgramHandler) ProgramStatus(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	viewed := service.DayUTC(timeNow())
	if raw := c.Query("date"); raw != "" {
		viewed, err = parseDateParam(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	status, err := h.programService.Status(c.Request.Context(), userID, viewed)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveProgram) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get program status")
		}
		return
	}

	c.JSON(http.StatusOK, ProgramStatusResponse{
		MesocycleName: status.MesocycleName,
		Week:          status.Week,
		Day:           status.Day,
		DurationWeeks: status.DurationWeeks,
		StartDate:     status.StartDate.Format("2006-01-02"),
	})
}

// ClearProgram godoc
// @Summary Clear the active program
// @Description Removes the active program pointer. Workout records stay.
// @Tags Program
// @Security BearerAuth
// @Success 204 "Cleared"
// @Failure 404 {object} gin.H "No active program"
// @Router /program [delete]
func (h *ProgramHandler) ClearProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.programService.Clear(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrNoActiveProgram) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to clear program")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
