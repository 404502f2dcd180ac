package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// MesocycleHandler holds the mesocycle service dependency.
type MesocycleHandler struct {
	mesocycleService service.MesocycleService
}

// NewMesocycleHandler creates a new MesocycleHandler.
func NewMesocycleHandler(mesocycleService service.MesocycleService) *MesocycleHandler {
	return &MesocycleHandler{mesocycleService: mesocycleService}
}

// --- Request/Response Structs ---

type ExerciseSlotRequest struct {
	MuscleGroup string `json:"muscleGroup" binding:"required"`
	Exercise    string `json:"exercise"`
}

type TrainingDayRequest struct {
	Name  string                `json:"name" binding:"required"`
	Slots []ExerciseSlotRequest `json:"slots"`
}

type MesocycleRequest struct {
	Name         string               `json:"name" binding:"required"`
	TemplateName string               `json:"templateName"`
	Days         []TrainingDayRequest `json:"days"`
}

type MesocycleResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	TemplateName string               `json:"templateName,omitempty"`
	Days         []domain.TrainingDay `json:"days"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type VolumeRequest struct {
	SetsPerExercise map[string]int `json:"setsPerExercise"`
}

// --- Handler Methods ---

// CreateMesocycle godoc
// @Summary Create a mesocycle
// @Description Saves a named weekly template of training days.
// @Tags Mesocycles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mesocycle body MesocycleRequest true "Mesocycle definition"
// @Success 201 {object} MesocycleResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Name already taken"
// @Router /mesocycles [post]
func (h *MesocycleHandler) CreateMesocycle(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req MesocycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	mesocycle, err := h.mesocycleService.Create(c.Request.Context(), userID, req.Name, req.TemplateName, mapDaysToDomain(req.Days))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMesocycleExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrDuplicateWeekday),
			errors.Is(err, service.ErrInvalidWeekday),
			errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create mesocycle")
		}
		return
	}

	c.JSON(http.StatusCreated, MapMesocycleToResponse(mesocycle))
}

// ListMesocycles godoc
// @Summary List the user's mesocycles
// @Tags Mesocycles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} MesocycleResponse
// @Router /mesocycles [get]
func (h *MesocycleHandler) ListMesocycles(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	mesocycles, err := h.mesocycleService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list mesocycles")
		return
	}

	response := make([]MesocycleResponse, 0, len(mesocycles))
	for i := range mesocycles {
		response = append(response, MapMesocycleToResponse(&mesocycles[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetMesocycle godoc
// @Summary Get one mesocycle by name
// @Tags Mesocycles
// @Produce json
// @Security BearerAuth
// @Param name path string true "Mesocycle name"
// @Success 200 {object} MesocycleResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /mesocycles/{name} [get]
func (h *MesocycleHandler) GetMesocycle(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	mesocycle, err := h.mesocycleService.GetByName(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrMesocycleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get mesocycle")
		}
		return
	}

	c.JSON(http.StatusOK, MapMesocycleToResponse(mesocycle))
}

// UpdateMesocycle godoc
// @Summary Update a mesocycle's template name and days
// @Tags Mesocycles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Mesocycle name"
// @Param mesocycle body MesocycleRequest true "Updated definition"
// @Success 200 {object} MesocycleResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Not found"
// @Router /mesocycles/{name} [put]
func (h *MesocycleHandler) UpdateMesocycle(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req MesocycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	mesocycle, err := h.mesocycleService.Update(c.Request.Context(), userID, c.Param("name"), req.TemplateName, mapDaysToDomain(req.Days))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMesocycleNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateWeekday),
			errors.Is(err, service.ErrInvalidWeekday):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update mesocycle")
		}
		return
	}

	c.JSON(http.StatusOK, MapMesocycleToResponse(mesocycle))
}

// DeleteMesocycle godoc
// @Summary Delete a mesocycle
// @Tags Mesocycles
// @Security BearerAuth
// @Param name path string true "Mesocycle name"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /mesocycles/{name} [delete]
func (h *MesocycleHandler) DeleteMesocycle(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.mesocycleService.Delete(c.Request.Context(), userID, c.Param("name")); err != nil {
		if errors.Is(err, service.ErrMesocycleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete mesocycle")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MesocycleVolume godoc
// @Summary Weekly sets-per-muscle-group summary
// @Description Computes planned weekly volume for a set configuration.
// @Tags Mesocycles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Mesocycle name"
// @Param config body VolumeRequest true "Sets per exercise"
// @Success 200 {object} map[string]int
// @Failure 404 {object} gin.H "Not found"
// @Router /mesocycles/{name}/volume [post]
func (h *MesocycleHandler) MesocycleVolume(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req VolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	volume, err := h.mesocycleService.Volume(c.Request.Context(), userID, c.Param("name"), req.SetsPerExercise)
	if err != nil {
		if errors.Is(err, service.ErrMesocycleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute volume")
		}
		return
	}

	c.JSON(http.StatusOK, volume)
}

func mapDaysToDomain(days []TrainingDayRequest) []domain.TrainingDay {
	out := make([]domain.TrainingDay, 0, len(days))
	for _, day := range days {
		slots := make([]domain.ExerciseSlot, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, domain.ExerciseSlot{
				MuscleGroup: slot.MuscleGroup,
				Exercise:    slot.Exercise,
			})
		}
		out = append(out, domain.TrainingDay{Name: day.Name, Slots: slots})
	}
	return out
}

// MapMesocycleToResponse converts a domain Mesocycle to its DTO.
func MapMesocycleToResponse(mesocycle *domain.Mesocycle) MesocycleResponse {
	return MesocycleResponse{
		ID:           mesocycle.ID.Hex(),
		Name:         mesocycle.Name,
		TemplateName: mesocycle.TemplateName,
		Days:         mesocycle.Days,
		CreatedAt:    mesocycle.CreatedAt,
		UpdatedAt:    mesocycle.UpdatedAt,
	}
}
