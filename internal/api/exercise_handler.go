package api

import (
	"fmt"
	"net/http"

	"liftlog/workout-app/internal/metrics"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	metrics         *metrics.Manager
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, m *metrics.Manager) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, metrics: m}
}

// --- DTOs for API (Data Transfer Objects) ---

// AddExerciseRequest defines the expected JSON for registering a custom exercise.
type AddExerciseRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// --- Handler Methods ---

// AddExercise godoc
// @Summary Register a custom exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body AddExerciseRequest true "Exercise details"
// @Success 200 {object} gin.H "Exercise added successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Exercise already exists"
// @Router /add-exercise [post]
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if _, err := h.exerciseService.AddExercise(c.Request.Context(), identity.Email, req.Name, req.Category); err != nil {
		respondServiceError(c, h.metrics, err)
		return
	}

	h.metrics.CounterExercisesAdded.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Exercise added successfully"})
}

// GetExercises godoc
// @Summary List the caller's custom exercises in registration order
// @Tags Exercises
// @Produce json
// @Router /exercises [get]
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	exercises, err := h.exerciseService.GetExercises(c.Request.Context(), identity.Email)
	if err != nil {
		respondServiceError(c, h.metrics, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// GetCatalog godoc
// @Summary Built-in categories merged with the caller's custom exercises
// @Tags Exercises
// @Produce json
// @Router /catalog [get]
func (h *ExerciseHandler) GetCatalog(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	categories, err := h.exerciseService.GetCatalog(c.Request.Context(), identity.Email)
	if err != nil {
		respondServiceError(c, h.metrics, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
