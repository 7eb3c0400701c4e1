package api

import (
	"fmt"
	"net/http"

	"liftlog/workout-app/internal/metrics"
	"liftlog/workout-app/internal/series"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves workout logging, history, progress charts and exports.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	exportService  service.ExportService
	metrics        *metrics.Manager
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, exportService service.ExportService, m *metrics.Manager) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, exportService: exportService, metrics: m}
}

// --- Request/Response Structs ---

type LogWorkoutRequest struct {
	Date      string                 `json:"date"`
	Exercises []service.ExerciseForm `json:"exercises"`
}

type ProgressResponse struct {
	Category string                            `json:"category"`
	Series   map[string]*series.ExerciseSeries `json:"series"`
}

// --- Handler Methods ---

// LogWorkout stores the submitted workout for its date, replacing any earlier submission.
// @Router /log-workout [post]
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if _, err := h.workoutService.LogWorkout(c.Request.Context(), identity.Email, req.Date, req.Exercises); err != nil {
		respondServiceError(c, h.metrics, err)
		return
	}

	h.metrics.CounterWorkoutsLogged.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Workout logged successfully"})
}

// GetWorkouts returns every workout record of the caller.
// @Router /workouts [get]
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	records, err := h.workoutService.GetWorkouts(c.Request.Context(), identity.Email)
	if err != nil {
		respondServiceError(c, h.metrics, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetProgress returns the max/avg weight series of one category.
// @Param category query string true "Category name"
// @Router /progress [get]
func (h *WorkoutHandler) GetProgress(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	category := c.Query("category")
	result, err := h.workoutService.GetProgress(c.Request.Context(), identity.Email, category)
	if err != nil {
		respondServiceError(c, h.metrics, err)
		return
	}
	c.JSON(http.StatusOK, ProgressResponse{Category: category, Series: result})
}

// ExportWorkouts uploads a JSON snapshot and returns a download link.
// @Router /workouts/export [post]
func (h *WorkoutHandler) ExportWorkouts(c *gin.Context) {
	identity, err := getIdentityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	export, err := h.exportService.ExportWorkouts(c.Request.Context(), identity.Email)
	if err != nil {
		respondServiceError(c, h.metrics, err)
		return
	}

	h.metrics.CounterExports.Inc()
	c.JSON(http.StatusOK, export)
}
