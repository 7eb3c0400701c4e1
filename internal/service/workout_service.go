package service

import (
	"context"
	"strings"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
	"liftlog/workout-app/internal/series"
)

// --- Service Interface ---
type WorkoutService interface {
	// LogWorkout stores the day's workout, replacing whatever was stored for that date.
	LogWorkout(ctx context.Context, userEmail, date string, exercises []ExerciseForm) (*domain.WorkoutRecord, error)
	GetWorkouts(ctx context.Context, userEmail string) ([]domain.WorkoutRecord, error)
	// GetProgress builds the chart series for one category of the user's catalog.
	GetProgress(ctx context.Context, userEmail, category string) (map[string]*series.ExerciseSeries, error)
}

// WorkoutOptions tunes submission handling.
type WorkoutOptions struct {
	// RejectDuplicateExercises fails a submission that names the same exercise twice
	// instead of keeping the last entry.
	RejectDuplicateExercises bool
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo     repository.WorkoutRepository
	exerciseService ExerciseService
	opts            WorkoutOptions
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseService ExerciseService, opts WorkoutOptions) WorkoutService {
	return &workoutService{
		workoutRepo:     workoutRepo,
		exerciseService: exerciseService,
		opts:            opts,
	}
}

func (s *workoutService) LogWorkout(ctx context.Context, userEmail, date string, exercises []ExerciseForm) (*domain.WorkoutRecord, error) {
	if s.opts.RejectDuplicateExercises {
		if name, dup := DuplicateExerciseName(exercises); dup {
			return nil, validationError("exercise %q is listed more than once", name)
		}
	}

	record, err := ToWorkoutRecord(userEmail, date, exercises)
	if err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Put(ctx, record); err != nil {
		return nil, storeError("save workout", err)
	}
	return record, nil
}

func (s *workoutService) GetWorkouts(ctx context.Context, userEmail string) ([]domain.WorkoutRecord, error) {
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}
	records, err := s.workoutRepo.ListByUser(ctx, userEmail)
	if err != nil {
		return nil, storeError("list workouts", err)
	}
	if records == nil {
		records = []domain.WorkoutRecord{}
	}
	return records, nil
}

// GetProgress returns an empty map for a category the user's catalog does not have.
// A corrupt stored record surfaces as series.ErrCorruptRecord.
func (s *workoutService) GetProgress(ctx context.Context, userEmail, category string) (map[string]*series.ExerciseSeries, error) {
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, validationError("category is required")
	}

	categories, err := s.exerciseService.GetCatalog(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	records, err := s.GetWorkouts(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	return series.Build(records, categories, category)
}
