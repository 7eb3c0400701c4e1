package service

import (
	"context"
	"errors"
	"strings"

	"liftlog/workout-app/internal/catalog"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
)

// --- Service Interface ---
type ExerciseService interface {
	AddExercise(ctx context.Context, userEmail, name, category string) (*domain.CustomExercise, error)
	GetExercises(ctx context.Context, userEmail string) ([]domain.CustomExercise, error)
	// GetCatalog returns the built-in catalog with the user's custom exercises merged in.
	GetCatalog(ctx context.Context, userEmail string) (domain.CategoryMap, error)
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	builtin      domain.CategoryMap
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, builtin domain.CategoryMap) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		builtin:      builtin.Clone(),
	}
}

// AddExercise registers a custom exercise under the user's name.
func (s *exerciseService) AddExercise(ctx context.Context, userEmail, name, category string) (*domain.CustomExercise, error) {
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, validationError("exercise name is required")
	}
	if category == "" {
		return nil, validationError("exercise category is required")
	}

	// Check before writing so the common case gets a clean conflict. The store's own
	// uniqueness constraint covers concurrent registrations.
	_, err := s.exerciseRepo.GetByName(ctx, userEmail, name)
	if err == nil {
		return nil, ErrExerciseExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("look up exercise", err)
	}

	exercise := &domain.CustomExercise{
		UserEmail:        userEmail,
		ExerciseName:     name,
		ExerciseCategory: category,
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseExists
		}
		return nil, storeError("create exercise", err)
	}
	return exercise, nil
}

// GetExercises lists the user's custom exercises in registration order.
func (s *exerciseService) GetExercises(ctx context.Context, userEmail string) ([]domain.CustomExercise, error) {
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}
	exercises, err := s.exerciseRepo.ListByUser(ctx, userEmail)
	if err != nil {
		return nil, storeError("list exercises", err)
	}
	if exercises == nil {
		exercises = []domain.CustomExercise{}
	}
	return exercises, nil
}

func (s *exerciseService) GetCatalog(ctx context.Context, userEmail string) (domain.CategoryMap, error) {
	exercises, err := s.GetExercises(ctx, userEmail)
	if err != nil {
		return domain.CategoryMap{}, err
	}
	return catalog.Merge(s.builtin, exercises), nil
}
