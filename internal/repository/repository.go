package repository

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=repository

import (
	"liftlog/workout-app/internal/domain" // Import our defined domain models
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutRepository stores one workout record per (user email, workout date).
type WorkoutRepository interface {
	// Put writes the record, replacing any record stored for the same user and date.
	Put(ctx context.Context, record *domain.WorkoutRecord) error
	// ListByUser returns all of the user's records. Order is not significant.
	ListByUser(ctx context.Context, userEmail string) ([]domain.WorkoutRecord, error)
}

// ExerciseRepository stores the user's custom exercises.
type ExerciseRepository interface {
	// Create inserts the exercise. Returns ErrDuplicate if the user already has an
	// exercise with the same name.
	Create(ctx context.Context, exercise *domain.CustomExercise) error
	// GetByName returns ErrNotFound when the user has no exercise with that name.
	GetByName(ctx context.Context, userEmail, exerciseName string) (*domain.CustomExercise, error)
	// ListByUser returns the user's exercises in registration order.
	ListByUser(ctx context.Context, userEmail string) ([]domain.CustomExercise, error)
}
