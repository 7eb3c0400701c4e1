package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/storage"

	"github.com/google/uuid"
)

// Export describes a workout snapshot written to object storage.
type Export struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type exportSnapshot struct {
	UserEmail  string                  `json:"userEmail"`
	ExportedAt time.Time               `json:"exportedAt"`
	Workouts   []domain.WorkoutRecord  `json:"workouts"`
	Exercises  []domain.CustomExercise `json:"exercises"`
}

// --- Service Interface ---
type ExportService interface {
	// ExportWorkouts writes the user's workouts and custom exercises as a JSON document
	// and returns a time-limited download link.
	ExportWorkouts(ctx context.Context, userEmail string) (*Export, error)
}

// --- Service Implementation ---

type exportService struct {
	workoutService  WorkoutService
	exerciseService ExerciseService
	fileStorage     storage.FileStorage
	linkExpiry      time.Duration
	now             func() time.Time
}

// NewExportService creates a new instance of exportService. A nil fileStorage disables
// exports.
func NewExportService(workoutService WorkoutService, exerciseService ExerciseService, fileStorage storage.FileStorage, linkExpiry time.Duration) ExportService {
	if linkExpiry <= 0 {
		linkExpiry = storage.DefaultPresignedURLExpiry
	}
	return &exportService{
		workoutService:  workoutService,
		exerciseService: exerciseService,
		fileStorage:     fileStorage,
		linkExpiry:      linkExpiry,
		now:             time.Now,
	}
}

func (s *exportService) ExportWorkouts(ctx context.Context, userEmail string) (*Export, error) {
	if s.fileStorage == nil {
		return nil, ErrExportDisabled
	}
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}

	workouts, err := s.workoutService.GetWorkouts(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseService.GetExercises(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.Marshal(exportSnapshot{
		UserEmail:  userEmail,
		ExportedAt: now,
		Workouts:   workouts,
		Exercises:  exercises,
	})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := ExportObjectKey(userEmail, now)
	if err := s.fileStorage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, storeError("upload export", err)
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.linkExpiry)
	if err != nil {
		return nil, storeError("presign export", err)
	}

	return &Export{URL: url, ObjectKey: key, ExpiresAt: now.Add(s.linkExpiry)}, nil
}

// ExportObjectKey returns a fresh key under the user's export prefix. The prefix is a
// name-based UUID of the email so addresses never show up in object keys.
func ExportObjectKey(userEmail string, at time.Time) string {
	owner := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+userEmail))
	return fmt.Sprintf("exports/%s/%s-%s.json", owner, at.Format("20060102T150405Z"), uuid.NewString())
}
