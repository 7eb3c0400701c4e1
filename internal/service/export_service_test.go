package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
	"liftlog/workout-app/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type exportFixture struct {
	workouts  *repository.MockWorkoutRepository
	exercises *repository.MockExerciseRepository
	files     *storage.MockFileStorage
	svc       *exportService
}

func newExportFixture(t *testing.T) exportFixture {
	ctrl := gomock.NewController(t)
	f := exportFixture{
		workouts:  repository.NewMockWorkoutRepository(ctrl),
		exercises: repository.NewMockExerciseRepository(ctrl),
		files:     storage.NewMockFileStorage(ctrl),
	}
	exerciseSvc := NewExerciseService(f.exercises, testCatalog())
	workoutSvc := NewWorkoutService(f.workouts, exerciseSvc, WorkoutOptions{})
	f.svc = NewExportService(workoutSvc, exerciseSvc, f.files, 10*time.Minute).(*exportService)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestExportWorkouts(t *testing.T) {
	f := newExportFixture(t)
	records := []domain.WorkoutRecord{{
		UserEmail:   "a@x.com",
		WorkoutDate: "2024-01-05",
		Exercises:   map[string][]domain.SetEntry{"Bis": {{Weight: 10, Reps: 12}}},
	}}

	f.workouts.EXPECT().ListByUser(gomock.Any(), "a@x.com").Return(records, nil)
	f.exercises.EXPECT().ListByUser(gomock.Any(), "a@x.com").Return(nil, nil)

	var uploadedKey string
	f.files.EXPECT().PutObject(gomock.Any(), gomock.Any(), "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, key, _ string, body []byte) error {
			uploadedKey = key
			var snap exportSnapshot
			require.NoError(t, json.Unmarshal(body, &snap))
			assert.Equal(t, "a@x.com", snap.UserEmail)
			assert.Equal(t, records, snap.Workouts)
			assert.NotNil(t, snap.Exercises)
			return nil
		})
	f.files.EXPECT().GeneratePresignedDownloadURL(gomock.Any(), gomock.Any(), 10*time.Minute).
		Return("https://s3.example/export", nil)

	export, err := f.svc.ExportWorkouts(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/export", export.URL)
	assert.Equal(t, uploadedKey, export.ObjectKey)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 10, 0, 0, time.UTC), export.ExpiresAt)
}

func TestExportWorkouts_UploadFails(t *testing.T) {
	f := newExportFixture(t)
	f.workouts.EXPECT().ListByUser(gomock.Any(), "a@x.com").Return(nil, nil)
	f.exercises.EXPECT().ListByUser(gomock.Any(), "a@x.com").Return(nil, nil)
	f.files.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("access denied"))

	_, err := f.svc.ExportWorkouts(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExportWorkouts_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	exerciseSvc := NewExerciseService(repository.NewMockExerciseRepository(ctrl), testCatalog())
	workoutSvc := NewWorkoutService(repository.NewMockWorkoutRepository(ctrl), exerciseSvc, WorkoutOptions{})
	svc := NewExportService(workoutSvc, exerciseSvc, nil, 0)

	_, err := svc.ExportWorkouts(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrExportDisabled)
}

func TestExportObjectKey(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := ExportObjectKey("a@x.com", at)
	b := ExportObjectKey("a@x.com", at)
	other := ExportObjectKey("b@x.com", at)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "exports/"))
	assert.True(t, strings.HasSuffix(a, ".json"))
	assert.NotContains(t, a, "a@x.com")
	assert.Equal(t, strings.Split(a, "/")[1], strings.Split(b, "/")[1])
	assert.NotEqual(t, strings.Split(a, "/")[1], strings.Split(other, "/")[1])
}
