package mongo_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
	repomongo "liftlog/workout-app/internal/repository/mongo"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

var testDB *mongo.Database

// TestMain starts a throwaway MongoDB container. Without Docker the tests in this
// package are skipped.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil || pool.Client.Ping() != nil {
		fmt.Println("docker not available, skipping mongo repository tests")
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		fmt.Printf("could not start mongo container: %s\n", err)
		os.Exit(1)
	}
	_ = resource.Expire(120)

	var client *mongo.Client
	uri := fmt.Sprintf("mongodb://localhost:%s", resource.GetPort("27017/tcp"))
	if err := pool.Retry(func() error {
		client, err = repomongo.ConnectDB(uri)
		return err
	}); err != nil {
		_ = pool.Purge(resource)
		fmt.Printf("could not connect to mongo: %s\n", err)
		os.Exit(1)
	}

	testDB = client.Database("liftlog_test")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repomongo.EnsureIndexes(ctx, testDB); err != nil {
		cancel()
		_ = pool.Purge(resource)
		fmt.Printf("could not create indexes: %s\n", err)
		os.Exit(1)
	}
	cancel()

	code := m.Run()

	_ = repomongo.DisconnectDB(client)
	_ = pool.Purge(resource)
	os.Exit(code)
}

func requireDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testDB == nil {
		t.Skip("mongo container not running")
	}
	return testDB
}

func TestWorkoutRepository_PutOverwritesSameDate(t *testing.T) {
	db := requireDB(t)
	repo := repomongo.NewMongoWorkoutRepository(db)
	ctx := context.Background()
	email := "overwrite@example.com"

	first := &domain.WorkoutRecord{
		UserEmail:   email,
		WorkoutDate: "2024-02-01",
		Exercises:   map[string][]domain.SetEntry{"Bis": {{Weight: 20, Reps: 10}}},
	}
	second := &domain.WorkoutRecord{
		UserEmail:   email,
		WorkoutDate: "2024-02-01",
		Exercises:   map[string][]domain.SetEntry{"Rows": {{Weight: 55.5, Reps: 8}}},
	}
	require.NoError(t, repo.Put(ctx, first))
	require.NoError(t, repo.Put(ctx, second))

	records, err := repo.ListByUser(ctx, email)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *second, records[0])
}

func TestWorkoutRepository_ListByUser(t *testing.T) {
	db := requireDB(t)
	repo := repomongo.NewMongoWorkoutRepository(db)
	ctx := context.Background()

	for _, date := range []string{"2024-03-05", "2024-03-01"} {
		require.NoError(t, repo.Put(ctx, &domain.WorkoutRecord{
			UserEmail:   "list@example.com",
			WorkoutDate: date,
			Exercises:   map[string][]domain.SetEntry{"Bis": {{Weight: 10, Reps: 10}}},
		}))
	}
	require.NoError(t, repo.Put(ctx, &domain.WorkoutRecord{
		UserEmail:   "someone-else@example.com",
		WorkoutDate: "2024-03-02",
		Exercises:   map[string][]domain.SetEntry{"Bis": {{Weight: 10, Reps: 10}}},
	}))

	records, err := repo.ListByUser(ctx, "list@example.com")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-01", records[0].WorkoutDate)
	assert.Equal(t, "2024-03-05", records[1].WorkoutDate)

	none, err := repo.ListByUser(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestExerciseRepository_Duplicate(t *testing.T) {
	db := requireDB(t)
	repo := repomongo.NewMongoExerciseRepository(db)
	ctx := context.Background()

	ex := &domain.CustomExercise{UserEmail: "dup@example.com", ExerciseName: "Dips", ExerciseCategory: "Chest"}
	require.NoError(t, repo.Create(ctx, ex))
	assert.False(t, ex.CreatedAt.IsZero())

	err := repo.Create(ctx, &domain.CustomExercise{UserEmail: "dup@example.com", ExerciseName: "Dips", ExerciseCategory: "Arms"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// same name, other user
	require.NoError(t, repo.Create(ctx, &domain.CustomExercise{UserEmail: "other@example.com", ExerciseName: "Dips", ExerciseCategory: "Chest"}))

	got, err := repo.GetByName(ctx, "dup@example.com", "Dips")
	require.NoError(t, err)
	assert.Equal(t, "Chest", got.ExerciseCategory)

	_, err = repo.GetByName(ctx, "dup@example.com", "Nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExerciseRepository_ListByUserInRegistrationOrder(t *testing.T) {
	db := requireDB(t)
	repo := repomongo.NewMongoExerciseRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	names := []string{"Zottman", "Arnold", "Muscle-up"}
	for i, name := range names {
		require.NoError(t, repo.Create(ctx, &domain.CustomExercise{
			UserEmail:        "order@example.com",
			ExerciseName:     name,
			ExerciseCategory: "Arms",
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}))
	}

	exercises, err := repo.ListByUser(ctx, "order@example.com")
	require.NoError(t, err)
	require.Len(t, exercises, 3)
	for i, name := range names {
		assert.Equal(t, name, exercises[i].ExerciseName)
	}
}
