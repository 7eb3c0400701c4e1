package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"liftlog/workout-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, config.DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "UserWorkouts", cfg.DynamoDB.WorkoutsTable)
	assert.Equal(t, "UserExercises", cfg.DynamoDB.ExercisesTable)
	assert.Equal(t, 168*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 15*time.Minute, cfg.S3.ExportExpiry)
	assert.False(t, cfg.Ingest.RejectDuplicateExercises)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  address: ":9090"
database:
  driver: dynamodb
jwt:
  secret: from-file
  expiration: 2h
ingest:
  reject_duplicate_exercises: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DYNAMODB_WORKOUTS_TABLE", "Workouts")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, config.DriverDynamoDB, cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "Workouts", cfg.DynamoDB.WorkoutsTable)
	assert.True(t, cfg.Ingest.RejectDuplicateExercises)
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := config.LoadConfig(dir)
	require.Error(t, err)
}
