// Package store opens the configured persistence backend.
package store

import (
	"context"
	"fmt"
	"time"

	"liftlog/workout-app/internal/config"
	"liftlog/workout-app/internal/repository"
	"liftlog/workout-app/internal/repository/dynamo"
	"liftlog/workout-app/internal/repository/mongo"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	log "github.com/sirupsen/logrus"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// Stores bundles the repositories of one backend.
type Stores struct {
	Workouts  repository.WorkoutRepository
	Exercises repository.ExerciseRepository

	// Exactly one of these is set, depending on database.driver.
	MongoDB *mongodriver.Database
	Dynamo  *dynamodb.Client

	close func() error
}

// Close releases the backend connection.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the backend named by cfg.Database.Driver.
func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo, "":
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Database.Name)
		log.WithField("database", cfg.Database.Name).Info("mongo connection established")
		return &Stores{
			Workouts:  mongo.NewMongoWorkoutRepository(db),
			Exercises: mongo.NewMongoExerciseRepository(db),
			MongoDB:   db,
			close:     func() error { return mongo.DisconnectDB(client) },
		}, nil

	case config.DriverDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, fmt.Errorf("configure dynamodb: %w", err)
		}
		return &Stores{
			Workouts:  dynamo.NewDynamoWorkoutRepository(client, cfg.DynamoDB.WorkoutsTable),
			Exercises: dynamo.NewDynamoExerciseRepository(client, cfg.DynamoDB.ExercisesTable),
			Dynamo:    client,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// Prepare creates the indexes or tables the backend needs.
func (s *Stores) Prepare(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	switch {
	case s.MongoDB != nil:
		return mongo.EnsureIndexes(ctx, s.MongoDB)
	case s.Dynamo != nil:
		return dynamo.CreateTables(ctx, s.Dynamo, cfg.DynamoDB.WorkoutsTable, cfg.DynamoDB.ExercisesTable)
	}
	return nil
}
