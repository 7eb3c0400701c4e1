// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Put replaces the user's record for the workout date, inserting it if missing.
// The stored document is replaced as a whole, exercises from an earlier submission
// for the same date are not merged in.
func (r *mongoWorkoutRepository) Put(ctx context.Context, record *domain.WorkoutRecord) error {
	if record.UserEmail == "" || record.WorkoutDate == "" {
		return errors.New("workout record requires userEmail and workoutDate")
	}

	filter := bson.M{"userEmail": record.UserEmail, "workoutDate": record.WorkoutDate}
	_, err := r.collection.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	return err
}

// ListByUser retrieves all workouts logged by the user, oldest first.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.WorkoutRecord, error) {
	var records []domain.WorkoutRecord
	filter := bson.M{"userEmail": userEmail}
	// ISO dates sort lexically
	findOptions := options.Find().SetSort(bson.D{{Key: "workoutDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.WorkoutRecord{}
	}
	return records, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One record per user and day
			Keys:    bson.D{{Key: "userEmail", Value: 1}, {Key: "workoutDate", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_workout_date"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
