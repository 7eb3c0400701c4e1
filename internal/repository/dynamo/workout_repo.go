package dynamo

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// dynamoWorkoutRepository implements repository.WorkoutRepository
type dynamoWorkoutRepository struct {
	client Client
	table  string
}

// NewDynamoWorkoutRepository creates a Workout repository on the given table.
func NewDynamoWorkoutRepository(client Client, table string) repository.WorkoutRepository {
	return &dynamoWorkoutRepository{client: client, table: table}
}

// Put writes the whole item; PutItem replaces an existing item with the same key.
func (r *dynamoWorkoutRepository) Put(ctx context.Context, record *domain.WorkoutRecord) error {
	if record.UserEmail == "" || record.WorkoutDate == "" {
		return errors.New("workout record requires userEmail and workoutDate")
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	return err
}

// ListByUser returns every record in the user's partition. The sort key orders them by date.
func (r *dynamoWorkoutRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.WorkoutRecord, error) {
	items, err := queryByUser(ctx, r.client, r.table, userEmail)
	if err != nil {
		return nil, err
	}

	records := make([]domain.WorkoutRecord, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, err
	}
	return records, nil
}
