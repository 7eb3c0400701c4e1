package dynamo

import (
	"context"
	"errors"
	"sort"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoExerciseRepository implements repository.ExerciseRepository
type dynamoExerciseRepository struct {
	client Client
	table  string
}

// NewDynamoExerciseRepository creates an Exercise repository on the given table.
func NewDynamoExerciseRepository(client Client, table string) repository.ExerciseRepository {
	return &dynamoExerciseRepository{client: client, table: table}
}

// Create inserts the exercise unless the user already has one with that name.
func (r *dynamoExerciseRepository) Create(ctx context.Context, exercise *domain.CustomExercise) error {
	if exercise.UserEmail == "" || exercise.ExerciseName == "" {
		return errors.New("exercise requires userEmail and exerciseName")
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}

	item, err := attributevalue.MarshalMap(exercise)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(" + attrExerciseName + ")"),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByName retrieves one of the user's exercises.
func (r *dynamoExerciseRepository) GetByName(ctx context.Context, userEmail, exerciseName string) (*domain.CustomExercise, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrUserEmail:    &types.AttributeValueMemberS{Value: userEmail},
			attrExerciseName: &types.AttributeValueMemberS{Value: exerciseName},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, repository.ErrNotFound
	}

	var exercise domain.CustomExercise
	if err := attributevalue.UnmarshalMap(out.Item, &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// ListByUser returns the user's exercises in registration order.
// The table sorts by name, so the order is restored from CreatedAt.
func (r *dynamoExerciseRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.CustomExercise, error) {
	items, err := queryByUser(ctx, r.client, r.table, userEmail)
	if err != nil {
		return nil, err
	}

	exercises := make([]domain.CustomExercise, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &exercises); err != nil {
		return nil, err
	}
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].CreatedAt.Before(exercises[j].CreatedAt)
	})
	return exercises, nil
}
