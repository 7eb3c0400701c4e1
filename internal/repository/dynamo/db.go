package dynamo

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

// Client is the part of the DynamoDB API the repositories use.
// *dynamodb.Client satisfies it.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// NewClient builds a DynamoDB client. A configured endpoint (DynamoDB Local, LocalStack)
// replaces the AWS one; static credentials are only used when both keys are set.
func NewClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(awsSDKConfig, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	log.Infof("DynamoDB client initialized for region %s (tables %s, %s)", cfg.Region, cfg.WorkoutsTable, cfg.ExercisesTable)
	return client, nil
}

// CreateTables creates the workout and exercise tables when they do not exist yet.
// Workouts are keyed by (UserEmail, WorkoutDate), exercises by (UserEmail, ExerciseName).
func CreateTables(ctx context.Context, client *dynamodb.Client, workoutsTable, exercisesTable string) error {
	tables := []struct {
		name    string
		sortKey string
	}{
		{workoutsTable, attrWorkoutDate},
		{exercisesTable, attrExerciseName},
	}

	for _, t := range tables {
		_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName: aws.String(t.name),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(attrUserEmail), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String(t.sortKey), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(attrUserEmail), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String(t.sortKey), KeyType: types.KeyTypeRange},
			},
			BillingMode: types.BillingModePayPerRequest,
		})
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				log.Infof("DynamoDB table %s already exists", t.name)
				continue
			}
			return err
		}
		log.Infof("DynamoDB table %s created", t.name)
	}
	return nil
}

// Attribute names follow the original UserWorkouts / UserExercises tables.
const (
	attrUserEmail    = "UserEmail"
	attrWorkoutDate  = "WorkoutDate"
	attrExerciseName = "ExerciseName"
)

// queryByUser pages through every item in the table under the user's partition key.
func queryByUser(ctx context.Context, client Client, table, userEmail string) ([]map[string]types.AttributeValue, error) {
	paginator := dynamodb.NewQueryPaginator(client, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String(attrUserEmail + " = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: userEmail},
		},
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
