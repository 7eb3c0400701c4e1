// internal/domain/exercise.go
package domain

import "time"

// CustomExercise is an exercise a user registered on top of the built-in catalog.
// ExerciseName is unique per user.
type CustomExercise struct {
	UserEmail        string    `bson:"userEmail" json:"userEmail" dynamodbav:"UserEmail"`
	ExerciseName     string    `bson:"exerciseName" json:"exerciseName" dynamodbav:"ExerciseName"`
	ExerciseCategory string    `bson:"exerciseCategory" json:"exerciseCategory" dynamodbav:"ExerciseCategory"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt" dynamodbav:"CreatedAt"` // orders listings, and therefore catalog merges
}
