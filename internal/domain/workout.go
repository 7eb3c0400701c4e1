package domain

// DateLayout is the calendar date format used for WorkoutDate (no time component).
const DateLayout = "2006-01-02"

// SetEntry is a single weight/reps pair logged for an exercise.
type SetEntry struct {
	Weight float64 `bson:"weight" json:"weight" dynamodbav:"weight"`
	Reps   int     `bson:"reps" json:"reps" dynamodbav:"reps"`
}

// WorkoutRecord is one user's logged workout for a single date.
// There is at most one record per (UserEmail, WorkoutDate); a second submission
// for the same date replaces the stored record.
type WorkoutRecord struct {
	UserEmail   string                `bson:"userEmail" json:"userEmail" dynamodbav:"UserEmail"`
	WorkoutDate string                `bson:"workoutDate" json:"workoutDate" dynamodbav:"WorkoutDate"` // YYYY-MM-DD
	Exercises   map[string][]SetEntry `bson:"exercises" json:"exercises" dynamodbav:"Exercises"`       // exercise name -> sets, never empty
}
