package service

import (
	"math"
	"strings"
	"time"

	"liftlog/workout-app/internal/domain"

	"github.com/spf13/cast"
)

// ExerciseForm is one exercise as submitted by the log-workout form.
type ExerciseForm struct {
	Name  string     `json:"name"`
	Pairs []PairForm `json:"pairs"`
}

// PairForm holds a raw set. Form inputs arrive either as JSON numbers or as strings.
type PairForm struct {
	Weight any `json:"weight"`
	Reps   any `json:"reps"`
}

// ToWorkoutRecord validates a submission and converts it into the stored record shape.
// Nothing is coerced to zero: missing or non-numeric values are validation errors.
// When the same exercise name appears more than once, the later entry's sets replace
// the earlier ones.
func ToWorkoutRecord(userEmail, date string, forms []ExerciseForm) (*domain.WorkoutRecord, error) {
	if userEmail == "" {
		return nil, ErrUnauthenticated
	}
	workoutDate, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return nil, validationError("at least one exercise is required")
	}

	exercises := make(map[string][]domain.SetEntry, len(forms))
	for i, form := range forms {
		name := strings.TrimSpace(form.Name)
		if name == "" {
			return nil, validationError("exercise %d: name is required", i+1)
		}
		if len(form.Pairs) == 0 {
			return nil, validationError("exercise %q: at least one weight/reps pair is required", name)
		}

		sets := make([]domain.SetEntry, 0, len(form.Pairs))
		for j, pair := range form.Pairs {
			weight, err := parseWeight(pair.Weight)
			if err != nil {
				return nil, validationError("exercise %q set %d: weight %v", name, j+1, err)
			}
			reps, err := parseReps(pair.Reps)
			if err != nil {
				return nil, validationError("exercise %q set %d: reps %v", name, j+1, err)
			}
			sets = append(sets, domain.SetEntry{Weight: weight, Reps: reps})
		}
		exercises[name] = sets
	}

	return &domain.WorkoutRecord{
		UserEmail:   userEmail,
		WorkoutDate: workoutDate,
		Exercises:   exercises,
	}, nil
}

// DuplicateExerciseName returns the first exercise name submitted more than once.
func DuplicateExerciseName(forms []ExerciseForm) (string, bool) {
	seen := make(map[string]bool, len(forms))
	for _, form := range forms {
		name := strings.TrimSpace(form.Name)
		if seen[name] {
			return name, true
		}
		seen[name] = true
	}
	return "", false
}

func normalizeDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", validationError("date is required")
	}
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return "", validationError("date %q is not a YYYY-MM-DD calendar date", date)
	}
	return t.Format(domain.DateLayout), nil
}

func parseNumber(v any) (float64, error) {
	switch val := v.(type) {
	case nil:
		return 0, errMissing
	case bool:
		return 0, errNotNumeric
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return 0, errMissing
		}
		v = val
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errNotNumeric
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}

func parseWeight(v any) (float64, error) {
	return parseNumber(v)
}

func parseReps(v any) (int, error) {
	f, err := parseNumber(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, errNotInteger
	}
	return int(f), nil
}

type inputError string

func (e inputError) Error() string { return string(e) }

const (
	errMissing    = inputError("is missing")
	errNotNumeric = inputError("is not a number")
	errNegative   = inputError("must not be negative")
	errNotInteger = inputError("must be a whole number")
)
