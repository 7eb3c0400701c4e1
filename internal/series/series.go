package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"liftlog/workout-app/internal/domain"
)

// ErrCorruptRecord means a stored workout record breaks the record invariants
// (unparsable date, exercise without sets). It is a data-integrity fault.
var ErrCorruptRecord = errors.New("corrupt workout record")

// ExerciseSeries is the chart data for one exercise.
// Dates, MaxWeights and AvgWeights are co-indexed and ascending by date.
type ExerciseSeries struct {
	Dates      []time.Time `json:"dates"`
	MaxWeights []float64   `json:"maxWeights"`
	AvgWeights []float64   `json:"avgWeights"`
}

func (s *ExerciseSeries) Len() int {
	return len(s.Dates)
}

func (s *ExerciseSeries) append(date time.Time, maxWeight, avgWeight float64) {
	s.Dates = append(s.Dates, date)
	s.MaxWeights = append(s.MaxWeights, maxWeight)
	s.AvgWeights = append(s.AvgWeights, avgWeight)
}

type datedRecord struct {
	date   time.Time
	record *domain.WorkoutRecord
}

// Build turns workout records into per-exercise series for the selected category.
// Exercises outside the category are dropped, and exercises never logged are absent.
// An unknown category yields an empty map. Build does not modify records.
func Build(records []domain.WorkoutRecord, categories domain.CategoryMap, selected string) (map[string]*ExerciseSeries, error) {
	result := make(map[string]*ExerciseSeries)

	members, ok := categories.Lookup(selected)
	if !ok {
		return result, nil
	}
	inCategory := make(map[string]bool, len(members))
	for _, name := range members {
		inCategory[name] = true
	}

	dated := make([]datedRecord, 0, len(records))
	for i := range records {
		date, err := ParseDate(records[i].WorkoutDate)
		if err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", ErrCorruptRecord, records[i].WorkoutDate, err)
		}
		dated = append(dated, datedRecord{date: date, record: &records[i]})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})

	for _, dr := range dated {
		for name, sets := range dr.record.Exercises {
			if !inCategory[name] {
				continue
			}
			maxWeight, avgWeight, err := Aggregate(sets)
			if err != nil {
				return nil, fmt.Errorf("%w: record %s exercise %q: %v", ErrCorruptRecord, dr.record.WorkoutDate, name, err)
			}
			s, ok := result[name]
			if !ok {
				s = &ExerciseSeries{}
				result[name] = s
			}
			s.append(dr.date, maxWeight, avgWeight)
		}
	}
	return result, nil
}

// Aggregate returns the max and arithmetic mean of the set weights.
// The set list must not be empty.
func Aggregate(sets []domain.SetEntry) (maxWeight, avgWeight float64, err error) {
	if len(sets) == 0 {
		return 0, 0, errors.New("exercise has no sets")
	}
	maxWeight = sets[0].Weight
	minWeight := sets[0].Weight
	var sum float64
	for _, set := range sets {
		maxWeight = max(maxWeight, set.Weight)
		minWeight = min(minWeight, set.Weight)
		sum += set.Weight
	}
	// rounding in the sum may push the mean just outside [min, max]
	avgWeight = min(max(sum/float64(len(sets)), minWeight), maxWeight)
	return maxWeight, avgWeight, nil
}

// ParseDate parses a workout date as local midnight so that dates near a timezone
// boundary stay on their calendar day.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, date, time.Local)
}
