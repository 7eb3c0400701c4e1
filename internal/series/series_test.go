package series_test

import (
	"math/rand"
	"testing"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := series.ParseDate(date)
	require.NoError(t, err)
	return d
}

var armsCatalog = domain.CategoryMap{Categories: []domain.Category{
	{Name: "Arms", Exercises: []string{"Bis", "TriPress"}},
	{Name: "Legs", Exercises: []string{"LegPress"}},
}}

func TestBuild_Scenario(t *testing.T) {
	records := []domain.WorkoutRecord{
		{
			UserEmail:   "a@b.c",
			WorkoutDate: "2024-01-01",
			Exercises:   map[string][]domain.SetEntry{"Bis": {{Weight: 20, Reps: 10}}},
		},
		{
			UserEmail:   "a@b.c",
			WorkoutDate: "2024-01-03",
			Exercises:   map[string][]domain.SetEntry{"Bis": {{Weight: 25, Reps: 8}, {Weight: 30, Reps: 5}}},
		},
	}
	categories := domain.CategoryMap{Categories: []domain.Category{{Name: "Arms", Exercises: []string{"Bis"}}}}

	result, err := series.Build(records, categories, "Arms")
	require.NoError(t, err)
	require.Len(t, result, 1)

	bis := result["Bis"]
	require.NotNil(t, bis)
	assert.Equal(t, []time.Time{day(t, "2024-01-01"), day(t, "2024-01-03")}, bis.Dates)
	assert.Equal(t, []float64{20, 30}, bis.MaxWeights)
	assert.Equal(t, []float64{20, 27.5}, bis.AvgWeights)
	assert.Equal(t, 2, bis.Len())
}

func TestBuild_UnknownCategory(t *testing.T) {
	records := []domain.WorkoutRecord{
		{WorkoutDate: "2024-01-01", Exercises: map[string][]domain.SetEntry{"Bis": {{Weight: 20, Reps: 10}}}},
	}
	result, err := series.Build(records, armsCatalog, "Chest")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestBuild_CategoryWithoutLoggedExercises(t *testing.T) {
	records := []domain.WorkoutRecord{
		{WorkoutDate: "2024-01-01", Exercises: map[string][]domain.SetEntry{"Bis": {{Weight: 20, Reps: 10}}}},
	}
	result, err := series.Build(records, armsCatalog, "Legs")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestBuild_NoRecords(t *testing.T) {
	result, err := series.Build(nil, armsCatalog, "Arms")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestBuild_FiltersOtherCategories(t *testing.T) {
	records := []domain.WorkoutRecord{
		{
			WorkoutDate: "2024-03-01",
			Exercises: map[string][]domain.SetEntry{
				"Bis":      {{Weight: 12.5, Reps: 10}},
				"LegPress": {{Weight: 100, Reps: 10}},
				"Mystery":  {{Weight: 1, Reps: 1}},
			},
		},
	}
	result, err := series.Build(records, armsCatalog, "Arms")
	require.NoError(t, err)
	assert.Contains(t, result, "Bis")
	assert.NotContains(t, result, "LegPress")
	assert.NotContains(t, result, "Mystery")
	assert.NotContains(t, result, "TriPress")
}

func TestBuild_SortedRegardlessOfInputOrder(t *testing.T) {
	dates := []string{"2024-05-02", "2023-12-31", "2024-01-15", "2024-05-01", "2024-02-29", "2023-01-01"}
	records := make([]domain.WorkoutRecord, len(dates))
	for i, d := range dates {
		records[i] = domain.WorkoutRecord{
			WorkoutDate: d,
			Exercises: map[string][]domain.SetEntry{
				"Bis":      {{Weight: float64(10 + i), Reps: 8}},
				"TriPress": {{Weight: float64(40 - i), Reps: 8}, {Weight: 20, Reps: 8}},
			},
		}
	}

	expected, err := series.Build(records, armsCatalog, "Arms")
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.WorkoutRecord(nil), records...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := series.Build(shuffled, armsCatalog, "Arms")
		require.NoError(t, err)
		assert.Equal(t, expected, got)

		for name, s := range got {
			require.Len(t, s.MaxWeights, s.Len(), name)
			require.Len(t, s.AvgWeights, s.Len(), name)
			for i := 1; i < s.Len(); i++ {
				assert.True(t, s.Dates[i-1].Before(s.Dates[i]), "%s not sorted at %d", name, i)
			}
		}
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	records := []domain.WorkoutRecord{
		{WorkoutDate: "2024-01-03", Exercises: map[string][]domain.SetEntry{"Bis": {{Weight: 30, Reps: 5}}}},
		{WorkoutDate: "2024-01-01", Exercises: map[string][]domain.SetEntry{"Bis": {{Weight: 20, Reps: 5}}}},
	}
	_, err := series.Build(records, armsCatalog, "Arms")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", records[0].WorkoutDate)
	assert.Equal(t, "2024-01-01", records[1].WorkoutDate)
}

func TestBuild_EmptySetsFails(t *testing.T) {
	records := []domain.WorkoutRecord{
		{WorkoutDate: "2024-01-01", Exercises: map[string][]domain.SetEntry{"Bis": {}}},
	}
	result, err := series.Build(records, armsCatalog, "Arms")
	assert.ErrorIs(t, err, series.ErrCorruptRecord)
	assert.Nil(t, result)
}

func TestBuild_EmptySetsOutsideCategoryIgnored(t *testing.T) {
	records := []domain.WorkoutRecord{
		{WorkoutDate: "2024-01-01", Exercises: map[string][]domain.SetEntry{"LegPress": nil, "Bis": {{Weight: 5, Reps: 5}}}},
	}
	result, err := series.Build(records, armsCatalog, "Arms")
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestBuild_BadDateFails(t *testing.T) {
	records := []domain.WorkoutRecord{
		{WorkoutDate: "01/02/2024", Exercises: map[string][]domain.SetEntry{"Bis": {{Weight: 5, Reps: 5}}}},
	}
	_, err := series.Build(records, armsCatalog, "Arms")
	assert.ErrorIs(t, err, series.ErrCorruptRecord)
}

func TestAggregate_Bounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := 1 + rnd.Intn(8)
		sets := make([]domain.SetEntry, n)
		for i := range sets {
			sets[i] = domain.SetEntry{Weight: rnd.Float64() * 200, Reps: rnd.Intn(20)}
		}

		maxWeight, avgWeight, err := series.Aggregate(sets)
		require.NoError(t, err)

		minWeight := sets[0].Weight
		for _, s := range sets {
			assert.GreaterOrEqual(t, maxWeight, s.Weight)
			minWeight = min(minWeight, s.Weight)
		}
		assert.GreaterOrEqual(t, avgWeight, minWeight)
		assert.LessOrEqual(t, avgWeight, maxWeight)
	}
}

func TestAggregate_RepeatedFractions(t *testing.T) {
	sets := []domain.SetEntry{{Weight: 0.1}, {Weight: 0.1}, {Weight: 0.1}}
	maxWeight, avgWeight, err := series.Aggregate(sets)
	require.NoError(t, err)
	assert.Equal(t, 0.1, maxWeight)
	assert.Equal(t, 0.1, avgWeight)
}

func TestAggregate_Empty(t *testing.T) {
	_, _, err := series.Aggregate(nil)
	require.Error(t, err)
}

func TestParseDate_LocalMidnight(t *testing.T) {
	d := day(t, "2024-02-01")
	assert.Equal(t, time.Local, d.Location())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 1, d.Day())
}
