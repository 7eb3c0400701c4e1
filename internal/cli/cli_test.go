package cli

import (
	"bytes"
	"testing"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/series"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	printCatalog(&buf, domain.CategoryMap{Categories: []domain.Category{
		{Name: "Arms", Exercises: []string{"Bis", "Dips"}},
		{Name: "Cardio", Exercises: []string{}},
	}})
	assert.Equal(t, "Arms (2)\n  Bis, Dips\nCardio (0)\n", buf.String())
}

func TestPrintSeries(t *testing.T) {
	var buf bytes.Buffer
	d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.Local) }
	printSeries(&buf, map[string]*series.ExerciseSeries{
		"Flys":       {Dates: []time.Time{d(5)}, MaxWeights: []float64{20}, AvgWeights: []float64{17.5}},
		"ChestPress": {Dates: []time.Time{d(5), d(10)}, MaxWeights: []float64{100, 110}, AvgWeights: []float64{90, 110}},
	})

	want := "ChestPress\n" +
		"  2024-01-05  max  100.00  avg   90.00\n" +
		"  2024-01-10  max  110.00  avg  110.00\n" +
		"Flys\n" +
		"  2024-01-05  max   20.00  avg   17.50\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	printSeries(&buf, map[string]*series.ExerciseSeries{})
	assert.Contains(t, buf.String(), "no logged exercises")
}

func TestCatalogCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"catalog", "--config", t.TempDir()})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, Execute())
	assert.Contains(t, buf.String(), "Chest (")
	assert.Contains(t, buf.String(), "Abs (")
}

func TestSeriesCommand_RequiresFlags(t *testing.T) {
	rootCmd.SetArgs([]string{"series", "--config", t.TempDir()})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.ErrorContains(t, Execute(), "--user and --category are required")
}
