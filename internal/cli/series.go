package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"liftlog/workout-app/internal/catalog"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/series"
	"liftlog/workout-app/internal/service"
	"liftlog/workout-app/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seriesUser     string
	seriesCategory string
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print a user's progress series for one category",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seriesUser == "" || seriesCategory == "" {
			return errors.New("--user and --category are required")
		}

		builtin, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		stores, err := store.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer stores.Close()

		exercises := service.NewExerciseService(stores.Exercises, builtin)
		workouts := service.NewWorkoutService(stores.Workouts, exercises, service.WorkoutOptions{})

		result, err := workouts.GetProgress(cmd.Context(), seriesUser, seriesCategory)
		if err != nil {
			return err
		}
		printSeries(cmd.OutOrStdout(), result)
		return nil
	},
}

func printSeries(w io.Writer, result map[string]*series.ExerciseSeries) {
	if len(result) == 0 {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("no logged exercises in this category"))
		return
	}

	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)

	title := color.New(color.FgMagenta, color.Bold).SprintFunc()
	for _, name := range names {
		s := result[name]
		fmt.Fprintf(w, "%s\n", title(name))
		for i := range s.Dates {
			fmt.Fprintf(w, "  %s  max %7.2f  avg %7.2f\n", s.Dates[i].Format(domain.DateLayout), s.MaxWeights[i], s.AvgWeights[i])
		}
	}
}

func init() {
	seriesCmd.Flags().StringVar(&seriesUser, "user", "", "user email")
	seriesCmd.Flags().StringVar(&seriesCategory, "category", "", "category name")
	rootCmd.AddCommand(seriesCmd)
}
