package cli

import (
	"fmt"

	"liftlog/workout-app/internal/config"
	"liftlog/workout-app/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB unique indexes for workouts and exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prepareStore(cmd, config.DriverMongo)
	},
}

var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Create the DynamoDB workout and exercise tables if they are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prepareStore(cmd, config.DriverDynamoDB)
	},
}

func prepareStore(cmd *cobra.Command, driver string) error {
	c := cfg
	c.Database.Driver = driver

	stores, err := store.Open(cmd.Context(), c)
	if err != nil {
		return err
	}
	defer stores.Close()

	if err := stores.Prepare(cmd.Context(), c); err != nil {
		return fmt.Errorf("failed to prepare %s store: %w", driver, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen, color.Bold).Sprintf("%s store ready", driver))
	return nil
}

func init() {
	rootCmd.AddCommand(ensureIndexesCmd, createTablesCmd)
}
