package cli

import (
	"fmt"
	"io"
	"strings"

	"liftlog/workout-app/internal/catalog"
	"liftlog/workout-app/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the exercise catalog the server will load",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		printCatalog(cmd.OutOrStdout(), categories)
		return nil
	},
}

func printCatalog(w io.Writer, categories domain.CategoryMap) {
	header := color.New(color.FgCyan, color.Bold).SprintFunc()
	for _, c := range categories.Categories {
		fmt.Fprintf(w, "%s (%d)\n", header(c.Name), len(c.Exercises))
		if len(c.Exercises) > 0 {
			fmt.Fprintf(w, "  %s\n", strings.Join(c.Exercises, ", "))
		}
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
