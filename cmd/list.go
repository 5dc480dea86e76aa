package cmd

import (
	"fmt"

	"github.com/signalnine/autograde/internal/config"
	"github.com/signalnine/autograde/internal/exercises"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured exercises and registered grading suites",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Println("Exercises:")
			for _, e := range cfg.Exercises {
				fmt.Printf("  - %s [%s] dir=%s max_points=%g\n", e.Name, e.Kind, e.Dir, e.MaxPoints)
			}
			fmt.Println("\nGrading suites:")
			for _, name := range exercises.Names() {
				ex, _ := exercises.Lookup(name)
				fmt.Printf("  - %s: %s\n", name, ex.Description)
			}
			fmt.Printf("\nExecutor: %s (image: %s)\n", cfg.Executor.Kind, cfg.Executor.Image)
			return nil
		},
	}
}
