package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signalnine/autograde/internal/config"
	"github.com/signalnine/autograde/internal/report"
	"github.com/signalnine/autograde/internal/result"
	"github.com/spf13/cobra"
)

var (
	flagFormat     string
	flagResultName string
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [dir]",
		Short: "Summarize stored grade results",
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) > 0 {
				dir = args[0]
			} else {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				dir = cfg.Results.Dir
			}
			resolved, err := filepath.EvalSymlinks(dir)
			if err != nil {
				return fmt.Errorf("resolving results dir: %w", err)
			}
			return report.Generate(resolved, flagResultName, flagFormat, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().StringVar(&flagResultName, "name", result.DefaultFile, "result file name to collect")
	return cmd
}
