package cmd

import (
	"context"

	"github.com/signalnine/autograde/internal/config"
	"github.com/signalnine/autograde/internal/differential"
	"github.com/signalnine/autograde/internal/grading"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <exercise> [submission-dir...]",
		Short: "Grade a learner's test suite against correct and buggy references",
		Long: "Run the learner's test suite once per reference solution and grade whether it " +
			"accepts every correct reference and rejects every buggy one.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercises(args[0], config.KindTesting, args[1:], validateSubmission)
		},
	}
}

func validateSubmission(ctx context.Context, cfg *config.Config, e *config.Exercise, logger *zap.Logger) (*grading.SuiteResult, error) {
	v := &differential.Validator{
		TestFile:   e.Path(e.TestFile),
		CorrectDir: e.Path(e.CorrectDir),
		BuggyDir:   e.Path(e.BuggyDir),
		Executor:   newExecutor(&cfg.Executor, e),
		Timeout:    e.Timeout(),
		Logger:     logger,
	}
	return v.Grade(ctx, e.MaxPoints, e.Path(e.ResultFile))
}

func newExecutor(x *config.Executor, e *config.Exercise) differential.Executor {
	if x.Kind == "docker" {
		return &differential.DockerExecutor{
			Image:       x.Image,
			TestCmd:     e.TestCmd,
			CPULimit:    x.CPULimit,
			MemoryLimit: x.MemoryLimitMB * 1024 * 1024,
		}
	}
	return &differential.LocalExecutor{TestCmd: e.TestCmd}
}
