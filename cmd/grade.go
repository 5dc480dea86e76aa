package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/signalnine/autograde/internal/config"
	"github.com/signalnine/autograde/internal/exercises"
	"github.com/signalnine/autograde/internal/grading"
	"github.com/signalnine/autograde/internal/submission"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <exercise> [submission-dir...]",
		Short: "Grade submissions of an implementation exercise",
		Long: "Load each submission, run the exercise's grading suites and write the result file. " +
			"The exercise may be a pattern like basics/*; without submission dirs the exercise dir is graded.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercises(args[0], config.KindImplementation, args[1:], gradeSubmission)
		},
	}
}

type gradeFunc func(ctx context.Context, cfg *config.Config, e *config.Exercise, logger *zap.Logger) (*grading.SuiteResult, error)

// runExercises grades every submission dir of every exercise matching
// pattern, one after another. It stops at the first fatal grading error.
func runExercises(pattern, kind string, dirs []string, grade gradeFunc) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	selected := filterExercises(cfg.Exercises, pattern, kind)
	if len(selected) == 0 {
		return fmt.Errorf("no %s exercise matches %q", kind, pattern)
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, e := range selected {
		for _, target := range submissionDirs(&e, dirs) {
			fmt.Printf("Grading %s in %s...\n", target.Name, target.Dir)
			res, err := grade(ctx, cfg, target, logger.With(zap.String("exercise", target.Name), zap.String("dir", target.Dir)))
			if err != nil {
				return fmt.Errorf("grading %s in %s: %w", target.Name, target.Dir, err)
			}
			printResult(res)
		}
	}
	return nil
}

func gradeSubmission(ctx context.Context, _ *config.Config, e *config.Exercise, logger *zap.Logger) (*grading.SuiteResult, error) {
	ex, err := exercises.Lookup(e.Name)
	if err != nil {
		return nil, err
	}
	sub := submission.Load(e.Path(e.Submission))
	suites := ex.Build(sub)
	return grading.Grade(ctx, &grading.Options{
		Suites:     suites,
		MaxPoints:  e.MaxPoints,
		LoadErrors: sub.Errors(),
		ResultPath: e.Path(e.ResultFile),
		Logger:     logger,
	})
}

func printResult(res *grading.SuiteResult) {
	fmt.Printf("  points: %g / %g\n", res.Points, res.MaxPoints)
	for _, h := range res.Hints {
		fmt.Printf("  - %s\n", h)
	}
}

func filterExercises(exs []config.Exercise, pattern, kind string) []config.Exercise {
	var filtered []config.Exercise
	for _, e := range exs {
		if kind != "" && e.Kind != kind {
			continue
		}
		if !matchPattern(e.Name, pattern) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func matchPattern(name, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		return strings.HasPrefix(name, prefix+"/")
	}
	return name == pattern
}

// submissionDirs returns one copy of e per submission dir, or e itself when
// no dirs are given. Reference dirs stay with the exercise.
func submissionDirs(e *config.Exercise, dirs []string) []*config.Exercise {
	if len(dirs) == 0 {
		return []*config.Exercise{e}
	}
	out := make([]*config.Exercise, 0, len(dirs))
	for _, d := range dirs {
		c := *e
		for _, p := range []*string{&c.CorrectDir, &c.BuggyDir} {
			if abs, err := filepath.Abs(e.Path(*p)); err == nil {
				*p = abs
			}
		}
		c.Dir = filepath.Clean(d)
		out = append(out, &c)
	}
	return out
}
