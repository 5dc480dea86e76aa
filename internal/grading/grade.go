package grading

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/signalnine/autograde/internal/result"
)

// Options configures one grading run.
type Options struct {
	Suites     []*Suite
	MaxPoints  float64
	LoadErrors []error
	// ResultPath is overwritten with the result; empty skips persisting.
	ResultPath string
	Logger     *zap.Logger
}

// Grade runs the suites, reduces the records and persists the result. The
// result file is left untouched whenever an error is returned.
func Grade(ctx context.Context, opts *Options) (*SuiteResult, error) {
	r := &Runner{LoadErrors: opts.LoadErrors, Logger: opts.Logger}
	c, err := r.Run(ctx, opts.Suites...)
	if err != nil {
		return nil, fmt.Errorf("running suites: %w", err)
	}
	res, err := c.Finalize(opts.MaxPoints)
	if err != nil {
		return nil, err
	}
	r.log().Info("grading finished",
		zap.Float64("points", res.Points),
		zap.Float64("max_points", res.MaxPoints),
		zap.Int("hints", len(res.Hints)))
	if opts.ResultPath != "" {
		if err := result.Write(opts.ResultPath, &result.Result{Points: res.Points, Hints: res.Hints}); err != nil {
			return nil, fmt.Errorf("writing result: %w", err)
		}
	}
	return res, nil
}
