package grading

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// Failure is one entry of a run's failure or error list.
type Failure struct {
	Test   string
	Report string
}

// Runner executes suites one test at a time.
type Runner struct {
	// LoadErrors are the failures met while loading the submission. When
	// set, no test body runs and every test is explained by the first one.
	LoadErrors []error
	Logger     *zap.Logger
}

func (r *Runner) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Run executes every test of suites in definition order and returns the
// collector holding their records. A cancelled ctx stops the run; tests
// that did not start are accounted for by Finalize.
func (r *Runner) Run(ctx context.Context, suites ...*Suite) (*Collector, error) {
	c := newCollector()
	for _, s := range suites {
		if err := s.validate(); err != nil {
			return nil, err
		}
		for _, t := range s.Tests {
			name := s.FullName(t.Name)
			if _, dup := c.weights[name]; dup {
				return nil, fmt.Errorf("test %q registered twice", name)
			}
			c.names = append(c.names, name)
			c.weights[name] = s.WeightOf(t.Name)
		}
	}

	var loadFailure string
	if len(r.LoadErrors) > 0 {
		loadFailure = r.LoadErrors[0].Error()
		r.log().Warn("submission failed to load; skipping all test bodies",
			zap.Int("load_errors", len(r.LoadErrors)), zap.Error(r.LoadErrors[0]))
	}

	for _, s := range suites {
		for _, t := range s.Tests {
			if err := ctx.Err(); err != nil {
				c.abort = err
				r.log().Warn("grading run aborted", zap.Error(err))
				return c, nil
			}
			r.runTest(c, s, t, loadFailure)
		}
	}
	return c, nil
}

func (r *Runner) runTest(c *Collector, s *Suite, test Test, loadFailure string) {
	name := s.FullName(test.Name)
	t := &T{name: name}
	startErrors, startFailures := len(c.errors), len(c.failures)

	if loadFailure == "" {
		func() {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if _, ok := v.(failNow); ok {
					return
				}
				c.errors = append(c.errors, Failure{Test: name, Report: errorReport(v) + "\n" + string(debug.Stack())})
			}()
			test.Func(t)
		}()
		if t.failed {
			c.failures = append(c.failures, Failure{Test: name, Report: t.report()})
		}
	}

	c.complete(t, s.WeightOf(test.Name), startErrors, startFailures, loadFailure)
	rec := c.records[name]
	r.log().Debug("test finished",
		zap.String("test", name),
		zap.Float64("weight", rec.Weight),
		zap.Bool("success", rec.IsSuccess),
		zap.Bool("error", rec.IsError))
}

// Collector holds the records of one run, keyed by test name.
type Collector struct {
	names     []string
	weights   map[string]float64
	records   map[string]GradeRecord
	failures  []Failure
	errors    []Failure
	missing   []string
	abort     error
	finalized bool
}

func newCollector() *Collector {
	return &Collector{
		weights: make(map[string]float64),
		records: make(map[string]GradeRecord),
	}
}

// complete is the post-test hook; it runs once per test whatever the outcome.
func (c *Collector) complete(t *T, weight float64, startErrors, startFailures int, loadFailure string) {
	o := outcomeSuccess
	var report string
	switch {
	case loadFailure != "":
		o = outcomeNotLoaded
	case len(c.errors) > startErrors:
		o = outcomeError
		report = c.errors[startErrors].Report
	case len(c.failures) > startFailures:
		o = outcomeFailure
	}
	hint, ok := resolveHint(o, t.hint, report, loadFailure)
	if !ok {
		c.missing = append(c.missing, t.name)
	}
	c.records[t.name] = GradeRecord{
		TestName:  t.name,
		Weight:    weight,
		Hint:      hint,
		IsError:   o == outcomeError,
		IsSuccess: o == outcomeSuccess,
	}
}

// Record returns the record of the named test, if it ran.
func (c *Collector) Record(name string) (GradeRecord, bool) {
	rec, ok := c.records[name]
	return rec, ok
}

// Failures returns the run's failure list.
func (c *Collector) Failures() []Failure { return append([]Failure(nil), c.failures...) }

// Errors returns the run's error list.
func (c *Collector) Errors() []Failure { return append([]Failure(nil), c.errors...) }

// Finalize reduces the run to a SuiteResult. It refuses to produce a score
// when a failure had no hint or when no weight was declared.
func (c *Collector) Finalize(maxPoints float64) (*SuiteResult, error) {
	if c.finalized {
		return nil, ErrFinalized
	}
	c.finalized = true
	if len(c.missing) > 0 {
		return nil, &MissingHintError{Tests: append([]string(nil), c.missing...)}
	}
	if maxPoints < 0 {
		return nil, fmt.Errorf("grading: max points must not be negative, got %v", maxPoints)
	}

	reason := "the grading run ended before this test started"
	if c.abort != nil {
		reason = c.abort.Error()
		if errors.Is(c.abort, context.DeadlineExceeded) {
			reason = "the grading run timed out"
		}
	}
	records := make([]GradeRecord, 0, len(c.names))
	for _, name := range c.names {
		rec, ok := c.records[name]
		if !ok {
			rec = GradeRecord{
				TestName: name,
				Weight:   c.weights[name],
				Hint:     "This test did not run: " + reason + ".",
				IsError:  true,
			}
		}
		records = append(records, rec)
	}
	return newSuiteResult(records, maxPoints)
}
