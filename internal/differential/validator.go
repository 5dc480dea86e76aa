package differential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/signalnine/autograde/internal/inspect"
)

const (
	// DefaultTimeout bounds one execution of the learner's suite.
	DefaultTimeout = 2 * time.Minute

	// Staged paths inside the scratch directory.
	SuitePath     = "task/script_test.go"
	ReferencePath = "task/script.go"

	scratchModule = "module submission\n\ngo 1.24\n"
)

// Outcome is the result of running the learner's suite against one
// reference. Problem is set when the suite was rejected before execution.
type Outcome struct {
	Reference  Reference
	Crashed    bool
	Succeeded  bool
	TimedOut   bool
	Diagnostic string
	Problem    string
}

// Validator runs a learner's test suite against every balanced reference.
type Validator struct {
	// TestFile is the learner's suite.
	TestFile   string
	CorrectDir string
	BuggyDir   string
	// ScratchDir is the parent of the per-run staging directory; defaults to
	// os.TempDir().
	ScratchDir string
	Executor   Executor
	Timeout    time.Duration
	Logger     *zap.Logger
}

func (v *Validator) log() *zap.Logger {
	if v.Logger == nil {
		return zap.NewNop()
	}
	return v.Logger
}

func (v *Validator) timeout() time.Duration {
	if v.Timeout <= 0 {
		return DefaultTimeout
	}
	return v.Timeout
}

// References discovers both reference sets and balances them.
func (v *Validator) References() ([]Reference, error) {
	correct, err := Discover(v.CorrectDir, true)
	if err != nil {
		return nil, err
	}
	buggy, err := Discover(v.BuggyDir, false)
	if err != nil {
		return nil, err
	}
	return Balance(correct, buggy)
}

// Run executes the learner's suite once per balanced reference, strictly one
// after another. A suite that fails inspection is never executed; each
// reference then carries the inspection problem.
func (v *Validator) Run(ctx context.Context) ([]Outcome, error) {
	refs, err := v.References()
	if err != nil {
		return nil, err
	}
	suite, err := os.ReadFile(v.TestFile)
	if err != nil {
		return nil, fmt.Errorf("reading test suite: %w", err)
	}

	outcomes := make([]Outcome, 0, len(refs))
	if problem := inspect.SuiteProblem(suite); problem != "" {
		v.log().Info("test suite rejected", zap.String("problem", problem))
		for _, ref := range refs {
			outcomes = append(outcomes, Outcome{Reference: ref, Problem: problem})
		}
		return outcomes, nil
	}
	if v.Executor == nil {
		return nil, errors.New("differential: no executor configured")
	}

	parent := v.ScratchDir
	if parent == "" {
		parent = os.TempDir()
	}
	dir, err := filepath.Abs(filepath.Join(parent, "autograde-"+uuid.NewString()))
	if err != nil {
		return nil, fmt.Errorf("resolving scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for i, ref := range refs {
		v.log().Info("executing", zap.Int("n", i+1), zap.Stringer("reference", &ref))
		o, err := v.execute(ctx, dir, suite, ref)
		if err != nil {
			return nil, fmt.Errorf("executing against %s: %w", ref.Path, err)
		}
		v.log().Debug("outcome",
			zap.String("reference", ref.Name()),
			zap.Bool("crashed", o.Crashed),
			zap.Bool("succeeded", o.Succeeded),
			zap.String("diagnostic", o.Diagnostic))
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func (v *Validator) execute(ctx context.Context, dir string, suite []byte, ref Reference) (Outcome, error) {
	o := Outcome{Reference: ref}
	if err := stage(dir, suite, ref.Path); err != nil {
		return o, err
	}
	defer os.RemoveAll(dir)

	res, err := v.Executor.Execute(ctx, dir, v.timeout())
	if err != nil {
		return o, err
	}
	if res.TimedOut {
		o.Crashed = true
		o.TimedOut = true
		o.Diagnostic = fmt.Sprintf("execution timed out after %s", v.timeout())
		return o, nil
	}

	diag, found := ExtractDiagnostic(res.Output)
	if ref.ShouldPass && found {
		o.Crashed = true
		o.Diagnostic = hiddenBugMessage(diag, res.Output, ref)
		return o, nil
	}
	o.Crashed = Classify(res.Output) == Crash
	o.Succeeded = res.ExitCode == 0
	if o.Crashed && found {
		o.Diagnostic = diag
	}
	return o, nil
}

// stage recreates dir with a fresh module holding the suite and reference.
func stage(dir string, suite []byte, refPath string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing scratch dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "task"), 0o755); err != nil {
		return fmt.Errorf("creating scratch dir: %w", err)
	}
	ref, err := os.ReadFile(refPath)
	if err != nil {
		return fmt.Errorf("reading reference: %w", err)
	}
	files := map[string][]byte{
		"go.mod":      []byte(scratchModule),
		SuitePath:     suite,
		ReferencePath: ref,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("staging %s: %w", name, err)
		}
	}
	return nil
}

func hiddenBugMessage(diag, output string, ref Reference) string {
	if hint, ok := LearnerHint(output); ok {
		return "Your test suite failed for a correct implementation. Hint: " + hint
	}
	if IsAssertion(diag) {
		return fmt.Sprintf("Your test suite contains a test that fails for a correct implementation (%s).", ref.Hint)
	}
	return fmt.Sprintf("Running your test suite on a correct implementation failed due to a '%s'.", diag)
}
