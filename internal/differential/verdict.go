package differential

import (
	"context"
	"fmt"

	"github.com/signalnine/autograde/internal/grading"
)

// SuiteName names the generated grading suite.
const SuiteName = "differential"

// Verdict turns an outcome into the message shown to the learner and whether
// the generated test passes.
func Verdict(o Outcome) (string, bool) {
	ref := o.Reference
	switch {
	case o.Problem != "":
		return o.Problem, false
	case o.Crashed:
		m := o.Diagnostic
		if m == "" {
			m = ref.Hint
		}
		return "Execution crashed: " + m, false
	case ref.ShouldPass == o.Succeeded:
		state := "Failed"
		if ref.ShouldPass {
			state = "Worked"
		}
		return fmt.Sprintf("%s as expected: %s", state, ref.Hint), true
	case ref.ShouldPass:
		return "A correct solution did not pass your test suite: " + ref.Hint, false
	default:
		return "Your test suite did not detect an issue in a hidden implementation: " + ref.Hint, false
	}
}

// TestName is the generated test name for the n-th outcome, counted from 1.
func TestName(n int, o Outcome) string {
	if o.Problem != "" {
		return fmt.Sprintf("GeneratedTest_%d", n)
	}
	return fmt.Sprintf("GeneratedTest_%d_%s", n, o.Reference.Name())
}

// Suite builds one grading test of weight 1 per outcome.
func Suite(outcomes []Outcome) *grading.Suite {
	s := grading.NewSuite(SuiteName)
	for i, o := range outcomes {
		msg, ok := Verdict(o)
		s.Add(TestName(i+1, o), func(t *grading.T) {
			t.Hint(msg)
			if !ok {
				t.Fail()
			}
		})
	}
	return s
}

// Grade validates the learner's suite and persists the graded result to
// resultPath.
func (v *Validator) Grade(ctx context.Context, maxPoints float64, resultPath string) (*grading.SuiteResult, error) {
	outcomes, err := v.Run(ctx)
	if err != nil {
		return nil, err
	}
	return grading.Grade(ctx, &grading.Options{
		Suites:     []*grading.Suite{Suite(outcomes)},
		MaxPoints:  maxPoints,
		ResultPath: resultPath,
		Logger:     v.log(),
	})
}
