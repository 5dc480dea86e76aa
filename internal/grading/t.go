package grading

import (
	"fmt"
	"math"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/signalnine/autograde/internal/inspect"
)

// failNow unwinds a test body after an assertion failure.
type failNow struct{}

// T is handed to every test body. It carries the test's own hint, so a
// failure can only ever be explained by the hint set in the same test.
type T struct {
	name    string
	hint    string
	failed  bool
	message []string
}

func (t *T) Name() string { return t.name }

// Hint sets the explanation shown to the learner if the test fails. The
// hint set last before the test ends is the one reported.
func (t *T) Hint(msg string) {
	t.hint = msg
}

// Hintf is Hint with formatting.
func (t *T) Hintf(format string, args ...any) {
	t.hint = fmt.Sprintf(format, args...)
}

// Failed reports whether an assertion has failed in this test.
func (t *T) Failed() bool { return t.failed }

func (t *T) Fail() {
	t.failed = true
}

func (t *T) FailNow() {
	t.Fail()
	panic(failNow{})
}

func (t *T) Errorf(format string, args ...any) {
	t.message = append(t.message, fmt.Sprintf(format, args...))
	t.Fail()
}

func (t *T) Fatalf(format string, args ...any) {
	t.message = append(t.message, fmt.Sprintf(format, args...))
	t.FailNow()
}

// Equal stops the test unless want and got are equal.
func (t *T) Equal(want, got any) {
	if !assert.ObjectsAreEqual(want, got) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

// InDelta stops the test unless got is within delta of want.
func (t *T) InDelta(want, got, delta float64) {
	if math.IsNaN(got) || math.Abs(want-got) > delta {
		t.Fatalf("got %v, want %v (±%v)", got, want, delta)
	}
}

func (t *T) True(cond bool) {
	if !cond {
		t.FailNow()
	}
}

func (t *T) NoError(err error) {
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// RejectTemplate fails the test when fn in src is still a template stub or
// has fewer than minNodes syntax nodes. hint replaces any hint set before.
func (t *T) RejectTemplate(src []byte, fn string, minNodes int, hint string) {
	t.Hint(hint)
	facts, err := inspect.File(src)
	if err != nil {
		t.Fatalf("parsing submission: %v", err)
	}
	f, ok := facts.Funcs[fn]
	if !ok || f.Stub || f.Nodes < minNodes {
		t.Fatalf("%s looks like the unmodified template", fn)
	}
}

func (t *T) report() string {
	return strings.Join(t.message, "\n")
}
