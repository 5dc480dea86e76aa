package grading

import (
	"fmt"
	"strings"
)

// GenericErrorHint explains an error in a test that set no hint.
const GenericErrorHint = "An unexpected error occurred while grading this test"

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeError
	outcomeNotLoaded
)

func (o outcome) String() string {
	switch o {
	case outcomeFailure:
		return "failure"
	case outcomeError:
		return "error"
	case outcomeNotLoaded:
		return "not_loaded"
	default:
		return "success"
	}
}

// resolveHint picks the learner-facing hint for a finished test. The bool is
// false when a failure carried no hint, which is a defect of the grading
// suite rather than of the submission.
func resolveHint(o outcome, authorHint, errorReport, loadFailure string) (string, bool) {
	switch o {
	case outcomeNotLoaded:
		return loadFailure, true
	case outcomeError:
		hint := authorHint
		if hint == "" {
			hint = GenericErrorHint
		}
		return hint + fmt.Sprintf(" (This was caused by an error of type %s).", ErrorType(errorReport)), true
	case outcomeFailure:
		return authorHint, authorHint != ""
	default:
		return "", true
	}
}

// ErrorType extracts a type label from an error report: the text before the
// first colon of the first line. It falls back to "Error".
func ErrorType(report string) (label string) {
	defer func() {
		if recover() != nil {
			label = "Error"
		}
	}()
	first, _, _ := strings.Cut(report, "\n")
	name, _, found := strings.Cut(first, ":")
	name = strings.TrimSpace(name)
	if !found || name == "" || strings.ContainsAny(name, " \t") {
		return "Error"
	}
	return name
}

// errorReport renders a recovered panic value as "<type>: <value>".
func errorReport(v any) string {
	typ := strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	return fmt.Sprintf("%s: %v", typ, v)
}
