package grading

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoWeight is returned when a run has no weighted tests, so no score
	// can be computed.
	ErrNoWeight = errors.New("grading: total test weight is zero")
	// ErrFinalized is returned by a second call to Collector.Finalize.
	ErrFinalized = errors.New("grading: run already finalized")
)

// MissingHintError reports tests that failed an assertion without a hint
// having been set first. The run must not produce a score.
type MissingHintError struct {
	Tests []string
}

func (e *MissingHintError) Error() string {
	return fmt.Sprintf("grade results not written; missing hints for: %s", strings.Join(e.Tests, ", "))
}
