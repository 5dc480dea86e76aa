package submission

import (
	"errors"
	"io"
	"os"
)

// ErrStdinDisabled is raised when learner code reads standard input.
var ErrStdinDisabled = errors.New("reading standard input is not allowed during grading")

// InputError is the panic value raised by DisabledStdin.
type InputError struct{}

func (InputError) Error() string { return ErrStdinDisabled.Error() }

func (InputError) Is(target error) bool { return target == ErrStdinDisabled }

// DisabledStdin replaces standard input for code under grading. Reading
// panics, so a learner program blocked on input fails its test at once even
// if it ignores read errors.
type DisabledStdin struct{}

func (DisabledStdin) Read([]byte) (int, error) {
	panic(InputError{})
}

var _ io.Reader = DisabledStdin{}

// closedStdin stands in for os.Stdin inside the interpreter. Both pipe ends
// are closed, so every read fails at once instead of waiting for input.
func closedStdin() (*os.File, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	w.Close()
	r.Close()
	return r, nil
}
