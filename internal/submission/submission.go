// Package submission loads a learner's Go source as an importable unit in an
// embedded interpreter, turning every load failure into a recorded
// ImportError instead of a crash of the grader.
package submission

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/signalnine/autograde/internal/inspect"
)

// ImportError describes a name that could not be obtained from the
// submission.
type ImportError struct {
	Module string
	Name   string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("Failed to import %s: %v. Make sure your code runs before submitting.", e.Module, e.Err)
	}
	return fmt.Sprintf("Failed to import %s from %s: %v. Make sure your code runs before submitting.", e.Name, e.Module, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Submission is a loaded learner package.
type Submission struct {
	Module string
	Source []byte
	Output bytes.Buffer

	pkg    string
	interp *interp.Interpreter
	loaded bool
	errs   []error
}

// Load reads and evaluates the Go file at path. It never fails: problems are
// recorded and reported by Errors, and later Lookups return zero values.
func Load(path string) *Submission {
	module := strings.TrimSuffix(filepath.ToSlash(path), ".go")
	src, err := os.ReadFile(path)
	if err != nil {
		s := &Submission{Module: module}
		s.errs = append(s.errs, &ImportError{Module: module, Err: err})
		return s
	}
	return LoadSource(module, src)
}

// LoadSource evaluates src as the module named module.
func LoadSource(module string, src []byte) *Submission {
	s := &Submission{Module: module, Source: src}
	facts, err := inspect.File(src)
	if err != nil {
		s.errs = append(s.errs, &ImportError{Module: module, Err: err})
		return s
	}
	s.pkg = facts.Package
	if facts.ReadsStdin {
		s.errs = append(s.errs, &ImportError{Module: module, Err: fmt.Errorf("%w: os.Stdin is used", ErrStdinDisabled)})
		return s
	}

	s.interp, err = newInterpreter(&s.Output)
	if err != nil {
		s.errs = append(s.errs, &ImportError{Module: module, Err: err})
		return s
	}
	if _, err := s.eval(string(src)); err != nil {
		s.errs = append(s.errs, &ImportError{Module: module, Err: err})
		return s
	}
	s.loaded = true
	return s
}

// newInterpreter returns an interpreter with the standard library loaded,
// out as its standard output and error, and no usable standard input.
func newInterpreter(out io.Writer) (*interp.Interpreter, error) {
	i := interp.New(interp.Options{
		Stdin:  DisabledStdin{},
		Stdout: out,
		Stderr: out,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, err
	}
	stdin, err := closedStdin()
	if err != nil {
		return nil, err
	}
	if err := i.Use(interp.Exports{
		"os/os": {"Stdin": reflect.ValueOf(&stdin).Elem()},
	}); err != nil {
		return nil, err
	}
	return i, nil
}

// eval runs code in the interpreter, converting panics into errors.
func (s *Submission) eval(code string) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return s.interp.Eval(code)
}

// Lookup returns the named package-level symbol. A missing name is recorded
// as an ImportError and the zero Value is returned.
func (s *Submission) Lookup(name string) reflect.Value {
	if !s.loaded {
		return reflect.Value{}
	}
	v, err := s.eval(s.pkg + "." + name)
	if err == nil && !v.IsValid() {
		err = fmt.Errorf("%s is not defined", name)
	}
	if err != nil {
		s.errs = append(s.errs, &ImportError{Module: s.Module, Name: name, Err: err})
		return reflect.Value{}
	}
	return v
}

// Func looks up name and converts it to F. A name of the wrong type is
// recorded like a missing one.
func Func[F any](s *Submission, name string) F {
	var zero F
	v := s.Lookup(name)
	if !v.IsValid() {
		return zero
	}
	f, ok := v.Interface().(F)
	if !ok {
		s.errs = append(s.errs, &ImportError{
			Module: s.Module,
			Name:   name,
			Err:    fmt.Errorf("%s has type %s, want %s", name, v.Type(), reflect.TypeOf(zero)),
		})
		return zero
	}
	return f
}

// Errors returns every load failure, in the order they occurred.
func (s *Submission) Errors() []error {
	return append([]error(nil), s.errs...)
}

// Loaded reports whether the source evaluated without error.
func (s *Submission) Loaded() bool { return s.loaded }

// Stdout returns what the submission printed so far.
func (s *Submission) Stdout() string { return s.Output.String() }
