// Package differential grades a learner's test suite by running it against
// reference implementations known to be correct or buggy.
package differential

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HintMarker must open the second line of every reference file.
const HintMarker = "// Hint:"

// ErrNoReferences is returned when a reference collection is empty.
var ErrNoReferences = errors.New("differential: no reference solutions found")

// Reference is a labeled implementation the learner's suite runs against.
type Reference struct {
	Path       string
	Hint       string
	ShouldPass bool
}

// Name is the file name without directory and extension.
func (r *Reference) Name() string {
	return strings.TrimSuffix(filepath.Base(r.Path), ".go")
}

func (r *Reference) String() string {
	state := "FAIL"
	if r.ShouldPass {
		state = "OK"
	}
	return fmt.Sprintf("Reference(%s, pass:%s, hint:'%s')", r.Path, state, r.Hint)
}

// MetadataError reports a reference file without its hint line.
type MetadataError struct {
	Path string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("reference %s: line 2 must start with %q", e.Path, HintMarker)
}

// Discover returns every Go reference file under dir, sorted by path.
func Discover(dir string, shouldPass bool) ([]Reference, error) {
	var refs []Reference
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		hint, err := readHint(path)
		if err != nil {
			return err
		}
		refs = append(refs, Reference{Path: path, Hint: hint, ShouldPass: shouldPass})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering references in %s: %w", dir, err)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

func readHint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for line := 0; scanner.Scan(); line++ {
		if line == 1 {
			text := scanner.Text()
			if !strings.HasPrefix(text, HintMarker) {
				break
			}
			return strings.TrimSpace(strings.TrimPrefix(text, HintMarker)), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", &MetadataError{Path: path}
}

// Balance pairs the first correct reference with every buggy one, so a suite
// that rejects everything earns at most half of the records. The result is
// stably sorted by path, which is the execution and record order.
func Balance(correct, buggy []Reference) ([]Reference, error) {
	if len(correct) == 0 {
		return nil, fmt.Errorf("correct references: %w", ErrNoReferences)
	}
	if len(buggy) == 0 {
		return nil, fmt.Errorf("buggy references: %w", ErrNoReferences)
	}
	refs := make([]Reference, 0, 2*len(buggy))
	for range buggy {
		refs = append(refs, correct[0])
	}
	refs = append(refs, buggy...)
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}
