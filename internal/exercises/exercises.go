// Package exercises holds the grading suites of every known exercise.
package exercises

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalnine/autograde/internal/grading"
	"github.com/signalnine/autograde/internal/submission"
)

// Exercise is a gradable task. Build resolves the symbols it needs from the
// submission eagerly, so that missing ones surface as load failures before
// any test runs.
type Exercise struct {
	Name        string
	Description string
	// Entry is the submission file, relative to the exercise directory.
	Entry string
	Build func(sub *submission.Submission) []*grading.Suite
}

var (
	mu       sync.RWMutex
	registry = map[string]*Exercise{}
)

// Register adds ex to the registry. It panics on a duplicate or incomplete
// exercise, since registration happens at init time.
func Register(ex *Exercise) {
	if ex.Name == "" || ex.Build == nil {
		panic("exercises: Register needs a name and a Build func")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[ex.Name]; dup {
		panic(fmt.Sprintf("exercises: %q registered twice", ex.Name))
	}
	registry[ex.Name] = ex
}

func Lookup(name string) (*Exercise, error) {
	mu.RLock()
	defer mu.RUnlock()
	ex, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown exercise %q", name)
	}
	return ex, nil
}

// Names returns the registered exercise names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
