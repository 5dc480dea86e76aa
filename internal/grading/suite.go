package grading

import "fmt"

// TestFunc is the body of one grading test.
type TestFunc func(t *T)

type Test struct {
	Name string
	Func TestFunc
}

// Suite is an ordered group of tests. Weights maps a test name to its
// relative contribution; tests absent from it weigh 1.
type Suite struct {
	Name    string
	Tests   []Test
	Weights map[string]float64
}

func NewSuite(name string) *Suite {
	return &Suite{Name: name, Weights: map[string]float64{}}
}

// Add registers a test with the default weight.
func (s *Suite) Add(name string, fn TestFunc) *Suite {
	s.Tests = append(s.Tests, Test{Name: name, Func: fn})
	return s
}

// AddWeighted registers a test together with its weight.
func (s *Suite) AddWeighted(name string, weight float64, fn TestFunc) *Suite {
	s.Add(name, fn)
	if s.Weights == nil {
		s.Weights = map[string]float64{}
	}
	s.Weights[name] = weight
	return s
}

// WeightOf returns the configured weight of the named test.
func (s *Suite) WeightOf(test string) float64 {
	if w, ok := s.Weights[test]; ok {
		return w
	}
	return 1
}

// FullName is the run-unique identifier of a test in this suite.
func (s *Suite) FullName(test string) string {
	return s.Name + "::" + test
}

func (s *Suite) validate() error {
	seen := make(map[string]bool, len(s.Tests))
	for _, t := range s.Tests {
		if t.Name == "" {
			return fmt.Errorf("suite %q: test name is required", s.Name)
		}
		if t.Func == nil {
			return fmt.Errorf("suite %q: test %q has no body", s.Name, t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("suite %q: test %q defined twice", s.Name, t.Name)
		}
		seen[t.Name] = true
	}
	for name, w := range s.Weights {
		if !seen[name] {
			return fmt.Errorf("suite %q: weight given for unknown test %q", s.Name, name)
		}
		if w <= 0 {
			return fmt.Errorf("suite %q: weight of %q must be positive, got %v", s.Name, name, w)
		}
	}
	return nil
}
