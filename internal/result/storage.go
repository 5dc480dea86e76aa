package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write overwrites path with res. Hints is always emitted as a list, never null.
func Write(path string, res *Result) error {
	if res.Hints == nil {
		res = &Result{Points: res.Points, Hints: []string{}}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating result dir: %w", err)
		}
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func Read(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}
	return &res, nil
}

// Collect walks root and returns every result file found, keyed by the
// directory that contains it.
func Collect(root, name string) (map[string]*Result, error) {
	if name == "" {
		name = DefaultFile
	}
	found := make(map[string]*Result)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || info.Name() != name {
			return nil
		}
		res, err := Read(path)
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, filepath.Dir(path))
		if relErr != nil {
			rel = filepath.Dir(path)
		}
		found[rel] = res
		return nil
	})
	return found, err
}
