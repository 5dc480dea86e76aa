package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Exercise kinds.
const (
	// KindImplementation grades a learner's code with a registered suite.
	KindImplementation = "implementation"
	// KindTesting grades a learner's test suite against reference solutions.
	KindTesting = "testing"
)

const (
	DefaultMaxPoints  = 1.0
	DefaultResultFile = "grade_results.json"
	DefaultCorrectDir = "grading/correct"
	DefaultBuggyDir   = "grading/buggy"
	DefaultTestFile   = "task/script_test.go"
	DefaultSubmission = "task/script.go"
	DefaultTestCmd    = "go test -count=1 ./task/"
	DefaultTimeout    = 120
	DefaultImage      = "golang:1.24"
)

type Config struct {
	Exercises []Exercise `yaml:"exercises" toml:"exercises"`
	Executor  Executor   `yaml:"executor" toml:"executor"`
	Results   Results    `yaml:"results" toml:"results"`
}

type Exercise struct {
	Name string `yaml:"name" toml:"name"`
	Kind string `yaml:"kind" toml:"kind"`
	// Dir is the exercise root; every other path is relative to it.
	Dir        string  `yaml:"dir" toml:"dir"`
	MaxPoints  float64 `yaml:"max_points" toml:"max_points"`
	ResultFile string  `yaml:"result_file" toml:"result_file"`
	Submission string  `yaml:"submission" toml:"submission"`
	TestFile   string  `yaml:"test_file" toml:"test_file"`
	CorrectDir string  `yaml:"correct_dir" toml:"correct_dir"`
	BuggyDir   string  `yaml:"buggy_dir" toml:"buggy_dir"`
	TestCmd    string  `yaml:"test_cmd" toml:"test_cmd"`
	// TimeoutSeconds bounds each execution of the learner's test suite.
	TimeoutSeconds int `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

type Executor struct {
	// Kind is "local" or "docker".
	Kind          string  `yaml:"kind" toml:"kind"`
	Image         string  `yaml:"image" toml:"image"`
	CPULimit      float64 `yaml:"cpu_limit" toml:"cpu_limit"`
	MemoryLimitMB int64   `yaml:"memory_limit_mb" toml:"memory_limit_mb"`
}

type Results struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// Path resolves p against the exercise directory.
func (e *Exercise) Path(p string) string {
	if filepath.IsAbs(p) || e.Dir == "" {
		return p
	}
	return filepath.Join(e.Dir, p)
}

func (e *Exercise) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Exercise returns the configured exercise called name.
func (c *Config) Exercise(name string) (*Exercise, error) {
	for i := range c.Exercises {
		if c.Exercises[i].Name == name {
			return &c.Exercises[i], nil
		}
	}
	return nil, fmt.Errorf("exercise %q not configured", name)
}

// Load reads a YAML config, or a TOML one when path ends in .toml, and
// fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Exercises) == 0 {
		return fmt.Errorf("no exercises defined")
	}
	seen := make(map[string]bool, len(cfg.Exercises))
	for i := range cfg.Exercises {
		e := &cfg.Exercises[i]
		if e.Name == "" {
			return fmt.Errorf("exercise %d: name is required", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("exercise %q defined twice", e.Name)
		}
		seen[e.Name] = true
		if e.Kind == "" {
			e.Kind = KindImplementation
		}
		if e.Kind != KindImplementation && e.Kind != KindTesting {
			return fmt.Errorf("exercise %q: unknown kind %q", e.Name, e.Kind)
		}
		if e.MaxPoints < 0 {
			return fmt.Errorf("exercise %q: max_points must not be negative", e.Name)
		}
		if e.MaxPoints == 0 {
			e.MaxPoints = DefaultMaxPoints
		}
		if e.ResultFile == "" {
			e.ResultFile = DefaultResultFile
		}
		if e.Submission == "" {
			e.Submission = DefaultSubmission
		}
		if e.TestFile == "" {
			e.TestFile = DefaultTestFile
		}
		if e.CorrectDir == "" {
			e.CorrectDir = DefaultCorrectDir
		}
		if e.BuggyDir == "" {
			e.BuggyDir = DefaultBuggyDir
		}
		if e.TestCmd == "" {
			e.TestCmd = DefaultTestCmd
		}
		if e.TimeoutSeconds < 0 {
			return fmt.Errorf("exercise %q: timeout_seconds must not be negative", e.Name)
		}
		if e.TimeoutSeconds == 0 {
			e.TimeoutSeconds = DefaultTimeout
		}
	}
	switch cfg.Executor.Kind {
	case "":
		cfg.Executor.Kind = "local"
	case "local", "docker":
	default:
		return fmt.Errorf("executor: unknown kind %q", cfg.Executor.Kind)
	}
	if cfg.Executor.Image == "" {
		cfg.Executor.Image = DefaultImage
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "."
	}
	return nil
}
