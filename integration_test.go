//go:build integration

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/autograde/cmd"
	"github.com/signalnine/autograde/internal/result"
)

// createFixtureExercises lays out one implementation and one testing
// exercise plus a config referencing both.
func createFixtureExercises(t *testing.T, suite string) (cfgPath, root string) {
	t.Helper()
	root = t.TempDir()
	files := map[string]string{
		"arithmetic/task/script.go": `package task

import "math"

func Calculate(a, b, c, d float64) float64 {
	return a - (b*b)/(c+d*math.Mod(math.Sqrt(a), b))
}
`,
		"add-tests/grading/correct/add.go": "package task\n// Hint: adds both operands\n\nfunc Add(a, b int) int { return a + b }\n",
		"add-tests/grading/buggy/sub.go":   "package task\n// Hint: subtracts instead of adding\n\nfunc Add(a, b int) int { return a - b }\n",
		"add-tests/grading/buggy/zero.go":  "package task\n// Hint: ignores a zero operand\n\nfunc Add(a, b int) int {\n\tif a == 0 {\n\t\treturn 0\n\t}\n\treturn a + b\n}\n",
		"add-tests/task/script_test.go":    suite,
		"autograde.yaml": `exercises:
  - name: arithmetic
    dir: ` + filepath.Join(root, "arithmetic") + `
  - name: add-tests
    kind: testing
    dir: ` + filepath.Join(root, "add-tests") + `
    timeout_seconds: 60
`,
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(root, "autograde.yaml"), root
}

func execute(t *testing.T, args ...string) {
	t.Helper()
	root := cmd.NewRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("autograde %s: %v", strings.Join(args, " "), err)
	}
}

func TestGradeIntegration(t *testing.T) {
	cfgPath, root := createFixtureExercises(t, "")
	execute(t, "--config", cfgPath, "grade", "arithmetic")

	res, err := result.Read(filepath.Join(root, "arithmetic", result.DefaultFile))
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if res.Points != 1 || len(res.Hints) != 0 {
		t.Errorf("got %+v", res)
	}
}

func TestValidateIntegration(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH")
	}
	suite := `package task

import "testing"

func TestAdd(t *testing.T) {
	if got := Add(2, 3); got != 5 {
		t.Errorf("Add(2, 3) = %d, want 5", got)
	}
}
`
	cfgPath, root := createFixtureExercises(t, suite)
	execute(t, "--config", cfgPath, "validate", "add-tests")

	res, err := result.Read(filepath.Join(root, "add-tests", result.DefaultFile))
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	want := "Your test suite did not detect an issue in a hidden implementation: ignores a zero operand"
	if len(res.Hints) != 1 || res.Hints[0] != want {
		t.Errorf("hints: %q", res.Hints)
	}
	if res.Points != 0.75 {
		t.Errorf("points: got %v, want 0.75", res.Points)
	}
}
