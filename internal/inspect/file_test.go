package inspect_test

import (
	"testing"

	"github.com/signalnine/autograde/internal/inspect"
)

const template = `package task

var counter int

var (
	a, b = 1, 2
	_    = a
)

func Calculate(a, b, c, d float64) float64 {
	panic("not implemented")
}

type Car struct{ fuel float64 }

func (c *Car) Drive(km float64) {}

func Range(c Car) float64 {
	return c.fuel * 12.5
}
`

func TestFile(t *testing.T) {
	facts, err := inspect.File([]byte(template))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if facts.Package != "task" {
		t.Errorf("package: got %q, want %q", facts.Package, "task")
	}
	if got := facts.Globals; len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "counter" {
		t.Errorf("globals: got %v", got)
	}

	tests := []struct {
		name string
		stub bool
	}{
		{"Calculate", true},
		{"Car.Drive", true},
		{"Range", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := facts.Funcs[tt.name]
			if !ok {
				t.Fatalf("function %q not found in %v", tt.name, facts.Funcs)
			}
			if f.Stub != tt.stub {
				t.Errorf("stub: got %v, want %v", f.Stub, tt.stub)
			}
			if f.Nodes == 0 {
				t.Error("expected a non-zero node count")
			}
		})
	}
	if facts.Funcs["Range"].Nodes <= facts.Funcs["Car.Drive"].Nodes {
		t.Errorf("expected Range to be larger than the empty Drive")
	}
}

func TestFileSyntaxError(t *testing.T) {
	if _, err := inspect.File([]byte("package task\nfunc (")); err == nil {
		t.Error("expected parse error")
	}
}

func TestFileReadsStdin(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"bufio reader", "package task\nimport (\"bufio\"; \"os\")\nvar r = bufio.NewReader(os.Stdin)\n", true},
		{"renamed import", "package task\nimport sys \"os\"\nfunc f() { sys.Stdin.Close() }\n", true},
		{"dot import", "package task\nimport . \"os\"\nfunc f() { Stdin.Close() }\n", true},
		{"stdout only", "package task\nimport \"os\"\nfunc f() { os.Stdout.WriteString(\"hi\") }\n", false},
		{"unrelated Stdin field", "package task\ntype cfg struct{ Stdin int }\nfunc f(c cfg) int { return c.Stdin }\n", false},
		{"no os import", "package task\nvar os struct{ Stdin int }\nvar x = os.Stdin\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, err := inspect.File([]byte(tt.src))
			if err != nil {
				t.Fatalf("File: %v", err)
			}
			if facts.ReadsStdin != tt.want {
				t.Errorf("ReadsStdin = %v, want %v", facts.ReadsStdin, tt.want)
			}
		})
	}
}
