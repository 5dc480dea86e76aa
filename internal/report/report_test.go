package report_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/autograde/internal/report"
	"github.com/signalnine/autograde/internal/result"
)

func writeResults(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	results := map[string]*result.Result{
		"alice": {Points: 1, Hints: []string{}},
		"bob":   {Points: 0.5, Hints: []string{"two is wrong", "four | is wrong"}},
		"carol": {Points: 0, Hints: []string{"Failed to import Calculate from task/script"}},
	}
	for name, r := range results {
		if err := result.Write(filepath.Join(root, name, result.DefaultFile), r); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestGenerateTable(t *testing.T) {
	root := writeResults(t)

	var buf bytes.Buffer
	if err := report.Generate(root, "", "table", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"alice", "bob", "carol", "two is wrong (+1 more)", "3 submissions"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Index(output, "alice") > strings.Index(output, "bob") {
		t.Error("expected submissions in sorted order")
	}
}

func TestGenerateMarkdown(t *testing.T) {
	root := writeResults(t)

	var buf bytes.Buffer
	if err := report.Generate(root, "", "markdown", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "| Submission |") {
		t.Error("expected markdown header")
	}
	if !strings.Contains(output, "| bob | 0.500 | 2 | two is wrong (+1 more) |") {
		t.Errorf("unexpected markdown:\n%s", output)
	}
}

func TestGenerateJSON(t *testing.T) {
	root := writeResults(t)

	var buf bytes.Buffer
	if err := report.Generate(root, "", "json", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var s report.Summary
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if s.Count != 3 {
		t.Errorf("expected 3 submissions, got %d", s.Count)
	}
	if s.FullMarks != 1 {
		t.Errorf("expected 1 full mark, got %d", s.FullMarks)
	}
	if s.MeanPoints != 0.5 {
		t.Errorf("expected mean 0.5, got %f", s.MeanPoints)
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Generate(t.TempDir(), "", "json", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(buf.String(), `"count": 0`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
