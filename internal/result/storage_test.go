package result_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/signalnine/autograde/internal/result"
)

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), result.DefaultFile)
	res := &result.Result{
		Points: 2.0 / 3.0,
		Hints:  []string{"failure first", "then errors"},
	}
	if err := result.Write(path, res); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := result.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if math.Abs(got.Points-res.Points) > 1e-12 {
		t.Errorf("points: got %v, want %v", got.Points, res.Points)
	}
	if len(got.Hints) != 2 || got.Hints[0] != "failure first" || got.Hints[1] != "then errors" {
		t.Errorf("hints: got %q", got.Hints)
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", result.DefaultFile)
	if err := result.Write(path, &result.Result{Points: 1, Hints: []string{"old"}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := result.Write(path, &result.Result{Points: 0.5}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"points":0.5,"hints":[]}` {
		t.Errorf("got %s", data)
	}
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"alice/formula", "bob/formula"} {
		p := filepath.Join(root, dir, result.DefaultFile)
		if err := result.Write(p, &result.Result{Points: 1}); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(root, "alice", result.DefaultFile), []byte("not json"), 0o644)

	found, err := result.Collect(root, "")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 results, got %d", len(found))
	}
	if _, ok := found[filepath.Join("alice", "formula")]; !ok {
		t.Errorf("missing alice/formula in %v", found)
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := result.Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
