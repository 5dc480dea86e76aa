package differential_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/signalnine/autograde/internal/differential"
)

func TestLocalExecutor(t *testing.T) {
	e := &differential.LocalExecutor{TestCmd: "echo staged; echo oops >&2; exit 3"}
	res, err := e.Execute(context.Background(), t.TempDir(), 10*time.Second)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.ExitCode != 3 || res.TimedOut {
		t.Errorf("exit %d, timed out %v", res.ExitCode, res.TimedOut)
	}
	if !strings.Contains(res.Output, "staged") || !strings.Contains(res.Output, "oops") {
		t.Errorf("output: %q", res.Output)
	}
}

func TestLocalExecutorRunsInDir(t *testing.T) {
	dir := t.TempDir()
	e := &differential.LocalExecutor{TestCmd: "pwd"}
	res, err := e.Execute(context.Background(), dir, 10*time.Second)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(res.Output) == "" || !strings.HasSuffix(strings.TrimSpace(res.Output), dir[strings.LastIndex(dir, "/"):]) {
		t.Errorf("ran in %q, want %q", res.Output, dir)
	}
}

func TestLocalExecutorTimeout(t *testing.T) {
	e := &differential.LocalExecutor{TestCmd: "exec sleep 10"}
	start := time.Now()
	res, err := e.Execute(context.Background(), t.TempDir(), 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.TimedOut || res.ExitCode != 124 {
		t.Errorf("expected timeout, got %+v", res)
	}
	if time.Since(start) > 8*time.Second {
		t.Errorf("timeout not enforced, took %v", time.Since(start))
	}
}
