package differential

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/signalnine/autograde/internal/docker"
)

// DefaultTestCmd runs the staged suite without the test cache, so replicated
// references are really executed.
const DefaultTestCmd = "go test -count=1 ./task/"

// ExecResult is what a suite execution reports back: combined output and
// process status only.
type ExecResult struct {
	Output   string
	ExitCode int
	TimedOut bool
}

// Executor runs the test command inside a staged directory.
type Executor interface {
	Execute(ctx context.Context, dir string, timeout time.Duration) (*ExecResult, error)
}

// LocalExecutor runs the test command as a subprocess of the grader.
type LocalExecutor struct {
	TestCmd string
	Env     []string
}

func (e *LocalExecutor) Execute(ctx context.Context, dir string, timeout time.Duration) (*ExecResult, error) {
	testCmd := e.TestCmd
	if testCmd == "" {
		testCmd = DefaultTestCmd
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", testCmd)
	cmd.Dir = dir
	cmd.Env = e.Env
	// Children of sh may keep the output pipe open after the kill.
	cmd.WaitDelay = 5 * time.Second

	out, err := cmd.CombinedOutput()
	res := &ExecResult{Output: string(out)}
	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitCode = 124
		return res, nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("running tests: %w", err)
		}
	}
	return res, nil
}

// DockerExecutor runs the test command in a throwaway container.
type DockerExecutor struct {
	Image       string
	TestCmd     string
	CPULimit    float64
	MemoryLimit int64
}

func (e *DockerExecutor) Execute(ctx context.Context, dir string, timeout time.Duration) (*ExecResult, error) {
	testCmd := e.TestCmd
	if testCmd == "" {
		testCmd = DefaultTestCmd
	}
	res, err := docker.RunContainer(ctx, &docker.RunOpts{
		Image:       e.Image,
		Command:     []string{"sh", "-c", testCmd},
		WorkDir:     dir,
		Env:         map[string]string{"GOFLAGS": "-mod=mod", "GOTOOLCHAIN": "local"},
		Timeout:     timeout,
		CPULimit:    e.CPULimit,
		MemoryLimit: e.MemoryLimit,
	})
	if err != nil {
		return nil, err
	}
	return &ExecResult{Output: res.Output, ExitCode: res.ExitCode, TimedOut: res.TimedOut}, nil
}
