package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout is the wall-clock budget applied when Options.Timeout is
// zero.
const DefaultTimeout = 30 * time.Second

// ErrTimeout marks a run that was killed because it exceeded the budget.
var ErrTimeout = errors.New("command timed out")

// Result is the outcome of one bounded shell run. A non-zero exit code is
// reported here, not as an error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Options configures an Executor.
type Options struct {
	Shell   Shell
	Timeout time.Duration
	// Echo mirrors captured chunks to the caller's stdout/stderr as they
	// arrive. Off by default.
	Echo bool
}

// Executor runs shell command strings with a bounded lifetime. Each Run owns
// its process, buffers, and timer, so one Executor may be shared by
// concurrent callers.
type Executor struct {
	shell   Shell
	timeout time.Duration
	echo    bool

	// echo destinations, swappable in tests
	echoOut io.Writer
	echoErr io.Writer
}

// New builds an Executor, filling in the platform shell and default timeout
// where options are zero.
func New(opts Options) *Executor {
	shell := opts.Shell
	if shell.Bin == "" {
		shell = DefaultShell()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{
		shell:   shell,
		timeout: timeout,
		echo:    opts.Echo,
		echoOut: os.Stdout,
		echoErr: os.Stderr,
	}
}

// Timeout returns the configured wall-clock budget.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Run executes the command under the configured shell and captures its
// output. It returns ErrTimeout (wrapped) when the budget expires, the spawn
// error when the shell cannot be started, and a nil error otherwise, even
// for non-zero exits. Cancelling ctx kills the process the same way a
// timeout does.
func (e *Executor) Run(ctx context.Context, command string) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.shell.Bin, e.shell.Flag, command)
	cmd.Stdin = nil

	var stdout, stderr bytes.Buffer
	if e.echo {
		cmd.Stdout = io.MultiWriter(&stdout, e.echoOut)
		cmd.Stderr = io.MultiWriter(&stderr, e.echoErr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	setupProcessGroup(cmd)

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			return nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
		case errors.Is(runCtx.Err(), context.Canceled):
			return nil, fmt.Errorf("command canceled: %w", context.Canceled)
		case errors.As(err, &exitErr):
			exitCode = exitErr.ExitCode()
		default:
			return nil, fmt.Errorf("spawn %s: %w", e.shell.Bin, err)
		}
	}

	return &Result{
		ExitCode: exitCode,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: duration,
	}, nil
}
