// Package runner executes verification commands as subprocesses with
// timeouts, process-group cleanup and resource accounting.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
)

// DefaultGracePeriod is the time between SIGTERM and SIGKILL when a process
// group is terminated.
const DefaultGracePeriod = 3 * time.Second

// Command describes one shell invocation.
type Command struct {
	Script  string
	Dir     string
	Env     []string // KEY=VALUE entries applied over the executor's environment
	Stdin   io.Reader
	Timeout time.Duration // zero means no limit

	// Stdout and Stderr receive the output when set. Otherwise the output is
	// captured in the Result.
	Stdout io.Writer
	Stderr io.Writer
}

// Result is the outcome of a finished command.
type Result struct {
	ExitCode  int // -1 when the process did not exit normally
	Stdout    []byte
	Stderr    []byte
	Elapsed   time.Duration
	MaxRSS    int64 // peak resident set size in bytes, 0 when unknown
	TimedOut  bool
	Cancelled bool
}

// Success reports whether the command exited with status zero in time.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && !r.TimedOut && !r.Cancelled
}

// Executor runs commands. Exec returns an error only when the command could
// not be started; command failures are reported in the Result.
type Executor interface {
	Exec(ctx context.Context, cmd Command) (*Result, error)
}

// ShellExecutor runs commands through the platform shell, each in its own
// process group.
type ShellExecutor struct {
	env         []string
	gracePeriod time.Duration
	logger      *zap.Logger
}

// Option configures a ShellExecutor.
type Option func(*ShellExecutor)

// WithGracePeriod overrides the delay between SIGTERM and SIGKILL.
func WithGracePeriod(d time.Duration) Option {
	return func(e *ShellExecutor) { e.gracePeriod = d }
}

// WithLogger sets the logger used for process lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(e *ShellExecutor) { e.logger = l }
}

// NewShellExecutor creates an executor whose commands inherit env.
// A nil env means the current process environment.
func NewShellExecutor(env []string, opts ...Option) *ShellExecutor {
	if env == nil {
		env = os.Environ()
	}
	e := &ShellExecutor{
		env:         env,
		gracePeriod: DefaultGracePeriod,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Exec runs cmd and waits for it to finish, terminating its process group
// on timeout or context cancellation.
func (e *ShellExecutor) Exec(ctx context.Context, cmd Command) (*Result, error) {
	runCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := buildShellCommand(cmd.Script)
	c.Dir = cmd.Dir
	c.Env = append(append([]string{}, e.env...), cmd.Env...)
	c.Stdin = cmd.Stdin
	setProcessGroup(c)
	c.WaitDelay = e.gracePeriod

	var stdout, stderr bytes.Buffer
	c.Stdout = cmd.Stdout
	if c.Stdout == nil {
		c.Stdout = &stdout
	}
	c.Stderr = cmd.Stderr
	if c.Stderr == nil {
		c.Stderr = &stderr
	}

	start := time.Now()
	if err := c.Start(); err != nil {
		return nil, &vherrors.Error{
			Kind:    vherrors.KindEnvironment,
			Message: "failed to start command: " + err.Error(),
			Step:    cmd.Script,
			Cause:   err,
		}
	}

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- c.Wait()
	}()

	res := &Result{}
	var runErr error
	select {
	case runErr = <-waitDone:
	case <-runCtx.Done():
		if ctx.Err() != nil {
			res.Cancelled = true
		} else {
			res.TimedOut = true
		}
		e.logger.Debug("terminating process group",
			zap.Int("pid", c.Process.Pid),
			zap.Bool("timed_out", res.TimedOut),
		)
		runErr = terminate(c, waitDone, e.gracePeriod)
	}

	res.Elapsed = time.Since(start)
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	res.MaxRSS = maxRSS(c.ProcessState)
	res.ExitCode = exitCode(runErr, c.ProcessState)
	return res, nil
}

func exitCode(runErr error, state *os.ProcessState) int {
	if runErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.ExitCode()
	}
	if state != nil {
		return state.ExitCode()
	}
	return -1
}
