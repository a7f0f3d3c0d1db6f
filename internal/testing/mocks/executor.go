// Package mocks provides shared test doubles for verify-helper packages.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/AndreyAkinshin/verifyhelper/internal/runner"
)

// Executor implements runner.Executor for testing.
// Responses are looked up by script; unknown scripts succeed instantly.
type Executor struct {
	// ExecFunc, when set, handles every call instead of the scripted responses.
	ExecFunc func(ctx context.Context, cmd runner.Command) (*runner.Result, error)

	mu        sync.Mutex
	responses map[string]response
	calls     []runner.Command
}

type response struct {
	result *runner.Result
	err    error
}

// NewExecutor creates an executor without scripted responses.
func NewExecutor() *Executor {
	return &Executor{responses: make(map[string]response)}
}

// WithResult scripts the result returned for script.
func (m *Executor) WithResult(script string, res runner.Result) *Executor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[script] = response{result: &res}
	return m
}

// WithExit scripts an exit code and elapsed time for script.
func (m *Executor) WithExit(script string, exitCode int, elapsed time.Duration) *Executor {
	return m.WithResult(script, runner.Result{ExitCode: exitCode, Elapsed: elapsed})
}

// WithError makes Exec fail to start script.
func (m *Executor) WithError(script string, err error) *Executor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[script] = response{err: err}
	return m
}

// Exec implements runner.Executor.
func (m *Executor) Exec(ctx context.Context, cmd runner.Command) (*runner.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	resp, ok := m.responses[cmd.Script]
	fn := m.ExecFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, cmd)
	}
	if !ok {
		return &runner.Result{}, nil
	}
	if resp.err != nil {
		return nil, resp.err
	}
	res := *resp.result
	return &res, nil
}

// Calls returns the commands passed to Exec, in order.
func (m *Executor) Calls() []runner.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]runner.Command, len(m.calls))
	copy(out, m.calls)
	return out
}

// Scripts returns the scripts passed to Exec, in order.
func (m *Executor) Scripts() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Script
	}
	return out
}
