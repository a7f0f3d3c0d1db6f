package verifier

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/judge"
	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/runner"
)

// verifyFile runs every step of a test file and returns one result per step.
// Step errors become failure results. A panic fails the step in progress and
// every step that has not finished.
func (v *Verifier) verifyFile(ctx context.Context, log *zap.Logger, path string, f model.File, at time.Time) (fr result.FileResult) {
	results := make([]*result.VerificationResult, len(f.Verification))
	var current model.Step
	defer func() {
		if r := recover(); r != nil {
			fields := []zap.Field{zap.Any("panic", r), zap.Stack("stack")}
			if current != nil {
				fields = append(fields, zap.Stringer("step", current))
			}
			log.Error("unexpected panic while verifying file", fields...)
			fr = v.collect(f, results, at)
		}
	}()

	if v.opts.Download && model.HasProblem(f.Verification) {
		if err := v.download(ctx, f); err != nil {
			log.Error("failed to download problem samples", zap.Error(err))
			return v.collect(f, results, at)
		}
	}

	for i, step := range f.Verification {
		compile := step.CompileCommand()
		if compile == "" {
			continue
		}
		current = step
		elapsed, err := v.compile(ctx, compile)
		if err != nil {
			log.Error("compile failed",
				zap.Stringer("step", step),
				zap.Error(vherrors.StepError(path, step.String(), "compile failed: "+err.Error(), err)),
			)
			vr := v.record(step, result.Failure, elapsed, at)
			results[i] = &vr
		}
	}

	for i, step := range f.Verification {
		if results[i] != nil {
			continue
		}
		current = step
		vr, err := v.runStep(ctx, step, at)
		if err != nil {
			log.Error("verification step failed",
				zap.Stringer("step", step),
				zap.Error(vherrors.StepError(path, step.String(), err.Error(), err)),
			)
			failed := v.record(step, result.Failure, 0, at)
			vr = &failed
		}
		results[i] = vr
	}

	fr = v.collect(f, results, at)
	log.Info("file verified",
		zap.Bool("success", fr.IsSuccess(false)),
		zap.Float64("elapsed", fr.Elapsed()),
	)
	return fr
}

// collect assembles the file result. Steps without a result are failures.
func (v *Verifier) collect(f model.File, results []*result.VerificationResult, at time.Time) result.FileResult {
	fr := result.FileResult{Newest: true}
	for i, step := range f.Verification {
		vr := results[i]
		if vr == nil {
			failed := v.record(step, result.Failure, 0, at)
			vr = &failed
		}
		fr.Verifications = append(fr.Verifications, *vr)
		v.metrics.ObserveVerification(string(vr.Status), vr.Elapsed)
	}
	return fr
}

// download fetches the samples of every distinct problem of f.
func (v *Verifier) download(ctx context.Context, f model.File) error {
	seen := make(map[string]bool)
	for _, step := range f.Verification {
		ps, ok := step.(model.ProblemStep)
		if !ok || seen[ps.Problem] {
			continue
		}
		seen[ps.Problem] = true
		if err := v.judge.Download(ctx, ps.Problem); err != nil {
			return fmt.Errorf("%s: %w", ps.Problem, err)
		}
	}
	return nil
}

func (v *Verifier) compile(ctx context.Context, script string) (float64, error) {
	if !runner.IsAvailable(script) {
		v.logger.Warn("compiler not found in PATH", zap.String("command", runner.CommandName(script)))
	}
	res, err := v.exec.Exec(ctx, v.command(script))
	if err != nil {
		return 0, err
	}
	if !res.Success() {
		return res.Elapsed.Seconds(), commandError(script, res)
	}
	return res.Elapsed.Seconds(), nil
}

// runStep executes one compiled step.
func (v *Verifier) runStep(ctx context.Context, step model.Step, at time.Time) (*result.VerificationResult, error) {
	switch s := step.(type) {
	case model.DummyStep:
		vr := v.record(s, result.Success, 0, at)
		return &vr, nil

	case model.ConstStep:
		vr := v.record(s, s.Status, 0, at)
		return &vr, nil

	case model.CommandStep:
		res, err := v.exec.Exec(ctx, v.command(s.Command))
		if err != nil {
			return nil, err
		}
		status := result.Success
		if !res.Success() {
			status = result.Failure
			v.logger.Error("verification command failed",
				zap.Stringer("step", s),
				zap.Error(commandError(s.Command, res)),
			)
		}
		vr := v.record(s, status, res.Elapsed.Seconds(), at)
		return &vr, nil

	case model.ProblemStep:
		outcome, err := v.judge.Test(ctx, v.judgeRequest(s))
		if err != nil {
			return nil, err
		}
		vr := v.record(s, outcome.Status, outcome.Elapsed, at)
		vr.Slowest = outcome.Slowest
		vr.Heaviest = outcome.Heaviest
		vr.Testcases = outcome.Testcases
		for _, tc := range outcome.Testcases {
			v.metrics.ObserveTestcase(string(tc.Status))
		}
		return &vr, nil

	default:
		return nil, fmt.Errorf("unsupported verification step %T", step)
	}
}

func (v *Verifier) judgeRequest(s model.ProblemStep) judge.Request {
	req := judge.Request{
		Problem: s.Problem,
		Command: s.Command,
		Dir:     v.opts.WorkDir,
		Env:     v.opts.Env,
		TLE:     v.opts.DefaultTLE,
		MLE:     v.opts.DefaultMLE,
		Error:   s.Error,
	}
	if s.TLE != nil {
		req.TLE = time.Duration(*s.TLE * float64(time.Second))
	}
	if s.MLE != nil {
		req.MLE = *s.MLE
	}
	return req
}

func (v *Verifier) command(script string) runner.Command {
	return runner.Command{
		Script:  script,
		Dir:     v.opts.WorkDir,
		Env:     v.opts.Env,
		Timeout: v.opts.CommandTimeout,
	}
}

func (v *Verifier) record(step model.Step, status result.Status, elapsed float64, at time.Time) result.VerificationResult {
	return result.VerificationResult{
		VerificationName:  step.Name(),
		Status:            status,
		Elapsed:           elapsed,
		LastExecutionTime: at,
	}
}

func commandError(script string, res *runner.Result) error {
	switch {
	case res.TimedOut:
		return fmt.Errorf("%q timed out after %s", script, res.Elapsed.Round(time.Millisecond))
	case res.Cancelled:
		return fmt.Errorf("%q was cancelled", script)
	default:
		return fmt.Errorf("%q exited with code %d: %s", script, res.ExitCode, tail(res.Stderr))
	}
}

// tail returns at most the last 2 KiB of output.
func tail(b []byte) string {
	const limit = 2048
	if len(b) > limit {
		b = b[len(b)-limit:]
	}
	return string(b)
}
