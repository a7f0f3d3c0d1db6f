// Package verifier schedules and runs verification passes: it decides which
// test files are stale, selects the current shard, enforces the global
// deadline and records one result per verification step.
package verifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/judge"
	"github.com/AndreyAkinshin/verifyhelper/internal/metrics"
	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/runner"
)

// Clock returns the current time. Times must carry a monotonic reading when
// durations between them are measured.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// TimestampProvider returns the time the given files last changed.
type TimestampProvider interface {
	CommitTime(ctx context.Context, paths []string) (time.Time, error)
}

// Verifier runs verification passes over an input.
type Verifier struct {
	input      *model.Input
	opts       Options
	exec       runner.Executor
	judge      judge.Judge
	timestamps TimestampProvider
	clock      Clock
	logger     *zap.Logger
	metrics    *metrics.Recorder
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(v *Verifier) { v.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *Verifier) { v.logger = l }
}

// WithMetrics records pass metrics in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(v *Verifier) { v.metrics = r }
}

// New creates a verifier. It returns a validation error for invalid options.
func New(input *model.Input, opts Options, exec runner.Executor, j judge.Judge, timestamps TimestampProvider, options ...Option) (*Verifier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	v := &Verifier{
		input:      input,
		opts:       opts,
		exec:       exec,
		judge:      j,
		timestamps: timestamps,
		clock:      systemClock{},
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		opt(v)
	}
	return v, nil
}

// Pending returns the test files that need verification against prev, in
// sorted order and before sharding. A nil prev means nothing was verified yet.
func (v *Verifier) Pending(ctx context.Context, prev *result.VerifyCommandResult) []string {
	var pending []string
	for _, p := range v.input.TestPaths() {
		if v.needsVerification(ctx, p, prev) {
			pending = append(pending, p)
		} else {
			v.metrics.ObserveFile(metrics.FileUpToDate)
		}
	}
	return pending
}

func (v *Verifier) needsVerification(ctx context.Context, path string, prev *result.VerifyCommandResult) bool {
	if prev == nil {
		return true
	}
	fr, ok := prev.Files[path]
	if !ok {
		return true
	}
	return fr.NeedVerification(v.baseTime(ctx, path))
}

// baseTime is the latest change among the files path depends on, including
// path itself. Lookup failures count as a change made now.
func (v *Verifier) baseTime(ctx context.Context, path string) time.Time {
	closure := v.input.Closure(path)
	t, err := v.timestamps.CommitTime(ctx, closure)
	if err != nil {
		v.logger.Warn("failed to read commit time; verifying again",
			zap.String("path", path),
			zap.Error(err),
		)
		return v.clock.Now()
	}
	return t
}

// Verify runs one pass. Files verified in this pass are returned with
// newest set; up-to-date files and files of other shards are omitted.
//
// Pre-commands run once before the first file. A failing pre-command aborts
// the pass with an error. Verification failures never do.
func (v *Verifier) Verify(ctx context.Context, prev *result.VerifyCommandResult) (*result.VerifyCommandResult, error) {
	runID := uuid.NewString()
	log := v.logger.With(zap.String("run_id", runID))

	start := v.clock.Now()
	out := result.New()

	pending := v.Pending(ctx, prev)
	var selected []string
	for i, p := range pending {
		if v.opts.Split.Selects(i) {
			selected = append(selected, p)
		} else {
			v.metrics.ObserveFile(metrics.FileOtherShard)
		}
	}
	log.Info("verification pass started",
		zap.Int("tests", len(v.input.TestPaths())),
		zap.Int("pending", len(pending)),
		zap.Int("selected", len(selected)),
	)
	if len(selected) == 0 {
		v.metrics.SetPass(float64(start.Unix()), 0)
		return out, nil
	}

	if err := v.runPreCommands(ctx, log); err != nil {
		return nil, err
	}

	checkpoint := start
	deadlineReached := false
	for _, p := range selected {
		if err := ctx.Err(); err != nil {
			v.metrics.SetPass(float64(start.Unix()), out.TotalSeconds)
			return out, vherrors.Wrap(err, "verification interrupted")
		}

		now := v.clock.Now()
		if !deadlineReached && v.opts.Timeout > 0 && now.Sub(start) > v.opts.Timeout {
			deadlineReached = true
			log.Warn("global timeout reached; skipping remaining files",
				zap.Duration("timeout", v.opts.Timeout),
				zap.Int("remaining", len(selected)-len(out.Files)),
			)
		}

		if deadlineReached {
			out.Files[p] = result.FileResult{
				Newest: true,
				Verifications: []result.VerificationResult{{
					Status:            result.Skipped,
					Elapsed:           now.Sub(checkpoint).Seconds(),
					LastExecutionTime: start,
				}},
			}
			v.metrics.ObserveFile(metrics.FileSkipped)
			v.metrics.ObserveVerification(string(result.Skipped), 0)
			checkpoint = now
			continue
		}

		f, _ := v.input.File(p)
		fr := v.verifyFile(ctx, log.With(zap.String("path", p)), p, f, start)
		if err := ctx.Err(); err != nil {
			// Steps cut short by the interruption were never judged.
			log.Warn("verification interrupted; discarding the file in progress", zap.String("path", p))
			v.metrics.SetPass(float64(start.Unix()), out.TotalSeconds)
			return out, vherrors.Wrap(err, "verification interrupted")
		}
		out.Files[p] = fr
		out.TotalSeconds += fr.Elapsed()
		v.metrics.ObserveFile(metrics.FileVerified)
		checkpoint = now
	}

	v.metrics.SetPass(float64(start.Unix()), out.TotalSeconds)
	log.Info("verification pass finished",
		zap.Int("files", len(out.Files)),
		zap.Float64("total_seconds", out.TotalSeconds),
	)
	return out, nil
}

func (v *Verifier) runPreCommands(ctx context.Context, log *zap.Logger) error {
	for _, script := range v.input.PreCommands() {
		log.Info("running pre-command", zap.String("command", script))
		res, err := v.exec.Exec(ctx, runner.Command{
			Script:  script,
			Dir:     v.opts.WorkDir,
			Env:     v.opts.Env,
			Timeout: v.opts.CommandTimeout,
		})
		if err != nil {
			return vherrors.Wrap(err, fmt.Sprintf("pre-command %q failed to start", script))
		}
		if !res.Success() {
			log.Error("pre-command failed",
				zap.String("command", script),
				zap.Int("exit_code", res.ExitCode),
				zap.ByteString("stderr", res.Stderr),
			)
			return vherrors.Newf("pre-command %q failed with exit code %d", script, res.ExitCode)
		}
	}
	return nil
}
