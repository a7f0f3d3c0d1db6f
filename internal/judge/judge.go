// Package judge downloads online judge problem samples and tests solutions
// against them.
package judge

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/runner"
)

const mebibyte = 1024 * 1024

// Request describes one solution to test against the samples of a problem.
type Request struct {
	Problem string // problem URL
	Command string
	Dir     string
	Env     []string
	TLE     time.Duration
	MLE     float64  // MiB, zero means unlimited
	Error   *float64 // float tolerance, nil for exact comparison
}

// Outcome is the aggregated result of all samples.
type Outcome struct {
	Status    result.Status
	Elapsed   float64  // seconds, summed over samples
	Slowest   *float64 // seconds
	Heaviest  *float64 // MiB
	Testcases []result.TestcaseResult
}

// Judge downloads samples and runs solutions against them.
type Judge interface {
	Download(ctx context.Context, url string) error
	Test(ctx context.Context, req Request) (*Outcome, error)
}

// OJTools implements Judge on top of the online-judge-tools CLI for
// downloading and a local executor for running samples.
type OJTools struct {
	exec   runner.Executor
	cache  *DownloadCache
	logger *zap.Logger
	oj     string
}

// NewOJTools creates a judge that stores samples in cache and runs commands
// with exec. ojCommand defaults to "oj".
func NewOJTools(exec runner.Executor, cache *DownloadCache, ojCommand string, logger *zap.Logger) *OJTools {
	if ojCommand == "" {
		ojCommand = "oj"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OJTools{exec: exec, cache: cache, logger: logger, oj: ojCommand}
}

// Download fetches the samples of url into the cache.
func (j *OJTools) Download(ctx context.Context, url string) error {
	return j.cache.Fetch(url, func(dir string) error {
		script := fmt.Sprintf("%s download --system --silent --directory %s %s", j.oj, shellQuote(dir), shellQuote(url))
		j.logger.Info("downloading samples", zap.String("problem", url), zap.String("dir", dir))

		res, err := j.exec.Exec(ctx, runner.Command{Script: script})
		if err != nil {
			return err
		}
		if !res.Success() {
			return fmt.Errorf("download %s: exit code %d: %s", url, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
		}
		samples, err := LoadSamples(dir)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return fmt.Errorf("download %s: no samples found", url)
		}
		return nil
	})
}

// Test runs req.Command on every sample of req.Problem.
func (j *OJTools) Test(ctx context.Context, req Request) (*Outcome, error) {
	samples, err := LoadSamples(j.cache.Dir(req.Problem))
	if err != nil {
		return nil, vherrors.Wrap(err, "samples not available for "+req.Problem)
	}
	if len(samples) == 0 {
		return nil, vherrors.Newf("no samples for %s", req.Problem)
	}

	outcome := &Outcome{Status: result.Success}
	for _, s := range samples {
		tc, err := j.testSample(ctx, req, s)
		if err != nil {
			return nil, err
		}
		outcome.add(tc)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return outcome, nil
}

func (o *Outcome) add(tc result.TestcaseResult) {
	o.Testcases = append(o.Testcases, tc)
	o.Elapsed += tc.Elapsed
	if tc.Status != result.AC {
		o.Status = result.Failure
	}
	if o.Slowest == nil || tc.Elapsed > *o.Slowest {
		v := tc.Elapsed
		o.Slowest = &v
	}
	if tc.Memory != nil && (o.Heaviest == nil || *tc.Memory > *o.Heaviest) {
		v := *tc.Memory
		o.Heaviest = &v
	}
}

func (j *OJTools) testSample(ctx context.Context, req Request, s Sample) (result.TestcaseResult, error) {
	in, err := os.Open(s.Input)
	if err != nil {
		return result.TestcaseResult{}, fmt.Errorf("open sample input: %w", err)
	}
	defer func() { _ = in.Close() }()

	expected, err := os.ReadFile(s.Output)
	if err != nil {
		return result.TestcaseResult{}, fmt.Errorf("read sample output: %w", err)
	}

	res, err := j.exec.Exec(ctx, runner.Command{
		Script:  req.Command,
		Dir:     req.Dir,
		Env:     req.Env,
		Stdin:   in,
		Timeout: timeLimitWithMargin(req.TLE),
	})
	if err != nil {
		return result.TestcaseResult{}, err
	}

	tc := result.TestcaseResult{
		Name:    s.Name,
		Elapsed: res.Elapsed.Seconds(),
	}
	if res.MaxRSS > 0 {
		mem := float64(res.MaxRSS) / mebibyte
		tc.Memory = &mem
	}
	tc.Status = verdict(res, req, tc.Memory, expected)

	j.logger.Debug("sample finished",
		zap.String("problem", req.Problem),
		zap.String("sample", s.Name),
		zap.String("status", string(tc.Status)),
		zap.Float64("elapsed", tc.Elapsed),
	)
	return tc, nil
}

// verdict maps a finished run to a judge status. Limits are checked before
// the exit code, and the output is compared last.
func verdict(res *runner.Result, req Request, memory *float64, expected []byte) result.JudgeStatus {
	if res.TimedOut || (req.TLE > 0 && res.Elapsed > req.TLE) {
		return result.TLE
	}
	if req.MLE > 0 && memory != nil && *memory > req.MLE {
		return result.MLE
	}
	if res.ExitCode != 0 || res.Cancelled {
		return result.RE
	}
	if ok, _ := Compare(expected, res.Stdout, req.Error); !ok {
		return result.WA
	}
	return result.AC
}

// timeLimitWithMargin lets a run exceed its limit slightly so that it is
// reported as TLE with its real elapsed time instead of being cut exactly
// at the limit.
func timeLimitWithMargin(tle time.Duration) time.Duration {
	if tle <= 0 {
		return 0
	}
	return tle + tle/2
}

// shellQuote quotes s for POSIX sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
