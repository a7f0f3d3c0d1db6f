package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/gitutil"
	"github.com/AndreyAkinshin/verifyhelper/internal/judge"
	"github.com/AndreyAkinshin/verifyhelper/internal/metrics"
	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/runner"
	"github.com/AndreyAkinshin/verifyhelper/internal/store"
	"github.com/AndreyAkinshin/verifyhelper/internal/verifier"
)

type runFlags struct {
	input           string
	prevResults     []string
	output          string
	splitSize       int
	splitIndex      int
	timeout         float64
	defaultTLE      float64
	defaultMLE      float64
	commandTimeout  float64
	download        bool
	noDownload      bool
	ojCommand       string
	metricsTextfile string
}

func (a *app) runCommand() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Verify the test files whose dependencies changed",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runVerify(cmd, &f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "verification input document (verify_files.json)")
	flags.StringArrayVar(&f.prevResults, "prev-result", nil, "previous result document, local path or s3://bucket/key (repeatable)")
	flags.StringVarP(&f.output, "output", "o", "", "write the merged result here instead of stdout")
	flags.IntVar(&f.splitSize, "split-size", 0, "number of shards")
	flags.IntVar(&f.splitIndex, "split-index", 0, "shard to run, from 0")
	flags.Float64Var(&f.timeout, "timeout", 0, "global deadline in seconds, 0 for unlimited")
	flags.Float64Var(&f.defaultTLE, "default-tle", 0, "default time limit per testcase in seconds")
	flags.Float64Var(&f.defaultMLE, "default-mle", 0, "default memory limit per testcase in MiB")
	flags.Float64Var(&f.commandTimeout, "command-timeout", 0, "time limit for command steps and compile commands in seconds, 0 for unlimited")
	flags.BoolVar(&f.download, "download", false, "download problem samples")
	flags.BoolVar(&f.noDownload, "no-download", false, "do not download problem samples")
	flags.StringVar(&f.ojCommand, "oj", "oj", "online-judge-tools executable")
	flags.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	cmd.MarkFlagsMutuallyExclusive("download", "no-download")
	cmd.MarkFlagsRequiredTogether("split-size", "split-index")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) runVerify(cmd *cobra.Command, f *runFlags) error {
	ctx := cmd.Context()
	e, err := a.setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	in, err := model.Load(f.input)
	if err != nil {
		return err
	}

	opts := a.verifierOptions(cmd, e, f)
	if err := opts.Validate(); err != nil {
		return err
	}

	if err := gitutil.CheckAvailable(); err != nil {
		return err
	}
	if opts.Download && hasProblems(in) && !runner.IsAvailable(f.ojCommand) {
		return vherrors.Environmentf("%s not found in PATH; install online-judge-tools or pass --no-download", f.ojCommand)
	}

	prev, err := loadResults(ctx, e, f.prevResults, true)
	if err != nil {
		return err
	}

	environ, err := runner.Environment(e.cfg.EnvFile)
	if err != nil {
		return vherrors.ConfigWrap(err, "failed to load environment file")
	}
	exec := runner.NewShellExecutor(environ, runner.WithLogger(e.logger))
	oj := judge.NewOJTools(exec, judge.NewDownloadCache(e.cfg.CacheDir), f.ojCommand, e.logger)
	recorder := metrics.NewRecorder()

	v, err := verifier.New(in, opts, exec, oj, gitutil.New(e.root),
		verifier.WithLogger(e.logger),
		verifier.WithMetrics(recorder),
	)
	if err != nil {
		return err
	}

	current, verr := v.Verify(ctx, prev)
	if current == nil {
		return verr
	}
	merged := result.MergeAll(prev, current)

	if err := a.writeResult(ctx, e, f.output, merged); err != nil {
		return err
	}
	if f.metricsTextfile != "" {
		if err := recorder.WriteTextfile(f.metricsTextfile); err != nil {
			e.logger.Warn("failed to write metrics", zap.String("path", f.metricsTextfile), zap.Error(err))
		}
	}
	if f.output != "" {
		a.out.RunSummary(current)
	}
	return verr
}

// verifierOptions builds options from the configuration, overridden by flags
// that were set explicitly.
func (a *app) verifierOptions(cmd *cobra.Command, e *env, f *runFlags) verifier.Options {
	opts := verifier.DefaultOptions(e.root)
	opts.Timeout = e.cfg.TimeoutDuration()
	opts.DefaultTLE = e.cfg.DefaultTLEDuration()
	opts.DefaultMLE = e.cfg.DefaultMLE
	opts.CommandTimeout = e.cfg.CommandTimeoutDuration()
	opts.Download = e.cfg.DownloadEnabled()

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		opts.Timeout = seconds(f.timeout)
	}
	if flags.Changed("default-tle") {
		opts.DefaultTLE = seconds(f.defaultTLE)
	}
	if flags.Changed("default-mle") {
		opts.DefaultMLE = f.defaultMLE
	}
	if flags.Changed("command-timeout") {
		opts.CommandTimeout = seconds(f.commandTimeout)
	}
	if flags.Changed("download") {
		opts.Download = f.download
	}
	if flags.Changed("no-download") {
		opts.Download = !f.noDownload
	}
	if flags.Changed("split-size") {
		opts.Split = &verifier.SplitState{Size: f.splitSize, Index: f.splitIndex}
	}
	return opts
}

// loadResults loads and merges result documents left to right. With stale set,
// loaded results are marked as not newest, and missing documents are skipped.
func loadResults(ctx context.Context, e *env, locations []string, stale bool) (*result.VerifyCommandResult, error) {
	var loaded []*result.VerifyCommandResult
	for _, loc := range locations {
		r, err := e.store.Load(ctx, loc)
		if err != nil {
			if stale && errors.Is(err, store.ErrNotFound) {
				e.logger.Info("previous result not found; starting fresh", zap.String("location", loc))
				continue
			}
			if errors.Is(err, store.ErrNotFound) {
				return nil, vherrors.ConfigWrap(err, "failed to load result")
			}
			var ve *vherrors.Error
			if errors.As(err, &ve) {
				return nil, err
			}
			return nil, vherrors.Wrap(err, "failed to load result: "+err.Error())
		}
		if stale {
			r = r.MarkStale()
		}
		loaded = append(loaded, r)
	}
	if len(loaded) == 0 {
		return nil, nil
	}
	return result.MergeAll(loaded...), nil
}

func (a *app) writeResult(ctx context.Context, e *env, location string, r *result.VerifyCommandResult) error {
	if location == "" {
		data, err := result.Marshal(r)
		if err != nil {
			return vherrors.Wrap(err, "failed to encode result")
		}
		if _, err := a.stdout.Write(data); err != nil {
			return vherrors.Wrap(err, "failed to write result")
		}
		return nil
	}
	if err := e.store.Save(ctx, location, r); err != nil {
		var ve *vherrors.Error
		if errors.As(err, &ve) {
			return err
		}
		return vherrors.Wrap(err, "failed to save result: "+err.Error())
	}
	return nil
}

func hasProblems(in *model.Input) bool {
	for _, p := range in.TestPaths() {
		if f, ok := in.File(p); ok && model.HasProblem(f.Verification) {
			return true
		}
	}
	return false
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
