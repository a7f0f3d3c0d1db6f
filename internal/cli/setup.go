package cli

import (
	"os"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/verifyhelper/internal/config"
	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/logging"
	"github.com/AndreyAkinshin/verifyhelper/internal/store"
)

// env is the resolved environment shared by commands.
type env struct {
	root   string
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// setup resolves the repository root, loads the configuration and builds the
// logger and result store.
func (a *app) setup() (*env, error) {
	root, err := a.resolveRoot()
	if err != nil {
		return nil, err
	}

	path := a.globals.ConfigPath
	if path == "" {
		path = config.Path(root)
	} else if _, err := os.Stat(path); err != nil {
		return nil, vherrors.ConfigWrap(err, "config file not found")
	}
	cfg, warnings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		a.out.Warning("%s: %s", path, w)
	}
	cfg.Resolve(root)

	logCfg := logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.Output,
	}
	switch {
	case a.globals.Verbose:
		logCfg.Level = "debug"
	case a.globals.Quiet:
		logCfg.Level = "error"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, vherrors.ConfigWrap(err, "invalid log configuration")
	}

	s3 := store.S3Config{
		Endpoint: cfg.Store.Endpoint,
		Region:   cfg.Store.Region,
		Secure:   cfg.Store.UseTLS(),
	}
	st := store.New(root, func() (store.ObjectStore, error) {
		return store.NewS3(s3)
	}, logger)

	return &env{root: root, cfg: cfg, logger: logger, store: st}, nil
}

func (a *app) resolveRoot() (string, error) {
	if a.globals.Root != "" {
		info, err := os.Stat(a.globals.Root)
		if err != nil || !info.IsDir() {
			return "", vherrors.Configf("repository root %q is not a directory", a.globals.Root)
		}
		return a.globals.Root, nil
	}
	root, err := config.FindRoot()
	if err == nil {
		return root, nil
	}
	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		return "", vherrors.Wrap(cwdErr, "failed to get working directory")
	}
	a.out.Warning("%v; using %s", err, cwd)
	return cwd, nil
}
