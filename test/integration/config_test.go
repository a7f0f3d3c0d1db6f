package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/AndreyAkinshin/verifyhelper/internal/config"
)

func TestFixtureConfig(t *testing.T) {
	t.Parallel()
	root := filepath.Join(fixturesDir(), "commands")

	cfg, warnings, err := config.Load(config.Path(root))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if got := cfg.TimeoutDuration(); got != 120*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 2m0s", got)
	}
	if got := cfg.DefaultTLEDuration(); got != 5*time.Second {
		t.Errorf("DefaultTLEDuration() = %v, want 5s", got)
	}
	if got := cfg.CommandTimeoutDuration(); got != 30*time.Second {
		t.Errorf("CommandTimeoutDuration() = %v, want 30s", got)
	}
	if cfg.DownloadEnabled() {
		t.Error("DownloadEnabled() = true, want false")
	}
	if cfg.DefaultMLE != config.DefaultMLE {
		t.Errorf("DefaultMLE = %v, want default %v", cfg.DefaultMLE, config.DefaultMLE)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestFixtureConfig_Resolve(t *testing.T) {
	t.Parallel()
	root := filepath.Join(fixturesDir(), "commands")

	cfg, _, err := config.Load(config.Path(root))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.Resolve(root)

	if want := filepath.Join(root, config.DefaultCacheDir); cfg.CacheDir != want {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, want)
	}
	if want := filepath.Join(root, config.DefaultEnvFile); cfg.EnvFile != want {
		t.Errorf("EnvFile = %q, want %q", cfg.EnvFile, want)
	}
}

func TestFixtureRoot(t *testing.T) {
	t.Parallel()
	root := filepath.Join(fixturesDir(), "commands")

	found, err := config.FindRootFrom(filepath.Join(root, "tests"))
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	want, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	if found != want {
		t.Errorf("FindRootFrom() = %q, want %q", found, want)
	}
}
