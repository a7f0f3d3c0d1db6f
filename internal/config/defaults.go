package config

import "path/filepath"

// Default configuration values.
const (
	DefaultTLE            = 10.0   // seconds
	DefaultMLE            = 1024.0 // MiB
	DefaultCommandTimeout = 3600.0 // seconds
	DefaultCacheDir       = ConfigDirName + "/cache"
	DefaultEnvFile        = ConfigDirName + "/env"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultLogOutput      = "stderr"
	DefaultEndpoint       = "s3.amazonaws.com"
)

// Default returns the configuration used when no config.yml exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.DefaultTLE == 0 {
		cfg.DefaultTLE = DefaultTLE
	}
	if cfg.DefaultMLE == 0 {
		cfg.DefaultMLE = DefaultMLE
	}
	if cfg.CommandTimeout == nil {
		limit := DefaultCommandTimeout
		cfg.CommandTimeout = &limit
	}
	if cfg.Download == nil {
		enabled := true
		cfg.Download = &enabled
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = DefaultEnvFile
	}
	applyLogDefaults(&cfg.Log)
	if cfg.Store.Endpoint == "" {
		cfg.Store.Endpoint = DefaultEndpoint
	}
}

func applyLogDefaults(l *LogConfig) {
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}
	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
	if l.Output == "" {
		l.Output = DefaultLogOutput
	}
}

// Resolve makes relative paths in the configuration relative to root.
func (c *Config) Resolve(root string) {
	c.CacheDir = resolve(root, c.CacheDir)
	c.EnvFile = resolve(root, c.EnvFile)
	if c.Log.Output != "stderr" && c.Log.Output != "stdout" {
		c.Log.Output = resolve(root, c.Log.Output)
	}
}

func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
