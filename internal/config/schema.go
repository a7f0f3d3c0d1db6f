// Package config loads the optional .verify-helper/config.yml file.
package config

import "time"

// Config represents the contents of config.yml. Durations are in seconds and
// memory limits in MiB, matching the verification input format.
type Config struct {
	Timeout        float64     `yaml:"timeout,omitempty"`
	DefaultTLE     float64     `yaml:"default_tle,omitempty"`
	DefaultMLE     float64     `yaml:"default_mle,omitempty"`
	Download       *bool       `yaml:"download,omitempty"`
	CacheDir       string      `yaml:"cache_dir,omitempty"`
	EnvFile        string      `yaml:"env_file,omitempty"`
	CommandTimeout *float64    `yaml:"command_timeout,omitempty"`
	Log            LogConfig   `yaml:"log,omitempty"`
	Store          StoreConfig `yaml:"store,omitempty"`
}

// LogConfig configures diagnostics logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// StoreConfig configures the S3-compatible store used for s3:// result locations.
// Credentials come from the standard AWS environment variables.
type StoreConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Secure   *bool  `yaml:"secure,omitempty"`
}

// DownloadEnabled reports whether problem samples are downloaded.
func (c *Config) DownloadEnabled() bool {
	return c.Download == nil || *c.Download
}

// TimeoutDuration returns the global deadline, zero meaning unlimited.
func (c *Config) TimeoutDuration() time.Duration {
	return seconds(c.Timeout)
}

// DefaultTLEDuration returns the default per-testcase time limit.
func (c *Config) DefaultTLEDuration() time.Duration {
	return seconds(c.DefaultTLE)
}

// CommandTimeoutDuration returns the limit for command steps and compile
// commands. An explicit zero means unlimited, in which case a hung command
// blocks the pass past the global deadline.
func (c *Config) CommandTimeoutDuration() time.Duration {
	if c.CommandTimeout == nil {
		return seconds(DefaultCommandTimeout)
	}
	return seconds(*c.CommandTimeout)
}

// UseTLS reports whether the store endpoint is reached over HTTPS.
func (s StoreConfig) UseTLS() bool {
	return s.Secure == nil || *s.Secure
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
