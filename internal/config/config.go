package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/viridian-dev/viridian/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "viridian.yaml"

	// DefaultFrameInterval is how often the idle loop grants a slice.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultSlice is the length of each idle slice.
	DefaultSlice = 12 * time.Millisecond

	// DefaultYieldThreshold is the remaining time below which the work loop
	// yields.
	DefaultYieldThreshold = time.Millisecond

	// DefaultAddr is the default live server address.
	DefaultAddr = "localhost:3000"
)

// Config represents the complete viridian.yaml configuration.
type Config struct {
	// Scheduler tunes the idle loop and the work loop's yield point.
	Scheduler SchedulerConfig `yaml:"scheduler,omitempty"`

	// Hooks controls hook order checking.
	Hooks HooksConfig `yaml:"hooks,omitempty"`

	// Log configures the process logger.
	Log LogConfig `yaml:"log,omitempty"`

	// Server configures `viridian serve`.
	Server ServerConfig `yaml:"server,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SchedulerConfig contains idle scheduling settings.
type SchedulerConfig struct {
	FrameInterval  Duration `yaml:"frameInterval,omitempty"`
	Slice          Duration `yaml:"slice,omitempty"`
	YieldThreshold Duration `yaml:"yieldThreshold,omitempty"`
}

// HooksConfig contains hook store settings.
type HooksConfig struct {
	// Strict fails a render pass when hook order changes. When false the
	// violation is logged and the slot starts fresh.
	Strict *bool `yaml:"strict,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `yaml:"metrics,omitempty"`
}

// Duration is a time.Duration written as "16ms" in YAML.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for viridian.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. JSON is a
// subset of YAML, so a JSON file is accepted too.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E201").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Create one or run without --config to use defaults")
		}
		return nil, errors.New("E201").Wrap(err)
	}

	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.New("E200").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the field names against `viridian render --config`")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders the resolved configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Scheduler.FrameInterval == 0 {
		c.Scheduler.FrameInterval = Duration(DefaultFrameInterval)
	}
	if c.Scheduler.Slice == 0 {
		c.Scheduler.Slice = Duration(DefaultSlice)
	}
	if c.Scheduler.YieldThreshold == 0 {
		c.Scheduler.YieldThreshold = Duration(DefaultYieldThreshold)
	}
	if c.Hooks.Strict == nil {
		strict := true
		c.Hooks.Strict = &strict
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Scheduler.FrameInterval < 0 || c.Scheduler.Slice < 0 || c.Scheduler.YieldThreshold < 0 {
		return errors.New("E200").WithDetail("Scheduler durations must not be negative")
	}
	if c.Scheduler.Slice > c.Scheduler.FrameInterval {
		return errors.New("E200").
			WithDetail("scheduler.slice " + c.Scheduler.Slice.Std().String() +
				" exceeds scheduler.frameInterval " + c.Scheduler.FrameInterval.Std().String())
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("E200").
			WithDetail("log.level must be one of debug, info, warn, error; got " + c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E200").WithDetail("log.format must be text or json; got " + c.Log.Format)
	}
	return nil
}

// StrictHooks reports whether hook order violations fail the pass.
func (c *Config) StrictHooks() bool {
	return c.Hooks.Strict == nil || *c.Hooks.Strict
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	return levels[strings.ToLower(c.Log.Level)]
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
