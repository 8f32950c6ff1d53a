// Package config loads studyflow settings from defaults, a YAML file and
// STUDYFLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/abhisek/studyflow/internal/gamification"
)

// EnvPrefix is stripped from environment variable names before mapping
// them to config keys.
const EnvPrefix = "STUDYFLOW_"

const maxConfigFileSize = 1024 * 1024

// Config is the complete studyflow configuration.
type Config struct {
	DB         DBConfig         `koanf:"db"`
	Plan       PlanConfig       `koanf:"plan"`
	Streak     StreakConfig     `koanf:"streak"`
	WeakTopics WeakTopicsConfig `koanf:"weak_topics"`
	Snapshots  SnapshotsConfig  `koanf:"snapshots"`
	Log        LogConfig        `koanf:"log"`
}

// DBConfig locates the database file. An empty path means the default.
type DBConfig struct {
	Path string `koanf:"path"`
}

// PlanConfig holds planning defaults.
type PlanConfig struct {
	BaseMinutes      int  `koanf:"base_minutes"`
	RespectUserInput bool `koanf:"respect_user_input"`
}

// StreakConfig selects the streak rule.
type StreakConfig struct {
	Mode string `koanf:"mode"`
}

// WeakTopicsConfig controls weak-topic detection.
type WeakTopicsConfig struct {
	Threshold float64 `koanf:"threshold"` // mean quality below this is weak
	Window    int     `koanf:"window"`    // most recent sessions considered
	Limit     int     `koanf:"limit"`     // max topics reported
}

// SnapshotsConfig controls snapshot retention.
type SnapshotsConfig struct {
	Keep int `koanf:"keep"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Plan:       PlanConfig{BaseMinutes: 120},
		Streak:     StreakConfig{Mode: string(gamification.StreakLiteral)},
		WeakTopics: WeakTopicsConfig{Threshold: 0.5, Window: 20, Limit: 3},
		Snapshots:  SnapshotsConfig{Keep: 10},
		Log:        LogConfig{Level: "warn", Format: "console"},
	}
}

// sections lists the top-level keys, longest first, so that env names like
// STUDYFLOW_WEAK_TOPICS_WINDOW split after the section rather than at the
// first underscore.
var sections = []string{"weak_topics", "snapshots", "streak", "plan", "log", "db"}

// Load reads configuration. Precedence, highest first:
//  1. STUDYFLOW_* environment variables (STUDYFLOW_PLAN_BASE_MINUTES -> plan.base_minutes)
//  2. the YAML file at path, or DefaultPath() when path is empty
//  3. Defaults()
//
// A missing file at the default path is not an error; a missing file that
// was named explicitly is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	content, err := readConfigFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, err
	default:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey maps STUDYFLOW_WEAK_TOPICS_THRESHOLD to weak_topics.threshold.
// Names outside a known section (such as STUDYFLOW_DB) are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, sec := range sections {
		if strings.HasPrefix(key, sec+"_") {
			return sec + "." + strings.TrimPrefix(key, sec+"_")
		}
	}
	return ""
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return content, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/studyflow/config.yaml, falling back
// to ~/.config/studyflow/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "studyflow", "config.yaml"), nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Plan.BaseMinutes <= 0 {
		return fmt.Errorf("plan.base_minutes must be positive, got %d", c.Plan.BaseMinutes)
	}
	if _, err := gamification.ParseStreakMode(c.Streak.Mode); err != nil {
		return fmt.Errorf("streak.mode: %w", err)
	}
	if c.WeakTopics.Threshold < 0 || c.WeakTopics.Threshold > 1 {
		return fmt.Errorf("weak_topics.threshold must be within [0, 1], got %v", c.WeakTopics.Threshold)
	}
	if c.WeakTopics.Window < 1 {
		return fmt.Errorf("weak_topics.window must be at least 1, got %d", c.WeakTopics.Window)
	}
	if c.WeakTopics.Limit < 0 {
		return fmt.Errorf("weak_topics.limit must not be negative, got %d", c.WeakTopics.Limit)
	}
	if c.Snapshots.Keep < 1 {
		return fmt.Errorf("snapshots.keep must be at least 1, got %d", c.Snapshots.Keep)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// StreakMode returns the parsed streak mode. Call after Validate.
func (c *Config) StreakMode() gamification.StreakMode {
	m, _ := gamification.ParseStreakMode(c.Streak.Mode)
	return m
}
