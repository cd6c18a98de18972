// Package config holds the runtime configuration for the context-reminder
// hook. Everything is read once at startup; the hook itself only sees an
// explicit Config value.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	envMaxTokens = "CONTEXT_REMINDER_MAX_TOKENS"
	envThreshold = "CONTEXT_REMINDER_THRESHOLD"
	envStateDir  = "CONTEXT_REMINDER_STATE_DIR"
	envHint      = "CONTEXT_REMINDER_HINT"
	envDebug     = "CONTEXT_REMINDER_DEBUG"

	defaultMaxTokens = 200000
	defaultThreshold = 0.95
	defaultHint      = "/claude-md-management:revise-claude-md"

	stateDirName = "claude-hooks"
)

type Config struct {
	// MaxContextTokens is the context ceiling the usage percentage is
	// computed against.
	MaxContextTokens int

	// ThresholdFraction is the fraction of the ceiling at which advisories
	// start firing (0.95 means warn from 95% upward).
	ThresholdFraction float64

	// StateDir is where per-session markers and the diagnostics log live.
	StateDir string

	// Hint is the remediation suggestion included in the advisory text.
	Hint string

	Debug bool
}

func DefaultConfig() Config {
	return Config{
		MaxContextTokens:  defaultMaxTokens,
		ThresholdFraction: defaultThreshold,
		StateDir:          defaultStateDir(),
		Hint:              defaultHint,
	}
}

// Load builds the configuration from defaults, a .env file in the working
// directory if one exists, and process environment variables, in that order
// of precedence. Values that fail to parse keep their defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := os.Getenv(envMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxContextTokens = n
		}
	}
	if v := os.Getenv(envThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ThresholdFraction = f
		}
	}
	if v := os.Getenv(envStateDir); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv(envHint); v != "" {
		cfg.Hint = v
	}
	if v := os.Getenv(envDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	return cfg
}

// ThresholdPercent converts the threshold fraction to a whole percentage,
// truncating like the percent computation does (0.95 -> 95).
func (c Config) ThresholdPercent() int {
	return int(c.ThresholdFraction * 100)
}

// LogFile is the diagnostics log path under the state directory.
func (c Config) LogFile() string {
	return filepath.Join(c.StateDir, "context-reminder.log")
}

func defaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, stateDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), stateDirName)
	}
	return filepath.Join(home, ".cache", stateDirName)
}
