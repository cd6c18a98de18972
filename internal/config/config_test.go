package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.Equal(t, 200000, cfg.MaxContextTokens)
	require.InEpsilon(t, 0.95, cfg.ThresholdFraction, 1e-9)
	require.NotEmpty(t, cfg.StateDir)
	require.Equal(t, "/claude-md-management:revise-claude-md", cfg.Hint)
	require.False(t, cfg.Debug)
}

func TestThresholdPercent_Truncates(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.Equal(t, 95, cfg.ThresholdPercent())

	cfg.ThresholdFraction = 0.8
	require.Equal(t, 80, cfg.ThresholdPercent())

	cfg.ThresholdFraction = 0.056
	require.Equal(t, 5, cfg.ThresholdPercent())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONTEXT_REMINDER_MAX_TOKENS", "150000")
	t.Setenv("CONTEXT_REMINDER_THRESHOLD", "0.80")
	t.Setenv("CONTEXT_REMINDER_STATE_DIR", "/tmp/custom-state")
	t.Setenv("CONTEXT_REMINDER_HINT", "/compact")
	t.Setenv("CONTEXT_REMINDER_DEBUG", "true")

	cfg := Load()
	require.Equal(t, 150000, cfg.MaxContextTokens)
	require.InEpsilon(t, 0.80, cfg.ThresholdFraction, 1e-9)
	require.Equal(t, "/tmp/custom-state", cfg.StateDir)
	require.Equal(t, "/compact", cfg.Hint)
	require.True(t, cfg.Debug)
}

func TestLoad_BadValuesKeepDefaults(t *testing.T) {
	t.Setenv("CONTEXT_REMINDER_MAX_TOKENS", "not-a-number")
	t.Setenv("CONTEXT_REMINDER_THRESHOLD", "lots")
	t.Setenv("CONTEXT_REMINDER_DEBUG", "maybe")

	cfg := Load()
	require.Equal(t, 200000, cfg.MaxContextTokens)
	require.InEpsilon(t, 0.95, cfg.ThresholdFraction, 1e-9)
	require.False(t, cfg.Debug)
}

func TestLoad_RejectsNonPositiveValues(t *testing.T) {
	t.Setenv("CONTEXT_REMINDER_MAX_TOKENS", "0")
	t.Setenv("CONTEXT_REMINDER_THRESHOLD", "-1")

	cfg := Load()
	require.Equal(t, 200000, cfg.MaxContextTokens)
	require.InEpsilon(t, 0.95, cfg.ThresholdFraction, 1e-9)
}

func TestLogFile_UnderStateDir(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.StateDir = t.TempDir()
	require.Equal(t, filepath.Join(cfg.StateDir, "context-reminder.log"), cfg.LogFile())
}
