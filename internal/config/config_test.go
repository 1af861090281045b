package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/taskboard.db", cfg.DBPath)
	assert.Equal(t, 800*time.Millisecond, cfg.LoginDelay)
	assert.Equal(t, 30, cfg.LoginRate)
	assert.Equal(t, "https://api.github.com", cfg.GithubURL)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("TASKBOARD_ADDR", ":9090")
	t.Setenv("TASKBOARD_LOGIN_DELAY", "0s")
	t.Setenv("TASKBOARD_LOG_LEVEL", "debug")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Zero(t, cfg.LoginDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /tmp/board.db\nlogin_rate: 5\n"), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/board.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.LoginRate)
}

func TestLoadMissingConfigFileIsIgnored(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]any{
		"empty addr":     {"addr": ""},
		"zero rate":      {"login_rate": 0},
		"negative delay": {"login_delay": -time.Second},
		"unknown level":  {"log_level": "loud"},
	}
	for name, overrides := range tests {
		t.Run(name, func(t *testing.T) {
			v := New()
			for k, val := range overrides {
				v.Set(k, val)
			}
			_, err := Load(v, "")
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerToWritesToGivenWriter(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.LoggerTo(&buf)
	logger.Debug("hidden")
	logger.Warn("github languages unavailable", slog.String("repo", "octo/cli"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "github languages unavailable")
	assert.Contains(t, buf.String(), "repo=octo/cli")
}
