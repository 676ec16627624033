package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboard/internal/infrastructure/config"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetupJSON(t *testing.T) {
	restoreLogger(t)
	t.Setenv(EnvLogLevel, "")

	var buf bytes.Buffer
	cleanup, err := Setup(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	defer cleanup()

	log.Info().Msg("hidden")
	log.Warn().Str("key", "kanbanState").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "kanbanState", entry["key"])
}

func TestSetupEnvOverride(t *testing.T) {
	restoreLogger(t)
	t.Setenv(EnvLogLevel, "debug")

	var buf bytes.Buffer
	cleanup, err := Setup(config.LoggingConfig{Level: "error", Format: "json"}, &buf)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	restoreLogger(t)
	t.Setenv(EnvLogLevel, "")

	cleanup, err := Setup(config.LoggingConfig{Level: "loud", Format: "json"}, &bytes.Buffer{})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupFile(t *testing.T) {
	restoreLogger(t)
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "logs", "mboard.log")
	cleanup, err := Setup(config.LoggingConfig{Level: "info", Format: "text", File: path}, &bytes.Buffer{})
	require.NoError(t, err)

	log.Info().Msg("to file")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
