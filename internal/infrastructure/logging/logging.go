package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mboard/internal/infrastructure/config"
)

// EnvLogLevel overrides logging.level from the config file
const EnvLogLevel = "MBOARD_LOG_LEVEL"

// Setup configures the global zerolog logger. Output goes to cfg.File when
// set and to out otherwise. The returned func closes the log file.
func Setup(cfg config.LoggingConfig, out io.Writer) (func(), error) {
	levelName := cfg.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		levelName = env
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil || levelName == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	cleanup := func() {}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}

	if cfg.Format == "text" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.File != ""}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	return cleanup, nil
}
