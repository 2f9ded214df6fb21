package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/multiagent-go/internal/app/config"
	"github.com/yndnr/multiagent-go/internal/infra/confloader"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// globalConfigKeys maps global flags to configuration keys.
var globalConfigKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"log-backend": "log.backend",
	"log-file":    "log.file",
}

// flagOverrides collects the flags the user set explicitly, keyed by
// configuration key. Unset flags never override file or env values.
func flagOverrides(c *cli.Context, keys map[string]string) map[string]any {
	out := make(map[string]any)
	for name, key := range keys {
		if c.IsSet(name) {
			out[key] = c.Value(name)
		}
	}
	return out
}

// loadConfig loads defaults, the config file, env and flags, in that
// order of precedence, and verifies the result.
func loadConfig(c *cli.Context, keys map[string]string) (*config.AppConfig, *confloader.Loader, error) {
	// Start with defaults
	cfg := config.Default()

	// Create loader with optional config file
	opts := []confloader.Option{}
	if path := ParseGlobalFlags(c).ConfigFile; path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	overrides := flagOverrides(c, globalConfigKeys)
	for k, v := range flagOverrides(c, keys) {
		overrides[k] = v
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, nil, err
		}
	}

	// Load and unmarshal
	if err := loader.Load(cfg); err != nil {
		return nil, nil, err
	}

	// Validate configuration
	if err := config.Verify(cfg); err != nil {
		return nil, nil, err
	}

	return cfg, loader, nil
}

// initLogger initializes the structured logger and makes it the default.
// When screen is set the terminal belongs to the presentation, so logs
// are discarded unless log.file is configured. The returned closer
// flushes the logger and closes the log file.
func initLogger(cfg *config.AppConfig, screen bool) (logger.Logger, func() error, error) {
	var (
		out  io.Writer = os.Stderr
		file *os.File
	)

	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file, out = f, f
	case screen:
		out = io.Discard
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Backend: cfg.Log.Backend,
		Output:  out,
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, nil, err
	}

	// Set as default logger
	logger.SetDefault(log)

	closer := func() error {
		if file == nil {
			return nil
		}
		return errors.Join(logger.Sync(log), file.Close())
	}
	return log, closer, nil
}

// applyReload returns the config watcher callback. Only the log level is
// applied to a running process; other changes take effect on the next run.
func applyReload(loader *confloader.Loader, log logger.Logger) func(string) {
	return func(path string) {
		next := config.Default()
		if err := loader.Reload(next); err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if err := config.Verify(next); err != nil {
			log.Warn("reloaded config rejected", "path", path, "error", err)
			return
		}

		if next.Log.Level != logger.GetLevel() {
			logger.SetLevel(next.Log.Level)
			log.Info("log level changed", "level", next.Log.Level)
		}
	}
}
