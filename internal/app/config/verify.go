package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// Verify validates the configuration. The returned error wraps
// domain.ErrInvalidConfig and names the first offending key.
func Verify(cfg *AppConfig) error {
	if err := verifyRuntime(&cfg.Runtime); err != nil {
		return err
	}
	if err := verifyHost(&cfg.Host); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if err := verifyRecord(&cfg.Record); err != nil {
		return err
	}
	if err := verifyScenario(&cfg.Scenario); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return domain.ErrInvalidConfig.WithDetails(fmt.Sprintf(format, args...))
}

func verifyRuntime(cfg *RuntimeSection) error {
	if cfg.FrequencyHz < MinFrequencyHz || cfg.FrequencyHz > MaxFrequencyHz {
		return invalid("runtime.frequency_hz must be between %d and %d, got %d",
			MinFrequencyHz, MaxFrequencyHz, cfg.FrequencyHz)
	}
	if cfg.ChannelCapacity < 1 {
		return invalid("runtime.channel_capacity must be at least 1, got %d", cfg.ChannelCapacity)
	}
	if cfg.ShutdownTimeout <= 0 {
		return invalid("runtime.shutdown_timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	return nil
}

func verifyHost(cfg *HostSection) error {
	switch cfg.Mode {
	case "terminal", "headless":
	default:
		return invalid("host.mode must be terminal or headless, got %q", cfg.Mode)
	}
	if cfg.FPS < 1 {
		return invalid("host.fps must be at least 1, got %d", cfg.FPS)
	}
	if cfg.MaxFrames < 0 {
		return invalid("host.max_frames must not be negative, got %d", cfg.MaxFrames)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return invalid("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return invalid("log.format %q is not one of json, text, console", cfg.Format)
	}
	switch strings.ToLower(cfg.Backend) {
	case logger.BackendZap, logger.BackendSlog:
	default:
		return invalid("log.backend %q is not one of zap, slog", cfg.Backend)
	}
	return nil
}

func verifyRecord(cfg *RecordSection) error {
	if cfg.KeepRuns < 0 {
		return invalid("record.keep_runs must not be negative, got %d", cfg.KeepRuns)
	}
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return invalid("record.dir is required when recording is enabled")
	}

	// Check if record directory exists or can be created
	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return invalid("cannot create record directory: %v", err)
	}
	return nil
}

func verifyScenario(cfg *ScenarioSection) error {
	if cfg.Name == "" {
		return invalid("scenario.name is required")
	}
	if cfg.Balls < 0 {
		return invalid("scenario.balls must not be negative, got %d", cfg.Balls)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return invalid("scenario.width and scenario.height must not be negative")
	}
	return nil
}
