package config

// Fields returns the effective configuration as alternating key/value
// pairs for a structured log line.
func Fields(cfg *AppConfig) []any {
	return []any{
		"runtime.frequency_hz", cfg.Runtime.FrequencyHz,
		"runtime.channel_capacity", cfg.Runtime.ChannelCapacity,
		"runtime.shutdown_timeout", cfg.Runtime.ShutdownTimeout.String(),
		"host.mode", cfg.Host.Mode,
		"host.fps", cfg.Host.FPS,
		"host.max_frames", cfg.Host.MaxFrames,
		"log.level", cfg.Log.Level,
		"log.backend", cfg.Log.Backend,
		"metrics.addr", cfg.Metrics.Addr,
		"record.enabled", cfg.Record.Enabled,
		"record.dir", cfg.Record.Dir,
		"scenario.name", cfg.Scenario.Name,
	}
}
