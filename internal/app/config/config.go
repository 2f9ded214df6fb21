package config

import "time"

// AppConfig is the root configuration for multiagent.
type AppConfig struct {
	Runtime  RuntimeSection  `koanf:"runtime"`
	Host     HostSection     `koanf:"host"`
	Log      LogSection      `koanf:"log"`
	Metrics  MetricsSection  `koanf:"metrics"`
	Record   RecordSection   `koanf:"record"`
	Scenario ScenarioSection `koanf:"scenario"`
}

// RuntimeSection configures the simulation worker and its channels.
type RuntimeSection struct {
	// FrequencyHz is the simulation tick rate.
	FrequencyHz int `koanf:"frequency_hz"`

	// ChannelCapacity bounds both the command and the event channel.
	ChannelCapacity int `koanf:"channel_capacity"`

	// ShutdownTimeout bounds the wait for the worker after the host returns.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// HostSection selects and tunes the presentation host.
type HostSection struct {
	// Mode is "terminal" or "headless".
	Mode string `koanf:"mode"`

	// FPS is the presentation frame rate.
	FPS int `koanf:"fps"`

	// MaxFrames stops the host after that many frames. Zero runs until
	// interrupted.
	MaxFrames int `koanf:"max_frames"`

	// AltScreen draws the terminal host on the alternate screen.
	AltScreen bool `koanf:"alt_screen"`
}

// LogSection configures logging.
type LogSection struct {
	Level   string `koanf:"level"`
	Format  string `koanf:"format"`
	Backend string `koanf:"backend"`

	// File receives log output. Empty means stderr in headless mode and
	// no output in terminal mode.
	File string `koanf:"file"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	// Addr is the listen address for /metrics. Empty disables it.
	Addr string `koanf:"addr"`
}

// RecordSection configures snapshot recording.
type RecordSection struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`

	// KeepRuns prunes the oldest runs beyond this count when a new run
	// starts. Zero keeps everything.
	KeepRuns int `koanf:"keep_runs"`
}

// ScenarioSection selects the scenario and its parameters.
type ScenarioSection struct {
	Name   string  `koanf:"name"`
	Balls  int     `koanf:"balls"`
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
	Seed   uint64  `koanf:"seed"`
}
