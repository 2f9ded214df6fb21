package config

import "time"

// Default configuration values.
const (
	DefaultFrequencyHz     = 30
	DefaultChannelCapacity = 100
	DefaultShutdownTimeout = 5 * time.Second

	DefaultHostMode = "terminal"
	DefaultFPS      = 30

	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	DefaultLogBackend = "zap"

	DefaultRecordDir      = "multiagent-records"
	DefaultRecordKeepRuns = 10

	DefaultScenario = "bouncing-balls"
	DefaultBalls    = 20
)

// Limits enforced by Verify.
const (
	MinFrequencyHz = 1
	MaxFrequencyHz = 1000
)

// Default returns the default application configuration.
func Default() *AppConfig {
	return &AppConfig{
		Runtime: RuntimeSection{
			FrequencyHz:     DefaultFrequencyHz,
			ChannelCapacity: DefaultChannelCapacity,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Host: HostSection{
			Mode: DefaultHostMode,
			FPS:  DefaultFPS,
		},
		Log: LogSection{
			Level:   DefaultLogLevel,
			Format:  DefaultLogFormat,
			Backend: DefaultLogBackend,
		},
		Record: RecordSection{
			Enabled:  false,
			Dir:      DefaultRecordDir,
			KeepRuns: DefaultRecordKeepRuns,
		},
		Scenario: ScenarioSection{
			Name:  DefaultScenario,
			Balls: DefaultBalls,
		},
	}
}
