package command

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/multiagent-go/internal/app/config"
	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/infra/confloader"
	"github.com/yndnr/multiagent-go/internal/infra/shutdown"
	"github.com/yndnr/multiagent-go/internal/runtime"
	"github.com/yndnr/multiagent-go/internal/scenario"
	"github.com/yndnr/multiagent-go/internal/server/httpserver"
	"github.com/yndnr/multiagent-go/internal/storage"
	"github.com/yndnr/multiagent-go/internal/storage/record"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/internal/telemetry/metric"
)

// runConfigKeys maps run flags to configuration keys.
var runConfigKeys = map[string]string{
	"scenario":         "scenario.name",
	"balls":            "scenario.balls",
	"width":            "scenario.width",
	"height":           "scenario.height",
	"seed":             "scenario.seed",
	"mode":             "host.mode",
	"fps":              "host.fps",
	"frames":           "host.max_frames",
	"alt-screen":       "host.alt_screen",
	"hz":               "runtime.frequency_hz",
	"capacity":         "runtime.channel_capacity",
	"shutdown-timeout": "runtime.shutdown_timeout",
	"metrics-addr":     "metrics.addr",
	"record":           "record.enabled",
	"record-dir":       "record.dir",
	"keep-runs":        "record.keep_runs",
}

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a scenario",
		Description: `Starts the simulation worker at the configured frequency and drives
the presentation from the terminal or headless host until it is quit,
interrupted or reaches --frames.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scenario", Aliases: []string{"s"}, Usage: "Scenario name (see 'multiagent scenarios')"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Host mode: terminal, headless"},
			&cli.IntFlag{Name: "hz", Usage: "Simulation frequency in ticks per second"},
			&cli.IntFlag{Name: "capacity", Usage: "Capacity of the command and event channels"},
			&cli.DurationFlag{Name: "shutdown-timeout", Usage: "How long to wait for the simulation to stop"},
			&cli.IntFlag{Name: "fps", Usage: "Presentation frames per second"},
			&cli.IntFlag{Name: "frames", Usage: "Stop after this many frames (0 runs until interrupted)"},
			&cli.BoolFlag{Name: "alt-screen", Usage: "Use the terminal's alternate screen"},
			&cli.IntFlag{Name: "balls", Usage: "Initial number of balls"},
			&cli.Float64Flag{Name: "width", Usage: "Simulation area width"},
			&cli.Float64Flag{Name: "height", Usage: "Simulation area height"},
			&cli.Uint64Flag{Name: "seed", Usage: "Random seed (0 picks one)"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "Serve /metrics, /healthz and /status on this address"},
			&cli.BoolFlag{Name: "record", Usage: "Record snapshots for replay"},
			&cli.StringFlag{Name: "record-dir", Usage: "Directory of the recording database"},
			&cli.IntFlag{Name: "keep-runs", Usage: "Recorded runs to keep after this one (0 keeps all)"},
		},
		Action: runAction,
	}
}

// runStatus is served on /status.
type runStatus struct {
	RunID       string `json:"run_id"`
	Scenario    string `json:"scenario"`
	Mode        string `json:"mode"`
	FrequencyHz int    `json:"frequency_hz"`
	Uptime      string `json:"uptime"`
	Recording   bool   `json:"recording"`
	Recorded    uint64 `json:"recorded_frames,omitempty"`
}

func runAction(c *cli.Context) error {
	cfg, loader, err := loadConfig(c, runConfigKeys)
	if err != nil {
		return err
	}

	log, closeLog, err := initLogger(cfg, cfg.Host.Mode == scenario.HostTerminal)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := GetScenarios(c).Get(cfg.Scenario.Name)
	if err != nil {
		return err
	}

	runID := runtime.NewRunID()

	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()
	ctx = logger.WithScenario(logger.WithRunID(logger.WithLogger(ctx, log), runID), sc.Name())
	log = logger.L(ctx)

	log.Info("starting run", config.Fields(cfg)...)

	sh := shutdown.NewHandler(cfg.Runtime.ShutdownTimeout)
	metrics := metric.NewRegistry()
	started := time.Now()

	var rec *record.Recorder
	if cfg.Record.Enabled {
		rec, err = openRecorder(ctx, cfg, sh, metrics, log, runID, sc.Name())
		if err != nil {
			return errors.Join(err, sh.Shutdown())
		}
	}

	if cfg.Metrics.Addr != "" {
		status := func() any {
			st := runStatus{
				RunID:       runID,
				Scenario:    sc.Name(),
				Mode:        cfg.Host.Mode,
				FrequencyHz: cfg.Runtime.FrequencyHz,
				Uptime:      time.Since(started).Round(time.Millisecond).String(),
				Recording:   rec != nil,
			}
			if rec != nil {
				st.Recorded = rec.Frames()
			}
			return st
		}
		if err := startMetricsServer(cfg.Metrics.Addr, metrics, status, sh, log); err != nil {
			return errors.Join(err, sh.Shutdown())
		}
	}

	if path := ParseGlobalFlags(c).ConfigFile; path != "" {
		if err := watchConfig(loader, path, sh, log); err != nil {
			log.Warn("config watch disabled", "path", path, "error", err)
		}
	}

	env := scenario.Env{
		Params: scenario.Params{
			Balls:  cfg.Scenario.Balls,
			Width:  cfg.Scenario.Width,
			Height: cfg.Scenario.Height,
			Seed:   cfg.Scenario.Seed,
		},
		Host: scenario.HostParams{
			Mode:      cfg.Host.Mode,
			FPS:       cfg.Host.FPS,
			MaxFrames: cfg.Host.MaxFrames,
			AltScreen: cfg.Host.AltScreen,
		},
		FrequencyHz:     cfg.Runtime.FrequencyHz,
		ChannelCapacity: cfg.Runtime.ChannelCapacity,
		ShutdownTimeout: cfg.Runtime.ShutdownTimeout,
		RunID:           runID,
		Logger:          log,
		Metrics:         metrics,
	}
	if rec != nil {
		env.Recorder = rec
	}

	runErr := sc.Run(ctx, env)

	if rec != nil {
		finishRecording(rec, cfg, runState(runErr), log)
	}

	if runErr != nil {
		log.Error("run failed", "state", runState(runErr), "error", runErr)
	} else {
		log.Info("run finished", "duration", time.Since(started).Round(time.Millisecond).String())
	}

	return errors.Join(runErr, sh.Shutdown())
}

// openRecorder opens the recording database and starts a recorder for
// this run. Closing the database is registered with sh.
func openRecorder(
	ctx context.Context,
	cfg *config.AppConfig,
	sh *shutdown.Handler,
	metrics *metric.Registry,
	log logger.Logger,
	runID, scenarioName string,
) (*record.Recorder, error) {
	kvCfg := storage.DefaultKVConfig(cfg.Record.Dir)
	engine, err := storage.NewBadgerEngine(kvCfg, log)
	if err != nil {
		return nil, err
	}
	sh.OnShutdown(func(context.Context) error {
		log.Debug("closing recording database")
		return engine.Close()
	})

	if err := engine.RegisterMetrics(metrics.Prometheus()); err != nil {
		log.Warn("storage metrics unavailable", "error", err)
	}

	rec, err := record.NewRecorder(ctx, engine, record.RunMeta{
		ID:          runID,
		Scenario:    scenarioName,
		FrequencyHz: cfg.Runtime.FrequencyHz,
	})
	if err != nil {
		return nil, err
	}

	log.Info("recording run", "dir", cfg.Record.Dir)
	return rec, nil
}

// finishRecording marks the run finished and prunes old runs. It uses a
// fresh context because the run context is usually cancelled by now.
func finishRecording(rec *record.Recorder, cfg *config.AppConfig, state string, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.ShutdownTimeout)
	defer cancel()

	if err := rec.Finish(ctx, state); err != nil {
		log.Error("failed to finish recording", "error", err)
		return
	}
	log.Info("recording finished", "frames", rec.Frames(), "state", state)

	if cfg.Record.KeepRuns <= 0 {
		return
	}
	pruned, err := rec.Reader().Prune(ctx, cfg.Record.KeepRuns)
	if err != nil {
		log.Warn("failed to prune recordings", "error", err)
		return
	}
	if pruned > 0 {
		log.Info("pruned old recordings", "runs", pruned, "keep", cfg.Record.KeepRuns)
	}
}

func startMetricsServer(addr string, metrics *metric.Registry, status func() any, sh *shutdown.Handler, log logger.Logger) error {
	srv := httpserver.New(addr, httpserver.NewRouter(&httpserver.RouterConfig{
		Metrics:   metrics,
		Status:    status,
		Logger:    log,
		RateLimit: httpserver.DefaultRouterConfig().RateLimit,
	}), log)

	bound, err := srv.Start()
	if err != nil {
		return err
	}
	sh.OnShutdown(func(ctx context.Context) error {
		log.Debug("shutting down metrics server")
		return srv.Shutdown(ctx)
	})

	log.Info("metrics endpoint ready", "addr", bound.String())
	return nil
}

func watchConfig(loader *confloader.Loader, path string, sh *shutdown.Handler, log logger.Logger) error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return err
	}

	w.OnChange(applyReload(loader, log))
	w.StartAsync()

	sh.OnShutdown(func(context.Context) error {
		return w.Stop()
	})
	return nil
}

// runState names how a run ended, using the runtime's state names.
func runState(err error) string {
	switch {
	case err == nil:
		return runtime.StateStopped.String()
	case domain.IsDomainError(err, domain.ErrSimulationPanic.Code):
		return runtime.StatePanicked.String()
	case domain.IsDomainError(err, domain.ErrShutdownTimeout.Code):
		return runtime.StateTimedOut.String()
	case domain.IsDomainError(err, domain.ErrPresentation.Code):
		return runtime.StatePresentationFailed.String()
	default:
		return runtime.StateFailed.String()
	}
}
