package bouncingballs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/host"
	"github.com/yndnr/multiagent-go/internal/runtime"
	"github.com/yndnr/multiagent-go/internal/scenario"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// Name is the registry name of the scenario.
const Name = "bouncing-balls"

// Defaults used when the scenario params leave a field unset.
const (
	DefaultBalls  = 20
	DefaultWidth  = 640.0
	DefaultHeight = 384.0
)

// Scenario implements scenario.Scenario and scenario.Renderer.
type Scenario struct {
	// LogInterval throttles headless progress lines.
	LogInterval time.Duration
}

// New returns the scenario with default settings.
func New() *Scenario {
	return &Scenario{LogInterval: time.Second}
}

func (s *Scenario) Name() string { return Name }

func (s *Scenario) Description() string {
	return "balls falling under gravity and bouncing off the walls"
}

// Run implements scenario.Scenario.
func (s *Scenario) Run(ctx context.Context, env scenario.Env) error {
	log := env.Logger
	if log == nil {
		log = logger.Nop()
	}

	cfg := initialConfig(env.Params)
	seed := env.Params.Seed

	var factory runtime.Factory[Config, Snapshot, Command, Event] = func(c Config) (runtime.Simulation[Config, Snapshot, Command, Event], error) {
		return NewSimulation(c, seed), nil
	}

	m := runtime.New(factory, cfg, scenario.Options(env, Snapshot{Width: cfg.Width, Height: cfg.Height}))

	switch env.Host.Mode {
	case scenario.HostTerminal:
		p := NewTerminalPresentation(cfg)
		h := &host.Terminal{
			FPS:       env.Host.FPS,
			MaxFrames: env.Host.MaxFrames,
			AltScreen: env.Host.AltScreen,
			Viewer:    p,
			Keys:      p,
			Logger:    log,
		}
		return m.Run(ctx, p, h)

	case scenario.HostHeadless, "":
		p := NewHeadlessPresentation(cfg, log, s.LogInterval)
		h := &host.Headless{
			FPS:       env.Host.FPS,
			MaxFrames: env.Host.MaxFrames,
			Logger:    log,
		}
		err := m.Run(ctx, p, h)
		last := p.Last()
		log.Info("bouncing balls finished",
			"ticks", m.Ticks(),
			"frames", p.Frames(),
			"balls", len(last.Balls),
			"bounces", last.Bounces,
			"state", m.State().String(),
		)
		return err

	default:
		return domain.ErrInvalidConfig.WithDetails(fmt.Sprintf("unknown host mode %q", env.Host.Mode))
	}
}

// Render implements scenario.Renderer for recorded snapshots.
func (s *Scenario) Render(raw []byte, width, height int) (string, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return "", fmt.Errorf("decode snapshot: %w", err)
	}

	cols, rows := 0, 0
	if width > 0 && height > 0 {
		cols, rows = areaFor(width, height)
	}
	return Render(snap, cols, rows), nil
}

func initialConfig(p scenario.Params) Config {
	cfg := Config{BallCount: p.Balls, Width: p.Width, Height: p.Height}
	if cfg.BallCount <= 0 {
		cfg.BallCount = DefaultBalls
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	return cfg
}
