// Package tests provides end-to-end tests across the runtime, the
// recorder and the metrics endpoint.
package tests

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/multiagent-go/internal/host"
	"github.com/yndnr/multiagent-go/internal/runtime"
	"github.com/yndnr/multiagent-go/internal/scenario"
	"github.com/yndnr/multiagent-go/internal/server/httpserver"
	"github.com/yndnr/multiagent-go/internal/storage"
	"github.com/yndnr/multiagent-go/internal/storage/record"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/internal/telemetry/metric"
	"github.com/yndnr/multiagent-go/pkg/shared"
)

type counterConfig struct {
	Step int
}

type counterSnapshot struct {
	Value int `json:"value"`
	Tick  int `json:"tick"`
}

type counterSim struct {
	snap counterSnapshot
}

func (s *counterSim) Step(cfg counterConfig, commands []int, _ time.Duration) (counterSnapshot, []string, error) {
	for _, c := range commands {
		s.snap.Value += c
	}
	s.snap.Value += cfg.Step
	s.snap.Tick++

	var events []string
	if s.snap.Tick%10 == 0 {
		events = append(events, "tenth")
	}
	return s.snap, events, nil
}

type counterPresentation struct {
	frames int
	events int
	last   counterSnapshot
}

func (p *counterPresentation) OnEvents(events []string) { p.events += len(events) }

func (p *counterPresentation) Draw(g shared.Guard[counterSnapshot], emit func(int)) (counterConfig, bool) {
	p.frames++
	p.last = g.Value()
	emit(100)
	if p.frames == 5 {
		return counterConfig{Step: 2}, true
	}
	return counterConfig{}, false
}

// TestRuntime_RecordAndServe runs a small simulation end to end: the
// worker ticks, the headless host draws, every snapshot version is
// recorded to Badger and the metrics endpoint reports the run.
func TestRuntime_RecordAndServe(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Storage and recorder
	kvCfg := storage.DefaultKVConfig(t.TempDir())
	kvCfg.Badger.GCInterval = 0
	engine, err := storage.NewBadgerEngine(kvCfg, logger.Nop())
	if err != nil {
		t.Fatalf("NewBadgerEngine() error = %v", err)
	}
	defer engine.Close()

	runID := runtime.NewRunID()
	rec, err := record.NewRecorder(ctx, engine, record.RunMeta{ID: runID, Scenario: "counter", FrequencyHz: 200})
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	// Metrics endpoint
	metrics := metric.NewRegistry()
	if err := engine.RegisterMetrics(metrics.Prometheus()); err != nil {
		t.Fatalf("RegisterMetrics() error = %v", err)
	}
	srv := httpserver.New("127.0.0.1:0", httpserver.NewRouter(&httpserver.RouterConfig{
		Metrics: metrics,
		Logger:  logger.Nop(),
	}), logger.Nop())
	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer srv.Shutdown(ctx)

	// Runtime
	env := scenario.Env{
		FrequencyHz:     200,
		ChannelCapacity: 8,
		ShutdownTimeout: time.Second,
		RunID:           runID,
		Logger:          logger.Nop(),
		Metrics:         metrics,
		Recorder:        rec,
	}
	var factory runtime.Factory[counterConfig, counterSnapshot, int, string] = func(counterConfig) (runtime.Simulation[counterConfig, counterSnapshot, int, string], error) {
		return &counterSim{}, nil
	}
	m := runtime.New(factory, counterConfig{Step: 1}, scenario.Options(env, counterSnapshot{}))

	pres := &counterPresentation{}
	if err := m.Run(ctx, pres, &host.Headless{FPS: 100, MaxFrames: 30}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := rec.Finish(ctx, m.State().String()); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	if m.State() != runtime.StateStopped {
		t.Errorf("State() = %v, want stopped", m.State())
	}
	if pres.frames != 30 {
		t.Errorf("frames = %d, want 30", pres.frames)
	}
	if pres.last.Value <= pres.last.Tick {
		t.Errorf("last snapshot %+v does not reflect emitted commands", pres.last)
	}

	// Recording
	reader := record.NewReader(engine)
	meta, err := reader.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if meta.ID != runID || meta.State != "stopped" {
		t.Errorf("meta = %+v, want run %s stopped", meta, runID)
	}
	if meta.Frames == 0 || meta.Frames != rec.Frames() {
		t.Errorf("meta.Frames = %d, recorder frames = %d", meta.Frames, rec.Frames())
	}

	var prev uint64
	var frames int
	err = reader.Frames(ctx, runID, func(f record.Frame) bool {
		if f.Version <= prev {
			t.Errorf("frame versions not increasing: %d after %d", f.Version, prev)
		}
		prev = f.Version

		var s counterSnapshot
		if err := json.Unmarshal(f.Data, &s); err != nil {
			t.Errorf("decode frame %d: %v", f.Version, err)
			return false
		}
		frames++
		return true
	})
	if err != nil {
		t.Fatalf("Frames() error = %v", err)
	}
	if uint64(frames) != meta.Frames {
		t.Errorf("replayed %d frames, meta says %d", frames, meta.Frames)
	}

	// Metrics
	resp, err := http.Get("http://" + addr.String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, want := range []string{
		"multiagent_simulation_ticks_total",
		"multiagent_presentation_frames_total 30",
		"multiagent_recorder_frames_total",
		"multiagent_badger_",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}
