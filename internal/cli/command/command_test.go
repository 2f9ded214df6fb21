package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/multiagent-go/internal/app/config"
	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/infra/confloader"
	"github.com/yndnr/multiagent-go/internal/storage/record"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// runApp runs the CLI with args and returns what it wrote to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(append([]string{"multiagent"}, args...))
	return out.String(), err
}

func TestRunAndReplay(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "records")
	logFile := filepath.Join(tmp, "run.log")

	_, err := runApp(t,
		"--log-file", logFile,
		"run",
		"--mode", "headless",
		"--hz", "200",
		"--fps", "200",
		"--frames", "20",
		"--balls", "3",
		"--seed", "7",
		"--metrics-addr", "127.0.0.1:0",
		"--record",
		"--record-dir", dir,
	)
	require.NoError(t, err)

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "starting run")
	assert.Contains(t, string(logs), "recording finished")

	out, err := runApp(t, "-o", "json", "replay", "--dir", dir, "list")
	require.NoError(t, err)

	var runs []record.RunMeta
	require.NoError(t, json.Unmarshal([]byte(out), &runs), out)
	require.Len(t, runs, 1)
	assert.Equal(t, "bouncing-balls", runs[0].Scenario)
	assert.Equal(t, "stopped", runs[0].State)
	assert.Equal(t, 200, runs[0].FrequencyHz)
	assert.Positive(t, runs[0].Frames)
	assert.False(t, runs[0].EndedAt.IsZero())

	out, err = runApp(t, "replay", "--dir", dir, "play", "--last")
	require.NoError(t, err)
	assert.Contains(t, out, "balls: 3")

	out, err = runApp(t, "replay", "--dir", dir, "play", "--fps", "0", runs[0].ID[:10])
	require.NoError(t, err)
	assert.Contains(t, out, clearScreen)

	out, err = runApp(t, "-o", "plain", "replay", "--dir", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)
	assert.Contains(t, out, "SCENARIO")

	out, err = runApp(t, "replay", "--dir", dir, "delete", runs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted run "+runs[0].ID)

	_, err = runApp(t, "replay", "--dir", dir, "play")
	assert.True(t, domain.IsDomainError(err, domain.ErrRunNotFound.Code), "err = %v", err)
}

func TestRun_KeepRuns(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "records")

	for range 3 {
		_, err := runApp(t,
			"--log-file", filepath.Join(tmp, "run.log"),
			"run",
			"--mode", "headless",
			"--hz", "200",
			"--fps", "200",
			"--frames", "2",
			"--record",
			"--record-dir", dir,
			"--keep-runs", "2",
		)
		require.NoError(t, err)
	}

	out, err := runApp(t, "-o", "json", "replay", "--dir", dir, "list")
	require.NoError(t, err)

	var runs []record.RunMeta
	require.NoError(t, json.Unmarshal([]byte(out), &runs), out)
	assert.Len(t, runs, 2)

	out, err = runApp(t, "replay", "--dir", dir, "prune", "--keep", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 1 run(s)")
}

func TestRun_InvalidConfig(t *testing.T) {
	_, err := runApp(t, "run", "--mode", "headless", "--hz", "0")
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidConfig.Code, domain.GetErrorCode(err))
}

func TestRun_UnknownScenario(t *testing.T) {
	_, err := runApp(t,
		"--log-file", filepath.Join(t.TempDir(), "run.log"),
		"run", "--mode", "headless", "--scenario", "nope",
	)
	assert.True(t, domain.IsDomainError(err, domain.ErrScenarioNotFound.Code), "err = %v", err)
}

func TestRun_ConfigFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "multiagent.yaml")
	content := "host:\n  mode: headless\n  fps: 200\n  max_frames: 3\nruntime:\n  frequency_hz: 100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := runApp(t, "--config", path, "--log-file", filepath.Join(tmp, "run.log"), "run")
	require.NoError(t, err)
}

func TestReplay_MissingDir(t *testing.T) {
	_, err := runApp(t, "replay", "--dir", filepath.Join(t.TempDir(), "missing"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recordings")
}

func TestScenariosCommand(t *testing.T) {
	out, err := runApp(t, "-o", "json", "scenarios")
	require.NoError(t, err)

	var list []scenarioInfo
	require.NoError(t, json.Unmarshal([]byte(out), &list), out)
	require.Len(t, list, 1)
	assert.Equal(t, "bouncing-balls", list[0].Name)
	assert.True(t, list[0].Replay)
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "-o", "yaml", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: ")
	assert.Contains(t, out, "platform: ")

	out, err = runApp(t, "-o", "plain", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "FIELD")

	_, err = runApp(t, "-o", "xml", "version")
	assert.Error(t, err)
}

func TestApplyReload(t *testing.T) {
	t.Cleanup(func() { logger.SetLevel("info") })

	path := filepath.Join(t.TempDir(), "multiagent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0644))

	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	require.NoError(t, loader.Load(config.Default()))
	logger.SetLevel("info")

	reload := applyReload(loader, logger.Nop())

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
	reload(path)
	assert.Equal(t, "debug", logger.GetLevel())

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644))
	reload(path)
	assert.Equal(t, "debug", logger.GetLevel(), "invalid config must not change the level")
}

func TestRunState(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "stopped"},
		{domain.ErrSimulationPanic.WithDetails("boom"), "panicked"},
		{domain.ErrShutdownTimeout, "timed_out"},
		{domain.ErrPresentation.WithCause(errors.New("tty")), "presentation_failed"},
		{domain.ErrSimulationFailed, "failed"},
		{errors.New("other"), "failed"},
	}

	for _, tt := range tests {
		if got := runState(tt.err); got != tt.want {
			t.Errorf("runState(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestFlagOverrides_OnlySetFlags(t *testing.T) {
	var got map[string]any
	app := NewApp(DefaultScenarios())
	app.Commands = nil
	app.Action = func(c *cli.Context) error {
		got = flagOverrides(c, globalConfigKeys)
		return nil
	}

	require.NoError(t, app.Run([]string{"multiagent", "--log-level", "warn"}))
	assert.Equal(t, map[string]any{"log.level": "warn"}, got)
}

func TestGetScenarios_Fallback(t *testing.T) {
	app := NewApp(DefaultScenarios())
	app.Metadata = nil
	app.Commands = nil

	var names []string
	app.Action = func(c *cli.Context) error {
		names = GetScenarios(c).Names()
		return nil
	}
	require.NoError(t, app.Run([]string{"multiagent"}))
	assert.Equal(t, []string{"bouncing-balls"}, names)
}
