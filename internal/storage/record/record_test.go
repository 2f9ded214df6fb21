package record

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/storage"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

type point struct {
	X int `json:"x"`
}

func newEngine(t *testing.T) *storage.BadgerEngine {
	t.Helper()

	cfg := storage.DefaultKVConfig(t.TempDir())
	cfg.Badger.GCInterval = 0

	engine, err := storage.NewBadgerEngine(cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func record(t *testing.T, engine *storage.BadgerEngine, id string, versions ...uint64) *Recorder {
	t.Helper()

	rec, err := NewRecorder(context.Background(), engine, RunMeta{ID: id, Scenario: "test", FrequencyHz: 30})
	require.NoError(t, err)
	for _, v := range versions {
		require.NoError(t, rec.Record(v, point{X: int(v)}))
	}
	return rec
}

func TestRecorder_RequiresRunID(t *testing.T) {
	_, err := NewRecorder(context.Background(), newEngine(t), RunMeta{})
	assert.Error(t, err)
}

func TestRecorder_RecordAndReplay(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	// Versions above 255 check the big-endian key order.
	rec := record(t, engine, "01RUN", 1, 3, 256, 2)
	assert.Equal(t, uint64(4), rec.Frames())
	assert.Equal(t, "01RUN", rec.RunID())

	var versions []uint64
	var xs []int
	err := NewReader(engine).Frames(ctx, "01RUN", func(f Frame) bool {
		var p point
		require.NoError(t, json.Unmarshal(f.Data, &p))
		versions = append(versions, f.Version)
		xs = append(xs, p.X)
		return true
	})
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2, 3, 256}, versions)
	assert.Equal(t, []int{1, 2, 3, 256}, xs)
}

func TestRecorder_Finish(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	rec := record(t, engine, "01RUN", 1, 2)
	require.NoError(t, rec.Finish(ctx, "stopped"))
	require.NoError(t, rec.Finish(ctx, "ignored"))

	err := rec.Record(3, point{})
	assert.ErrorIs(t, err, domain.ErrRecorderClosed)

	meta, err := NewReader(engine).Run(ctx, "01RUN")
	require.NoError(t, err)
	assert.Equal(t, "test", meta.Scenario)
	assert.Equal(t, 30, meta.FrequencyHz)
	assert.Equal(t, uint64(2), meta.Frames)
	assert.Equal(t, "stopped", meta.State)
	assert.False(t, meta.EndedAt.IsZero())
	assert.GreaterOrEqual(t, meta.Duration(), time.Duration(0))
}

func TestRecorder_EncodeError(t *testing.T) {
	rec := record(t, newEngine(t), "01RUN")
	assert.Error(t, rec.Record(1, func() {}))
	assert.Zero(t, rec.Frames())
}

func TestReader_RunsAndLatest(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	r := NewReader(engine)

	_, err := r.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	record(t, engine, "01AAA", 1)
	record(t, engine, "01BBB", 1)
	record(t, engine, "01CCC", 1)

	runs, err := r.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "01AAA", runs[0].ID)

	latest, err := r.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "01CCC", latest.ID)
}

func TestReader_Resolve(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	r := NewReader(engine)

	record(t, engine, "01AAA1", 1)
	record(t, engine, "01AAA2", 1)
	record(t, engine, "01BBB1", 1)

	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{"empty selects latest", "", "01BBB1", false},
		{"full id", "01AAA2", "01AAA2", false},
		{"unique prefix", "01B", "01BBB1", false},
		{"ambiguous prefix", "01AAA", "", true},
		{"no match", "zzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := r.Resolve(ctx, tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrRunNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.ID)
		})
	}
}

func TestReader_RunNotFound(t *testing.T) {
	_, err := NewReader(newEngine(t)).Run(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestReader_FramesStopEarly(t *testing.T) {
	engine := newEngine(t)
	record(t, engine, "01RUN", 1, 2, 3)

	count := 0
	err := NewReader(engine).Frames(context.Background(), "01RUN", func(Frame) bool {
		count++
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReader_FramesAreScopedToRun(t *testing.T) {
	engine := newEngine(t)
	record(t, engine, "01RUN", 1, 2)
	record(t, engine, "01RUN2", 7)

	var versions []uint64
	err := NewReader(engine).Frames(context.Background(), "01RUN", func(f Frame) bool {
		versions = append(versions, f.Version)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, versions)
}

func TestReader_DeleteAndPrune(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	r := NewReader(engine)

	for _, id := range []string{"01A", "01B", "01C", "01D"} {
		record(t, engine, id, 1, 2)
	}

	require.NoError(t, r.Delete(ctx, "01B"))
	_, err := r.Run(ctx, "01B")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	n, err := r.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	runs, err := r.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "01C", runs[0].ID)
	assert.Equal(t, "01D", runs[1].ID)

	frames := 0
	require.NoError(t, r.Frames(ctx, "01A", func(Frame) bool { frames++; return true }))
	assert.Zero(t, frames)
}
