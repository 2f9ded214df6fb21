package scenario

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/pkg/shared"
)

type memRecorder struct {
	versions []uint64
	fail     bool
}

func (r *memRecorder) Record(version uint64, _ any) error {
	if r.fail {
		return errors.New("disk full")
	}
	r.versions = append(r.versions, version)
	return nil
}

func TestRecordObserver_SkipsSeenVersions(t *testing.T) {
	rec := &memRecorder{}
	observe := RecordObserver[int](rec, nil, logger.Nop())

	c := shared.New(1)
	observe(c.Load())
	observe(c.Load())
	c.Store(2)
	c.Store(3)
	observe(c.Load())

	assert.Equal(t, []uint64{1, 3}, rec.versions)
}

func TestRecordObserver_ErrorDoesNotPanic(t *testing.T) {
	rec := &memRecorder{fail: true}
	observe := RecordObserver[int](rec, nil, logger.Nop())

	c := shared.New(1)
	assert.NotPanics(t, func() {
		observe(c.Load())
		c.Store(2)
		observe(c.Load())
	})
}

func TestOptions(t *testing.T) {
	env := Env{
		FrequencyHz:     60,
		ChannelCapacity: 10,
		ShutdownTimeout: time.Second,
		RunID:           "run-1",
	}

	opts := Options(env, "initial")
	assert.Equal(t, 60, opts.FrequencyHz)
	assert.Equal(t, 10, opts.ChannelCapacity)
	assert.Equal(t, "initial", opts.InitialSnapshot)
	assert.Empty(t, opts.Observers)
	assert.NotNil(t, opts.Logger)

	env.Recorder = &memRecorder{}
	assert.Len(t, Options(env, "initial").Observers, 1)
}
