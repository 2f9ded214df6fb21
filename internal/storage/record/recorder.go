package record

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/storage"
)

// RunMeta describes one recorded run.
type RunMeta struct {
	ID          string    `json:"id" yaml:"id"`
	Scenario    string    `json:"scenario" yaml:"scenario"`
	FrequencyHz int       `json:"frequency_hz" yaml:"frequency_hz"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	EndedAt     time.Time `json:"ended_at,omitzero" yaml:"ended_at,omitempty"`
	Frames      uint64    `json:"frames" yaml:"frames"`
	State       string    `json:"state,omitempty" yaml:"state,omitempty"`
}

// Duration is the wall time between start and end, or zero for a run
// that never finished.
func (m RunMeta) Duration() time.Duration {
	if m.EndedAt.IsZero() {
		return 0
	}
	return m.EndedAt.Sub(m.StartedAt)
}

// Recorder writes the snapshots of one run. It implements
// scenario.Recorder.
type Recorder struct {
	engine *storage.BadgerEngine
	prefix []byte

	mu     sync.Mutex
	meta   RunMeta
	closed bool
}

// NewRecorder stores meta and returns a recorder for its run.
func NewRecorder(ctx context.Context, engine *storage.BadgerEngine, meta RunMeta) (*Recorder, error) {
	if meta.ID == "" {
		return nil, fmt.Errorf("record: run id is required")
	}
	if meta.StartedAt.IsZero() {
		meta.StartedAt = time.Now().UTC()
	}

	r := &Recorder{
		engine: engine,
		prefix: framePrefix(meta.ID),
		meta:   meta,
	}
	if err := r.writeMeta(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// RunID returns the run being recorded.
func (r *Recorder) RunID() string {
	return r.meta.ID
}

// Record stores snapshot as JSON under version. Versions need not be
// contiguous; a repeated version overwrites the earlier frame.
func (r *Recorder) Record(version uint64, snapshot any) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("record: encode snapshot %d: %w", version, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.ErrRecorderClosed.WithDetails(r.meta.ID)
	}
	if err := r.engine.Set(context.Background(), frameKey(r.prefix, version), data); err != nil {
		return fmt.Errorf("record: write frame %d: %w", version, err)
	}
	r.meta.Frames++
	return nil
}

// Reader returns a reader over the same database.
func (r *Recorder) Reader() *Reader {
	return NewReader(r.engine)
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meta.Frames
}

// Finish stamps the end time and final state on the run. Later Record
// calls fail with ErrRecorderClosed.
func (r *Recorder) Finish(ctx context.Context, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.meta.EndedAt = time.Now().UTC()
	r.meta.State = state
	return r.writeMetaLocked(ctx)
}

func (r *Recorder) writeMeta(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeMetaLocked(ctx)
}

func (r *Recorder) writeMetaLocked(ctx context.Context) error {
	data, err := json.Marshal(r.meta)
	if err != nil {
		return fmt.Errorf("record: encode meta: %w", err)
	}
	if err := r.engine.Set(ctx, metaKey(r.meta.ID), data); err != nil {
		return fmt.Errorf("record: write meta: %w", err)
	}
	return nil
}
