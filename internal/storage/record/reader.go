package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/storage"
)

// Frame is one recorded snapshot.
type Frame struct {
	Version uint64
	Data    json.RawMessage
}

// Reader lists and replays recorded runs.
type Reader struct {
	engine *storage.BadgerEngine
}

// NewReader returns a reader over engine.
func NewReader(engine *storage.BadgerEngine) *Reader {
	return &Reader{engine: engine}
}

// Runs returns all recorded runs, oldest first.
func (r *Reader) Runs(ctx context.Context) ([]RunMeta, error) {
	var (
		runs    []RunMeta
		scanErr error
	)

	err := r.engine.Scan(ctx, []byte(metaPrefix), func(key, value []byte) bool {
		var m RunMeta
		if err := json.Unmarshal(value, &m); err != nil {
			scanErr = fmt.Errorf("record: decode meta %q: %w", key, err)
			return false
		}
		runs = append(runs, m)
		return true
	})
	if err != nil {
		return nil, err
	}
	return runs, scanErr
}

// Run returns the metadata of one run.
func (r *Reader) Run(ctx context.Context, id string) (RunMeta, error) {
	value, err := r.engine.Get(ctx, metaKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return RunMeta{}, domain.ErrRunNotFound.WithDetails(id)
	}
	if err != nil {
		return RunMeta{}, err
	}

	var m RunMeta
	if err := json.Unmarshal(value, &m); err != nil {
		return RunMeta{}, fmt.Errorf("record: decode meta %q: %w", id, err)
	}
	return m, nil
}

// Latest returns the most recently started run.
func (r *Reader) Latest(ctx context.Context) (RunMeta, error) {
	runs, err := r.Runs(ctx)
	if err != nil {
		return RunMeta{}, err
	}
	if len(runs) == 0 {
		return RunMeta{}, domain.ErrRunNotFound.WithDetails("no runs recorded")
	}
	return runs[len(runs)-1], nil
}

// Resolve finds a run by full ID or unique ID prefix. An empty id
// selects the latest run.
func (r *Reader) Resolve(ctx context.Context, id string) (RunMeta, error) {
	if id == "" {
		return r.Latest(ctx)
	}

	runs, err := r.Runs(ctx)
	if err != nil {
		return RunMeta{}, err
	}

	var match []RunMeta
	for _, m := range runs {
		if m.ID == id {
			return m, nil
		}
		if strings.HasPrefix(m.ID, id) {
			match = append(match, m)
		}
	}

	switch len(match) {
	case 0:
		return RunMeta{}, domain.ErrRunNotFound.WithDetails(id)
	case 1:
		return match[0], nil
	default:
		return RunMeta{}, domain.ErrRunNotFound.WithDetails(fmt.Sprintf("%q matches %d runs", id, len(match)))
	}
}

// Frames calls fn for each frame of run id in version order until fn
// returns false.
func (r *Reader) Frames(ctx context.Context, id string, fn func(Frame) bool) error {
	prefix := framePrefix(id)
	var decodeErr error

	err := r.engine.Scan(ctx, prefix, func(key, value []byte) bool {
		v, err := frameVersion(prefix, key)
		if err != nil {
			decodeErr = err
			return false
		}
		return fn(Frame{Version: v, Data: value})
	})
	if err != nil {
		return err
	}
	return decodeErr
}

// Delete removes a run and its frames.
func (r *Reader) Delete(ctx context.Context, id string) error {
	if err := r.engine.DeletePrefix(ctx, framePrefix(id)); err != nil {
		return err
	}
	return r.engine.Delete(ctx, metaKey(id))
}

// Prune deletes the oldest runs so that at most keep remain. Returns
// the number of runs deleted. A non-positive keep deletes nothing.
func (r *Reader) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	runs, err := r.Runs(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for len(runs)-deleted > keep {
		if err := r.Delete(ctx, runs[deleted].ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
