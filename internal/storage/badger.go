package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// BadgerEngine is an embedded KV engine backed by Badger v3.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger logger.Logger

	closed atomic.Bool

	// Metrics (internal counters)
	lastGCTime atomic.Int64  // Unix milliseconds
	gcRuns     atomic.Uint64 // Value log files rewritten

	// Shutdown
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewBadgerEngine opens (or creates) the database in cfg.Dir.
func NewBadgerEngine(cfg KVConfig, log logger.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	// Build Badger options
	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: log.With("component", "badger")}

	badgerCfg := cfg.Badger
	if badgerCfg.CacheSize > 0 {
		opts.BlockCacheSize = badgerCfg.CacheSize
	}
	if badgerCfg.MemTableSize > 0 {
		opts.MemTableSize = badgerCfg.MemTableSize
	}
	if badgerCfg.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = badgerCfg.ValueLogFileSize
	}
	if badgerCfg.NumMemtables > 0 {
		opts.NumMemtables = badgerCfg.NumMemtables
	}
	opts.SyncWrites = badgerCfg.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	engine := &BadgerEngine{
		db:     db,
		cfg:    badgerCfg,
		logger: log,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	go engine.gcLoop()

	log.Debug("badger engine started",
		"dir", cfg.Dir,
		"cache_size", badgerCfg.CacheSize,
		"gc_interval", badgerCfg.GCInterval)

	return engine, nil
}

// Get retrieves a value by key.
func (e *BadgerEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair.
func (e *BadgerEngine) Set(ctx context.Context, key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes a key.
func (e *BadgerEngine) Delete(ctx context.Context, key []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// DeletePrefix removes every key starting with prefix.
func (e *BadgerEngine) DeletePrefix(ctx context.Context, prefix []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if len(prefix) == 0 {
		return fmt.Errorf("badger: refusing to drop empty prefix")
	}
	if err := e.db.DropPrefix(prefix); err != nil {
		return fmt.Errorf("badger: drop prefix: %w", err)
	}
	return nil
}

// Scan iterates over keys with a given prefix in key order. fn returns
// false to stop. Key and value are copies owned by fn.
func (e *BadgerEngine) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(item.KeyCopy(nil), value) {
				break
			}
		}
		return nil
	})
}

// ScanKeys is Scan without loading values.
func (e *BadgerEngine) ScanKeys(ctx context.Context, prefix []byte, fn func(key []byte) bool) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false // Only need keys
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !fn(it.Item().KeyCopy(nil)) {
				break
			}
		}
		return nil
	})
}

// GC runs value log garbage collection until nothing is left to
// rewrite. Returns the number of files rewritten.
func (e *BadgerEngine) GC(ctx context.Context) (int, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}

	startTime := time.Now()
	threshold := e.cfg.GCThreshold
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.5
	}

	runs := 0
	for ctx.Err() == nil {
		err := e.db.RunValueLogGC(threshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
				break
			}
			return runs, fmt.Errorf("gc: %w", err)
		}
		runs++
	}

	e.lastGCTime.Store(time.Now().UnixMilli())
	e.gcRuns.Add(uint64(runs))

	e.logger.Debug("gc completed",
		"rewritten", runs,
		"elapsed", time.Since(startTime))

	return runs, nil
}

// Stats returns storage statistics.
func (e *BadgerEngine) Stats(ctx context.Context) (*KVStats, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	lsm, vlog := e.db.Size()
	return &KVStats{
		TotalSize:    uint64(lsm + vlog),
		LSMSize:      uint64(lsm),
		ValueLogSize: uint64(vlog),
		LastGCTime:   e.lastGCTime.Load(),
		GCRuns:       e.gcRuns.Load(),
	}, nil
}

// Close stops background GC and closes the database. Safe to call
// more than once.
func (e *BadgerEngine) Close() error {
	e.closeOnce.Do(func() {
		e.logger.Debug("shutting down badger engine")

		close(e.stopCh)
		<-e.doneCh

		e.closed.Store(true)
		if err := e.db.Close(); err != nil {
			e.closeErr = fmt.Errorf("close db: %w", err)
		}
	})
	return e.closeErr
}

// RegisterMetrics registers disk usage gauges with reg. Gauges read
// the database size on every scrape.
func (e *BadgerEngine) RegisterMetrics(reg prometheus.Registerer) error {
	size := func(pick func(lsm, vlog int64) int64) func() float64 {
		return func() float64 {
			if e.closed.Load() {
				return 0
			}
			return float64(pick(e.db.Size()))
		}
	}

	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "multiagent",
			Subsystem: "badger",
			Name:      "lsm_size_bytes",
			Help:      "Badger LSM tree size in bytes",
		}, size(func(lsm, _ int64) int64 { return lsm })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "multiagent",
			Subsystem: "badger",
			Name:      "value_log_size_bytes",
			Help:      "Badger value log size in bytes",
		}, size(func(_, vlog int64) int64 { return vlog })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "multiagent",
			Subsystem: "badger",
			Name:      "last_gc_timestamp_seconds",
			Help:      "Unix timestamp of the last Badger GC run",
		}, func() float64 { return float64(e.lastGCTime.Load()) / 1000.0 }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "multiagent",
			Subsystem: "badger",
			Name:      "gc_rewrites_total",
			Help:      "Value log files rewritten by Badger garbage collection",
		}, func() float64 { return float64(e.gcRuns.Load()) }),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register badger metrics: %w", err)
		}
	}
	return nil
}

// gcLoop runs periodic garbage collection.
func (e *BadgerEngine) gcLoop() {
	defer close(e.doneCh)

	if e.cfg.GCInterval <= 0 {
		<-e.stopCh
		return
	}

	ticker := time.NewTicker(e.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if _, err := e.GC(ctx); err != nil {
				e.logger.Error("auto gc failed", "error", err)
			}
			cancel()

		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger adapts logger.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
