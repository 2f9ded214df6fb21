package storage

import "time"

// KVStats contains storage engine statistics.
type KVStats struct {
	// TotalSize is the total disk usage in bytes.
	TotalSize uint64

	// LSMSize is the LSM tree size.
	LSMSize uint64

	// ValueLogSize is the value log size.
	ValueLogSize uint64

	// LastGCTime is the last GC run timestamp (Unix milliseconds).
	LastGCTime int64

	// GCRuns is the number of value log files rewritten by GC.
	GCRuns uint64
}

// KVConfig configures the embedded KV engine.
type KVConfig struct {
	// Dir is the storage directory.
	Dir string

	// Badger-specific configuration
	Badger BadgerConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic GC runs.
	// Zero disables automatic GC.
	// Default: 10m
	GCInterval time.Duration

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5 (run GC when 50% of data is stale)
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 16MB
	CacheSize int64

	// MemTableSize is the size of each memtable in bytes.
	// Default: 16MB
	MemTableSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 64MB
	ValueLogFileSize int64

	// NumMemtables is the number of memtables.
	// Default: 2
	NumMemtables int

	// SyncWrites enables sync writes (fsync after each write).
	// Default: false (a lost tail of a recording is acceptable)
	SyncWrites bool
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
// Recordings are small, so the sizes are well below Badger's own defaults.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       10 * time.Minute,
		GCThreshold:      0.5,
		CacheSize:        16 << 20, // 16MB
		MemTableSize:     16 << 20, // 16MB
		ValueLogFileSize: 64 << 20, // 64MB
		NumMemtables:     2,
		SyncWrites:       false,
	}
}
