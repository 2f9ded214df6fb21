// Package storage provides the embedded key-value engine used for run
// recordings.
//
// BadgerEngine wraps Badger v3 with prefix scans, prefix deletion,
// periodic value log GC and Prometheus gauges for disk usage. Callers
// build their own key layout on top; see package record.
package storage
