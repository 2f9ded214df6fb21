// Package record persists run snapshots in the storage engine and reads
// them back for replay.
//
// Key layout:
//
//	meta/<run id>                   RunMeta as JSON
//	run/<run id>/<version, 8 bytes> snapshot as JSON
//
// Run IDs are ULIDs, so key order is start order and frame order is
// version order.
package record
