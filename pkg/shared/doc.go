// Package shared provides a lock-free read-copy-update cell for
// publishing immutable snapshots between goroutines.
//
// A Cell holds exactly one snapshot at a time. Writers never mutate a
// published snapshot; they build a new value and swap it in atomically.
// Readers obtain a Guard that pins the snapshot current at load time:
//
//	cell := shared.New(World{})
//	g := cell.Load()
//	cell.Store(next)   // g still observes the old World
//	fmt.Println(g.Version(), cell.Load().Version())
//
// Update performs read-copy-update with retry. The mutation function may
// run several times under contention and must therefore be a pure
// function of the value it is given.
//
// Snapshot types that own slices or maps should implement Cloner so that
// Update works on a deep copy; other types are copied by value.
package shared
