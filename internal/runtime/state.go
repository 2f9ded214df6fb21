package runtime

// State is the lifecycle state of a Manager.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
	StatePanicked
	StateTimedOut
	StateFailed
	StatePresentationFailed
)

var stateNames = map[State]string{
	StateIdle:               "idle",
	StateRunning:            "running",
	StateStopping:           "stopping",
	StateStopped:            "stopped",
	StatePanicked:           "panicked",
	StateTimedOut:           "timed_out",
	StateFailed:             "failed",
	StatePresentationFailed: "presentation_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the manager can no longer change state.
func (s State) Terminal() bool {
	switch s {
	case StateStopped, StatePanicked, StateTimedOut, StateFailed, StatePresentationFailed:
		return true
	}
	return false
}
