package bouncingballs

// Config is the area published by the presentation. Width and Height
// are in world units (pixels).
type Config struct {
	BallCount int     `json:"ball_count"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// Ball is one ball in world units.
type Ball struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	DX     float64  `json:"dx"`
	DY     float64  `json:"dy"`
	Radius float64  `json:"radius"`
	Color  [3]uint8 `json:"color"`
}

// Snapshot is what the simulation publishes every tick. Balls is never
// shared with the simulation's working state.
type Snapshot struct {
	Balls   []Ball  `json:"balls"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Paused  bool    `json:"paused"`
	Tick    uint64  `json:"tick"`
	Bounces uint64  `json:"bounces"`
}

// CommandKind identifies a Command.
type CommandKind int

const (
	CommandPause CommandKind = iota
	CommandResume
	CommandShake
	CommandAddBalls
	CommandRemoveBalls
	CommandRecalculateArea
)

// Command is sent from the presentation to the simulation.
type Command struct {
	Kind  CommandKind
	Count int
}

// EventKind identifies an Event.
type EventKind int

const (
	EventBounced EventKind = iota
	EventPaused
	EventResumed
	EventBallsChanged
)

// Event is sent from the simulation to the presentation. Count is the
// number of bounces for EventBounced and the ball count for
// EventBallsChanged.
type Event struct {
	Kind  EventKind
	Count int
}
