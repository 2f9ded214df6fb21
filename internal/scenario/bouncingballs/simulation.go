package bouncingballs

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	deltaTimeScaling = 50.0
	gravity          = 9.81
	bounceDamping    = 0.90
	minRadius        = 5.0
	maxRadius        = 10.0
	restThreshold    = 0.5
)

// Simulation moves the balls. It is driven by the runtime worker only.
type Simulation struct {
	balls   []Ball
	paused  bool
	tick    uint64
	bounces uint64
	rng     *rand.Rand
}

// NewSimulation places cfg.BallCount balls at random inside the area.
// A zero seed picks a random one.
func NewSimulation(cfg Config, seed uint64) *Simulation {
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := &Simulation{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	s.addBalls(cfg.BallCount, cfg.Width, cfg.Height)
	return s
}

// Step implements runtime.Simulation.
func (s *Simulation) Step(cfg Config, commands []Command, dt time.Duration) (Snapshot, []Event, error) {
	var events []Event

	for _, c := range commands {
		switch c.Kind {
		case CommandPause:
			s.paused = true
			events = append(events, Event{Kind: EventPaused})
		case CommandResume:
			s.paused = false
			events = append(events, Event{Kind: EventResumed})
		case CommandShake:
			s.shake()
		case CommandAddBalls:
			s.addBalls(c.Count, cfg.Width, cfg.Height)
			events = append(events, Event{Kind: EventBallsChanged, Count: len(s.balls)})
		case CommandRemoveBalls:
			s.removeBalls(c.Count)
			events = append(events, Event{Kind: EventBallsChanged, Count: len(s.balls)})
		case CommandRecalculateArea:
			s.bounce(cfg.Width, cfg.Height)
		}
	}

	s.tick++
	if !s.paused {
		secs := dt.Seconds()
		s.applyGravity(secs)
		s.move(secs)
		if n := s.bounce(cfg.Width, cfg.Height); n > 0 {
			events = append(events, Event{Kind: EventBounced, Count: n})
		}
	}

	return s.snapshot(cfg), events, nil
}

func (s *Simulation) snapshot(cfg Config) Snapshot {
	return Snapshot{
		Balls:   append([]Ball(nil), s.balls...),
		Width:   cfg.Width,
		Height:  cfg.Height,
		Paused:  s.paused,
		Tick:    s.tick,
		Bounces: s.bounces,
	}
}

func (s *Simulation) addBalls(count int, maxX, maxY float64) {
	for i := 0; i < count; i++ {
		radius := minRadius + s.rng.Float64()*(maxRadius-minRadius)
		s.balls = append(s.balls, Ball{
			X:      s.between(radius, maxX-radius),
			Y:      s.between(radius, maxY-radius),
			DX:     s.between(-5, 5),
			DY:     s.between(-5, 5),
			Radius: radius,
			Color:  [3]uint8{uint8(s.rng.IntN(256)), uint8(s.rng.IntN(256)), uint8(s.rng.IntN(256))},
		})
	}
}

func (s *Simulation) removeBalls(count int) {
	if count >= len(s.balls) {
		s.balls = s.balls[:0]
		return
	}
	s.balls = s.balls[:len(s.balls)-count]
}

func (s *Simulation) shake() {
	for i := range s.balls {
		s.balls[i].DX = s.between(-50, 50)
		s.balls[i].DY = s.between(-50, -10)
	}
}

func (s *Simulation) applyGravity(dt float64) {
	for i := range s.balls {
		s.balls[i].DY += gravity * dt
	}
}

func (s *Simulation) move(dt float64) {
	dt *= deltaTimeScaling
	for i := range s.balls {
		s.balls[i].X += s.balls[i].DX * dt
		s.balls[i].Y += s.balls[i].DY * dt
	}
}

// bounce keeps every ball inside the area and returns how many hit a wall.
func (s *Simulation) bounce(width, height float64) int {
	hits := 0
	for i := range s.balls {
		b := &s.balls[i]

		inX := b.Radius <= b.X && b.X <= width-b.Radius
		inY := b.Radius <= b.Y && b.Y <= height-b.Radius
		if inX && inY {
			continue
		}
		hits++

		// Bigger balls lose more energy.
		damping := bounceDamping / (b.Radius / minRadius)

		if b.X-b.Radius < 0 {
			b.X = b.Radius
			b.DX = -b.DX * damping
		} else if b.X+b.Radius > width {
			b.X = width - b.Radius
			b.DX = -b.DX * damping
		}

		if b.Y-b.Radius < 0 {
			b.Y = b.Radius
			b.DY = -b.DY * damping
		} else if b.Y+b.Radius > height {
			b.Y = height - b.Radius
			b.DY = -b.DY * damping
			if math.Abs(b.DY) < restThreshold {
				b.DY = 0
			}
		}
	}
	s.bounces += uint64(hits)
	return hits
}

// between returns a random value in [lo, hi), or lo when the range is empty.
func (s *Simulation) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
