package host

import (
	"context"
	"time"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// DefaultFPS is the frame rate used when a host is given none.
const DefaultFPS = 30

// Headless calls frame at a fixed rate without any terminal output.
type Headless struct {
	// FPS is the frame rate. Zero selects DefaultFPS.
	FPS int
	// MaxFrames stops the host after that many frames. Zero runs until
	// the context is cancelled.
	MaxFrames int
	Logger    logger.Logger
}

// Run implements runtime.Host.
func (h *Headless) Run(ctx context.Context, frame func()) error {
	log := h.Logger
	if log == nil {
		log = logger.Nop()
	}

	ticker := time.NewTicker(frameInterval(h.FPS))
	defer ticker.Stop()

	log.Debug("headless host started", "fps", fpsOrDefault(h.FPS), "max_frames", h.MaxFrames)

	frames := 0
	for {
		select {
		case <-ctx.Done():
			log.Debug("headless host cancelled", "frames", frames)
			return nil
		case <-ticker.C:
			frame()
			frames++
			if h.MaxFrames > 0 && frames >= h.MaxFrames {
				log.Debug("headless host reached frame limit", "frames", frames)
				return nil
			}
		}
	}
}

func fpsOrDefault(fps int) int {
	if fps <= 0 {
		return DefaultFPS
	}
	return fps
}

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(fpsOrDefault(fps))
}
