package host

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadless_MaxFrames(t *testing.T) {
	h := &Headless{FPS: 500, MaxFrames: 4}

	frames := 0
	require.NoError(t, h.Run(context.Background(), func() { frames++ }))
	assert.Equal(t, 4, frames)
}

func TestHeadless_ContextCancel(t *testing.T) {
	h := &Headless{FPS: 500}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	frames := 0
	start := time.Now()
	require.NoError(t, h.Run(ctx, func() { frames++ }))

	assert.Greater(t, frames, 0)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/DefaultFPS, frameInterval(0))
	assert.Equal(t, 10*time.Millisecond, frameInterval(100))
}
