package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriod(t *testing.T) {
	tests := []struct {
		hz   int
		want time.Duration
	}{
		{30, time.Second / 30},
		{60, time.Second / 60},
		{1, time.Second},
		{0, time.Second / DefaultFrequencyHz},
		{-4, time.Second / DefaultFrequencyHz},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, Period(tt.hz), "Period(%d)", tt.hz)
	}
}

func TestBudget(t *testing.T) {
	period := Period(30)

	tests := []struct {
		name  string
		spent time.Duration
		want  time.Duration
	}{
		{"fast tick sleeps the remainder", 10 * time.Millisecond, period - 10*time.Millisecond},
		{"overrun does not sleep", 40 * time.Millisecond, 0},
		{"exact period does not sleep", period, 0},
		{"zero work sleeps a full period", 0, period},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Budget(period, tt.spent))
		})
	}

	// 33.33ms - 10ms
	assert.InDelta(t, 23.33, float64(Budget(period, 10*time.Millisecond))/float64(time.Millisecond), 0.01)
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options[int]{}.withDefaults()

	assert.Equal(t, DefaultFrequencyHz, o.FrequencyHz)
	assert.Equal(t, DefaultChannelCapacity, o.ChannelCapacity)
	assert.Equal(t, DefaultShutdownTimeout, o.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, o.ShutdownTimeout)
	assert.NotEmpty(t, o.RunID)
	assert.NotNil(t, o.Logger)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "run IDs sort by creation")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "timed_out", StateTimedOut.String())
	assert.Equal(t, "unknown", State(99).String())

	assert.False(t, StateRunning.Terminal())
	assert.True(t, StatePanicked.Terminal())
}
