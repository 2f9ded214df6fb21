package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/multiagent-go/internal/core/domain"
)

type stubScenario string

func (s stubScenario) Name() string { return string(s) }
func (s stubScenario) Description() string { return "stub" }
func (s stubScenario) Run(context.Context, Env) error { return nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry(stubScenario("life"))

	require.NoError(t, r.Register(stubScenario("balls")))

	s, err := r.Get("balls")
	require.NoError(t, err)
	assert.Equal(t, "balls", s.Name())

	assert.Equal(t, []string{"balls", "life"}, r.Names())
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry(stubScenario("balls"))

	err := r.Register(stubScenario("balls"))
	assert.True(t, errors.Is(err, domain.ErrScenarioExists))
	assert.Contains(t, err.Error(), "balls")
}

func TestRegistry_NotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("missing")
	assert.True(t, errors.Is(err, domain.ErrScenarioNotFound))
}

func TestNewRegistry_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(stubScenario("a"), stubScenario("a"))
	})
}
