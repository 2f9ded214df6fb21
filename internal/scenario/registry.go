package scenario

import (
	"sort"
	"sync"

	"github.com/yndnr/multiagent-go/internal/core/domain"
)

// Registry maps names to scenarios.
type Registry struct {
	mu        sync.RWMutex
	scenarios map[string]Scenario
}

// NewRegistry creates a registry holding the given scenarios.
// It panics on duplicate names.
func NewRegistry(scenarios ...Scenario) *Registry {
	r := &Registry{scenarios: make(map[string]Scenario)}
	for _, s := range scenarios {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a scenario. A name may be registered only once.
func (r *Registry) Register(s Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenarios[s.Name()]; ok {
		return domain.ErrScenarioExists.WithDetails(s.Name())
	}
	r.scenarios[s.Name()] = s
	return nil
}

// Get returns the scenario registered under name.
func (r *Registry) Get(name string) (Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenarios[name]
	if !ok {
		return nil, domain.ErrScenarioNotFound.WithDetails(name)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
