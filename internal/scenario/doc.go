// Package scenario names runnable simulations and gives them what they
// need to run: parameters, runtime options, a host choice and an
// optional recorder.
//
// Each scenario builds its own typed runtime.Manager, so the registry
// only deals in the untyped Scenario interface.
package scenario
