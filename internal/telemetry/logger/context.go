package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "multiagent.logger"
	// runIDKey is the context key for the run ID.
	runIDKey contextKey = "multiagent.run_id"
	// scenarioKey is the context key for the scenario name.
	scenarioKey contextKey = "multiagent.scenario"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run ID from context.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithScenario adds a scenario name to the context.
func WithScenario(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, scenarioKey, name)
}

// ScenarioFromContext extracts the scenario name from context.
func ScenarioFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(scenarioKey).(string); ok {
		return name
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger
// with the run ID and scenario name from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if runID := RunIDFromContext(ctx); runID != "" {
		l = l.With("run_id", runID)
	}

	if name := ScenarioFromContext(ctx); name != "" {
		l = l.With("scenario", name)
	}

	return l
}
