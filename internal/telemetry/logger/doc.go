// Package logger provides structured logging for multiagent.
//
// Two backends sit behind the Logger interface:
//
//   - zap.go: go.uber.org/zap sugared logger (default for the CLI)
//   - logger.go: log/slog handlers
//   - context.go: context propagation of the logger, run ID and scenario
//
// Both backends share one level. SetLevel changes it at runtime, which is
// how the config watcher applies an edited log.level without a restart.
// Nop returns a logger for tests and library defaults.
package logger
