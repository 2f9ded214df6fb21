// Package command provides the multiagent CLI commands.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, shared helpers
//   - config.go: Config loading and logger setup shared by commands
//   - run.go: Runs a scenario with metrics and recording
//   - replay.go: Lists, plays, deletes and prunes recorded runs
//   - scenarios.go: Lists registered scenarios
//   - version.go: Build information
//
// Commands follow a consistent pattern of loading configuration,
// doing the work, and formatting output with internal/cli/output.
package command
