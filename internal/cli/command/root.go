package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/multiagent-go/internal/cli/output"
	"github.com/yndnr/multiagent-go/internal/infra/buildinfo"
	"github.com/yndnr/multiagent-go/internal/scenario"
	"github.com/yndnr/multiagent-go/internal/scenario/bouncingballs"
)

const scenariosKey = "scenarios"

// App creates the CLI application with the built-in scenarios.
func App() *cli.App {
	return NewApp(DefaultScenarios())
}

// DefaultScenarios returns a registry holding every built-in scenario.
func DefaultScenarios() *scenario.Registry {
	return scenario.NewRegistry(bouncingballs.New())
}

// NewApp creates the CLI application for the given scenarios.
func NewApp(scenarios *scenario.Registry) *cli.App {
	return &cli.App{
		Name:    "multiagent",
		Usage:   "Run simulations on a fixed-rate worker with a live presentation",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			ReplayCommand(),
			ScenariosCommand(),
			VersionCommand(),
		},
		Metadata: map[string]any{
			scenariosKey: scenarios,
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (YAML)",
			EnvVars: []string{"MULTIAGENT_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: json, text, console",
		},
		&cli.StringFlag{
			Name:  "log-backend",
			Usage: "Logger backend: zap, slog",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Append logs to this file",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, plain, json, yaml",
			Value:   string(output.FormatTable),
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigFile string
	Output     string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile: c.String("config"),
		Output:     c.String("output"),
	}
}

// GetScenarios retrieves the scenario registry from context.
func GetScenarios(c *cli.Context) *scenario.Registry {
	if r, ok := c.App.Metadata[scenariosKey].(*scenario.Registry); ok {
		return r
	}
	return DefaultScenarios()
}

// getFormatter returns the formatter selected by --output.
func getFormatter(c *cli.Context) (output.Formatter, error) {
	format, err := output.ParseFormat(ParseGlobalFlags(c).Output)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(format), nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
