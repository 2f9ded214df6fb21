package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/multiagent-go/internal/cli/output"
	"github.com/yndnr/multiagent-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			formatter, err := getFormatter(c)
			if err != nil {
				return err
			}
			return formatter.Format(c.App.Writer, versionInfo(buildinfo.Get()))
		},
	}
}

type versionInfo buildinfo.Info

func (v versionInfo) Table() *output.Table {
	t := &output.Table{}
	t.SetHeaders("FIELD", "VALUE")
	t.AddRow("version", v.Version)
	t.AddRow("commit", v.Commit)
	t.AddRow("built", v.BuildTime)
	t.AddRow("go", v.GoVersion)
	t.AddRow("platform", v.Platform)
	return t
}
