package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/multiagent-go/internal/cli/output"
	"github.com/yndnr/multiagent-go/internal/scenario"
)

// ScenariosCommand returns the scenarios command.
func ScenariosCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "List available scenarios",
		Action: func(c *cli.Context) error {
			formatter, err := getFormatter(c)
			if err != nil {
				return err
			}
			return formatter.Format(c.App.Writer, describeScenarios(GetScenarios(c)))
		},
	}
}

type scenarioInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Replay      bool   `json:"replay" yaml:"replay"`
}

type scenarioList []scenarioInfo

func describeScenarios(r *scenario.Registry) scenarioList {
	names := r.Names()
	out := make(scenarioList, 0, len(names))
	for _, name := range names {
		sc, err := r.Get(name)
		if err != nil {
			continue
		}
		_, replay := sc.(scenario.Renderer)
		out = append(out, scenarioInfo{
			Name:        sc.Name(),
			Description: sc.Description(),
			Replay:      replay,
		})
	}
	return out
}

func (l scenarioList) Table() *output.Table {
	t := &output.Table{}
	t.SetHeaders("NAME", "DESCRIPTION", "REPLAY")
	for _, s := range l {
		replay := "no"
		if s.Replay {
			replay = "yes"
		}
		t.AddRow(s.Name, s.Description, replay)
	}
	return t
}
