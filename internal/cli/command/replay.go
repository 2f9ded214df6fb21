package command

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/multiagent-go/internal/cli/output"
	"github.com/yndnr/multiagent-go/internal/scenario"
	"github.com/yndnr/multiagent-go/internal/storage"
	"github.com/yndnr/multiagent-go/internal/storage/record"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// ReplayCommand returns the replay command group.
func ReplayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Inspect and play recorded runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Recording directory (default: record.dir from config)",
			},
		},
		Subcommands: []*cli.Command{
			replayListCommand(),
			replayPlayCommand(),
			replayDeleteCommand(),
			replayPruneCommand(),
		},
	}
}

func replayListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List recorded runs, oldest first",
		Action: func(c *cli.Context) error {
			return withReader(c, func(r *record.Reader) error {
				runs, err := r.Runs(c.Context)
				if err != nil {
					return err
				}
				if runs == nil {
					runs = []record.RunMeta{}
				}
				formatter, err := getFormatter(c)
				if err != nil {
					return err
				}
				return formatter.Format(c.App.Writer, runList(runs))
			})
		},
	}
}

func replayPlayCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a recorded run in the terminal",
		ArgsUsage: "[run-id]",
		Description: `Plays the run whose ID starts with run-id, or the latest run when no
ID is given.`,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "fps", Usage: "Playback frames per second (0 plays as fast as possible)", Value: 30},
			&cli.BoolFlag{Name: "last", Usage: "Only print the final frame"},
			&cli.IntFlag{Name: "cols", Usage: "Terminal columns (default: recorded area)"},
			&cli.IntFlag{Name: "rows", Usage: "Terminal rows (default: recorded area)"},
		},
		Action: replayPlayAction,
	}
}

func replayPlayAction(c *cli.Context) error {
	return withReader(c, func(r *record.Reader) error {
		meta, err := r.Resolve(c.Context, c.Args().First())
		if err != nil {
			return err
		}

		sc, err := GetScenarios(c).Get(meta.Scenario)
		if err != nil {
			return err
		}
		renderer, ok := sc.(scenario.Renderer)
		if !ok {
			return fmt.Errorf("scenario %q does not support replay", meta.Scenario)
		}

		var interval time.Duration
		if fps := c.Int("fps"); fps > 0 {
			interval = time.Second / time.Duration(fps)
		}
		cols, rows := c.Int("cols"), c.Int("rows")
		w := c.App.Writer

		var (
			last      record.Frame
			renderErr error
		)
		err = r.Frames(c.Context, meta.ID, func(f record.Frame) bool {
			if c.Bool("last") {
				last = f
				return true
			}

			screen, err := renderer.Render(f.Data, cols, rows)
			if err != nil {
				renderErr = err
				return false
			}
			fmt.Fprint(w, clearScreen+screen+"\n")

			if interval == 0 {
				return c.Context.Err() == nil
			}
			select {
			case <-c.Context.Done():
				return false
			case <-time.After(interval):
				return true
			}
		})
		if err != nil {
			return err
		}
		if renderErr != nil {
			return renderErr
		}

		if c.Bool("last") {
			if last.Data == nil {
				return fmt.Errorf("run %s has no frames", meta.ID)
			}
			screen, err := renderer.Render(last.Data, cols, rows)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, screen)
		}
		return nil
	})
}

func replayDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a recorded run",
		ArgsUsage: "<run-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("run ID is required")
			}
			return withReader(c, func(r *record.Reader) error {
				meta, err := r.Resolve(c.Context, c.Args().First())
				if err != nil {
					return err
				}
				if err := r.Delete(c.Context, meta.ID); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Deleted run %s\n", meta.ID)
				return nil
			})
		},
	}
}

func replayPruneCommand() *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "Delete the oldest runs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "keep", Usage: "Runs to keep (default: record.keep_runs from config)"},
		},
		Action: func(c *cli.Context) error {
			return withReader(c, func(r *record.Reader) error {
				keep := c.Int("keep")
				if !c.IsSet("keep") {
					cfg, _, err := loadConfig(c, nil)
					if err != nil {
						return err
					}
					keep = cfg.Record.KeepRuns
				}

				n, err := r.Prune(c.Context, keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Pruned %d run(s), keeping %d\n", n, keep)
				return nil
			})
		},
	}
}

// withReader opens the recording database for the duration of fn.
func withReader(c *cli.Context, fn func(*record.Reader) error) error {
	cfg, _, err := loadConfig(c, map[string]string{"dir": "record.dir"})
	if err != nil {
		return err
	}

	dir := cfg.Record.Dir
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("no recordings in %s: %w", dir, err)
	}

	log, closeLog, err := initLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	kvCfg := storage.DefaultKVConfig(dir)
	kvCfg.Badger.GCInterval = 0
	engine, err := storage.NewBadgerEngine(kvCfg, log)
	if err != nil {
		return err
	}
	defer engine.Close()

	return fn(record.NewReader(engine))
}

// runList renders recorded runs as a table.
type runList []record.RunMeta

func (l runList) Table() *output.Table {
	t := &output.Table{}
	t.SetHeaders("ID", "SCENARIO", "STARTED", "DURATION", "FRAMES", "STATE")
	for _, m := range l {
		duration, state := "-", m.State
		if d := m.Duration(); d > 0 {
			duration = d.Round(time.Millisecond).String()
		}
		if state == "" {
			state = "incomplete"
		}
		t.AddRow(
			m.ID,
			m.Scenario,
			m.StartedAt.Local().Format(time.DateTime),
			duration,
			strconv.FormatUint(m.Frames, 10),
			state,
		)
	}
	return t
}

var _ output.Tabular = runList(nil)
