package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	appboard "github.com/housefest/board-service/internal/app/board"
	"github.com/housefest/board-service/internal/chart"
	"github.com/housefest/board-service/internal/config"
	"github.com/housefest/board-service/internal/ingest"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/poller"
	"github.com/housefest/board-service/internal/server"
	"github.com/housefest/board-service/internal/store"
	"github.com/housefest/board-service/internal/timeutil"
)

const (
	flagLayout = "layout"
	flagFile   = "file"
	flagOut    = "out"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	layoutFlag := &cli.StringFlag{
		Name:    flagLayout,
		Usage:   "board layout YAML (defaults to LAYOUT_FILE, then the built-in layout)",
		EnvVars: []string{"LAYOUT_FILE"},
	}

	return &cli.App{
		Name:      "boardctl",
		Usage:     "inspect the house festival board without running the server",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:  "snapshot",
				Usage: "run one fetch cycle and print the board view as JSON",
				Flags: []cli.Flag{layoutFlag},
				Action: func(c *cli.Context) error {
					svc, err := fetchBoard(c, stderr)
					if err != nil {
						return err
					}
					payload, err := sonic.ConfigStd.MarshalIndent(svc.Board(), "", "  ")
					if err != nil {
						return crerr.Wrap(err, "encode board")
					}
					_, err = fmt.Fprintln(c.App.Writer, string(payload))
					return err
				},
			},
			{
				Name:  "layout",
				Usage: "board layout tools",
				Subcommands: []*cli.Command{
					{
						Name:  "validate",
						Usage: "parse and validate a layout file",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: flagFile, Aliases: []string{"f"}, Usage: "layout YAML; the built-in layout when empty"},
						},
						Action: func(c *cli.Context) error {
							layout, err := config.LoadLayout(c.String(flagFile))
							if err != nil {
								return err
							}
							_, err = fmt.Fprintf(c.App.Writer, "layout ok: %d teams, %d events, %d schedule windows\n",
								len(layout.Teams), len(layout.Events()), len(layout.Schedule))
							return err
						},
					},
				},
			},
			{
				Name:  "chart",
				Usage: "run one fetch cycle and render the overall standings as PNG",
				Flags: []cli.Flag{
					layoutFlag,
					&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Value: "standings.png", Usage: "output file"},
				},
				Action: func(c *cli.Context) error {
					svc, err := fetchBoard(c, stderr)
					if err != nil {
						return err
					}
					png, err := chart.RenderStandings(svc.OverallStandings(), svc.Layout().Teams)
					if err != nil {
						return err
					}
					out := c.String(flagOut)
					if err := os.WriteFile(out, png, 0o644); err != nil {
						return crerr.Wrapf(err, "write %s", out)
					}
					_, err = fmt.Fprintf(c.App.Writer, "wrote %s (%d bytes)\n", out, len(png))
					return err
				},
			},
		},
	}
}

// fetchBoard runs a single poller cycle against the configured source.
func fetchBoard(c *cli.Context, logOut io.Writer) (*appboard.Service, error) {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "boardctl",
		Output:  logOut,
	})

	layout, err := config.LoadLayout(c.String(flagLayout))
	if err != nil {
		return nil, err
	}

	source := server.BuildSource(cfg, logger, nil)
	fetcher := ingest.NewFetcher(source, layout.Schedule, layout.Resolver(), logger)
	memoryStore := store.NewMemoryStore()
	plr := poller.New(fetcher, memoryStore, logger, nil, poller.Options{
		CycleTimeout: cfg.CycleTimeout,
		Location:     timeutil.ResolveLocation(cfg.Timezone),
	})
	if err := plr.RunOnce(c.Context); err != nil {
		return nil, crerr.Wrapf(err, "fetch from %s", cfg.Provider)
	}
	return appboard.NewService(memoryStore, layout), nil
}
