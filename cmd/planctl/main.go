package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/pkg/logger"
)

func newSourceFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "source",
		Usage:   "Planning source: fixture, sheets, workbook or postgres",
		EnvVars: []string{"SOURCE_KIND"},
	}
}

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)

	app := &cli.App{
		Name:  "planctl",
		Usage: "Operate the planning board from the command line",
		Commands: []*cli.Command{
			{
				Name:   "calendar",
				Usage:  "Print the planning calendar",
				Action: func(c *cli.Context) error { return runCalendar(c, cfg) },
			},
			{
				Name:  "export",
				Usage: "Export the planning grid to CSV or XLSX",
				Flags: []cli.Flag{
					newSourceFlag(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv or xlsx",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file; defaults to a timestamped name in the working directory",
					},
					&cli.BoolFlag{
						Name:  "fill-missing",
						Usage: "Write weeks without units as zeros instead of blanks",
						Value: cfg.Planning.FillMissingWeeks,
					},
					&cli.BoolFlag{
						Name:  "publish",
						Usage: "Upload the export to object storage instead of writing a file",
					},
				},
				Action: func(c *cli.Context) error { return runExport(c, cfg) },
			},
			{
				Name:  "seed",
				Usage: "Load a fixture into the planning tables",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db-url",
						Usage:   "Database connection string; defaults to DB_* settings",
						EnvVars: []string{"DATABASE_URL"},
					},
					&cli.StringFlag{
						Name:    "fixture",
						Usage:   "Fixture YAML file; defaults to the built-in demo data",
						EnvVars: []string{"SOURCE_FIXTURE_PATH"},
					},
				},
				Action: func(c *cli.Context) error { return runSeed(c, cfg) },
			},
			{
				Name:  "metrics",
				Usage: "Derive and summarize a dim1,dim2,value1,value2 CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Usage:    "Input CSV file",
						Required: true,
					},
				},
				Action: runMetrics,
			},
			{
				Name:  "download",
				Usage: "Download a published export from object storage",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Object key",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Destination file; defaults to the key's base name",
					},
				},
				Action: func(c *cli.Context) error { return runDownload(c, cfg) },
			},
			{
				Name:   "invalidate",
				Usage:  "Drop cached source reads",
				Flags:  []cli.Flag{newSourceFlag()},
				Action: func(c *cli.Context) error { return runInvalidate(c, cfg) },
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("planctl failed")
	}
}
