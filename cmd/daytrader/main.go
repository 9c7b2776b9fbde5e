package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "daytrader",
		Usage: "Reversal-counting day trader with a local control API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("DAYTRADER_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the trading loop until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the run file",
						Required: true,
						Sources:  cli.EnvVars("DAYTRADER_CONFIG"),
					},
					&cli.BoolFlag{
						Name:  "start-trading",
						Usage: "Start with the trading switch on, overriding the run file",
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the run file",
				Action: schemaAction,
			},
			{
				Name:  "init",
				Usage: "Write a default run file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "Where to write the run file",
						Value: "daytrader.yaml",
					},
				},
				Action: initAction,
			},
			{
				Name:  "watch",
				Usage: "Edit the watch-list file offline",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "Watch-list file",
						Value: "watchlist.yaml",
					},
				},
				Commands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add symbols to the watch-list",
						ArgsUsage: "SYMBOL...",
						Action:    watchAddAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove symbols from the watch-list",
						ArgsUsage: "SYMBOL...",
						Action:    watchRemoveAction,
					},
					{
						Name:   "list",
						Usage:  "Print the watch-list",
						Action: watchListAction,
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
