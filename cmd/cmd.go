// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// searchCommand handles catalog search and resolution
func searchCommand(r *Runner) *cli.Command {
	searchFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Bypass the local suggestion cache",
		},
		&cli.BoolFlag{
			Name:  "commit",
			Usage: "Record the resolution in the selection history",
		},
	}

	return &cli.Command{
		Name:  "search",
		Usage: "Search the airplay catalog",
		Commands: []*cli.Command{
			{
				Name:    "artists",
				Aliases: []string{"a"},
				Usage:   "Search artists by name",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags:  searchFlags,
				Action: r.SearchArtists,
			},
			{
				Name:    "songs",
				Aliases: []string{"s"},
				Usage:   "Search songs by title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags:  searchFlags,
				Action: r.SearchSongs,
			},
			{
				Name:  "history",
				Usage: "Show recently committed selections",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Restrict to one scope (artists, songs)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of selections to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SearchHistory,
			},
		},
	}
}

// stationsCommand lists the backend's station directory
func stationsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "List the station directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Stations,
	}
}

// playsCommand fetches weekly play series
func playsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "plays",
		Usage: "Show the weekly play series for a song",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "song",
				Aliases:  []string{"s"},
				Usage:    "Song ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "station",
				Usage: "Station ID (omit for the national aggregate)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Plays,
	}
}

// reportCommand assembles and exports play-series reports
func reportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Assemble play-series reports",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Assemble a report for one song",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "song",
						Aliases:  []string{"s"},
						Usage:    "Song ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "station",
						Usage: "Station ID to break out (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "all-stations",
						Usage: "Break out every station in the directory",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: text, json, csv, markdown",
						Value: "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory (defaults to stdout for text and json)",
					},
				},
				Action: r.ReportRun,
			},
			{
				Name:      "bulk",
				Usage:     "Export reports for many songs concurrently",
				ArgsUsage: "SONG_ID [SONG_ID...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, markdown, txt",
						Value: "json",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Output directory (defaults to airplay_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent writers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Backend requests per second",
					},
					&cli.BoolFlag{
						Name:  "all-stations",
						Usage: "Include per-station series in each report",
					},
				},
				Action: r.ReportBulk,
			},
		},
	}
}

// openCommand opens the admin web UI in the default browser
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open the admin web UI in the browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "song",
				Usage: "Open the detail page for a song ID",
			},
		},
		Action: r.Open,
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive search and report browser",
		Action: r.TUI,
	}
}
