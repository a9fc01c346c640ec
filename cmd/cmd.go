// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/spotimcp/internal/formatter"
	"github.com/desertthunder/spotimcp/internal/shared"
	"github.com/urfave/cli/v3"
)

// globalFlags are accepted before any command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringSliceFlag{
			Name:  "env-file",
			Usage: "Dotenv file to load (repeatable, default: .env)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error); overrides " + shared.EnvLogLevel,
		},
	}
}

// serveCommand runs the MCP tool server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MCP tool server",
		Commands: []*cli.Command{
			{
				Name:   "stdio",
				Usage:  "Serve tools over stdin/stdout",
				Action: r.ServeStdio,
			},
			{
				Name:  "http",
				Usage: "Serve tools over stateless streamable HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Host to bind (default: [server] host)",
					},
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on (default: [server] port)",
					},
				},
				Action: r.ServeHTTP,
			},
		},
	}
}

// crawlCommand runs one subreddit crawl
func crawlCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "crawl",
		Usage: "Crawl a subreddit for band recommendations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "subreddit",
				Aliases: []string{"s"},
				Usage:   "Subreddit to crawl (default: [reddit] subreddit)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the crawl result as JSON",
			},
		},
		Action: r.Crawl,
	}
}

// playlistCommand prints the configured playlist
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Print artist/track pairs of a Spotify playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Playlist ID (default: " + shared.EnvPlaylistID + ")",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, csv, markdown, json)",
				Value:   string(formatter.Text),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Playlist,
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination path",
						Value: "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
