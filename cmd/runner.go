package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/services"
	"github.com/desertthunder/spotimcp/internal/shared"
	"github.com/desertthunder/spotimcp/internal/tasks"
	"github.com/desertthunder/spotimcp/internal/tools"
	"github.com/desertthunder/spotimcp/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	spotify tasks.PlaylistReader
	reddit  tasks.Opener
	logger  *log.Logger
	input   io.Reader
	output  io.Writer
	palette *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Nil Config, Spotify and Reddit are resolved in [Runner.Before] from the config file, dotenv files and environment.
type RunnerOpts struct {
	Config  *shared.Config
	Spotify tasks.PlaylistReader
	Reddit  tasks.Opener
	Logger  *log.Logger
	Input   io.Reader
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		reddit:  opts.Reddit,
		logger:  opts.Logger,
		input:   opts.Input,
		output:  opts.Output,
		palette: ui.Default,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, crawlCommand, playlistCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads dotenv files and configuration, applies the log level, and builds the upstream clients.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := shared.LoadEnvFiles(cmd.StringSlice("env-file")...); err != nil {
		return ctx, err
	}

	if r.config == nil {
		config, err := shared.ResolveConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	levelName := r.config.LogLevel
	if flag := cmd.String("log-level"); flag != "" {
		levelName = flag
	}
	level, err := shared.ParseLogLevel(levelName)
	if err != nil {
		return ctx, fmt.Errorf("%w: log level %q", err, levelName)
	}
	shared.SetLogLevel(r.logger, level)

	opts := services.ServiceOpts{Logger: r.logger}
	if r.spotify == nil {
		r.spotify = services.NewSpotifyService(r.config.Spotify, opts)
	}
	if r.reddit == nil {
		r.reddit = services.NewRedditService(r.config.Reddit, opts)
	}

	return ctx, nil
}

// crawler builds a crawler from the [reddit] settings.
func (r *Runner) crawler() *tasks.Crawler {
	cfg := r.config.Reddit
	return tasks.NewCrawler(r.reddit, tasks.CrawlOpts{
		PostLimit:    cfg.PostLimit,
		CommentLimit: cfg.CommentLimit,
		Concurrency:  cfg.Concurrency,
		Keywords:     cfg.Keywords,
		Logger:       r.logger,
	})
}

func (r *Runner) playlistEngine(playlistID string) *tasks.PlaylistEngine {
	if playlistID == "" {
		playlistID = r.config.Spotify.PlaylistID
	}
	return tasks.NewPlaylistEngine(r.spotify, playlistID, r.logger)
}

// toolset builds both tools under the given names.
func (r *Runner) toolset(names tools.Names) []tools.Tool {
	return []tools.Tool{
		tools.NewPlaylistTool(names.Playlist, r.playlistEngine("")),
		tools.NewCrawlTool(names.Crawl, r.config.Reddit.Subreddit, r.crawler(), r.logger),
	}
}

// logProgress drains progress updates into debug logs until the channel is closed.
func (r *Runner) logProgress(progress <-chan tasks.ProgressUpdate, done chan<- struct{}) {
	defer close(done)
	for update := range progress {
		r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
