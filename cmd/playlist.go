package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/spotimcp/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Playlist prints the artist/track pairs of a playlist, or writes them to --output.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	playlistID := cmd.String("id")
	if playlistID == "" {
		playlistID = r.config.Spotify.PlaylistID
	}

	entries, err := r.playlistEngine(playlistID).Entries(ctx, nil)
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		data, err := formatter.Export(format, playlistID, entries)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		r.logger.Info(r.palette.OK("playlist exported"), "path", path, "entries", len(entries), "format", format)
		return nil
	}

	return formatter.Write(r.output, format, playlistID, entries)
}
