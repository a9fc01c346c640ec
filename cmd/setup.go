package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotimcp/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the embedded example configuration to --path, refusing to overwrite an existing file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("%s %s\n", r.palette.OK("✓ Config written to"), path)
	r.writePlain("%s\n", r.palette.Help(fmt.Sprintf("Credentials can also come from %s, %s, %s, %s, %s, %s",
		shared.EnvSpotifyClientID, shared.EnvSpotifyClientSecret, shared.EnvPlaylistID,
		shared.EnvRedditClientID, shared.EnvRedditClientSecret, shared.EnvRedditUsername)))
	return nil
}
