package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/shared"
)

// PlaylistEngine renders a single configured playlist as artist/track pairs.
type PlaylistEngine struct {
	spotify    PlaylistReader
	playlistID string
	logger     *log.Logger
}

// NewPlaylistEngine creates a new PlaylistEngine reading playlistID through spotify.
func NewPlaylistEngine(spotify PlaylistReader, playlistID string, logger *log.Logger) *PlaylistEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PlaylistEngine{spotify: spotify, playlistID: playlistID, logger: logger}
}

// Entries returns the playlist's artist/track entries.
//
// Configuration and authentication failures are returned. Any other fetch failure is logged and yields an empty list.
func (e *PlaylistEngine) Entries(ctx context.Context, progress chan<- ProgressUpdate) ([]models.PlaylistEntry, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	sendProgress(progress, fetchPlaylistUpdate(e.playlistID))

	entries, err := e.spotify.PlaylistTracks(ctx, e.playlistID)
	if err != nil {
		if errors.Is(err, shared.ErrMissingConfig) || errors.Is(err, shared.ErrAuthFailed) {
			return nil, err
		}
		e.logger.Warn("found no valid playlist data", "playlist", e.playlistID, "error", err)
		return []models.PlaylistEntry{}, nil
	}

	return entries, nil
}

// TitlesAndArtists returns one "artist: <name>, track: <name>" string per entry.
func (e *PlaylistEngine) TitlesAndArtists(ctx context.Context) ([]string, error) {
	entries, err := e.Entries(ctx, nil)
	if err != nil {
		return nil, err
	}

	pairs := make([]string, 0, len(entries))
	for _, entry := range entries {
		pairs = append(pairs, entry.String())
	}
	return pairs, nil
}
