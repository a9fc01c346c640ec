// Spotify Web API client
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/get-playlists-tracks
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	spotifyPageSize = 100
	spotifyMaxPages = 100
)

// SpotifyArtist represents a simplified Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	URI     string          `json:"uri"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
//
// Track is nil for removed or unavailable items.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPaginatedPlaylistTracks represents a page of playlist items.
type SpotifyPaginatedPlaylistTracks struct {
	Items  []SpotifyPlaylistTrack `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Next   *string                `json:"next"`
}

// Entries flattens the page into one entry per (artist, track) pair, in item then artist order.
func (p SpotifyPaginatedPlaylistTracks) Entries() []models.PlaylistEntry {
	entries := make([]models.PlaylistEntry, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Track == nil {
			continue
		}
		for _, artist := range item.Track.Artists {
			entries = append(entries, models.PlaylistEntry{Artist: artist.Name, Track: item.Track.Name})
		}
	}
	return entries
}

// SpotifyService reads public playlists with the client credentials grant.
//
// No user authorization is involved; a fresh app token is exchanged for every request batch.
type SpotifyService struct {
	config shared.SpotifyConfig
	opts   ServiceOpts
	logger *log.Logger
}

// NewSpotifyService creates a Spotify client. Credentials are validated lazily by [SpotifyService.PlaylistTracks].
func NewSpotifyService(config shared.SpotifyConfig, opts ServiceOpts) *SpotifyService {
	opts = opts.withDefaults(spotifyBaseURL, spotifyTokenURL)
	return &SpotifyService{config: config, opts: opts, logger: opts.Logger}
}

// Name returns the service name.
func (s *SpotifyService) Name() string { return "Spotify" }

// PlaylistTracks fetches every item of the playlist and returns one entry per (artist, track) pair.
//
// Missing credentials or playlist id fail with [shared.ErrMissingConfig] before any network call.
// A rejected token exchange fails with [shared.ErrAuthFailed].
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]models.PlaylistEntry, error) {
	cfg := s.config
	if playlistID != "" {
		cfg.PlaylistID = playlistID
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := s.authenticate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	next := fmt.Sprintf("%s/playlists/%s/tracks?limit=%d", s.opts.BaseURL, url.PathEscape(cfg.PlaylistID), spotifyPageSize)
	entries := []models.PlaylistEntry{}
	for page := 0; next != "" && page < spotifyMaxPages; page++ {
		var resp SpotifyPaginatedPlaylistTracks
		if err := getJSON(ctx, client, next, &resp); err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, cfg.PlaylistID)
			}
			return nil, fmt.Errorf("failed to fetch playlist tracks: %w", err)
		}

		entries = append(entries, resp.Entries()...)
		s.logger.Debug("fetched playlist page", "page", page+1, "items", len(resp.Items), "total", resp.Total)

		next = ""
		if resp.Next != nil {
			next = *resp.Next
		}
	}

	return entries, nil
}

// authenticate exchanges the app credentials for a token and returns a client that sends it.
func (s *SpotifyService) authenticate(ctx context.Context, cfg shared.SpotifyConfig) (*http.Client, error) {
	base := baseTransport(s.opts.HTTPClient)
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: base, Timeout: defaultTimeout})

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     s.opts.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	token, err := cc.Token(tokenCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: spotify token exchange: %v", shared.ErrAuthFailed, err)
	}

	return authedClient(oauth2.StaticTokenSource(token), base), nil
}
