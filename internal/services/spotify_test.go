package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/shared"
	th "github.com/desertthunder/spotimcp/internal/testing"
)

func writeToken(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"access_token":"test_token","token_type":"bearer","expires_in":3600}`))
}

func newSpotifyServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var tokens atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		tokens.Add(1)
		id, secret, ok := r.BasicAuth()
		if !ok || id != "test_client_id" || secret != "test_client_secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		writeToken(w)
	})
	mux.HandleFunc("/v1/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test_token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tokens
}

func newTestSpotify(srv *httptest.Server, cfg shared.SpotifyConfig) *SpotifyService {
	return NewSpotifyService(cfg, ServiceOpts{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL + "/v1",
		TokenURL:   srv.URL + "/token",
	})
}

func validSpotifyConfig() shared.SpotifyConfig {
	return shared.SpotifyConfig{ClientID: "test_client_id", ClientSecret: "test_client_secret", PlaylistID: "pl1"}
}

func TestSpotifyService(t *testing.T) {
	t.Run("Entries", func(t *testing.T) {
		t.Run("one entry per artist, null tracks skipped", func(t *testing.T) {
			page := SpotifyPaginatedPlaylistTracks{Items: []SpotifyPlaylistTrack{
				{Track: &SpotifyTrack{Name: "Blitzkrieg Bop", Artists: []SpotifyArtist{{Name: "Ramones"}}}},
				{Track: nil},
				{Track: &SpotifyTrack{Name: "Under Pressure", Artists: []SpotifyArtist{{Name: "Queen"}, {Name: "David Bowie"}}}},
			}}

			got := page.Entries()
			want := []models.PlaylistEntry{
				{Artist: "Ramones", Track: "Blitzkrieg Bop"},
				{Artist: "Queen", Track: "Under Pressure"},
				{Artist: "David Bowie", Track: "Under Pressure"},
			}
			if len(got) != len(want) {
				t.Fatalf("expected %d entries, got %d: %v", len(want), len(got), got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("entry %d: expected %v, got %v", i, want[i], got[i])
				}
			}
		})

		t.Run("empty page", func(t *testing.T) {
			if got := (SpotifyPaginatedPlaylistTracks{}).Entries(); len(got) != 0 {
				t.Errorf("expected no entries, got %v", got)
			}
		})
	})

	t.Run("PlaylistTracks", func(t *testing.T) {
		t.Run("follows pagination", func(t *testing.T) {
			var srv *httptest.Server
			srv, _ = newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/playlists/pl1/tracks" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				var page SpotifyPaginatedPlaylistTracks
				switch r.URL.Query().Get("offset") {
				case "":
					if r.URL.Query().Get("limit") != "100" {
						t.Errorf("expected limit=100, got %q", r.URL.Query().Get("limit"))
					}
					next := srv.URL + "/v1/playlists/pl1/tracks?offset=100&limit=100"
					page = SpotifyPaginatedPlaylistTracks{
						Items: []SpotifyPlaylistTrack{{Track: &SpotifyTrack{Name: "Holiday in Cambodia", Artists: []SpotifyArtist{{Name: "Dead Kennedys"}}}}},
						Total: 2, Next: &next,
					}
				case "100":
					page = SpotifyPaginatedPlaylistTracks{
						Items: []SpotifyPlaylistTrack{{Track: &SpotifyTrack{Name: "Rise Above", Artists: []SpotifyArtist{{Name: "Black Flag"}}}}},
						Total: 2, Offset: 100,
					}
				}
				json.NewEncoder(w).Encode(page)
			})

			entries, err := newTestSpotify(srv, validSpotifyConfig()).PlaylistTracks(context.Background(), "pl1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %v", entries)
			}
			if entries[0].Artist != "Dead Kennedys" || entries[1].Track != "Rise Above" {
				t.Errorf("unexpected entries %v", entries)
			}
		})

		t.Run("argument overrides configured playlist", func(t *testing.T) {
			srv, _ := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.URL.Path, "/playlists/other/") {
					t.Errorf("expected playlist 'other', got path %s", r.URL.Path)
				}
				w.Write([]byte(`{"items":[],"total":0}`))
			})

			entries, err := newTestSpotify(srv, validSpotifyConfig()).PlaylistTracks(context.Background(), "other")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if entries == nil || len(entries) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", entries)
			}
		})

		t.Run("missing configuration makes no requests", func(t *testing.T) {
			srv, tokens := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("unexpected API request")
			})

			cfg := validSpotifyConfig()
			cfg.ClientSecret = ""
			cfg.PlaylistID = ""
			_, err := newTestSpotify(srv, cfg).PlaylistTracks(context.Background(), "")
			if !errors.Is(err, shared.ErrMissingConfig) {
				t.Fatalf("expected ErrMissingConfig, got %v", err)
			}
			for _, name := range []string{shared.EnvSpotifyClientSecret, shared.EnvPlaylistID} {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("expected error to name %s, got %v", name, err)
				}
			}
			if tokens.Load() != 0 {
				t.Errorf("expected no token requests, got %d", tokens.Load())
			}
		})

		t.Run("rejected credentials", func(t *testing.T) {
			srv, _ := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("unexpected API request")
			})

			cfg := validSpotifyConfig()
			cfg.ClientSecret = "wrong"
			_, err := newTestSpotify(srv, cfg).PlaylistTracks(context.Background(), "")
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("token endpoint unreachable", func(t *testing.T) {
			rt := th.NewMockRoundTripper(nil, errors.New("connection refused"))
			svc := NewSpotifyService(validSpotifyConfig(), ServiceOpts{HTTPClient: &http.Client{Transport: rt}})

			_, err := svc.PlaylistTracks(context.Background(), "")
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			reqs := rt.Requests()
			if len(reqs) != 1 || reqs[0].URL.String() != spotifyTokenURL {
				t.Errorf("expected a single token request to %s", spotifyTokenURL)
			}
		})

		t.Run("unknown playlist", func(t *testing.T) {
			srv, _ := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})

			_, err := newTestSpotify(srv, validSpotifyConfig()).PlaylistTracks(context.Background(), "")
			if !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Errorf("expected ErrPlaylistNotFound, got %v", err)
			}
		})

		t.Run("server error", func(t *testing.T) {
			srv, _ := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			})

			_, err := newTestSpotify(srv, validSpotifyConfig()).PlaylistTracks(context.Background(), "")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})
}
