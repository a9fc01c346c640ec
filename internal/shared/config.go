package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variable names recognized by [Config.ApplyEnv].
const (
	EnvSpotifyClientID     = "SPOTIFY_CLIENT_ID"
	EnvSpotifyClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvPlaylistID          = "PLAYLIST_ID"
	EnvSpotifyPlaylistID   = "SPOTIFY_PLAYLIST_ID"
	EnvRedditClientID      = "REDDIT_CLIENT_ID"
	EnvRedditClientSecret  = "REDDIT_CLIENT_SECRET"
	EnvRedditUsername      = "REDDIT_USERNAME"
	EnvLogLevel            = "SPOTIMCP_LOG_LEVEL"
)

// AppVersion is reported in the Reddit user agent and the tool server handshake.
const AppVersion = "0.1"

// Config represents the application configuration loaded from a TOML file and the environment.
type Config struct {
	LogLevel string        `toml:"log_level"`
	Spotify  SpotifyConfig `toml:"spotify"`
	Reddit   RedditConfig  `toml:"reddit"`
	Server   ServerConfig  `toml:"server"`
}

// SpotifyConfig contains Spotify API credentials and the playlist to read.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	PlaylistID   string `toml:"playlist_id"`
}

// RedditConfig contains Reddit API credentials and crawl tunables.
type RedditConfig struct {
	ClientID          string   `toml:"client_id"`
	ClientSecret      string   `toml:"client_secret"`
	Username          string   `toml:"username"`
	Subreddit         string   `toml:"subreddit"`
	PostLimit         int      `toml:"post_limit"`
	CommentLimit      int      `toml:"comment_limit"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Burst             int      `toml:"burst"`
	MaxRetries        int      `toml:"max_retries"`
	Concurrency       int      `toml:"concurrency"`
	Keywords          []string `toml:"keywords"`
}

// ServerConfig contains HTTP transport settings.
type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Endpoint string `toml:"endpoint"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// Validate reports which Spotify values are missing, naming their environment variables.
func (s SpotifyConfig) Validate() error {
	var missing []string
	if s.ClientID == "" {
		missing = append(missing, EnvSpotifyClientID)
	}
	if s.ClientSecret == "" {
		missing = append(missing, EnvSpotifyClientSecret)
	}
	if s.PlaylistID == "" {
		missing = append(missing, EnvPlaylistID)
	}
	return missingErr(missing)
}

// Validate reports which Reddit credentials are missing, naming their environment variables.
func (r RedditConfig) Validate() error {
	var missing []string
	if r.ClientID == "" {
		missing = append(missing, EnvRedditClientID)
	}
	if r.ClientSecret == "" {
		missing = append(missing, EnvRedditClientSecret)
	}
	if r.Username == "" {
		missing = append(missing, EnvRedditUsername)
	}
	return missingErr(missing)
}

// UserAgent builds the descriptive user agent Reddit requires for API clients.
func (r RedditConfig) UserAgent() string {
	return fmt.Sprintf("spotimcp/%s by %s", AppVersion, r.Username)
}

// Validate checks every credential required by the HTTP transport.
func (c *Config) Validate() error {
	return errors.Join(c.Spotify.Validate(), c.Reddit.Validate())
}

func missingErr(names []string) error {
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s must be set in environment variables", ErrMissingConfig, strings.Join(names, ", "))
}

// ApplyEnv overlays values found through lookup onto the configuration.
//
// PLAYLIST_ID wins over its SPOTIFY_PLAYLIST_ID alias when both are set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Spotify.ClientID, EnvSpotifyClientID)
	set(&c.Spotify.ClientSecret, EnvSpotifyClientSecret)
	set(&c.Spotify.PlaylistID, EnvPlaylistID, EnvSpotifyPlaylistID)
	set(&c.Reddit.ClientID, EnvRedditClientID)
	set(&c.Reddit.ClientSecret, EnvRedditClientSecret)
	set(&c.Reddit.Username, EnvRedditUsername)
	set(&c.LogLevel, EnvLogLevel)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys absent from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// ResolveConfig loads the config file at path when it exists (defaults otherwise) and applies the environment on top.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}
	config.ApplyEnv(os.LookupEnv)
	return config, nil
}

// LoadEnvFiles loads dotenv files into the process environment without overriding variables that are already set.
//
// With no paths, ".env" in the working directory is loaded if present.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env files %v: %w", paths, err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
