// Package tools exposes the playlist and crawl operations as MCP tools.
//
// Each tool has a Definition (name, description, annotations) and a Handle method matching the mcp-go handler
// signature. Tools take no arguments: everything they need comes from configuration, and each description names
// the environment variables it requires. Failures are returned as error results, never as protocol errors.
package tools

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the implementation name reported during MCP initialization.
const ServerName = "spotimcp"

// Names selects the tool names a transport exposes.
type Names struct {
	Playlist string
	Crawl    string
}

var (
	// StdioNames are the tool names of the local process-pipe transport.
	StdioNames = Names{Playlist: "get_playlist_titles_and_artists", Crawl: "crawl_subreddit_recommendations"}
	// RemoteNames are the tool names of the HTTP transport.
	RemoteNames = Names{Playlist: "get_playlist_tracks", Crawl: "get_band_recommendations"}
)

// Tool is an MCP tool definition paired with its handler.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// PlaylistLister renders a playlist as "artist: <a>, track: <t>" strings.
type PlaylistLister interface {
	TitlesAndArtists(ctx context.Context) ([]string, error)
}

// RecommendationCrawler collects band recommendations from a subreddit.
type RecommendationCrawler interface {
	Crawl(ctx context.Context, subreddit string, progress chan<- tasks.ProgressUpdate) (*tasks.CrawlResult, error)
}

// PlaylistTool lists the artist/track pairs of the configured playlist.
type PlaylistTool struct {
	name     string
	playlist PlaylistLister
}

// NewPlaylistTool creates the playlist tool under name.
func NewPlaylistTool(name string, playlist PlaylistLister) *PlaylistTool {
	return &PlaylistTool{name: name, playlist: playlist}
}

// Definition returns the tool schema.
func (t *PlaylistTool) Definition() mcp.Tool {
	return mcp.NewTool(t.name,
		mcp.WithDescription("Retrieves all tracks from a specific Spotify playlist, returning a list of artist and track name pairs. "+
			"Requires SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET, and PLAYLIST_ID environment variables."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle returns one text content item per playlist entry, in playlist order.
func (t *PlaylistTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lines, err := t.playlist.TitlesAndArtists(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch playlist: %v", err)), nil
	}

	content := make([]mcp.Content, 0, len(lines))
	for _, line := range lines {
		content = append(content, mcp.NewTextContent(line))
	}
	return &mcp.CallToolResult{Content: content}, nil
}

// CrawlTool scans a subreddit for band recommendations.
type CrawlTool struct {
	name      string
	subreddit string
	crawler   RecommendationCrawler
	logger    *log.Logger
}

// NewCrawlTool creates the crawl tool under name, scanning subreddit on every call.
func NewCrawlTool(name, subreddit string, crawler RecommendationCrawler, logger *log.Logger) *CrawlTool {
	if subreddit == "" {
		subreddit = tasks.DefaultSubreddit
	}
	return &CrawlTool{name: name, subreddit: subreddit, crawler: crawler, logger: logger}
}

// Definition returns the tool schema.
func (t *CrawlTool) Definition() mcp.Tool {
	return mcp.NewTool(t.name,
		mcp.WithDescription(fmt.Sprintf("Crawls the r/%s subreddit to find band recommendations from recent posts and comments. "+
			"Searches for recommendation keywords like 'recommend', 'check out', 'similar to', etc. "+
			"Requires REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, and REDDIT_USERNAME environment variables.", t.subreddit)),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle runs one crawl and returns the report as a single text item.
func (t *CrawlTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := t.crawler.Crawl(ctx, t.subreddit, nil)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("crawl failed", "subreddit", t.subreddit, "error", err)
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to crawl r/%s: %v", t.subreddit, err)), nil
	}
	return mcp.NewToolResultText(result.Report()), nil
}

// NewServer creates an MCP server with tool capabilities and registers tools on it.
func NewServer(version string, tools ...Tool) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	Register(s, tools...)
	return s
}

// Register adds tools to s.
func Register(s *server.MCPServer, tools ...Tool) {
	for _, tool := range tools {
		s.AddTool(tool.Definition(), tool.Handle)
	}
}
