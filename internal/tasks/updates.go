package tasks

import (
	"fmt"

	"github.com/desertthunder/spotimcp/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	OpenSession Phase = iota
	FetchListing
	ScanPost
	BuildReport
	FetchPlaylist
)

func (p Phase) String() string {
	switch p {
	case OpenSession:
		return "open_session"
	case FetchListing:
		return "fetch_listing"
	case ScanPost:
		return "scan_post"
	case BuildReport:
		return "build_report"
	case FetchPlaylist:
		return "fetch_playlist"
	default:
		return ""
	}
}

func openSessionUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   OpenSession,
		Step:    1,
		Total:   1,
		Message: "Authenticating with Reddit...",
	}
}

func fetchListingUpdate(subreddit string, limit int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchListing,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching %d hot posts from r/%s...", limit, subreddit),
	}
}

func scanPostUpdate(step, total int, post models.Post) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanPost,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Scanning post: %s", post.Title),
		Data:    post,
	}
}

func reportUpdate(result *CrawlResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildReport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d recommendation lines in %d posts", len(result.Lines), result.PostsScanned),
		Data:    result,
	}
}

func fetchPlaylistUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlist %s from Spotify...", playlistID),
	}
}
