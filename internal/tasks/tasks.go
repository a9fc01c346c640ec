// package tasks implements the operations behind the tool surface.
//
// The core abstraction is [Crawler], which walks a subreddit's hot listing and the top comments of each post
// and collects band recommendations. [PlaylistEngine] renders a Spotify playlist as artist/track pairs.
// Long-running operations emit progress updates via channels for non-blocking status reporting to CLI layers.
package tasks

import (
	"context"
	"iter"

	"github.com/desertthunder/spotimcp/internal/models"
)

// Bounds applied when options leave them unset.
const (
	DefaultSubreddit    = "punk"
	DefaultPostLimit    = 25
	DefaultCommentLimit = 10
	MaxConcurrency      = 8
)

// Opener acquires an authenticated forum session. Authentication happens here, before any crawling starts.
type Opener interface {
	Open(ctx context.Context) (Session, error)
}

// CommentSource loads the comment forest of a post.
type CommentSource interface {
	Comments(ctx context.Context, post models.Post) (*models.CommentForest, error)
}

// Session is an authenticated forum client owned by a single crawl.
//
// Close releases it and must be safe to call more than once.
type Session interface {
	CommentSource

	// Subreddit resolves a community by name.
	Subreddit(ctx context.Context, name string) (Listing, error)

	Close() error
}

// Listing is a resolved subreddit.
type Listing interface {
	// Name returns the canonical subreddit name, without the r/ prefix.
	Name() string

	// Hot lazily yields at most limit posts from the hot listing, in ranked order.
	// The sequence is single-pass; an error ends it.
	Hot(ctx context.Context, limit int) iter.Seq2[models.Post, error]
}

// PlaylistReader fetches the artist/track entries of a playlist.
type PlaylistReader interface {
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.PlaylistEntry, error)
}
