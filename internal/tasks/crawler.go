package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/recommend"
	"github.com/desertthunder/spotimcp/internal/shared"
	"golang.org/x/sync/errgroup"
)

// CrawlOpts configures a [Crawler].
type CrawlOpts struct {
	PostLimit    int         // Hot posts to scan (default: 25)
	CommentLimit int         // Comments per post (default: 10)
	Concurrency  int         // Comment forests fetched at once (default: 1, max: 8)
	Keywords     []string    // Recommendation keywords (default: recommend.DefaultKeywords)
	Logger       *log.Logger // Defaults to a discarding logger
}

// CrawlResult holds the recommendation lines of one crawl, in listing order.
type CrawlResult struct {
	CrawlID         string        `json:"crawl_id"`
	Subreddit       string        `json:"subreddit"`
	Lines           []string      `json:"lines"`
	PostsScanned    int           `json:"posts_scanned"`
	CommentsScanned int           `json:"comments_scanned"`
	Failures        []PostFailure `json:"failures,omitempty"`
}

// PostFailure records a post whose comments could not be read.
type PostFailure struct {
	PostID string `json:"post_id"`
	Title  string `json:"title"`
	Error  string `json:"error"`
}

// Report formats the result as the digest returned to the tool host.
func (r *CrawlResult) Report() string {
	return FormatReport(r.Subreddit, r.Lines)
}

// FormatReport joins recommendation lines under the report banner, or returns the "none found" sentinel when there are none.
func FormatReport(subreddit string, lines []string) string {
	if len(lines) == 0 {
		return fmt.Sprintf("No band recommendations found in r/%s subreddit.", subreddit)
	}
	return fmt.Sprintf("Band recommendations from r/%s:\n", subreddit) + strings.Join(lines, "\n")
}

// Crawler scans a subreddit's hot posts and their top comments for band recommendations.
type Crawler struct {
	opener    Opener
	extractor *recommend.Extractor
	traverser *Traverser
	opts      CrawlOpts
	logger    *log.Logger
}

// postScan is the per-post work unit; comments are filled in by the fetch goroutine.
type postScan struct {
	post     models.Post
	lines    []string
	comments []models.Comment
	err      error
}

// NewCrawler creates a [Crawler] that acquires a fresh session from opener for every crawl.
func NewCrawler(opener Opener, opts CrawlOpts) *Crawler {
	if opts.PostLimit <= 0 {
		opts.PostLimit = DefaultPostLimit
	}
	if opts.CommentLimit <= 0 {
		opts.CommentLimit = DefaultCommentLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Concurrency > MaxConcurrency {
		opts.Concurrency = MaxConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Crawler{
		opener:    opener,
		extractor: recommend.NewExtractor(recommend.NewMatcher(opts.Keywords...)),
		traverser: NewTraverser(opts.Logger),
		opts:      opts,
		logger:    opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Crawl scans the hot listing of subreddit and returns the collected recommendations.
//
// The session is released on every exit path. A post whose comments fail is skipped and recorded in [CrawlResult.Failures];
// a failure of the listing itself, or cancellation of ctx, aborts the crawl without a partial result.
func (c *Crawler) Crawl(ctx context.Context, subreddit string, progress chan<- ProgressUpdate) (*CrawlResult, error) {
	if c.opener == nil {
		return nil, fmt.Errorf("%w: forum client not initialized", shared.ErrServiceUnavailable)
	}
	if subreddit == "" {
		subreddit = DefaultSubreddit
	}

	crawlID := shared.GenerateID()
	logger := shared.WithLogger(c.logger, "crawl_id", crawlID, "subreddit", subreddit)

	sendProgress(progress, openSessionUpdate())
	session, err := c.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close session", "error", err)
		}
	}()

	listing, err := session.Subreddit(ctx, subreddit)
	if err != nil {
		return nil, err
	}

	logger.Debug("crawling hot listing", "posts", c.opts.PostLimit, "comments", c.opts.CommentLimit)
	sendProgress(progress, fetchListingUpdate(listing.Name(), c.opts.PostLimit))

	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)

	var scans []*postScan
	for post, err := range listing.Hot(ctx, c.opts.PostLimit) {
		if err != nil {
			g.Wait()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: hot listing for r/%s: %w", shared.ErrServiceUnavailable, listing.Name(), err)
		}

		scan := &postScan{post: post, lines: c.extractor.FromPost(post.Title, post.Selftext)}
		scans = append(scans, scan)
		sendProgress(progress, scanPostUpdate(len(scans), c.opts.PostLimit, post))

		g.Go(func() error {
			scan.comments, scan.err = c.traverser.TopComments(ctx, session, scan.post, c.opts.CommentLimit)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &CrawlResult{CrawlID: crawlID, Subreddit: listing.Name(), Lines: []string{}, PostsScanned: len(scans)}
	for _, scan := range scans {
		result.Lines = append(result.Lines, scan.lines...)
		if scan.err != nil {
			result.Failures = append(result.Failures, PostFailure{PostID: scan.post.ID, Title: scan.post.Title, Error: scan.err.Error()})
		}
		for _, comment := range scan.comments {
			result.CommentsScanned++
			result.Lines = append(result.Lines, c.extractor.FromComment(scan.post.Title, comment.Body)...)
		}
	}

	sendProgress(progress, reportUpdate(result))
	logger.Info("crawl complete", "posts", result.PostsScanned, "comments", result.CommentsScanned, "lines", len(result.Lines), "failures", len(result.Failures))

	return result, nil
}
