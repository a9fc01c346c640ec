// Package tasks orchestrates the two tool operations over the upstream clients.
//
// # Subreddit Crawl
//
// [Crawler.Crawl] produces the band recommendation digest:
//
//  1. Acquire a session from the [Opener] (authentication failures end the crawl here)
//  2. Resolve the subreddit and lazily read its hot listing, bounded to 25 posts
//  3. For each post, run [recommend.Extractor.FromPost] on its title and self text
//  4. Read the post's top 10 comments with [Traverser.TopComments] and run [recommend.Extractor.FromComment] on each
//  5. Join the lines under the report banner, or return the "none found" sentinel
//
// The session is closed on every exit path.
//
// # Failure Isolation
//
// A comment fetch failure affects only its post: the traverser logs it, the post's comments are skipped,
// and the failure is recorded in [CrawlResult.Failures]. A failed listing fetch is fatal and
// wraps [shared.ErrServiceUnavailable]; the upstream client has already retried it.
//
// # Ordering
//
// With [CrawlOpts.Concurrency] above one, comment forests are fetched through a bounded [errgroup.Group].
// Results are assembled by listing position afterwards, so the report is identical to a sequential crawl.
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate]. Updates use select with default so they never block.
//
// # Playlist
//
// [PlaylistEngine] reads the configured playlist through a [PlaylistReader] and renders artist/track pairs.
package tasks
