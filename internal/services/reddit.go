// Reddit API client
//
// Listing and comment types based on https://www.reddit.com/dev/api
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/shared"
	"github.com/desertthunder/spotimcp/internal/tasks"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	redditTokenURL = "https://www.reddit.com/api/v1/access_token"
	redditBaseURL  = "https://oauth.reddit.com"

	redditPageSize = 100
)

var subredditPattern = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

// redditThing is the kind/data envelope wrapping every Reddit object.
type redditThing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type redditListing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string        `json:"after"`
		Children []redditThing `json:"children"`
	} `json:"data"`
}

// RedditPost is the data of a t3 thing.
type RedditPost struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Selftext    string `json:"selftext"`
	Author      string `json:"author"`
	Permalink   string `json:"permalink"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Stickied    bool   `json:"stickied"`
}

// Post converts the API object to the domain model.
func (p RedditPost) Post() models.Post {
	return models.Post{
		ID:          p.ID,
		Title:       p.Title,
		Selftext:    p.Selftext,
		Author:      p.Author,
		Permalink:   p.Permalink,
		Score:       p.Score,
		NumComments: p.NumComments,
		Stickied:    p.Stickied,
	}
}

// redditReplies decodes the replies field, which is an empty string when a comment has none.
type redditReplies struct {
	listing *redditListing
}

func (r *redditReplies) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `""`, "null":
		return nil
	}
	var l redditListing
	if err := json.Unmarshal(b, &l); err != nil {
		return err
	}
	r.listing = &l
	return nil
}

// RedditComment is the data of a t1 thing, or of a "more" placeholder.
type RedditComment struct {
	ID       string        `json:"id"`
	Author   string        `json:"author"`
	Body     string        `json:"body"`
	Score    int           `json:"score"`
	Depth    int           `json:"depth"`
	Replies  redditReplies `json:"replies"`
	Count    int           `json:"count"`
	Children []string      `json:"children"`
}

// commentTree converts listing children to comment nodes, keeping "more" things as placeholders.
func commentTree(children []redditThing) ([]*models.Comment, error) {
	nodes := make([]*models.Comment, 0, len(children))
	for _, child := range children {
		var data RedditComment
		switch child.Kind {
		case "t1", "more":
			if err := json.Unmarshal(child.Data, &data); err != nil {
				return nil, fmt.Errorf("%w: failed to decode %s: %v", shared.ErrAPIRequest, child.Kind, err)
			}
		default:
			continue
		}

		if child.Kind == "more" {
			nodes = append(nodes, &models.Comment{ID: data.ID, Depth: data.Depth, More: true, MoreCount: data.Count})
			continue
		}

		node := &models.Comment{
			ID:     data.ID,
			Author: data.Author,
			Body:   data.Body,
			Score:  data.Score,
			Depth:  data.Depth,
		}
		if data.Replies.listing != nil {
			replies, err := commentTree(data.Replies.listing.Data.Children)
			if err != nil {
				return nil, err
			}
			node.Replies = replies
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// RedditService opens app-only (read-only) Reddit sessions.
type RedditService struct {
	config shared.RedditConfig
	opts   ServiceOpts
	logger *log.Logger
}

// NewRedditService creates a Reddit client factory. Credentials are checked when a session is opened.
func NewRedditService(config shared.RedditConfig, opts ServiceOpts) *RedditService {
	opts = opts.withDefaults(redditBaseURL, redditTokenURL)
	return &RedditService{config: config, opts: opts, logger: opts.Logger}
}

// Name returns the service name.
func (s *RedditService) Name() string { return "Reddit" }

// Open implements [tasks.Opener].
func (s *RedditService) Open(ctx context.Context) (tasks.Session, error) {
	return s.OpenSession(ctx)
}

// OpenSession validates credentials and exchanges them for an app token.
//
// Missing credentials fail with [shared.ErrMissingConfig]; a rejected exchange fails with [shared.ErrAuthFailed].
func (s *RedditService) OpenSession(ctx context.Context) (*RedditSession, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	base := &userAgentTransport{base: baseTransport(s.opts.HTTPClient), userAgent: s.config.UserAgent()}
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: base, Timeout: defaultTimeout})

	cc := &clientcredentials.Config{
		ClientID:     s.config.ClientID,
		ClientSecret: s.config.ClientSecret,
		TokenURL:     s.opts.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	ts := cc.TokenSource(tokenCtx)
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("%w: reddit token exchange: %v", shared.ErrAuthFailed, err)
	}

	limit := rate.Inf
	if s.config.RequestsPerSecond > 0 {
		limit = rate.Limit(s.config.RequestsPerSecond)
	}
	burst := max(s.config.Burst, 1)

	return &RedditSession{
		client:     authedClient(ts, base),
		transport:  base.base,
		baseURL:    strings.TrimRight(s.opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: max(s.config.MaxRetries, 0),
		backoff:    s.opts.RetryBackoff,
		logger:     s.logger,
	}, nil
}

// RedditSession is an authenticated, rate-limited Reddit client. It implements [tasks.Session].
type RedditSession struct {
	client     *http.Client
	transport  http.RoundTripper
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	logger     *log.Logger

	mu     sync.Mutex
	closed bool
}

// Subreddit resolves a community by name. A leading r/ or /r/ is accepted; no request is made.
func (s *RedditSession) Subreddit(ctx context.Context, name string) (tasks.Listing, error) {
	if s.isClosed() {
		return nil, shared.ErrSessionClosed
	}
	name = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(name), "/"), "r/")
	if !subredditPattern.MatchString(name) {
		return nil, fmt.Errorf("%w: subreddit name %q", shared.ErrInvalidArgument, name)
	}
	return &SubredditListing{session: s, name: name}, nil
}

// Comments loads the comment forest of post, sorted by confidence ("best").
//
// Continuation placeholders are kept in the forest; callers prune them with [models.CommentForest.ReplaceMore].
func (s *RedditSession) Comments(ctx context.Context, post models.Post) (*models.CommentForest, error) {
	if post.ID == "" {
		return nil, fmt.Errorf("%w: post has no id", shared.ErrInvalidArgument)
	}

	q := url.Values{"raw_json": {"1"}, "sort": {"confidence"}}
	var pair []redditListing
	if err := s.get(ctx, "/comments/"+url.PathEscape(post.ID), q, &pair); err != nil {
		return nil, err
	}
	if len(pair) < 2 {
		return nil, fmt.Errorf("%w: unexpected comments response with %d listings", shared.ErrAPIRequest, len(pair))
	}

	comments, err := commentTree(pair[1].Data.Children)
	if err != nil {
		return nil, err
	}
	return &models.CommentForest{Comments: comments}, nil
}

// Close releases idle connections. Further requests fail with [shared.ErrSessionClosed].
func (s *RedditSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if t, ok := s.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

func (s *RedditSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// get performs a rate-limited GET with a bounded linear-backoff retry for throttling, server and transport errors.
func (s *RedditSession) get(ctx context.Context, path string, query url.Values, result any) error {
	apiURL := s.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if s.isClosed() {
			return shared.ErrSessionClosed
		}
		if attempt > 0 {
			wait := time.Duration(attempt) * s.backoff
			s.logger.Debug("retrying request", "url", apiURL, "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("rate limiter: %w", err)
		}

		lastErr = getJSON(ctx, s.client, apiURL, result)
		if lastErr == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: giving up after %d attempts: %w", shared.ErrAPIRequest, s.maxRetries+1, lastErr)
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	// decode failures are wrapped with ErrAPIRequest; anything else is a transport error
	return !errors.Is(err, shared.ErrAPIRequest) && !errors.Is(err, shared.ErrAuthFailed)
}

// SubredditListing is a resolved subreddit. It implements [tasks.Listing].
type SubredditListing struct {
	session *RedditSession
	name    string
}

// Name returns the subreddit name without the r/ prefix.
func (l *SubredditListing) Name() string { return l.name }

// Hot lazily yields up to limit posts from the hot listing, requesting pages of at most 100 as the caller advances.
func (l *SubredditListing) Hot(ctx context.Context, limit int) iter.Seq2[models.Post, error] {
	return func(yield func(models.Post, error) bool) {
		after := ""
		seen := 0
		for seen < limit {
			q := url.Values{
				"limit":    {strconv.Itoa(min(limit-seen, redditPageSize))},
				"raw_json": {"1"},
			}
			if after != "" {
				q.Set("after", after)
				q.Set("count", strconv.Itoa(seen))
			}

			var page redditListing
			if err := l.session.get(ctx, "/r/"+l.name+"/hot", q, &page); err != nil {
				yield(models.Post{}, err)
				return
			}

			for _, child := range page.Data.Children {
				if child.Kind != "t3" {
					continue
				}
				var post RedditPost
				if err := json.Unmarshal(child.Data, &post); err != nil {
					yield(models.Post{}, fmt.Errorf("%w: failed to decode post: %v", shared.ErrAPIRequest, err))
					return
				}
				seen++
				if !yield(post.Post(), nil) || seen >= limit {
					return
				}
			}

			if page.Data.After == "" || len(page.Data.Children) == 0 {
				return
			}
			after = page.Data.After
		}
	}
}
