package tasks

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/desertthunder/spotimcp/internal/models"
)

// fakeOpener hands out a single fakeSession.
type fakeOpener struct {
	session *fakeSession
	openErr error
	opened  int
}

func (o *fakeOpener) Open(ctx context.Context) (Session, error) {
	o.opened++
	if o.openErr != nil {
		return nil, o.openErr
	}
	return o.session, nil
}

// fakeSession serves posts and comment forests from memory.
type fakeSession struct {
	mu           sync.Mutex
	posts        []models.Post
	forests      map[string]func() *models.CommentForest
	commentErrs  map[string]error
	listErrAt    int // index at which Hot fails; -1 disables
	listErr      error
	subredditErr error
	closed       int
	yielded      int
	commentCalls []string
}

func newFakeSession(posts ...models.Post) *fakeSession {
	return &fakeSession{
		posts:       posts,
		forests:     map[string]func() *models.CommentForest{},
		commentErrs: map[string]error{},
		listErrAt:   -1,
	}
}

func (s *fakeSession) withComments(postID string, comments ...*models.Comment) *fakeSession {
	s.forests[postID] = func() *models.CommentForest {
		return &models.CommentForest{Comments: cloneComments(comments)}
	}
	return s
}

func cloneComments(in []*models.Comment) []*models.Comment {
	out := make([]*models.Comment, 0, len(in))
	for _, c := range in {
		cp := *c
		cp.Replies = cloneComments(c.Replies)
		out = append(out, &cp)
	}
	return out
}

func (s *fakeSession) Subreddit(ctx context.Context, name string) (Listing, error) {
	if s.subredditErr != nil {
		return nil, s.subredditErr
	}
	return &fakeListing{name: name, session: s}, nil
}

func (s *fakeSession) Comments(ctx context.Context, post models.Post) (*models.CommentForest, error) {
	s.mu.Lock()
	s.commentCalls = append(s.commentCalls, post.ID)
	s.mu.Unlock()

	if err := s.commentErrs[post.ID]; err != nil {
		return nil, err
	}
	if f, ok := s.forests[post.ID]; ok {
		return f(), nil
	}
	return &models.CommentForest{}, nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

type fakeListing struct {
	name    string
	session *fakeSession
}

func (l *fakeListing) Name() string { return l.name }

func (l *fakeListing) Hot(ctx context.Context, limit int) iter.Seq2[models.Post, error] {
	return func(yield func(models.Post, error) bool) {
		for i, p := range l.session.posts {
			if i >= limit {
				return
			}
			if i == l.session.listErrAt {
				yield(models.Post{}, l.session.listErr)
				return
			}
			l.session.yielded++
			if !yield(p, nil) {
				return
			}
		}
	}
}

// fakePlaylist is a PlaylistReader double.
type fakePlaylist struct {
	entries []models.PlaylistEntry
	err     error
	gotID   string
}

func (f *fakePlaylist) PlaylistTracks(ctx context.Context, playlistID string) ([]models.PlaylistEntry, error) {
	f.gotID = playlistID
	return f.entries, f.err
}

var errBoom = errors.New("boom")
