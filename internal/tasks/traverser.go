package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/shared"
)

// Traverser flattens a post's comment forest to a bounded prefix.
type Traverser struct {
	logger *log.Logger
}

// NewTraverser creates a [Traverser]; a nil logger discards output.
func NewTraverser(logger *log.Logger) *Traverser {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Traverser{logger: logger}
}

// TopComments returns at most limit comments of post in depth-first, site-ranked order, with continuation placeholders pruned.
//
// A failure is logged and returned together with whatever was collected before it; callers treat it as affecting this post only.
func (t *Traverser) TopComments(ctx context.Context, src CommentSource, post models.Post, limit int) ([]models.Comment, error) {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	forest, err := src.Comments(ctx, post)
	if err != nil {
		return t.fail(post, nil, err)
	}

	if err := forest.ReplaceMore(0); err != nil {
		return t.fail(post, nil, err)
	}

	comments := make([]models.Comment, 0, limit)
	for c := range forest.Walk() {
		if len(comments) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return t.fail(post, comments, err)
		}
		comments = append(comments, *c)
	}

	return comments, nil
}

func (t *Traverser) fail(post models.Post, partial []models.Comment, err error) ([]models.Comment, error) {
	t.logger.Warn("error processing comments", "post", post.ID, "title", post.Title, "collected", len(partial), "error", err)
	return partial, fmt.Errorf("%w: comments for post %s: %w", shared.ErrAPIRequest, post.ID, err)
}
