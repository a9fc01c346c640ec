package tasks

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/shared"
)

func TestTraverser(t *testing.T) {
	post := models.Post{ID: "p1", Title: "Post"}

	t.Run("limits to the first comments depth-first", func(t *testing.T) {
		var top []*models.Comment
		for i := range 6 {
			top = append(top, &models.Comment{
				ID:      string(rune('a' + i)),
				Body:    "top",
				Replies: []*models.Comment{{ID: string(rune('a'+i)) + "1", Body: "reply"}},
			})
		}
		session := newFakeSession(post).withComments("p1", top...)

		got, err := NewTraverser(nil).TopComments(context.Background(), session, post, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 10 {
			t.Fatalf("expected 10 comments, got %d", len(got))
		}
		want := []string{"a", "a1", "b", "b1", "c", "c1", "d", "d1", "e", "e1"}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
			}
		}
	})

	t.Run("placeholders are pruned, not counted", func(t *testing.T) {
		session := newFakeSession(post).withComments("p1",
			&models.Comment{More: true, MoreCount: 30},
			&models.Comment{ID: "x", Body: "real", Replies: []*models.Comment{{More: true}}},
			&models.Comment{More: true},
			&models.Comment{ID: "y", Body: "also real"},
		)

		got, err := NewTraverser(nil).TopComments(context.Background(), session, post, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 || got[0].ID != "x" || got[1].ID != "y" {
			t.Errorf("unexpected comments %+v", got)
		}
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		var top []*models.Comment
		for range 15 {
			top = append(top, &models.Comment{Body: "c"})
		}
		session := newFakeSession(post).withComments("p1", top...)

		got, _ := NewTraverser(nil).TopComments(context.Background(), session, post, 0)
		if len(got) != DefaultCommentLimit {
			t.Errorf("expected %d comments, got %d", DefaultCommentLimit, len(got))
		}
	})

	t.Run("fetch failure is logged and wrapped", func(t *testing.T) {
		session := newFakeSession(post)
		session.commentErrs["p1"] = errBoom

		var buf bytes.Buffer
		got, err := NewTraverser(shared.NewLogger(&buf)).TopComments(context.Background(), session, post, 10)
		if len(got) != 0 {
			t.Errorf("expected no comments, got %d", len(got))
		}
		if !errors.Is(err, errBoom) || !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected wrapped boom, got %v", err)
		}
		if !strings.Contains(buf.String(), "error processing comments") {
			t.Errorf("expected warning in log, got %q", buf.String())
		}
	})

	t.Run("cancellation returns what was collected", func(t *testing.T) {
		session := newFakeSession(post).withComments("p1", &models.Comment{ID: "a"}, &models.Comment{ID: "b"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got, err := NewTraverser(nil).TopComments(ctx, session, post, 10)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected nothing collected, got %d", len(got))
		}
	})
}
