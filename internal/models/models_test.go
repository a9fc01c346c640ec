package models

import (
	"testing"
)

func sampleForest() *CommentForest {
	return &CommentForest{Comments: []*Comment{
		{ID: "a", Body: "first", Replies: []*Comment{
			{ID: "a1", Body: "reply to first", Replies: []*Comment{
				{More: true, MoreCount: 4},
			}},
			{ID: "a2", Body: "second reply"},
		}},
		{More: true, MoreCount: 12},
		{ID: "b", Body: "second"},
	}}
}

func collect(f *CommentForest) []string {
	var ids []string
	for c := range f.Walk() {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestCommentForest(t *testing.T) {
	t.Run("Walk is depth-first and skips placeholders", func(t *testing.T) {
		got := collect(sampleForest())
		want := []string{"a", "a1", "a2", "b"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("ReplaceMore prunes at every depth", func(t *testing.T) {
		f := sampleForest()
		if err := f.ReplaceMore(0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(f.Comments) != 2 {
			t.Errorf("expected 2 top-level comments, got %d", len(f.Comments))
		}
		if len(f.Comments[0].Replies[0].Replies) != 0 {
			t.Error("expected nested placeholder to be pruned")
		}
		if f.Len() != 4 {
			t.Errorf("expected 4 comments, got %d", f.Len())
		}
	})

	t.Run("ReplaceMore rejects expansion", func(t *testing.T) {
		f := sampleForest()
		if err := f.ReplaceMore(3); err == nil {
			t.Error("expected error for non-zero limit")
		}
		if len(f.Comments) != 3 {
			t.Error("expected forest to be untouched")
		}
	})

	t.Run("Walk stops early", func(t *testing.T) {
		n := 0
		for range sampleForest().Walk() {
			n++
			if n == 2 {
				break
			}
		}
		if n != 2 {
			t.Errorf("expected to stop after 2, got %d", n)
		}
	})

	t.Run("nil forest", func(t *testing.T) {
		var f *CommentForest
		if f.Len() != 0 {
			t.Error("expected empty nil forest")
		}
	})
}

func TestPlaylistEntry(t *testing.T) {
	e := PlaylistEntry{Artist: "Bad Religion", Track: "Generator"}
	if got := e.String(); got != "artist: Bad Religion, track: Generator" {
		t.Errorf("unexpected string %q", got)
	}
}
