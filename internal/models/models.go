// package models defines the data model for the tool server
package models

import (
	"fmt"
	"iter"
)

// PlaylistEntry is a single artist credit on a playlist track.
type PlaylistEntry struct {
	Artist string `json:"artist"`
	Track  string `json:"track"`
}

// String renders the entry the way the playlist tool reports it.
func (p PlaylistEntry) String() string {
	return fmt.Sprintf("artist: %s, track: %s", p.Artist, p.Track)
}

// Post is a forum post from a subreddit listing.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Selftext    string `json:"selftext"` // empty for link posts
	Author      string `json:"author"`
	Permalink   string `json:"permalink"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Stickied    bool   `json:"stickied"`
}

// Comment is a node in a post's comment tree.
//
// When More is set the node is a continuation placeholder: Body is empty and MoreCount estimates how many comments were not loaded.
type Comment struct {
	ID        string     `json:"id"`
	Author    string     `json:"author"`
	Body      string     `json:"body"`
	Score     int        `json:"score"`
	Depth     int        `json:"depth"`
	Replies   []*Comment `json:"replies,omitempty"`
	More      bool       `json:"more,omitempty"`
	MoreCount int        `json:"more_count,omitempty"`
}

// CommentForest holds the top-level comments of a post, each with its reply subtree.
type CommentForest struct {
	Comments []*Comment
}

// ReplaceMore prunes continuation placeholders from the forest.
//
// Only the limit 0 form is supported: every placeholder at every depth is discarded instead of fetched.
// Any other limit returns an error and leaves the forest untouched.
func (f *CommentForest) ReplaceMore(limit int) error {
	if limit != 0 {
		return fmt.Errorf("replace more with limit %d: expansion is not supported", limit)
	}
	f.Comments = pruneMore(f.Comments)
	return nil
}

func pruneMore(comments []*Comment) []*Comment {
	kept := comments[:0]
	for _, c := range comments {
		if c == nil || c.More {
			continue
		}
		c.Replies = pruneMore(c.Replies)
		kept = append(kept, c)
	}
	return kept
}

// Walk yields every comment depth-first (pre-order), a parent before its replies.
//
// Placeholders that have not been pruned are skipped.
func (f *CommentForest) Walk() iter.Seq[*Comment] {
	return func(yield func(*Comment) bool) {
		if f == nil {
			return
		}
		walk(f.Comments, yield)
	}
}

func walk(comments []*Comment, yield func(*Comment) bool) bool {
	for _, c := range comments {
		if c == nil || c.More {
			continue
		}
		if !yield(c) {
			return false
		}
		if !walk(c.Replies, yield) {
			return false
		}
	}
	return true
}

// Len counts the non-placeholder comments in the forest.
func (f *CommentForest) Len() int {
	n := 0
	for range f.Walk() {
		n++
	}
	return n
}
