// Package models defines the read-only domain types shared by the upstream clients, the crawler and the tool surface.
//
// # Music
//
//   - [PlaylistEntry] : one (artist, track) pair from a playlist; a track with several artists yields several entries
//
// # Forum
//
//   - [Post] : a listing entry with its title and self text
//   - [Comment] : a comment body with nested replies, or a continuation placeholder
//   - [CommentForest] : the reply tree under a post
//
// Continuation placeholders mark "more comments exist but were not loaded".
// [CommentForest.ReplaceMore] prunes them before traversal so they are never treated as real comments,
// and [CommentForest.Walk] yields the remaining comments depth-first in the order the site ranked them.
package models
