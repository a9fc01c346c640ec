// Package services implements the upstream API clients used by the tool server.
//
// # Spotify
//
// [SpotifyService] reads public playlists using the OAuth2 client credentials grant. There is no user
// authorization: the app credentials are exchanged for a token on each [SpotifyService.PlaylistTracks] call,
// and the playlist items are followed page by page through the next links.
//
// # Reddit
//
// [RedditService] opens app-only sessions ([RedditSession]) against oauth.reddit.com. Opening a session performs the
// token exchange, so invalid credentials surface before any crawling starts. Each session carries:
//   - a descriptive User-Agent built from the configured username
//   - a token bucket limiter ([rate.Limiter]) shared by every request of the session
//   - a bounded retry with linear backoff for 429, 5xx and transport failures
//
// [SubredditListing.Hot] is a lazy, single-pass [iter.Seq2]: pages are requested only as the caller advances.
// Comment trees are decoded with continuation ("more") things kept as placeholders.
//
// # Error Handling
//
// Clients use typed errors from the shared package:
//   - [shared.ErrMissingConfig] : credentials or playlist id not configured
//   - [shared.ErrAuthFailed] : token exchange rejected, or a 401/403 response
//   - [shared.ErrAPIRequest] : request failed, retries exhausted, or the body could not be decoded
//   - [shared.ErrPlaylistNotFound] : playlist id not found
//   - [shared.ErrSessionClosed] : request on a closed Reddit session
//   - [shared.ErrInvalidArgument] : malformed subreddit name
package services
