// Shared HTTP plumbing for the upstream clients
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotimcp/internal/shared"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// ServiceOpts contains options shared by the upstream clients. Zero values select production endpoints.
type ServiceOpts struct {
	HTTPClient   *http.Client  // Base client; its transport is wrapped with authentication
	BaseURL      string        // API root
	TokenURL     string        // OAuth2 token endpoint
	RetryBackoff time.Duration // Delay unit between retries (default: 500ms)
	Logger       *log.Logger
}

func (o ServiceOpts) withDefaults(baseURL, tokenURL string) ServiceOpts {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.TokenURL == "" {
		o.TokenURL = tokenURL
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 500 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// Unwrap classifies the status: 401/403 as [shared.ErrAuthFailed], everything else as [shared.ErrAPIRequest].
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return shared.ErrAuthFailed
	}
	return shared.ErrAPIRequest
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// userAgentTransport sets a fixed User-Agent on every outgoing request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// baseTransport returns the transport of client, or a private clone of [http.DefaultTransport].
func baseTransport(client *http.Client) http.RoundTripper {
	if client != nil && client.Transport != nil {
		return client.Transport
	}
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		return t.Clone()
	}
	return http.DefaultTransport
}

// authedClient wraps base with a bearer token source.
func authedClient(ts oauth2.TokenSource, base http.RoundTripper) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{Source: ts, Base: base},
		Timeout:   defaultTimeout,
	}
}

// getJSON performs a GET request and decodes a 2xx JSON body into result.
func getJSON(ctx context.Context, client *http.Client, apiURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: apiURL}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}
