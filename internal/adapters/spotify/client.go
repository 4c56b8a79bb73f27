package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	searchLimit    = 10
)

// Client is the HTTP client for the Spotify Web API. Requests are
// authorized through the Linker's current token.
type Client struct {
	linker      *Linker
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.SearchGateway = (*Client)(nil)

// NewClient constructs a Spotify client over the given account linker.
// An empty baseURL falls back to the public API endpoint.
func NewClient(linker *Linker, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		linker:  linker,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Search queries the track search endpoint and normalizes every item
// into the canonical domain Track. Failures surface as GatewayError.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Track, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	q := searchURL.Query()
	q.Set("q", normalizeQuery(query))
	q.Set("type", "track")
	q.Set("limit", fmt.Sprintf("%d", searchLimit))
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: build search request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, &domain.GatewayError{Gateway: "spotify", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.GatewayError{Gateway: "spotify", Err: fmt.Errorf("search status %d", resp.StatusCode)}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.GatewayError{Gateway: "spotify", Err: fmt.Errorf("decode search response: %w", err)}
	}

	return mapSearchToDomain(body), nil
}

// httpClient returns the token-backed client for the current linked
// account, or the default client when requests are expected to fail
// upstream (the gateway error is still well-formed).
func (c *Client) httpClient(ctx context.Context) *http.Client {
	if c.linker != nil {
		if hc := c.linker.HTTPClient(ctx); hc != nil {
			return hc
		}
	}
	return http.DefaultClient
}
