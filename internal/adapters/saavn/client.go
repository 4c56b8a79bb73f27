// Package saavn provides the JioSaavn catalog adapter, the secondary
// provider used when no streaming account is linked.
package saavn

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
	defaultBaseURL = "https://saavn.dev"
	searchLimit    = 10
)

// Client is the HTTP client for the JioSaavn search API. No
// authentication is required.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertion
var _ ports.SearchGateway = (*Client)(nil)

// NewClient constructs a JioSaavn client. A nil httpClient falls back
// to a client with a standard network timeout.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Search queries the song search endpoint and normalizes every item
// into the canonical domain Track, dropping duplicate song IDs.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Track, error) {
	searchURL := fmt.Sprintf("%s/api/search/songs?query=%s&limit=%d", c.baseURL, url.QueryEscape(query), searchLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("saavn adapter: build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.GatewayError{Gateway: "jiosaavn", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.GatewayError{Gateway: "jiosaavn", Err: fmt.Errorf("search status %d", resp.StatusCode)}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.GatewayError{Gateway: "jiosaavn", Err: fmt.Errorf("decode search response: %w", err)}
	}

	seen := make(map[string]struct{}, len(body.Data))
	tracks := make([]domain.Track, 0, len(body.Data))
	for _, song := range body.Data {
		if song.ID != "" {
			if _, dup := seen[song.ID]; dup {
				continue
			}
			seen[song.ID] = struct{}{}
		}
		tracks = append(tracks, mapSongToDomain(song))
	}
	return tracks, nil
}

func mapSongToDomain(s songObject) domain.Track {
	var artistNames []string
	for _, a := range s.Artists {
		artistNames = append(artistNames, a.Name)
	}

	return domain.Track{
		ID:         s.ID,
		Title:      s.Name,
		Artist:     strings.Join(artistNames, ", "),
		Album:      s.Album.Name,
		Provider:   domain.ProviderJioSaavn,
		URL:        s.URL,
		ArtworkURL: s.Image.Best(),
	}
}
