// Package classifier provides the adapter for the emotion
// classification service. It submits an encoded frame and parses the
// label response; a null label means no face was detected.
package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

const defaultBaseURL = "http://localhost:5001"

// Client is the HTTP client for the classification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// compile-time interface assertion
var _ ports.EmotionClassifier = (*Client)(nil)

type detectRequest struct {
	Image string `json:"image"`
}

type detectResponse struct {
	Emotion    *string `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// NewClient constructs a classifier client. An empty baseURL falls
// back to the local service default.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Classify submits the frame as base64 JPEG and returns the detected
// emotion. A null emotion in the response surfaces as
// domain.ErrNoFaceDetected.
func (c *Client) Classify(ctx context.Context, frame domain.Frame) (ports.Classification, error) {
	payload := detectRequest{
		Image: base64.StdEncoding.EncodeToString(frame.Data),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.Classification{}, fmt.Errorf("classifier: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/detect-emotion", bytes.NewReader(body))
	if err != nil {
		return ports.Classification{}, fmt.Errorf("classifier: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Classification{}, &domain.GatewayError{Gateway: "classifier", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.Classification{}, &domain.GatewayError{Gateway: "classifier", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.Classification{}, &domain.GatewayError{Gateway: "classifier", Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != "" {
		return ports.Classification{}, &domain.GatewayError{Gateway: "classifier", Err: fmt.Errorf("%s", parsed.Error)}
	}

	if parsed.Emotion == nil || strings.TrimSpace(*parsed.Emotion) == "" {
		return ports.Classification{}, domain.ErrNoFaceDetected
	}

	return ports.Classification{
		Emotion:    strings.ToLower(strings.TrimSpace(*parsed.Emotion)),
		Confidence: parsed.Confidence,
	}, nil
}
