package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"
	apphttp "github.com/appdotbuilder/tele-vid-downloader/pkg/http"
)

// Metadata is what the extraction service resolves a source URL into
type Metadata struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	DownloadURL  string `json:"download_url"`
}

// apiResponse is the extraction service wire format
type apiResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Title       string `json:"title"`
		Thumbnail   string `json:"thumbnail"`
		Duration    int    `json:"duration"`
		DownloadURL string `json:"download_url"`
	} `json:"data"`
	Error string `json:"error"`
}

// Client calls the external extraction service
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an extraction-service client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: apphttp.NewClient(timeout),
	}
}

// Fetch resolves a source URL into metadata and a direct download URL. Every
// failure mode (missing credential, network error, non-success response,
// malformed payload) comes back as a DependencyError so the caller can mark the
// link failed instead of crashing the pipeline.
func (c *Client) Fetch(ctx context.Context, url string) (*Metadata, error) {
	if c.apiKey == "" {
		return nil, &apperrors.DependencyError{Message: "extraction api key is not configured"}
	}

	payload, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return nil, &apperrors.DependencyError{Message: "failed to encode extraction request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &apperrors.DependencyError{Message: "failed to build extraction request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.DependencyError{Message: "extraction service unreachable", Err: err}
	}
	defer apphttp.CloseResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.DependencyError{
			Message: fmt.Sprintf("extraction service returned status %d", resp.StatusCode),
		}
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &apperrors.DependencyError{Message: "malformed extraction response", Err: err}
	}

	if !body.Success || body.Data == nil {
		msg := body.Error
		if msg == "" {
			msg = "failed to fetch video metadata"
		}
		return nil, &apperrors.DependencyError{Message: msg}
	}

	if body.Data.DownloadURL == "" {
		return nil, &apperrors.DependencyError{Message: "extraction response is missing download_url"}
	}

	title := body.Data.Title
	if title == "" {
		title = "Untitled Video"
	}

	return &Metadata{
		Title:        title,
		ThumbnailURL: body.Data.Thumbnail,
		Duration:     body.Data.Duration,
		DownloadURL:  body.Data.DownloadURL,
	}, nil
}
