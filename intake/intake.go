package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidURL is returned before any network call when the submitted URL
// does not match a known video-host shape.
type ErrInvalidURL struct {
	URL    string
	Reason string
}

func (e *ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid video url %q: %s", e.URL, e.Reason)
}

// Submission is one element of the webhook payload array.
type Submission struct {
	VideoURL   string    `json:"videoUrl"`
	VideoID    string    `json:"videoId"`
	SubmitTime time.Time `json:"submitTime"`
}

// ExtractVideoID validates a video URL against the two supported host shapes
// and pulls out the provider video identifier: the v= query parameter on
// youtube.com/watch URLs, or the first path segment on youtu.be short links.
func ExtractVideoID(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", &ErrInvalidURL{URL: raw, Reason: "not a parseable URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &ErrInvalidURL{URL: raw, Reason: "missing http(s) scheme"}
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	switch host {
	case "youtube.com":
		if u.Path != "/watch" {
			return "", &ErrInvalidURL{URL: raw, Reason: "expected a /watch URL"}
		}
		id := u.Query().Get("v")
		if id == "" {
			return "", &ErrInvalidURL{URL: raw, Reason: "missing v= parameter"}
		}
		return id, nil
	case "youtu.be":
		id := strings.Trim(strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0], "/")
		if id == "" {
			return "", &ErrInvalidURL{URL: raw, Reason: "missing video id in path"}
		}
		return id, nil
	default:
		return "", &ErrInvalidURL{URL: raw, Reason: "unsupported video host"}
	}
}

// Client posts validated video submissions to the external ingestion webhook.
// The webhook does not report completion; the record surfaces later through
// the review queue in processing status.
type Client struct {
	webhookURL string
	httpClient *http.Client
	seen       *SeenGuard
}

// NewClient creates an intake client. An empty webhookURL falls back to the
// INTAKE_WEBHOOK_URL environment variable.
func NewClient(webhookURL string, seen *SeenGuard) *Client {
	if webhookURL == "" {
		webhookURL = os.Getenv("INTAKE_WEBHOOK_URL")
	}
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		seen:       seen,
	}
}

// Submit validates the URL, extracts the video id and fires the webhook.
// Returns the extracted video id on success.
func (c *Client) Submit(ctx context.Context, videoURL string) (string, error) {
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return "", err
	}

	// Best-effort duplicate suppression; a guard failure never blocks intake.
	if c.seen != nil {
		dup, err := c.seen.CheckAndMark(ctx, videoID)
		if err != nil {
			log.Printf("intake: seen-guard unavailable, submitting anyway: %v", err)
		} else if dup {
			log.Printf("intake: video %s already submitted, firing webhook again", videoID)
		}
	}

	if c.webhookURL == "" {
		return "", fmt.Errorf("intake webhook URL not configured")
	}

	payload := []Submission{{
		VideoURL:   videoURL,
		VideoID:    videoID,
		SubmitTime: time.Now().UTC(),
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	submissionID := uuid.NewString()
	log.Printf("intake: submitting video %s (submission %s)", videoID, submissionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return videoID, nil
}
