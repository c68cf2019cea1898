package client

import (
	"context"
	"net/http"
	"net/url"

	"coinlens/api"
	"coinlens/store"
	"coinlens/types"
)

// FetchQueue loads the review queue, optionally filtered server-side.
func (c *Client) FetchQueue(ctx context.Context, search, status string) ([]*types.ContentItem, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if status != "" {
		q.Set("status", status)
	}
	path := "/api/review/queue"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp api.QueueResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// FetchContent loads one item and its mention counts.
func (c *Client) FetchContent(ctx context.Context, id string) (*api.ContentResponse, error) {
	var resp api.ContentResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/review/content/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateMention applies a review patch to one mention.
func (c *Client) UpdateMention(ctx context.Context, contentID, mentionID string, patch store.MentionPatch) (*api.ContentResponse, error) {
	path := "/api/review/content/" + url.PathEscape(contentID) + "/mentions/" + url.PathEscape(mentionID)
	var resp api.ContentResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, path, patch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Publish performs the one-way publish transition.
func (c *Client) Publish(ctx context.Context, contentID string) (*api.ContentResponse, error) {
	var resp api.ContentResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/review/content/"+url.PathEscape(contentID)+"/publish", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitVideo hands a video URL to the ingestion webhook via the API.
func (c *Client) SubmitVideo(ctx context.Context, videoURL string) (string, error) {
	var resp api.SubmitResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/intake/submit", api.SubmitRequest{URL: videoURL}, &resp); err != nil {
		return "", err
	}
	return resp.VideoID, nil
}

// TriggerRefresh kicks the background refresher via the API.
func (c *Client) TriggerRefresh(ctx context.Context) error {
	return c.doJSONRequest(ctx, http.MethodPost, "/api/refresh", nil, nil)
}
