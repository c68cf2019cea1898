package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Client is a minimal reader for the tabular data backend holding influencer
// video releases. Base, table and key come from the environment at startup;
// when unset, calls fail with a network/auth error rather than crashing.
type Client struct {
	baseURL    string
	baseID     string
	table      string
	apiKey     string
	httpClient *http.Client
}

// Config holds the backend identifiers.
type Config struct {
	BaseURL string // defaults to the public API host
	BaseID  string
	Table   string
	APIKey  string
}

// NewClient creates a tabular backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.airtable.com/v0"
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		baseID:     cfg.BaseID,
		table:      cfg.Table,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientFromEnv reads AIRTABLE_BASE_ID, AIRTABLE_TABLE and AIRTABLE_API_KEY.
func NewClientFromEnv() *Client {
	table := os.Getenv("AIRTABLE_TABLE")
	if table == "" {
		table = "Videos"
	}
	return NewClient(Config{
		BaseID: os.Getenv("AIRTABLE_BASE_ID"),
		Table:  table,
		APIKey: os.Getenv("AIRTABLE_API_KEY"),
	})
}

// ListOptions selects and orders records.
type ListOptions struct {
	// From/To bound the release date (inclusive day granularity).
	From time.Time
	To   time.Time
	// SortField/SortDesc control backend-side ordering.
	SortField string
	SortDesc  bool
}

// FilterFormula renders the backend filter: a date range combined with the
// Active status predicate.
func (o ListOptions) FilterFormula() string {
	from := o.From.UTC().Format("2006-01-02")
	to := o.To.UTC().Format("2006-01-02")
	return fmt.Sprintf(
		"AND(IS_AFTER({Release Date}, DATETIME_PARSE('%s')), IS_BEFORE({Release Date}, DATETIME_PARSE('%s')), {Status} = 'Active')",
		from, to,
	)
}

type listResponse struct {
	Records []rawRecord `json:"records"`
	Offset  string      `json:"offset,omitempty"`
}

type rawRecord struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// ListVideos fetches records in the date range and normalizes them once at
// this boundary; nothing loosely-shaped escapes the package.
func (c *Client) ListVideos(ctx context.Context, opts ListOptions) ([]VideoRecord, error) {
	if c.baseID == "" || c.apiKey == "" {
		return nil, fmt.Errorf("tabular backend not configured (missing base id or api key)")
	}

	q := url.Values{}
	q.Set("filterByFormula", opts.FilterFormula())
	if opts.SortField != "" {
		q.Set("sort[0][field]", opts.SortField)
		dir := "asc"
		if opts.SortDesc {
			dir = "desc"
		}
		q.Set("sort[0][direction]", dir)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(c.table), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tabular backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tabular backend returned status %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := make([]VideoRecord, 0, len(body.Records))
	for _, r := range body.Records {
		records = append(records, normalizeRecord(r.ID, r.Fields))
	}
	return records, nil
}
