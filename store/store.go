package store

import (
	"context"
	"errors"
	"strings"

	"coinlens/types"
)

var (
	// ErrNotFound indicates the content or mention does not exist
	ErrNotFound = errors.New("content not found")

	// ErrPendingMentions indicates publish was attempted with unreviewed mentions
	ErrPendingMentions = errors.New("content has pending mentions")

	// ErrAlreadyPublished indicates publish was attempted twice
	ErrAlreadyPublished = errors.New("content already published")
)

// QueueFilter selects items for the review queue. Zero value matches everything.
type QueueFilter struct {
	// Search is matched case-insensitively against title, influencer handle
	// and influencer display name.
	Search string
	// Status is an exact content status, or empty/"all" for no filtering.
	Status string
}

// Matches reports whether an item passes the filter.
func (f QueueFilter) Matches(item *types.ContentItem) bool {
	if f.Status != "" && f.Status != "all" && string(item.Status) != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Influencer.Handle), q) ||
		strings.Contains(strings.ToLower(item.Influencer.Name), q)
}

// MentionPatch carries the fields a reviewer may change on a mention.
// Nil pointers leave the stored value untouched.
type MentionPatch struct {
	Status         types.ReviewStatus    `json:"status"`
	Instrument     *types.Instrument     `json:"instrument,omitempty"`
	Sentiment      *types.Sentiment      `json:"sentiment,omitempty"`
	Recommendation *types.Recommendation `json:"recommendation,omitempty"`
	Quote          *string               `json:"quote,omitempty"`
	Context        *string               `json:"context,omitempty"`
}

// Store is the content repository consumed by the API layer. Implementations
// must be safe for concurrent use.
type Store interface {
	// ListContent returns items passing the filter, newest first.
	ListContent(ctx context.Context, f QueueFilter) ([]*types.ContentItem, error)

	// GetContent returns one item by ID, or ErrNotFound.
	GetContent(ctx context.Context, id string) (*types.ContentItem, error)

	// UpdateMention applies a patch to one mention and returns the updated item.
	UpdateMention(ctx context.Context, contentID, mentionID string, patch MentionPatch) (*types.ContentItem, error)

	// PublishContent transitions an item to published. Fails with
	// ErrPendingMentions while any mention is unreviewed, and with
	// ErrAlreadyPublished on a repeat call; the transition is one-way.
	PublishContent(ctx context.Context, id string) (*types.ContentItem, error)

	// AddContent inserts a new item (ingestion boundary).
	AddContent(ctx context.Context, item *types.ContentItem) error

	// AttachMentions appends extracted mentions to an item and moves it
	// from processing to pending review. Fails with ErrAlreadyPublished
	// for published items; mention IDs already attached are skipped.
	AttachMentions(ctx context.Context, contentID string, mentions []types.MentionCandidate) (*types.ContentItem, error)

	// UpdateEngagement refreshes the engagement counters of an item.
	UpdateEngagement(ctx context.Context, id string, views, likes, comments int64) error
}
