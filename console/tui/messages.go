package tui

import (
	"time"

	"coinlens/api"
	"coinlens/types"
)

// Messages for the tea program (polling-based)

// QueueLoadedMsg carries a refreshed review queue.
type QueueLoadedMsg struct {
	Items []*types.ContentItem
	Err   error
}

// ContentLoadedMsg carries one item with its mention counts.
type ContentLoadedMsg struct {
	Resp     *api.ContentResponse
	NotFound bool
	Err      error
}

// MentionSavedMsg is the result of an approve/reject/edit write.
type MentionSavedMsg struct {
	Resp *api.ContentResponse
	Err  error
}

// PublishedMsg is the result of the publish action.
type PublishedMsg struct {
	Resp *api.ContentResponse
	Err  error
}

// SubmittedMsg is the result of a video URL submission.
type SubmittedMsg struct {
	VideoID string
	Err     error
}

// TickMsg is sent periodically to trigger queue polling.
type TickMsg struct {
	Time time.Time
}
