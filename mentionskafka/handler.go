package mentionskafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"coinlens/store"
	"coinlens/types"
)

// ExtractionPayload is what the ingestion pipeline emits per processed video:
// the content record plus the mention candidates it extracted.
type ExtractionPayload struct {
	ContentID string                   `json:"content_id"`
	Content   *types.ContentItem       `json:"content,omitempty"`
	Mentions  []types.MentionCandidate `json:"mentions"`
}

// StoreHandler writes extraction payloads into the content repository.
type StoreHandler struct {
	Store store.Store
}

// HandleMessage decodes one extraction payload and attaches its mentions.
// Unknown content IDs are created when the payload carries the content record
// (the intake webhook fired before this consumer saw anything); otherwise the
// message is dropped as unroutable.
func (h *StoreHandler) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var payload ExtractionPayload
	if err := json.Unmarshal(message, &payload); err != nil {
		// Malformed messages will never succeed; mark to avoid a poison loop.
		return true, fmt.Errorf("malformed extraction payload: %w", err)
	}
	if payload.ContentID == "" && payload.Content != nil {
		payload.ContentID = payload.Content.ID
	}
	if payload.ContentID == "" {
		return true, fmt.Errorf("extraction payload missing content id")
	}

	for i := range payload.Mentions {
		if payload.Mentions[i].Status == "" {
			payload.Mentions[i].Status = types.ReviewPending
		}
	}

	_, err := h.Store.AttachMentions(ctx, payload.ContentID, payload.Mentions)
	if errors.Is(err, store.ErrNotFound) && payload.Content != nil {
		item := payload.Content
		if item.Status == "" {
			item.Status = types.ContentProcessing
		}
		if item.PublishedAt.IsZero() {
			item.PublishedAt = time.Now().UTC()
		}
		if err := h.Store.AddContent(ctx, item); err != nil {
			return false, fmt.Errorf("failed to create content %s: %w", payload.ContentID, err)
		}
		_, err = h.Store.AttachMentions(ctx, payload.ContentID, payload.Mentions)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, fmt.Errorf("dropping mentions for unknown content %s", payload.ContentID)
		}
		if errors.Is(err, store.ErrAlreadyPublished) {
			// The reviewed set is final once exported; a late extraction
			// cannot reopen it.
			return true, fmt.Errorf("dropping late mentions for published content %s", payload.ContentID)
		}
		return false, err
	}

	log.Printf("attached %d mention(s) to content %s", len(payload.Mentions), payload.ContentID)
	return true, nil
}
