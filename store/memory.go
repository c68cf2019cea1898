package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"coinlens/types"
)

// Memory is an in-memory Store implementation. It replaces the ambient
// mock-data arrays of the original console with an injected repository.
type Memory struct {
	mu      sync.RWMutex
	items   map[string]*types.ContentItem
	latency time.Duration
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]*types.ContentItem)}
}

// NewMemoryWithSeed creates a store preloaded with review fixtures.
func NewMemoryWithSeed() *Memory {
	m := NewMemory()
	for _, item := range seedItems() {
		m.items[item.ID] = item
	}
	return m
}

// SetLatency adds an artificial delay to every call, mirroring the mock
// backend the console was developed against. Zero disables it.
func (m *Memory) SetLatency(d time.Duration) { m.latency = d }

func (m *Memory) sleep(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListContent returns a snapshot of items passing the filter, newest first.
func (m *Memory) ListContent(ctx context.Context, f QueueFilter) ([]*types.ContentItem, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.ContentItem, 0, len(m.items))
	for _, item := range m.items {
		if f.Matches(item) {
			out = append(out, cloneItem(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetContent returns one item by ID.
func (m *Memory) GetContent(ctx context.Context, id string) (*types.ContentItem, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneItem(item), nil
}

// UpdateMention applies a reviewer patch to one mention in place.
func (m *Memory) UpdateMention(ctx context.Context, contentID, mentionID string, patch MentionPatch) (*types.ContentItem, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[contentID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range item.Mentions {
		if item.Mentions[i].ID != mentionID {
			continue
		}
		applyPatch(&item.Mentions[i], patch)
		return cloneItem(item), nil
	}
	return nil, ErrNotFound
}

func applyPatch(m *types.MentionCandidate, patch MentionPatch) {
	if patch.Status != "" {
		m.Status = patch.Status
	}
	if patch.Instrument != nil {
		m.Instrument = *patch.Instrument
	}
	if patch.Sentiment != nil {
		m.Sentiment = *patch.Sentiment
	}
	if patch.Recommendation != nil {
		m.Recommendation = *patch.Recommendation
	}
	if patch.Quote != nil {
		m.Quote = *patch.Quote
	}
	if patch.Context != nil {
		m.Context = *patch.Context
	}
}

// PublishContent performs the one-way publish transition.
func (m *Memory) PublishContent(ctx context.Context, id string) (*types.ContentItem, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if item.Status == types.ContentPublished {
		return nil, ErrAlreadyPublished
	}
	if types.CountMentions(item.Mentions).Pending > 0 {
		return nil, ErrPendingMentions
	}
	item.Status = types.ContentPublished
	return cloneItem(item), nil
}

// AddContent inserts a new item keyed by its ID.
func (m *Memory) AddContent(ctx context.Context, item *types.ContentItem) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[item.ID] = cloneItem(item)
	return nil
}

// AttachMentions appends extracted mentions and flips processing -> pending.
// Published items reject the attach: once exported, the reviewed set is
// final. Mention IDs already present are skipped so redelivered payloads do
// not duplicate review work.
func (m *Memory) AttachMentions(ctx context.Context, contentID string, mentions []types.MentionCandidate) (*types.ContentItem, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[contentID]
	if !ok {
		return nil, ErrNotFound
	}
	if item.Status == types.ContentPublished {
		return nil, ErrAlreadyPublished
	}

	existing := make(map[string]bool, len(item.Mentions))
	for _, mc := range item.Mentions {
		existing[mc.ID] = true
	}
	for _, mc := range mentions {
		if mc.ID != "" && existing[mc.ID] {
			continue
		}
		existing[mc.ID] = true
		item.Mentions = append(item.Mentions, mc)
	}

	if item.Status == types.ContentProcessing {
		item.Status = types.ContentPending
	}
	return cloneItem(item), nil
}

// UpdateEngagement refreshes view/like/comment counters in place.
func (m *Memory) UpdateEngagement(ctx context.Context, id string, views, likes, comments int64) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	item.Views = views
	item.Likes = likes
	item.Comments = comments
	return nil
}

// cloneItem deep-copies an item so callers never hold store-internal memory.
func cloneItem(item *types.ContentItem) *types.ContentItem {
	cp := *item
	cp.Mentions = make([]types.MentionCandidate, len(item.Mentions))
	copy(cp.Mentions, item.Mentions)
	return &cp
}
