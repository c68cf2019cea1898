package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"coinlens/types"
)

func testItem(id string, statuses ...types.ReviewStatus) *types.ContentItem {
	item := &types.ContentItem{
		ID:     id,
		Title:  "Test Video",
		Status: types.ContentPending,
		Influencer: types.Influencer{
			ID:       "inf-t",
			Handle:   "@tester",
			Name:     "Tester",
			Platform: "youtube",
		},
	}
	for i, s := range statuses {
		item.Mentions = append(item.Mentions, types.MentionCandidate{
			ID:     string(rune('a' + i)),
			Status: s,
		})
	}
	return item
}

func TestPublishBlockedWhilePending(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.AddContent(ctx, testItem("c1", types.ReviewPending, types.ReviewApproved)); err != nil {
		t.Fatalf("AddContent: %v", err)
	}

	if _, err := m.PublishContent(ctx, "c1"); !errors.Is(err, ErrPendingMentions) {
		t.Fatalf("publish with pending mention: err = %v; want ErrPendingMentions", err)
	}

	// Review the last pending mention, then publish must succeed once.
	if _, err := m.UpdateMention(ctx, "c1", "a", MentionPatch{Status: types.ReviewRejected}); err != nil {
		t.Fatalf("UpdateMention: %v", err)
	}
	item, err := m.PublishContent(ctx, "c1")
	if err != nil {
		t.Fatalf("publish after review: %v", err)
	}
	if item.Status != types.ContentPublished {
		t.Fatalf("status = %q; want published", item.Status)
	}

	// One-way transition.
	if _, err := m.PublishContent(ctx, "c1"); !errors.Is(err, ErrAlreadyPublished) {
		t.Fatalf("second publish: err = %v; want ErrAlreadyPublished", err)
	}
}

func TestUpdateMentionAppliesOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	item := testItem("c1", types.ReviewPending)
	item.Mentions[0].Quote = "original quote"
	item.Mentions[0].Sentiment = types.SentimentNeutral
	if err := m.AddContent(ctx, item); err != nil {
		t.Fatalf("AddContent: %v", err)
	}

	// Approve must not alter any other field.
	got, err := m.UpdateMention(ctx, "c1", "a", MentionPatch{Status: types.ReviewApproved})
	if err != nil {
		t.Fatalf("UpdateMention: %v", err)
	}
	if got.Mentions[0].Status != types.ReviewApproved {
		t.Fatalf("status = %q; want approved", got.Mentions[0].Status)
	}
	if got.Mentions[0].Quote != "original quote" || got.Mentions[0].Sentiment != types.SentimentNeutral {
		t.Fatalf("approve altered content fields: %+v", got.Mentions[0])
	}

	// A full edit carries the new fields and the modified status.
	quote := "edited quote"
	sent := types.SentimentPositive
	got, err = m.UpdateMention(ctx, "c1", "a", MentionPatch{
		Status:    types.ReviewModified,
		Quote:     &quote,
		Sentiment: &sent,
	})
	if err != nil {
		t.Fatalf("UpdateMention: %v", err)
	}
	if got.Mentions[0].Status != types.ReviewModified || got.Mentions[0].Quote != quote {
		t.Fatalf("edit not applied: %+v", got.Mentions[0])
	}

	if _, err := m.UpdateMention(ctx, "c1", "zzz", MentionPatch{Status: types.ReviewApproved}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown mention: err = %v; want ErrNotFound", err)
	}
	if _, err := m.UpdateMention(ctx, "nope", "a", MentionPatch{Status: types.ReviewApproved}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown content: err = %v; want ErrNotFound", err)
	}
}

func TestQueueFilter(t *testing.T) {
	cases := []struct {
		name   string
		filter QueueFilter
		want   []string
	}{
		{"no filter", QueueFilter{}, []string{"c1", "c2"}},
		{"all status", QueueFilter{Status: "all"}, []string{"c1", "c2"}},
		{"title substring", QueueFilter{Search: "alt"}, []string{"c1"}},
		{"case insensitive handle", QueueFilter{Search: "MOON"}, []string{"c2"}},
		{"display name", QueueFilter{Search: "girl"}, []string{"c2"}},
		{"no match", QueueFilter{Search: "dogecoin maximalist"}, nil},
		{"status bucket", QueueFilter{Status: "processing"}, []string{"c2"}},
		{"status restores after search miss", QueueFilter{Search: "moon", Status: "processing"}, []string{"c2"}},
	}

	ctx := context.Background()
	m := NewMemory()
	a := testItem("c1")
	a.Title = "Top Altcoins"
	b := testItem("c2")
	b.Title = "Market Update"
	b.Status = types.ContentProcessing
	b.Influencer = types.Influencer{Handle: "@moongirl", Name: "Moon Girl"}
	for _, item := range []*types.ContentItem{a, b} {
		if err := m.AddContent(ctx, item); err != nil {
			t.Fatalf("AddContent: %v", err)
		}
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items, err := m.ListContent(ctx, c.filter)
			if err != nil {
				t.Fatalf("ListContent: %v", err)
			}
			var ids []string
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			if len(ids) != len(c.want) {
				t.Fatalf("got %v; want %v", ids, c.want)
			}
			seen := map[string]bool{}
			for _, id := range ids {
				seen[id] = true
			}
			for _, id := range c.want {
				if !seen[id] {
					t.Fatalf("missing %q in %v", id, ids)
				}
			}
		})
	}
}

func TestAttachMentionsFlipsProcessing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	item := testItem("c1")
	item.Status = types.ContentProcessing
	if err := m.AddContent(ctx, item); err != nil {
		t.Fatalf("AddContent: %v", err)
	}

	got, err := m.AttachMentions(ctx, "c1", []types.MentionCandidate{{ID: "m1", Status: types.ReviewPending}})
	if err != nil {
		t.Fatalf("AttachMentions: %v", err)
	}
	if got.Status != types.ContentPending {
		t.Fatalf("status = %q; want pending", got.Status)
	}
	if len(got.Mentions) != 1 {
		t.Fatalf("mentions = %d; want 1", len(got.Mentions))
	}
}

func TestAttachMentionsRejectedOnPublished(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.AddContent(ctx, testItem("c1", types.ReviewApproved)); err != nil {
		t.Fatalf("AddContent: %v", err)
	}
	if _, err := m.PublishContent(ctx, "c1"); err != nil {
		t.Fatalf("PublishContent: %v", err)
	}

	_, err := m.AttachMentions(ctx, "c1", []types.MentionCandidate{{ID: "late", Status: types.ReviewPending}})
	if !errors.Is(err, ErrAlreadyPublished) {
		t.Fatalf("attach to published: err = %v; want ErrAlreadyPublished", err)
	}

	// The published item must stay untouched and publishable-invariant clean.
	item, err := m.GetContent(ctx, "c1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if len(item.Mentions) != 1 {
		t.Fatalf("mentions = %d; want 1 (late mention must not land)", len(item.Mentions))
	}
	if types.CountMentions(item.Mentions).Pending != 0 {
		t.Fatalf("published item carries pending mentions")
	}
}

func TestAttachMentionsSkipsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	item := testItem("c1")
	item.Status = types.ContentProcessing
	if err := m.AddContent(ctx, item); err != nil {
		t.Fatalf("AddContent: %v", err)
	}

	batch := []types.MentionCandidate{
		{ID: "m1", Status: types.ReviewPending, Quote: "buy SOL"},
		{ID: "m2", Status: types.ReviewPending, Quote: "avoid DOGE"},
	}
	if _, err := m.AttachMentions(ctx, "c1", batch); err != nil {
		t.Fatalf("first attach: %v", err)
	}

	// Same batch again, as a redelivered message would carry it.
	got, err := m.AttachMentions(ctx, "c1", batch)
	if err != nil {
		t.Fatalf("second attach: %v", err)
	}
	if len(got.Mentions) != 2 {
		t.Fatalf("mentions = %d; want 2 after repeat attach", len(got.Mentions))
	}

	// A new ID in a later batch still lands.
	got, err = m.AttachMentions(ctx, "c1", []types.MentionCandidate{{ID: "m3", Status: types.ReviewPending}})
	if err != nil {
		t.Fatalf("third attach: %v", err)
	}
	if len(got.Mentions) != 3 {
		t.Fatalf("mentions = %d; want 3", len(got.Mentions))
	}
}

func TestSetLatencyHonorsCanceledContext(t *testing.T) {
	m := NewMemory()
	if err := m.AddContent(context.Background(), testItem("c1")); err != nil {
		t.Fatalf("AddContent: %v", err)
	}
	m.SetLatency(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.GetContent(ctx, "c1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetContent with canceled ctx: err = %v; want context.Canceled", err)
	}

	// Zero restores immediate calls.
	m.SetLatency(0)
	if _, err := m.GetContent(ctx, "c1"); err != nil {
		t.Fatalf("GetContent after disabling latency: %v", err)
	}
}

func TestClonedResultsDoNotAliasStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.AddContent(ctx, testItem("c1", types.ReviewPending)); err != nil {
		t.Fatalf("AddContent: %v", err)
	}
	got, err := m.GetContent(ctx, "c1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	got.Mentions[0].Status = types.ReviewApproved

	again, err := m.GetContent(ctx, "c1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if again.Mentions[0].Status != types.ReviewPending {
		t.Fatalf("caller mutation leaked into store")
	}
}
