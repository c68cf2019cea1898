package refresher

import (
	"context"
	"io"
	"testing"

	"coinlens/stats"
	"coinlens/store"
	"coinlens/types"
)

type fakeStats struct {
	counters map[string]stats.Engagement
	gotIDs   []string
}

func (f *fakeStats) FetchEngagement(ctx context.Context, ids []string) (map[string]stats.Engagement, error) {
	f.gotIDs = ids
	return f.counters, nil
}

type fakeSink struct {
	existing map[string]bool
	puts     []string
}

func (f *fakeSink) Put(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error {
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeSink) Exists(ctx context.Context, bucket, key string) (bool, error) {
	return f.existing[key], nil
}

func TestRunOnceRefreshesCountersAndExportsPublished(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	published := &types.ContentItem{ID: "pub1", VideoID: "vidA", Status: types.ContentPublished}
	pending := &types.ContentItem{ID: "pen1", VideoID: "vidB", Status: types.ContentPending}
	for _, item := range []*types.ContentItem{published, pending} {
		if err := m.AddContent(ctx, item); err != nil {
			t.Fatalf("AddContent: %v", err)
		}
	}

	fs := &fakeStats{counters: map[string]stats.Engagement{
		"vidA": {Views: 500, Likes: 50, Comments: 5},
	}}
	sink := &fakeSink{existing: map[string]bool{}}
	r := &Refresher{Store: m, Stats: fs, Sink: sink, Bucket: "bkt", Prefix: "snap/"}

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	if len(fs.gotIDs) != 2 {
		t.Fatalf("fetched ids = %v; want both videos", fs.gotIDs)
	}
	got, err := m.GetContent(ctx, "pub1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if got.Views != 500 || got.Likes != 50 || got.Comments != 5 {
		t.Fatalf("counters not refreshed: %+v", got)
	}

	// Only the published item is exported.
	if len(sink.puts) != 1 || sink.puts[0] != "snap/published/pub1.json" {
		t.Fatalf("puts = %v", sink.puts)
	}
}

func TestRunOnceSkipsAlreadyExported(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	if err := m.AddContent(ctx, &types.ContentItem{ID: "pub1", Status: types.ContentPublished}); err != nil {
		t.Fatalf("AddContent: %v", err)
	}
	sink := &fakeSink{existing: map[string]bool{"published/pub1.json": true}}
	r := &Refresher{Store: m, Sink: sink, Bucket: "bkt"}

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(sink.puts) != 0 {
		t.Fatalf("exported an existing snapshot: %v", sink.puts)
	}
}

func TestRunOnceWithNothingConfigured(t *testing.T) {
	m := store.NewMemory()
	r := &Refresher{Store: m}
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
}
