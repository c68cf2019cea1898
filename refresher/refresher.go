package refresher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"coinlens/common"
	"coinlens/stats"
	"coinlens/store"
	"coinlens/types"
)

// StatsSource supplies fresh engagement counters for provider video ids.
type StatsSource interface {
	FetchEngagement(ctx context.Context, videoIDs []string) (map[string]stats.Engagement, error)
}

// SnapshotSink receives JSON snapshots of published content.
type SnapshotSink interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Refresher periodically reconciles the review store with the outside world:
// engagement counters from the video platform, and published items exported
// as JSON snapshots. Both halves are optional and skipped when unconfigured.
type Refresher struct {
	Store    store.Store
	Stats    StatsSource
	Sink     SnapshotSink
	Bucket   string
	Prefix   string
	Interval time.Duration
}

// NewFromEnv wires a Refresher against the environment. Stats need
// YOUTUBE_API_KEY; snapshots need S3_BUCKET. Optional: S3_REGION, S3_PROFILE,
// S3_PREFIX, S3_USE_PATH_STYLE=true, REFRESH_INTERVAL_SECONDS.
func NewFromEnv(ctx context.Context, st store.Store) *Refresher {
	r := &Refresher{Store: st, Interval: 60 * time.Second}

	if v := strings.TrimSpace(os.Getenv("REFRESH_INTERVAL_SECONDS")); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
			r.Interval = d
		}
	}

	if yt, err := stats.NewYouTube(ctx, ""); err != nil {
		log.Printf("refresher: stats disabled: %v", err)
	} else {
		r.Stats = yt
	}

	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Printf("refresher: S3 not configured; snapshot export disabled")
		return r
	}
	s3c, err := common.NewS3(ctx, common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	})
	if err != nil {
		log.Printf("refresher: failed to init S3 client: %v (snapshot export disabled)", err)
		return r
	}
	r.Sink = s3c
	r.Bucket = bucket
	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		r.Prefix = strings.Trim(prefix, "/") + "/"
	}
	return r
}

// RunOnce executes a single reconciliation cycle and logs a summary.
func (r *Refresher) RunOnce(ctx context.Context) error {
	items, err := r.Store.ListContent(ctx, store.QueueFilter{})
	if err != nil {
		return fmt.Errorf("failed to list content: %w", err)
	}

	refreshed := r.refreshEngagement(ctx, items)
	exported := r.exportSnapshots(ctx, items)

	log.Printf("refresh cycle complete: %d item(s), %d counter refresh(es), %d snapshot(s) exported",
		len(items), refreshed, exported)
	return nil
}

func (r *Refresher) refreshEngagement(ctx context.Context, items []*types.ContentItem) int {
	if r.Stats == nil {
		return 0
	}

	byVideoID := make(map[string]*types.ContentItem)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.VideoID == "" {
			continue
		}
		byVideoID[item.VideoID] = item
		ids = append(ids, item.VideoID)
	}
	if len(ids) == 0 {
		return 0
	}

	counters, err := r.Stats.FetchEngagement(ctx, ids)
	if err != nil {
		log.Printf("refresher: engagement fetch failed: %v", err)
		return 0
	}

	refreshed := 0
	for videoID, e := range counters {
		item := byVideoID[videoID]
		if item == nil {
			continue
		}
		if err := r.Store.UpdateEngagement(ctx, item.ID, e.Views, e.Likes, e.Comments); err != nil {
			log.Printf("refresher: counter update failed for %s: %v", item.ID, err)
			continue
		}
		refreshed++
	}
	return refreshed
}

func (r *Refresher) exportSnapshots(ctx context.Context, items []*types.ContentItem) int {
	if r.Sink == nil || r.Bucket == "" {
		return 0
	}

	exported := 0
	for _, item := range items {
		if item.Status != types.ContentPublished {
			continue
		}
		key := r.Prefix + "published/" + item.ID + ".json"

		exists, err := r.Sink.Exists(ctx, r.Bucket, key)
		if err != nil {
			log.Printf("refresher: snapshot check failed for %s: %v", item.ID, err)
			continue
		}
		if exists {
			continue
		}

		body, err := json.MarshalIndent(item, "", "  ")
		if err != nil {
			log.Printf("refresher: snapshot encode failed for %s: %v", item.ID, err)
			continue
		}

		uctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = r.Sink.Put(uctx, r.Bucket, key, bytes.NewReader(body), "application/json", "public, max-age=300")
		cancel()
		if err != nil {
			log.Printf("refresher: snapshot upload failed for %s: %v", item.ID, err)
			continue
		}
		exported++
	}
	return exported
}

// RunInterval runs RunOnce on a fixed timer until the context is canceled.
// The timer is independent of user interaction, matching the console's
// polling refresh.
func (r *Refresher) RunInterval(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				log.Printf("refresher: cycle failed: %v", err)
			}
		}
	}
}
