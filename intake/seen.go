package intake

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeenGuard remembers recently submitted video ids in Redis so operators get
// a log line when they resubmit the same video. It is advisory only.
type SeenGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSeenGuardFromEnv creates a SeenGuard using environment variables
// REDIS_ADDR, REDIS_PASS, INTAKE_SEEN_TTL_SECONDS (optional).
func NewSeenGuardFromEnv() *SeenGuard {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ttl := 24 * time.Hour
	if t := os.Getenv("INTAKE_SEEN_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	})
	return &SeenGuard{client: client, prefix: "intake:seen:", ttl: ttl}
}

// CheckAndMark reports whether the video id was already submitted within the
// TTL window, marking it either way.
func (g *SeenGuard) CheckAndMark(ctx context.Context, videoID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+videoID, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Close releases the underlying Redis connection.
func (g *SeenGuard) Close() error { return g.client.Close() }
