package thumbcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when a thumbnail cannot be fetched; callers fall
// back to a platform glyph.
var ErrUnavailable = errors.New("thumbnail unavailable")

const maxThumbnailBytes = 2 << 20

// Cache fetches thumbnail bytes once per URL and keeps them in Redis with a
// TTL. Redis being down degrades to a direct fetch on every call.
type Cache struct {
	client     *redis.Client
	httpClient *http.Client
	ttl        time.Duration
}

// New creates a cache around an existing Redis client. A nil client disables
// caching but keeps fetching working.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client:     client,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		ttl:        ttl,
	}
}

// NewFromEnv creates a cache using REDIS_ADDR, REDIS_PASS and
// THUMB_TTL_SECONDS (optional).
func NewFromEnv() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ttl := 6 * time.Hour
	if t := os.Getenv("THUMB_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}
	return New(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	}), ttl)
}

func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "thumb:" + hex.EncodeToString(hash[:])[:24]
}

// Get returns the thumbnail bytes for a URL, fetching at most once per TTL
// window. Any failure maps to ErrUnavailable.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrUnavailable
	}

	key := cacheKey(url)
	if c.client != nil {
		data, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("thumbcache: redis get failed, fetching directly: %v", err)
		}
	}

	data, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if c.client != nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("thumbcache: redis set failed: %v", err)
		}
	}
	return data, nil
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes))
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// PlatformGlyph is the fallback rendering for cards whose thumbnail could not
// be loaded: a single glyph plus a platform brand color.
func PlatformGlyph(platform string) (glyph string, color string) {
	switch platform {
	case "youtube":
		return "▶", "#FF0000"
	case "tiktok":
		return "♪", "#00F2EA"
	case "twitch":
		return "◉", "#9146FF"
	default:
		return "■", "#626262"
	}
}
