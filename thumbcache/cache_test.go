package thumbcache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetWithoutRedisFetchesDirectly(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("imagebytes"))
	}))
	defer srv.Close()

	c := New(nil, time.Minute)
	data, err := c.Get(context.Background(), srv.URL+"/thumb.jpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "imagebytes" {
		t.Fatalf("data = %q", data)
	}
	if hits.Load() != 1 {
		t.Fatalf("hits = %d", hits.Load())
	}
}

func TestGetUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(nil, time.Minute)
	if _, err := c.Get(context.Background(), srv.URL+"/missing.jpg"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v; want ErrUnavailable", err)
	}
	if _, err := c.Get(context.Background(), ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("empty URL: err = %v; want ErrUnavailable", err)
	}
}

func TestPlatformGlyph(t *testing.T) {
	glyph, color := PlatformGlyph("youtube")
	if glyph == "" || color != "#FF0000" {
		t.Fatalf("youtube glyph = %q %q", glyph, color)
	}
	glyph, color = PlatformGlyph("somethingelse")
	if glyph == "" || color == "" {
		t.Fatalf("default glyph missing")
	}
}

func TestCacheKeyStable(t *testing.T) {
	a := cacheKey("https://cdn.example.com/a.jpg")
	if a != cacheKey("https://cdn.example.com/a.jpg") {
		t.Fatalf("cache key not stable")
	}
	if a == cacheKey("https://cdn.example.com/b.jpg") {
		t.Fatalf("distinct URLs share a cache key")
	}
}
