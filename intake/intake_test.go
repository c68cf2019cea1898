package intake

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=ABC123", "ABC123", false},
		{"short link with params", "https://youtu.be/XYZ789?t=5", "XYZ789", false},
		{"watch without www", "https://youtube.com/watch?v=id42", "id42", false},
		{"short link trailing slash", "https://youtu.be/id42/", "id42", false},
		{"watch missing v", "https://www.youtube.com/watch?list=PL1", "", true},
		{"wrong host", "https://vimeo.com/12345", "", true},
		{"wrong path", "https://www.youtube.com/shorts/ABC123", "", true},
		{"no scheme", "www.youtube.com/watch?v=ABC123", "", true},
		{"empty short link", "https://youtu.be/", "", true},
		{"garbage", "not a url at all ://", "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ExtractVideoID(c.url)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ExtractVideoID(%q) = %q; want error", c.url, got)
				}
				var invalid *ErrInvalidURL
				if !errors.As(err, &invalid) {
					t.Fatalf("error type = %T; want *ErrInvalidURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractVideoID(%q): %v", c.url, err)
			}
			if got != c.want {
				t.Fatalf("ExtractVideoID(%q) = %q; want %q", c.url, got, c.want)
			}
		})
	}
}

func TestSubmitPostsPayloadArray(t *testing.T) {
	var received []Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	id, err := c.Submit(context.Background(), "https://www.youtube.com/watch?v=ABC123")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id != "ABC123" {
		t.Fatalf("id = %q; want ABC123", id)
	}
	if len(received) != 1 {
		t.Fatalf("payload length = %d; want 1", len(received))
	}
	if received[0].VideoID != "ABC123" || received[0].VideoURL != "https://www.youtube.com/watch?v=ABC123" {
		t.Fatalf("payload = %+v", received[0])
	}
	if received[0].SubmitTime.IsZero() {
		t.Fatalf("submit time not set")
	}
}

func TestSubmitInvalidURLSkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if _, err := c.Submit(context.Background(), "https://vimeo.com/12345"); err == nil {
		t.Fatalf("Submit accepted an invalid URL")
	}
	if called {
		t.Fatalf("webhook was called for an invalid URL")
	}
}

func TestSubmitPropagatesWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if _, err := c.Submit(context.Background(), "https://youtu.be/XYZ789"); err == nil {
		t.Fatalf("Submit swallowed the webhook failure")
	}
}
