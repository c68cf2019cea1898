package airtable

import "testing"

func TestThumbnailURLShapes(t *testing.T) {
	cases := []struct {
		name  string
		field interface{}
		want  string
	}{
		{"plain string", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"attachment array", []interface{}{
			map[string]interface{}{"url": "https://cdn.example.com/b.jpg"},
		}, "https://cdn.example.com/b.jpg"},
		{"bare object", map[string]interface{}{"url": "https://cdn.example.com/c.jpg"}, "https://cdn.example.com/c.jpg"},
		{"nested thumbnails", map[string]interface{}{
			"thumbnails": map[string]interface{}{
				"large": map[string]interface{}{"url": "https://cdn.example.com/d.jpg"},
			},
		}, "https://cdn.example.com/d.jpg"},
		{"empty array", []interface{}{}, ""},
		{"nil", nil, ""},
		{"number garbage", 42.0, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := thumbnailURL(c.field); got != c.want {
				t.Fatalf("thumbnailURL = %q; want %q", got, c.want)
			}
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	fields := map[string]interface{}{
		"Title":         "SOL to $500?!",
		"Channel":       "Crypto King",
		"Views":         182000.0,
		"Coin":          "SOL",
		"Price At Post": 145.2,
		"Price Now":     162.8,
		"Release Date":  "2025-11-03",
		"Thumbnail": []interface{}{
			map[string]interface{}{"url": "https://cdn.example.com/sol.jpg"},
		},
		"Video URL": "https://www.youtube.com/watch?v=abc",
	}

	rec := normalizeRecord("rec123", fields)
	if rec.ID != "rec123" || rec.Title != "SOL to $500?!" {
		t.Fatalf("identity fields wrong: %+v", rec)
	}
	if rec.Views != 182000 {
		t.Fatalf("views = %d", rec.Views)
	}
	if rec.ThumbnailURL != "https://cdn.example.com/sol.jpg" {
		t.Fatalf("thumbnail = %q", rec.ThumbnailURL)
	}
	if rec.Platform != "youtube" {
		t.Fatalf("platform default = %q", rec.Platform)
	}
	if rec.ReleaseDate.IsZero() {
		t.Fatalf("release date not parsed")
	}

	// Missing fields degrade to zero values, never panic.
	empty := normalizeRecord("rec456", map[string]interface{}{})
	if empty.Title != "" || empty.Views != 0 || empty.ThumbnailURL != "" {
		t.Fatalf("empty record not zeroed: %+v", empty)
	}
}
