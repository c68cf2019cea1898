package airtable

import "time"

// VideoRecord is the strict, normalized form of a backend row. All defensive
// any-shape parsing happens in normalizeRecord; consumers get plain fields.
type VideoRecord struct {
	ID           string
	Title        string
	Channel      string
	Platform     string
	ReleaseDate  time.Time
	Views        int64
	CoinSymbol   string
	PriceAtPost  float64
	PriceNow     float64
	ThumbnailURL string
	VideoURL     string
}

func normalizeRecord(id string, fields map[string]interface{}) VideoRecord {
	rec := VideoRecord{
		ID:           id,
		Title:        asString(fields["Title"]),
		Channel:      asString(fields["Channel"]),
		Platform:     asString(fields["Platform"]),
		Views:        int64(asFloat(fields["Views"])),
		CoinSymbol:   asString(fields["Coin"]),
		PriceAtPost:  asFloat(fields["Price At Post"]),
		PriceNow:     asFloat(fields["Price Now"]),
		ThumbnailURL: thumbnailURL(fields["Thumbnail"]),
		VideoURL:     asString(fields["Video URL"]),
	}
	if rec.Platform == "" {
		rec.Platform = "youtube"
	}
	if raw := asString(fields["Release Date"]); raw != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if ts, err := time.Parse(layout, raw); err == nil {
				rec.ReleaseDate = ts
				break
			}
		}
	}
	return rec
}

// thumbnailURL unwraps the three shapes the thumbnail field has been observed
// in: a plain URL string, an attachment array, or a bare attachment object.
func thumbnailURL(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		if len(t) == 0 {
			return ""
		}
		return thumbnailURL(t[0])
	case map[string]interface{}:
		if u := asString(t["url"]); u != "" {
			return u
		}
		// Some rows nest the usable URL under thumbnails.large.
		if thumbs, ok := t["thumbnails"].(map[string]interface{}); ok {
			if large, ok := thumbs["large"].(map[string]interface{}); ok {
				return asString(large["url"])
			}
		}
		return ""
	default:
		return ""
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0
	}
}
