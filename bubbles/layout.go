package bubbles

import (
	"math"

	"coinlens/airtable"
)

// Item is one video release to lay out on the canvas.
type Item struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Channel      string  `json:"channel"`
	Platform     string  `json:"platform"`
	Views        int64   `json:"views"`
	CoinSymbol   string  `json:"coin_symbol,omitempty"`
	PriceAtPost  float64 `json:"price_at_post,omitempty"`
	PriceNow     float64 `json:"price_now,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	VideoURL     string  `json:"video_url,omitempty"`
}

// FromRecord adapts a normalized tabular record into a layout item.
func FromRecord(r airtable.VideoRecord) Item {
	return Item{
		ID:           r.ID,
		Title:        r.Title,
		Channel:      r.Channel,
		Platform:     r.Platform,
		Views:        r.Views,
		CoinSymbol:   r.CoinSymbol,
		PriceAtPost:  r.PriceAtPost,
		PriceNow:     r.PriceNow,
		ThumbnailURL: r.ThumbnailURL,
		VideoURL:     r.VideoURL,
	}
}

// Card is a laid-out item: center position plus card size, all in canvas
// pixels. X/Y are the card center.
type Card struct {
	Item   Item    `json:"item"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds returns the axis-aligned bounding box as minX, minY, maxX, maxY.
func (c Card) Bounds() (float64, float64, float64, float64) {
	return c.X - c.Width/2, c.Y - c.Height/2, c.X + c.Width/2, c.Y + c.Height/2
}

// Contains is the hit test used for click handling.
func (c Card) Contains(x, y float64) bool {
	minX, minY, maxX, maxY := c.Bounds()
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

func overlaps(a, b Card, pad float64) bool {
	aMinX, aMinY, aMaxX, aMaxY := a.Bounds()
	bMinX, bMinY, bMaxX, bMaxY := b.Bounds()
	return aMinX-pad < bMaxX && aMaxX+pad > bMinX && aMinY-pad < bMaxY && aMaxY+pad > bMinY
}

const (
	goldenAngle = 2.39996322972865332 // radians
	minCardW    = 90.0
	maxCardW    = 220.0
	cardAspect  = 0.72 // height/width, thumbnail plus caption strip
	cardPad     = 8.0
	spiralStep  = 6.0
)

// Layout places items along an expanding golden-angle spiral centered on the
// canvas. Card size scales with view count so popular videos render larger.
// The walk along the spiral continues past positions that would overlap an
// already-placed card, which keeps bounding boxes disjoint. The function is
// pure: identical input order and canvas size always yield identical cards,
// so re-renders on resize or selection toggles never jitter.
func Layout(width, height int, items []Item) []Card {
	if len(items) == 0 {
		return nil
	}

	minViews, maxViews := items[0].Views, items[0].Views
	for _, it := range items {
		if it.Views < minViews {
			minViews = it.Views
		}
		if it.Views > maxViews {
			maxViews = it.Views
		}
	}

	cx := float64(width) / 2
	cy := float64(height) / 2
	// Vertical squash keeps the spiral roughly following the canvas aspect.
	squash := 1.0
	if width > 0 && height > 0 && height < width {
		squash = math.Max(0.6, float64(height)/float64(width))
	}

	cards := make([]Card, 0, len(items))
	t := 0.0
	for _, it := range items {
		w := sizeFor(it.Views, minViews, maxViews)
		card := Card{Item: it, Width: w, Height: w * cardAspect}

		for {
			r := spiralStep * math.Sqrt(t) * math.Sqrt(w)
			card.X = cx + r*math.Cos(t*goldenAngle)
			card.Y = cy + r*math.Sin(t*goldenAngle)*squash
			if !overlapsAny(card, cards) {
				break
			}
			t += 0.05
		}
		cards = append(cards, card)
		t += 1.0
	}
	return cards
}

func overlapsAny(c Card, placed []Card) bool {
	for _, p := range placed {
		if overlaps(c, p, cardPad) {
			return true
		}
	}
	return false
}

// sizeFor maps a view count into the card width range on a sqrt scale.
func sizeFor(views, minViews, maxViews int64) float64 {
	if maxViews <= minViews {
		return (minCardW + maxCardW) / 2
	}
	frac := float64(views-minViews) / float64(maxViews-minViews)
	return minCardW + (maxCardW-minCardW)*math.Sqrt(frac)
}
