package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ContentStatus is the processing lifecycle of a piece of content.
type ContentStatus string

const (
	ContentPending    ContentStatus = "pending"
	ContentProcessing ContentStatus = "processing"
	ContentPublished  ContentStatus = "published"
)

// ReviewStatus is the lifecycle tag of a mention candidate.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
	ReviewModified ReviewStatus = "modified"
)

// Sentiment labels assigned to a mention by the extraction pipeline.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Recommendation is the call the influencer made on the instrument.
type Recommendation string

const (
	RecommendBuy   Recommendation = "buy"
	RecommendHold  Recommendation = "hold"
	RecommendSell  Recommendation = "sell"
	RecommendAvoid Recommendation = "avoid"
)

// Instrument is a financial asset referenced by a mention.
type Instrument struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Influencer is the author of a piece of content.
type Influencer struct {
	ID        string `json:"id"`
	Handle    string `json:"handle"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Platform  string `json:"platform"` // "youtube" for now
}

// MentionCandidate is one extracted claim about an instrument inside a
// piece of content, pending human review.
type MentionCandidate struct {
	ID             string         `json:"id"`
	Instrument     Instrument     `json:"instrument"`
	Sentiment      Sentiment      `json:"sentiment"`
	Recommendation Recommendation `json:"recommendation"`
	Quote          string         `json:"quote"`
	Context        string         `json:"context,omitempty"`
	TimestampSec   float64        `json:"timestamp_sec"`
	Confidence     float64        `json:"confidence"`
	IsRec          bool           `json:"is_recommendation"`
	Status         ReviewStatus   `json:"status"`
}

// ContentItem is a published video under review with its extracted mentions.
type ContentItem struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Influencer   Influencer         `json:"influencer"`
	PublishedAt  time.Time          `json:"published_at"`
	Views        int64              `json:"views"`
	Likes        int64              `json:"likes"`
	Comments     int64              `json:"comments"`
	URL          string             `json:"url"`
	ThumbnailURL string             `json:"thumbnail_url,omitempty"`
	VideoID      string             `json:"video_id,omitempty"`
	Status       ContentStatus      `json:"status"`
	Mentions     []MentionCandidate `json:"mentions"`
}

// MentionCounts aggregates mention review statuses for one item.
type MentionCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Modified int `json:"modified"`
}

// Resolved returns the number of mentions that have left the pending state.
func (c MentionCounts) Resolved() int {
	return c.Total - c.Pending
}

// CountMentions folds over the mention collection bucketing by status.
func CountMentions(mentions []MentionCandidate) MentionCounts {
	var c MentionCounts
	c.Total = len(mentions)
	for _, m := range mentions {
		switch m.Status {
		case ReviewPending:
			c.Pending++
		case ReviewApproved:
			c.Approved++
		case ReviewRejected:
			c.Rejected++
		case ReviewModified:
			c.Modified++
		}
	}
	return c
}

// Publishable reports whether the item may transition to published:
// every mention must be reviewed and the item must not already be published.
func (ci *ContentItem) Publishable() bool {
	if ci.Status == ContentPublished {
		return false
	}
	return CountMentions(ci.Mentions).Pending == 0
}

// GenerateID creates a stable content ID from the source URL
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
