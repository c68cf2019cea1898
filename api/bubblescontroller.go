package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"coinlens/airtable"
	"coinlens/bubbles"
)

// RegisterBubbleRoutes registers the bubbles layout endpoint.
func RegisterBubbleRoutes(r *gin.Engine, videos VideoSource) {
	r.GET("/api/bubbles", handleBubbles(videos))
}

// BubblesResponse is a fully laid-out scene for the requested day and canvas.
type BubblesResponse struct {
	Date   string         `json:"date"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Cards  []bubbles.Card `json:"cards"`
}

// handleBubbles fetches one day of releases from the tabular backend, lays
// them out and returns the cards. Query params: date (YYYY-MM-DD, default
// today), width/height (canvas pixels).
func handleBubbles(videos VideoSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if videos == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "video source not configured"})
			return
		}

		day := time.Now().UTC().Truncate(24 * time.Hour)
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			day = parsed
		}
		width := intQuery(c, "width", 1280)
		height := intQuery(c, "height", 720)

		records, err := videos.ListVideos(c.Request.Context(), airtable.ListOptions{
			From:      day.AddDate(0, 0, -1),
			To:        day.AddDate(0, 0, 1),
			SortField: "Views",
			SortDesc:  true,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		items := make([]bubbles.Item, 0, len(records))
		for _, rec := range records {
			items = append(items, bubbles.FromRecord(rec))
		}
		c.JSON(http.StatusOK, BubblesResponse{
			Date:   day.Format("2006-01-02"),
			Width:  width,
			Height: height,
			Cards:  bubbles.Layout(width, height, items),
		})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
