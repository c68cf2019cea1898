package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coinlens/intake"
)

// RegisterIntakeRoutes registers the video submission endpoint.
func RegisterIntakeRoutes(r *gin.Engine, client *intake.Client) {
	r.POST("/api/intake/submit", handleSubmit(client))
}

// SubmitRequest carries a video URL to hand to the ingestion pipeline.
type SubmitRequest struct {
	URL string `json:"url" binding:"required"`
}

// SubmitResponse acknowledges a fired webhook. Completion is only observable
// by the record later appearing in the queue.
type SubmitResponse struct {
	Status  string `json:"status"`
	VideoID string `json:"video_id"`
}

func handleSubmit(client *intake.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "intake not configured"})
			return
		}
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		videoID, err := client.Submit(c.Request.Context(), req.URL)
		if err != nil {
			var invalid *intake.ErrInvalidURL
			if errors.As(err, &invalid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, SubmitResponse{Status: "submitted", VideoID: videoID})
	}
}
