package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coinlens/thumbcache"
)

// RegisterThumbRoutes registers the thumbnail proxy.
func RegisterThumbRoutes(r *gin.Engine, cache *thumbcache.Cache) {
	r.GET("/api/thumb", handleThumb(cache))
}

// handleThumb serves a card thumbnail through the cache so clients load
// images from one origin. A failed fetch answers 404 and the client falls
// back to the platform glyph.
func handleThumb(cache *thumbcache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "thumbnail cache not configured"})
			return
		}
		url := c.Query("url")
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		data, err := cache.Get(c.Request.Context(), url)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "thumbnail unavailable"})
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, http.DetectContentType(data), data)
	}
}
