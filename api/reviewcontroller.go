package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"coinlens/store"
	"coinlens/types"
)

// RegisterReviewRoutes registers the moderation console endpoints.
func RegisterReviewRoutes(r *gin.Engine, st store.Store) {
	g := r.Group("/api/review")
	g.GET("/queue", handleQueue(st))
	g.GET("/content/:id", handleGetContent(st))
	g.POST("/content/:id/mentions/:mid", handleUpdateMention(st))
	g.POST("/content/:id/publish", handlePublish(st))
}

// QueueResponse is the review queue listing.
type QueueResponse struct {
	Items []*types.ContentItem `json:"items"`
	Count int                  `json:"count"`
}

// ContentResponse is a single item plus its mention status counts.
type ContentResponse struct {
	Item   *types.ContentItem  `json:"item"`
	Counts types.MentionCounts `json:"counts"`
}

func handleQueue(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.QueueFilter{
			Search: c.Query("search"),
			Status: c.Query("status"),
		}
		items, err := st.ListContent(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, QueueResponse{Items: items, Count: len(items)})
	}
}

func handleGetContent(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := st.GetContent(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, ContentResponse{
			Item:   item,
			Counts: types.CountMentions(item.Mentions),
		})
	}
}

func handleUpdateMention(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch store.MentionPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := st.UpdateMention(c.Request.Context(), c.Param("id"), c.Param("mid"), patch)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "content or mention not found"})
				return
			}
			log.Printf("mention update failed for %s/%s: %v", c.Param("id"), c.Param("mid"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, ContentResponse{
			Item:   item,
			Counts: types.CountMentions(item.Mentions),
		})
	}
}

func handlePublish(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := st.PublishContent(c.Request.Context(), c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			case errors.Is(err, store.ErrPendingMentions), errors.Is(err, store.ErrAlreadyPublished):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				log.Printf("publish failed for %s: %v", c.Param("id"), err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, ContentResponse{
			Item:   item,
			Counts: types.CountMentions(item.Mentions),
		})
	}
}
