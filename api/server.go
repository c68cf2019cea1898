package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"coinlens/airtable"
	"coinlens/intake"
	"coinlens/store"
	"coinlens/thumbcache"
)

// VideoSource lists influencer video releases from the tabular backend.
type VideoSource interface {
	ListVideos(ctx context.Context, opts airtable.ListOptions) ([]airtable.VideoRecord, error)
}

// Runner is a fire-and-forget background job (the refresher).
type Runner interface {
	RunOnce(ctx context.Context) error
}

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Store     store.Store
	Intake    *intake.Client
	Videos    VideoSource
	Refresher Runner
	Thumbs    *thumbcache.Cache
}

var _ VideoSource = (*airtable.Client)(nil)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterReviewRoutes(r, deps.Store)
	RegisterIntakeRoutes(r, deps.Intake)
	RegisterBubbleRoutes(r, deps.Videos)
	RegisterRefreshRoutes(r, deps.Refresher)
	RegisterThumbRoutes(r, deps.Thumbs)
	RegisterHealthRoutes(r)
	return r
}

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRefreshRoutes registers the background refresh trigger.
// It runs asynchronously and returns 202 Accepted immediately.
func RegisterRefreshRoutes(r *gin.Engine, runner Runner) {
	r.POST("/api/refresh", func(c *gin.Context) {
		if runner == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresher not configured"})
			return
		}
		go func() {
			_ = runner.RunOnce(context.Background())
		}()
		c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
	})
}
