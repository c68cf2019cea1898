package stats

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Engagement is the counter set we refresh for a video.
type Engagement struct {
	Views    int64
	Likes    int64
	Comments int64
}

// YouTube reads public video statistics via the Data API with an API key.
type YouTube struct {
	service *youtube.Service
}

// NewYouTube creates a stats reader. The key comes from the argument or the
// YOUTUBE_API_KEY environment variable.
func NewYouTube(ctx context.Context, apiKey string) (*YouTube, error) {
	if apiKey == "" {
		apiKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key not configured")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &YouTube{service: service}, nil
}

// FetchEngagement returns engagement counters for a batch of video ids. IDs
// the API does not return (deleted/private videos) are absent from the map.
func (y *YouTube) FetchEngagement(ctx context.Context, videoIDs []string) (map[string]Engagement, error) {
	out := make(map[string]Engagement, len(videoIDs))

	// The API caps id batches at 50.
	for start := 0; start < len(videoIDs); start += 50 {
		end := start + 50
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		call := y.service.Videos.List([]string{"statistics"}).Id(videoIDs[start:end]...)
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("youtube statistics request failed: %w", err)
		}
		for _, v := range resp.Items {
			if v.Statistics == nil {
				continue
			}
			out[v.Id] = Engagement{
				Views:    int64(v.Statistics.ViewCount),
				Likes:    int64(v.Statistics.LikeCount),
				Comments: int64(v.Statistics.CommentCount),
			}
		}
	}
	return out, nil
}
