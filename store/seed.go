package store

import (
	"time"

	"coinlens/types"
)

// seedItems returns the fixture content the console is developed against.
func seedItems() []*types.ContentItem {
	cryptoKing := types.Influencer{
		ID:       "inf-1",
		Handle:   "@cryptoking",
		Name:     "Crypto King",
		Platform: "youtube",
	}
	moonGirl := types.Influencer{
		ID:       "inf-2",
		Handle:   "@moongirl",
		Name:     "Moon Girl",
		Platform: "youtube",
	}

	return []*types.ContentItem{
		{
			ID:          types.GenerateID("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			Title:       "Top 5 Altcoins That Will EXPLODE This Cycle",
			Influencer:  cryptoKing,
			PublishedAt: time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC),
			Views:       182000,
			Likes:       9400,
			Comments:    1210,
			URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			VideoID:     "dQw4w9WgXcQ",
			Status:      types.ContentPending,
			Mentions: []types.MentionCandidate{
				{
					ID: "men-1",
					Instrument: types.Instrument{
						Symbol:   "SOL",
						Name:     "Solana",
						Category: "layer-1",
						URL:      "https://www.coingecko.com/en/coins/solana",
					},
					Sentiment:      types.SentimentPositive,
					Recommendation: types.RecommendBuy,
					Quote:          "Solana is the obvious play here, I'm loading up",
					Context:        "discussing layer-1 performance going into the next cycle",
					TimestampSec:   312,
					Confidence:     0.93,
					IsRec:          true,
					Status:         types.ReviewPending,
				},
				{
					ID: "men-2",
					Instrument: types.Instrument{
						Symbol:   "DOGE",
						Name:     "Dogecoin",
						Category: "meme",
					},
					Sentiment:      types.SentimentNegative,
					Recommendation: types.RecommendAvoid,
					Quote:          "stay away from the dog coins this time around",
					TimestampSec:   540,
					Confidence:     0.71,
					IsRec:          true,
					Status:         types.ReviewPending,
				},
			},
		},
		{
			ID:          types.GenerateID("https://www.youtube.com/watch?v=9bZkp7q19f0"),
			Title:       "Why I Sold Everything (Honest Update)",
			Influencer:  moonGirl,
			PublishedAt: time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC),
			Views:       64000,
			Likes:       3100,
			Comments:    870,
			URL:         "https://www.youtube.com/watch?v=9bZkp7q19f0",
			VideoID:     "9bZkp7q19f0",
			Status:      types.ContentPending,
			Mentions: []types.MentionCandidate{
				{
					ID: "men-3",
					Instrument: types.Instrument{
						Symbol: "BTC",
						Name:   "Bitcoin",
					},
					Sentiment:      types.SentimentNeutral,
					Recommendation: types.RecommendHold,
					Quote:          "Bitcoin I'm keeping, that's the one thing I won't touch",
					TimestampSec:   95,
					Confidence:     0.88,
					IsRec:          true,
					Status:         types.ReviewApproved,
				},
			},
		},
		{
			ID:          types.GenerateID("https://youtu.be/3JZ_D3ELwOQ"),
			Title:       "LIVE: Market Crash Reaction",
			Influencer:  cryptoKing,
			PublishedAt: time.Date(2025, 11, 1, 20, 15, 0, 0, time.UTC),
			Views:       240000,
			Likes:       11800,
			Comments:    4300,
			URL:         "https://youtu.be/3JZ_D3ELwOQ",
			VideoID:     "3JZ_D3ELwOQ",
			Status:      types.ContentProcessing,
		},
	}
}
