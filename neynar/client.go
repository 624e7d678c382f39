// Package neynar wraps the Farcaster (Neynar) feed operations used by the
// social tools, reached through the Nash API proxy.
package neynar

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/nash-app/nash-tools/nashapi"
)

const (
	feedPath     = "/proxy/neynar/v2/farcaster/feed/following"
	trendingPath = "/proxy/neynar/v2/farcaster/feed/trending"

	// maxTrendingPages caps cursor pagination of the trending feed.
	maxTrendingPages = 10

	// pageDelay paces paginated requests to stay under the proxy rate
	// limit.
	pageDelay = 250 * time.Millisecond
)

// UserProfile is the author of a cast.
type UserProfile struct {
	FID         int64   `json:"fid"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	PfpURL      *string `json:"pfp_url"`
}

// Reactions holds engagement counts of a cast.
type Reactions struct {
	LikesCount   int `json:"likes_count"`
	RecastsCount int `json:"recasts_count"`
}

// Replies holds the reply count of a cast.
type Replies struct {
	Count int `json:"count"`
}

// Frame is an interactive embed attached to a cast.
type Frame struct {
	Title     *string `json:"title"`
	FramesURL *string `json:"frames_url"`
}

// Embed is a URL attached to a cast.
type Embed struct {
	URL *string `json:"url"`
}

// Channel is the channel a cast was posted in.
type Channel struct {
	Object    string  `json:"object"`
	Name      *string `json:"name"`
	ParentURL *string `json:"parent_url"`
	ImageURL  *string `json:"image_url"`
	ChannelID *string `json:"channel_id"`
}

// Cast is a single Farcaster post.
type Cast struct {
	Hash       string     `json:"hash"`
	ThreadHash *string    `json:"thread_hash"`
	ParentHash *string    `json:"parent_hash"`
	Author     UserProfile `json:"author"`
	Text       string     `json:"text"`
	Timestamp  time.Time  `json:"timestamp"`
	Reactions  *Reactions `json:"reactions"`
	Replies    *Replies   `json:"replies"`
	Frames     []Frame    `json:"frames"`
	Embeds     []Embed    `json:"embeds"`
	Channel    *Channel   `json:"channel"`
}

type feedResponse struct {
	Casts []Cast `json:"casts"`
	Next  *struct {
		Cursor *string `json:"cursor"`
	} `json:"next"`
}

// Client issues Neynar requests through the Nash API proxy.
type Client struct {
	api *nashapi.Client
}

func NewClient(api *nashapi.Client) *Client {
	return &Client{api: api}
}

// FollowingFeed returns the latest casts of a user's following feed,
// capped at limit.
func (c *Client) FollowingFeed(ctx context.Context, fid int64, limit int) ([]Cast, error) {
	q := url.Values{"fid": []string{strconv.FormatInt(fid, 10)}}

	var out feedResponse
	if err := c.api.GetJSON(ctx, feedPath, q, &out); err != nil {
		return nil, err
	}

	casts := out.Casts
	if limit > 0 && len(casts) > limit {
		casts = casts[:limit]
	}
	return casts, nil
}

// TrendingFeed returns the global trending feed, following the cursor up
// to 10 pages with a short delay between requests.
func (c *Client) TrendingFeed(ctx context.Context) ([]Cast, error) {
	var all []Cast
	var cursor string

	for page := 0; page < maxTrendingPages; page++ {
		if page > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.WithMessage(ctx.Err(), "API request failed")
			case <-time.After(pageDelay):
			}
		}

		q := url.Values{}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var out feedResponse
		if err := c.api.GetJSON(ctx, trendingPath, q, &out); err != nil {
			return nil, err
		}
		all = append(all, out.Casts...)

		if out.Next == nil || out.Next.Cursor == nil || *out.Next.Cursor == "" {
			break
		}
		cursor = *out.Next.Cursor
	}

	return all, nil
}
