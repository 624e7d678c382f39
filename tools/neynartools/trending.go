package neynartools

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/nash-app/nash-tools/neynar"
	"github.com/nash-app/nash-tools/pkg/csvfmt"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
)

const TrendingToolName = "trending_feed_tool"

// NoTrendingSentinel is returned when the trending feed is empty.
const NoTrendingSentinel = "No trending posts found"

// TrendingRequest is the tool input. The trending feed is global, so the
// tool takes no parameters.
type TrendingRequest struct{}

// TrendingResult holds the fetched casts.
type TrendingResult struct {
	Casts []neynar.Cast
}

func (r *TrendingResult) String() string {
	tb := csvfmt.New(
		"timestamp", "cast_hash", "thread_hash", "parent_hash",
		"author_fid", "author_username", "author_display_name", "author_pfp_url",
		"text", "channel_name", "embed_url", "frame_title", "frame_url",
		"warpcast_url", "likes_count", "recasts_count", "replies_count",
	)
	for _, cast := range r.Casts {
		var channelName *string
		if cast.Channel != nil {
			channelName = cast.Channel.Name
		}
		var embedURL *string
		if len(cast.Embeds) > 0 {
			embedURL = cast.Embeds[0].URL
		}
		var frameTitle, frameURL *string
		if len(cast.Frames) > 0 {
			frameTitle = cast.Frames[0].Title
			frameURL = cast.Frames[0].FramesURL
		}
		var likes, recasts, replies int
		if cast.Reactions != nil {
			likes = cast.Reactions.LikesCount
			recasts = cast.Reactions.RecastsCount
		}
		if cast.Replies != nil {
			replies = cast.Replies.Count
		}
		tb.AddRow(
			cast.Timestamp.UTC().Format(time.RFC3339),
			cast.Hash,
			cast.ThreadHash,
			cast.ParentHash,
			cast.Author.FID,
			cast.Author.Username,
			cast.Author.DisplayName,
			cast.Author.PfpURL,
			cast.Text,
			channelName,
			embedURL,
			frameTitle,
			frameURL,
			"https://warpcast.com/"+cast.Author.Username+"/"+cast.Hash,
			likes,
			recasts,
			replies,
		)
	}
	return tb.RenderOr(NoTrendingSentinel)
}

// TrendingTool returns the global Farcaster trending feed as CSV.
type TrendingTool struct {
	name        string
	description string

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[TrendingRequest, TrendingResult] = (*TrendingTool)(nil)

func NewTrending() *TrendingTool {
	return &TrendingTool{
		name: TrendingToolName,
		description: "Returns the current trending posts on Farcaster in CSV format, including the " +
			"author, text, channel, engagement counts, and a Warpcast URL for each post. If there " +
			"are no trending posts, it will return 'No trending posts found'.",
	}
}

func (t *TrendingTool) WithBaseURL(baseURL string) *TrendingTool {
	t.baseURL = baseURL
	return t
}

func (t *TrendingTool) WithHTTPClient(client *http.Client) *TrendingTool {
	t.httpClient = client
	return t
}

func (t *TrendingTool) Name() string {
	return t.name
}

func (t *TrendingTool) Description() string {
	return t.description
}

func (t *TrendingTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(TrendingRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *TrendingTool) Run(ctx context.Context, _ *TrendingRequest) (*TrendingResult, error) {
	api, err := newAPIClient(t.baseURL, t.httpClient)
	if err != nil {
		return nil, err
	}

	casts, err := neynar.NewClient(api).TrendingFeed(ctx)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}
	return &TrendingResult{Casts: casts}, nil
}

func (t *TrendingTool) Call(ctx context.Context, input string) (string, error) {
	var req TrendingRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
