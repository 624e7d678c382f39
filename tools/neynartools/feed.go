package neynartools

import (
	"context"
	"net/http"
	"reflect"

	"github.com/nash-app/nash-tools/neynar"
	"github.com/nash-app/nash-tools/pkg/csvfmt"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
)

const FeedToolName = "feed_tool"

// NoPostsSentinel is returned when the following feed is empty.
const NoPostsSentinel = "No posts found"

// feedCastLimit caps how many casts the tool reports to the agent.
const feedCastLimit = 10

// FeedRequest is the tool input.
type FeedRequest struct {
	FID int64 `json:"fid" jsonschema:"title=FID,description=Farcaster ID of the user whose following feed to fetch" validate:"required,gt=0"`
}

// FeedResult holds the fetched casts.
type FeedResult struct {
	Casts []neynar.Cast
}

func (r *FeedResult) String() string {
	tb := csvfmt.New("author", "text")
	for _, cast := range r.Casts {
		tb.AddRow(cast.Author.Username, cast.Text)
	}
	return tb.RenderOr(NoPostsSentinel)
}

// FeedTool returns the latest posts from a user's following feed on
// Farcaster as CSV.
type FeedTool struct {
	name        string
	description string

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[FeedRequest, FeedResult] = (*FeedTool)(nil)

func NewFeed() *FeedTool {
	return &FeedTool{
		name: FeedToolName,
		description: "Returns the latest posts from the Farcaster following feed of a given user " +
			"(by FID) in CSV format with columns 'author' and 'text'. If there are no posts, " +
			"it will return 'No posts found'.",
	}
}

func (t *FeedTool) WithBaseURL(baseURL string) *FeedTool {
	t.baseURL = baseURL
	return t
}

func (t *FeedTool) WithHTTPClient(client *http.Client) *FeedTool {
	t.httpClient = client
	return t
}

func (t *FeedTool) Name() string {
	return t.name
}

func (t *FeedTool) Description() string {
	return t.description
}

func (t *FeedTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(FeedRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *FeedTool) Run(ctx context.Context, req *FeedRequest) (*FeedResult, error) {
	if err := tools.ValidateStruct(req); err != nil {
		return nil, err
	}

	api, err := newAPIClient(t.baseURL, t.httpClient)
	if err != nil {
		return nil, err
	}

	casts, err := neynar.NewClient(api).FollowingFeed(ctx, req.FID, feedCastLimit)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}
	return &FeedResult{Casts: casts}, nil
}

func (t *FeedTool) Call(ctx context.Context, input string) (string, error) {
	var req FeedRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
