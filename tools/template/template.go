// Package template is a worked example of the tool conventions: a minimal
// tool that validates its input, calls the Nash API once, and reports
// every failure as a categorized string. New tools should start from this
// layout.
package template

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/nash-app/nash-tools/nashapi"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
)

const EchoToolName = "template_tool"

// EchoRequest is the tool input.
type EchoRequest struct {
	Message string `json:"message" jsonschema:"title=Message,description=Message to echo back" validate:"required,min=1,max=1000"`
}

// EchoResult holds the echoed message.
type EchoResult struct {
	Message string
}

func (r *EchoResult) String() string {
	return "Echoed message: " + r.Message
}

// EchoTool echoes a message back and sends a notification that it was
// received.
type EchoTool struct {
	name        string
	description string

	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[EchoRequest, EchoResult] = (*EchoTool)(nil)

func NewEcho() *EchoTool {
	return &EchoTool{
		name: EchoToolName,
		description: "Echoes a given message back to the agent and sends a notification that the " +
			"message was received. The message must be between 1 and 1000 characters.",
	}
}

func (t *EchoTool) WithBaseURL(baseURL string) *EchoTool {
	t.baseURL = baseURL
	return t
}

func (t *EchoTool) WithHTTPClient(client *http.Client) *EchoTool {
	t.httpClient = client
	return t
}

func (t *EchoTool) Name() string {
	return t.name
}

func (t *EchoTool) Description() string {
	return t.description
}

func (t *EchoTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(EchoRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *EchoTool) Run(ctx context.Context, req *EchoRequest) (*EchoResult, error) {
	if err := tools.ValidateStruct(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, tools.CategoryError(tools.CategoryValidation, "Message must not be blank")
	}

	api, err := nashapi.New()
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryConfig, err)
	}
	if t.baseURL != "" {
		api.WithBaseURL(t.baseURL)
	}
	if t.httpClient != nil {
		api.WithHTTPClient(t.httpClient)
	}

	if err := api.Notify(ctx, "Message Received", "Echo: "+req.Message); err != nil {
		return nil, tools.WithCategory(tools.CategoryAPI, err)
	}

	return &EchoResult{Message: req.Message}, nil
}

func (t *EchoTool) Call(ctx context.Context, input string) (string, error) {
	var req EchoRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
