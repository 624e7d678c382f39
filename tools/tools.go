package tools

import (
	"context"

	"github.com/nash-app/nash-tools/pkg/llmutils"
)

// ITool is a single-purpose function the agent runtime exposes to the LLM.
type ITool interface {
	// Name returns the name of the tool, used in error strings and
	// by the runtime to route calls.
	Name() string
	// Description returns the description of the tool, to be used in the
	// prompt. Should not exceed LLM model limit.
	Description() string
	// Parameters returns the parameters definition of the tool's entry
	// function, to be used in the prompt.
	Parameters() any

	// Call executes the tool with the given JSON input and returns a
	// human/LLM-readable string. Failures are reported in the returned
	// string as "<tool_name> error: <category> - <details>"; the error
	// result is always nil so nothing propagates to the runtime.
	Call(context.Context, string) (string, error)
}

// Callback receives tool lifecycle events.
type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
}

// Tool extends ITool with a typed entry point.
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions returns a fenced JSON block describing the listed tools,
// suitable for inclusion in a system prompt.
func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return llmutils.BackticksJSON(llmutils.ToJSONIndent(d))
}
