package tools_test

import (
	"context"
	"testing"

	"github.com/nash-app/nash-tools/tools"
	"github.com/stretchr/testify/assert"
)

type countingCallback struct {
	starts, ends, errs int
}

func (c *countingCallback) OnToolStart(context.Context, tools.ITool, string) { c.starts++ }
func (c *countingCallback) OnToolEnd(context.Context, tools.ITool, string, string) {
	c.ends++
}
func (c *countingCallback) OnToolError(context.Context, tools.ITool, string, error) { c.errs++ }

func TestFanout(t *testing.T) {
	t.Parallel()

	a := &countingCallback{}
	b := &countingCallback{}
	fanout := tools.NewFanout(a)
	fanout.Add(b)

	ctx := context.Background()
	fanout.OnToolStart(ctx, nil, "{}")
	fanout.OnToolEnd(ctx, nil, "{}", "ok")
	fanout.OnToolEnd(ctx, nil, "{}", "ok")

	for _, cb := range []*countingCallback{a, b} {
		assert.Equal(t, 1, cb.starts)
		assert.Equal(t, 2, cb.ends)
		assert.Equal(t, 0, cb.errs)
	}
}
