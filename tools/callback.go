package tools

import (
	"context"

	"github.com/effective-security/xlog"
)

// ensure that the callbacks implement the correct interfaces
var (
	_ Callback = (*Noop)(nil)
	_ Callback = (*PackageLogger)(nil)
	_ Callback = (*Fanout)(nil)
)

// Noop discards all tool events.
type Noop struct{}

func (Noop) OnToolStart(context.Context, ITool, string)       {}
func (Noop) OnToolEnd(context.Context, ITool, string, string) {}
func (Noop) OnToolError(context.Context, ITool, string, error) {
}

// PackageLogger logs tool events with the package logger of the caller.
type PackageLogger struct {
	logger *xlog.PackageLogger
}

func NewPackageLogger(logger *xlog.PackageLogger) *PackageLogger {
	return &PackageLogger{logger: logger}
}

func (l *PackageLogger) OnToolStart(ctx context.Context, tool ITool, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"tool", tool.Name(),
		"status", "started",
		"input", input,
	)
}

func (l *PackageLogger) OnToolEnd(ctx context.Context, tool ITool, input string, output string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"tool", tool.Name(),
		"status", "finished",
		"output_len", len(output),
	)
}

func (l *PackageLogger) OnToolError(ctx context.Context, tool ITool, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"tool", tool.Name(),
		"status", "failed",
		"err", err.Error(),
	)
}

// Fanout forwards tool events to multiple callbacks.
type Fanout struct {
	callbacks []Callback
}

func NewFanout(callbacks ...Callback) *Fanout {
	return &Fanout{callbacks: callbacks}
}

func (l *Fanout) Add(callback Callback) {
	l.callbacks = append(l.callbacks, callback)
}

func (l *Fanout) OnToolStart(ctx context.Context, tool ITool, input string) {
	for _, callback := range l.callbacks {
		callback.OnToolStart(ctx, tool, input)
	}
}

func (l *Fanout) OnToolEnd(ctx context.Context, tool ITool, input string, output string) {
	for _, callback := range l.callbacks {
		callback.OnToolEnd(ctx, tool, input, output)
	}
}

func (l *Fanout) OnToolError(ctx context.Context, tool ITool, input string, err error) {
	for _, callback := range l.callbacks {
		callback.OnToolError(ctx, tool, input, err)
	}
}
