package logging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WithNewRequestID returns ctx carrying a fresh random request ID, unless
// ctx already has one.
func WithNewRequestID(ctx context.Context) context.Context {
	if GetRequestID(ctx) != "" {
		return ctx
	}
	return WithRequestID(ctx, uuid.NewString())
}

// RunCommand runs fn under a request ID and logs its outcome at info level.
// The error itself is returned for the caller to report.
func RunCommand(ctx context.Context, command string, fn func(ctx context.Context) error) error {
	ctx = WithNewRequestID(ctx)
	start := time.Now()

	DebugContext(ctx, "command started", "command", command)
	err := fn(ctx)
	if err != nil {
		InfoContext(ctx, "command failed",
			"command", command,
			"duration", time.Since(start),
			"error", err,
		)
		return err
	}

	InfoContext(ctx, "command finished",
		"command", command,
		"duration", time.Since(start),
	)
	return nil
}
