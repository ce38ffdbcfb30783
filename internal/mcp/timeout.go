package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrToolTimeout is reported when a tool call exceeds its time budget.
var ErrToolTimeout = errors.New("tool call timed out")

type toolOutcome struct {
	result *mcp.CallToolResult
	err    error
}

// withTimeout runs next in its own goroutine under a deadline. The deadline
// context is handed to next, so the outbound request is cancelled too.
// Panics are turned into error results.
func withTimeout(name string, timeout time.Duration, logger *slog.Logger, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		done := make(chan toolOutcome, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("tool handler panicked", "tool", name, "panic", r)
					done <- toolOutcome{result: mcp.NewToolResultError(fmt.Sprintf("Internal error in %s: %v", name, r))}
				}
			}()
			result, err := next(ctx, req)
			done <- toolOutcome{result: result, err: err}
		}()

		select {
		case out := <-done:
			return out.result, out.err
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logger.Warn("tool call timed out", "tool", name, "timeout", timeout)
				return mcp.NewToolResultError(fmt.Sprintf("%v: %s did not finish within %s", ErrToolTimeout, name, timeout)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Tool %s cancelled: %v", name, ctx.Err())), nil
		}
	}
}
